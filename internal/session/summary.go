package session

import (
	"time"

	"github.com/abhisek/verbiz/internal/rounds"
)

// Summary describes a session's progress or final outcome.
type Summary struct {
	SessionID    string        `json:"session_id"`
	Mode         rounds.Mode   `json:"mode"`
	Steps        int           `json:"steps"`
	Answered     int           `json:"answered"`
	CorrectSteps int           `json:"correct_steps"`
	Score        int           `json:"score"`
	MaxScore     int           `json:"max_score"`
	Duration     time.Duration `json:"duration"`
	Expired      bool          `json:"expired"`
	Results      []StepResult  `json:"results"`
}

// Accuracy is the share of fully correct steps among those answered.
func (s Summary) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.CorrectSteps) / float64(s.Answered)
}

// Summary builds the summary. Before the session ends Duration runs to now.
func (s *Session) Summary() Summary {
	end := s.endTime
	if end.IsZero() {
		end = s.now()
	}

	sum := Summary{
		SessionID: s.ID,
		Mode:      s.Batch.Mode,
		Steps:     s.Batch.Len(),
		Answered:  len(s.results),
		Score:     s.score,
		MaxScore:  s.Batch.MaxScore(),
		Duration:  end.Sub(s.StartTime),
		Results:   s.results,
	}
	for _, r := range s.results {
		if r.Correct() {
			sum.CorrectSteps++
		}
		if r.Expired {
			sum.Expired = true
		}
	}
	return sum
}
