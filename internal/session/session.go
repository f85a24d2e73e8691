// Package session plays a generated batch step by step, grading answers
// and recording the finished round.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/verbiz/internal/grading"
	"github.com/abhisek/verbiz/internal/rounds"
	"github.com/abhisek/verbiz/internal/store"
)

var (
	// ErrEmptyBatch is returned by New for a batch with no questions.
	ErrEmptyBatch = errors.New("session: batch has no questions")

	// ErrFinished is returned when answering after the last step.
	ErrFinished = errors.New("session: already finished")
)

// StepResult is the graded outcome of one step.
type StepResult struct {
	QuestionID string             `json:"question_id"`
	Inputs     []string           `json:"inputs"`
	Expected   []string           `json:"expected"`
	Result     grading.SlotResult `json:"result"`
	Score      int                `json:"score"`
	MaxScore   int                `json:"max_score"`
	Expired    bool               `json:"expired,omitempty"`
	Elapsed    time.Duration      `json:"elapsed"`
}

// Correct reports whether every slot of the step was right.
func (r StepResult) Correct() bool { return r.Result.AllCorrect() }

// Session tracks play through one batch.
type Session struct {
	ID        string
	Batch     *rounds.Batch
	StartTime time.Time

	current   int
	stepStart time.Time
	score     int
	results   []StepResult
	endTime   time.Time

	events store.EventRepo
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithEvents records the finished round in repo.
func WithEvents(repo store.EventRepo) Option {
	return func(s *Session) { s.events = repo }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New starts a session over batch.
func New(batch *rounds.Batch, opts ...Option) (*Session, error) {
	if batch == nil || batch.Len() == 0 {
		return nil, ErrEmptyBatch
	}
	s := &Session{
		ID:     uuid.NewString(),
		Batch:  batch,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.StartTime = s.now()
	s.stepStart = s.StartTime
	return s, nil
}

// Current returns the question awaiting an answer, or nil when done.
func (s *Session) Current() *rounds.Question {
	if s.Done() {
		return nil
	}
	return &s.Batch.Questions[s.current]
}

// Step returns the zero-based index of the current step.
func (s *Session) Step() int { return s.current }

// Score returns the points earned so far.
func (s *Session) Score() int { return s.score }

// Results returns graded steps in order.
func (s *Session) Results() []StepResult { return s.results }

// Done reports whether every step has been answered or expired.
func (s *Session) Done() bool { return s.current >= s.Batch.Len() }

// Submit grades answers against the current step and advances.
func (s *Session) Submit(ctx context.Context, answers ...string) (StepResult, error) {
	return s.answer(ctx, false, answers)
}

// Expire closes the current step with whatever partial input exists and
// advances. Missing inputs count as wrong.
func (s *Session) Expire(ctx context.Context, partial ...string) (StepResult, error) {
	return s.answer(ctx, true, partial)
}

func (s *Session) answer(ctx context.Context, expired bool, inputs []string) (StepResult, error) {
	q := s.Current()
	if q == nil {
		return StepResult{}, ErrFinished
	}

	now := s.now()
	res := q.Grade(inputs...)
	r := StepResult{
		QuestionID: q.ID,
		Inputs:     inputs,
		Expected:   q.Expected(),
		Result:     res,
		Score:      grading.StepScore(q.Mode.Scoring(), res),
		MaxScore:   q.MaxScore(),
		Expired:    expired,
		Elapsed:    now.Sub(s.stepStart),
	}
	s.results = append(s.results, r)
	s.score += r.Score
	s.current++
	s.stepStart = now

	if s.Done() {
		s.endTime = now
		if err := s.record(ctx); err != nil {
			return r, err
		}
	}
	return r, nil
}

func (s *Session) record(ctx context.Context) error {
	sum := s.Summary()
	s.logger.Debug("round finished",
		"session_id", s.ID,
		"mode", sum.Mode,
		"score", sum.Score,
		"max_score", sum.MaxScore,
	)
	if s.events == nil {
		return nil
	}
	err := s.events.AppendRound(ctx, store.RoundEventData{
		SessionID:      s.ID,
		Mode:           string(sum.Mode),
		RequestedSteps: s.Batch.Requested,
		Steps:          sum.Steps,
		CorrectSteps:   sum.CorrectSteps,
		Score:          sum.Score,
		MaxScore:       sum.MaxScore,
		DurationMs:     sum.Duration.Milliseconds(),
		Expired:        sum.Expired,
	})
	if err != nil {
		return fmt.Errorf("recording round: %w", err)
	}
	return nil
}
