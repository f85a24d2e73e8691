package rounds

import (
	"fmt"
	"strings"

	"github.com/abhisek/verbiz/internal/conjugation"
	"github.com/abhisek/verbiz/internal/grading"
)

// Mode identifies a game mode.
type Mode string

const (
	FindError  Mode = "find-error"
	Matching   Mode = "matching"
	FillGrid   Mode = "fill-grid"
	SpeedRace  Mode = "speed-race"
	RandomGrid Mode = "random-grid"
	Sentence   Mode = "sentence"
	Participle Mode = "participle"
)

var allModes = []Mode{FindError, Matching, FillGrid, SpeedRace, RandomGrid, Sentence, Participle}

// AllModes returns every mode in display order.
func AllModes() []Mode {
	out := make([]Mode, len(allModes))
	copy(out, allModes)
	return out
}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range allModes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Scoring returns how a step of this mode is scored.
func (m Mode) Scoring() grading.Scoring {
	switch m {
	case FillGrid:
		return grading.Percent
	case RandomGrid:
		return grading.PerSlot
	default:
		return grading.PerStep
	}
}

// ParticipleKind selects which participle the participle drill asks for.
type ParticipleKind string

const (
	PastParticiple    ParticipleKind = "past"
	PresentParticiple ParticipleKind = "present"
)

// Request is the learner's configuration for one batch.
type Request struct {
	// Verbs is the pool of infinitives to draw from.
	Verbs []string
	// Tenses is the pool of tenses to draw from.
	Tenses []conjugation.Tense
	// Steps is the number of questions requested.
	Steps int
	// Participle fixes the participle kind for the participle drill.
	// Empty picks one at random per step.
	Participle ParticipleKind
}

// Slot is one graded blank within a multi-answer question.
type Slot struct {
	Label  string             `json:"label"`
	Verb   string             `json:"verb"`
	Tense  conjugation.Tense  `json:"tense"`
	Person conjugation.Person `json:"person"`
	Answer string             `json:"answer"`
}

// Question is a fully resolved step. It carries everything needed to
// display and grade it without touching the random source again.
type Question struct {
	ID     string             `json:"id"`
	Mode   Mode               `json:"mode"`
	Prompt string             `json:"prompt"`
	Verb   string             `json:"verb,omitempty"`
	Tense  conjugation.Tense  `json:"tense,omitempty"`
	Person conjugation.Person `json:"person"`

	// Options holds the presented choices for choice and matching modes.
	Options []string `json:"options,omitempty"`

	// Answer is the expected answer for single-answer modes.
	Answer string `json:"answer,omitempty"`

	// Slots holds the expected answers for multi-answer modes, in the
	// order inputs are given.
	Slots []Slot `json:"slots,omitempty"`

	SentenceID string         `json:"sentence_id,omitempty"`
	Participle ParticipleKind `json:"participle,omitempty"`
}

// Expected returns the expected answers in input order.
func (q *Question) Expected() []string {
	if len(q.Slots) == 0 {
		return []string{q.Answer}
	}
	out := make([]string, len(q.Slots))
	for i, s := range q.Slots {
		out[i] = s.Answer
	}
	return out
}

// Grade checks inputs against the question. Choice modes accept the option
// text or its 1-based index.
func (q *Question) Grade(inputs ...string) grading.SlotResult {
	expected := q.Expected()
	if len(q.Options) == 0 {
		return grading.GradeSlots(inputs, expected)
	}
	res := grading.SlotResult{Correct: make([]bool, len(expected)), Total: len(expected)}
	for i, want := range expected {
		if i < len(inputs) && grading.MatchChoice(inputs[i], q.Options, want) {
			res.Correct[i] = true
			res.Count++
		}
	}
	return res
}

// MaxScore is the best score achievable on this question.
func (q *Question) MaxScore() int {
	return grading.MaxStepScore(q.Mode.Scoring(), len(q.Expected()))
}

// Batch is the ordered output of one generation call.
type Batch struct {
	Mode      Mode       `json:"mode"`
	Requested int        `json:"requested"`
	Questions []Question `json:"questions"`
}

// Len returns the number of questions actually produced.
func (b *Batch) Len() int { return len(b.Questions) }

// MaxScore sums the best achievable score over the batch.
func (b *Batch) MaxScore() int {
	total := 0
	for i := range b.Questions {
		total += b.Questions[i].MaxScore()
	}
	return total
}
