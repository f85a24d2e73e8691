// Package grading compares learner input against expected conjugated forms
// and turns results into points.
package grading

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize trims surrounding whitespace, lower-cases and composes s into
// NFC so "été" typed with combining accents matches the stored form.
func Normalize(s string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(s)))
}

// IsCorrect reports whether input matches expected after normalization.
// An empty expected form never matches, so a missing conjugation cannot be
// answered correctly by leaving the field blank.
func IsCorrect(input, expected string) bool {
	want := Normalize(expected)
	if want == "" {
		return false
	}
	return Normalize(input) == want
}

// MatchChoice grades a multiple-choice answer. input may be the option text
// or its 1-based index.
func MatchChoice(input string, options []string, answer string) bool {
	input = strings.TrimSpace(input)
	if idx, err := strconv.Atoi(input); err == nil && idx >= 1 && idx <= len(options) {
		return IsCorrect(options[idx-1], answer)
	}
	return IsCorrect(input, answer)
}

// SlotResult is the outcome of grading a multi-slot step.
type SlotResult struct {
	Correct []bool
	Count   int
	Total   int
}

// AllCorrect reports whether every slot was answered correctly.
func (r SlotResult) AllCorrect() bool {
	return r.Total > 0 && r.Count == r.Total
}

// GradeSlots grades inputs position by position against expected. Missing
// inputs count as wrong.
func GradeSlots(inputs, expected []string) SlotResult {
	res := SlotResult{Correct: make([]bool, len(expected)), Total: len(expected)}
	for i, want := range expected {
		var got string
		if i < len(inputs) {
			got = inputs[i]
		}
		if IsCorrect(got, want) {
			res.Correct[i] = true
			res.Count++
		}
	}
	return res
}

// Scoring selects how a step's result is converted to points.
type Scoring int

const (
	// PerStep awards 100 when the whole step is correct.
	PerStep Scoring = iota
	// Percent awards floor(correct/total*100).
	Percent
	// PerSlot awards 100 for every correct slot.
	PerSlot
)

// StepScore converts a graded step into points.
func StepScore(s Scoring, r SlotResult) int {
	switch s {
	case Percent:
		if r.Total == 0 {
			return 0
		}
		return r.Count * 100 / r.Total
	case PerSlot:
		return r.Count * 100
	default:
		if r.AllCorrect() {
			return 100
		}
		return 0
	}
}

// MaxStepScore is the best achievable score for one step.
func MaxStepScore(s Scoring, slots int) int {
	if s == PerSlot {
		return slots * 100
	}
	return 100
}
