package rounds

import (
	"fmt"

	"github.com/abhisek/verbiz/internal/grading"
)

// Validator checks a candidate question before it enters a batch.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in errors and logs.
	Name() string

	// Validate returns nil when q is acceptable.
	Validate(q *Question) *ValidationError
}

// ValidationError describes why a candidate was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator rejects questions with empty expected answers or a
// choice answer that is not among the options.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	for i, want := range q.Expected() {
		if grading.Normalize(want) == "" {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("expected answer %d is empty", i)}
		}
	}
	if len(q.Options) == 0 {
		return nil
	}
	for _, want := range q.Expected() {
		found := 0
		for _, opt := range q.Options {
			if grading.Normalize(opt) == grading.Normalize(want) {
				found++
			}
		}
		if found != 1 {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("answer %q appears %d times among options", want, found)}
		}
	}
	return nil
}

// DistinctOptionsValidator rejects questions presenting two options that
// normalize to the same text.
type DistinctOptionsValidator struct{}

func (v *DistinctOptionsValidator) Name() string { return "distinct-options" }

func (v *DistinctOptionsValidator) Validate(q *Question) *ValidationError {
	seen := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		n := grading.Normalize(opt)
		if n == "" {
			return &ValidationError{Validator: v.Name(), Message: "empty option"}
		}
		if _, dup := seen[n]; dup {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("duplicate option %q", opt)}
		}
		seen[n] = struct{}{}
	}
	return nil
}

func runValidators(vs []Validator, q *Question) *ValidationError {
	for _, v := range vs {
		if err := v.Validate(q); err != nil {
			return err
		}
	}
	return nil
}
