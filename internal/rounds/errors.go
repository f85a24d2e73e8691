package rounds

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks pools that are empty or too sparse for a mode.
	ErrConfiguration = errors.New("configuration error")
	// ErrGenerationExhausted marks a retry budget that ran out.
	ErrGenerationExhausted = errors.New("generation exhausted")
	// ErrDataIntegrity marks a selected verb missing from the collection.
	ErrDataIntegrity = errors.New("data integrity error")
)

// ConfigurationError explains why a request cannot be served as configured.
type ConfigurationError struct {
	Mode   Mode
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Mode, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// GenerationExhaustedError reports a step or batch that could not be built
// within the retry budget.
type GenerationExhaustedError struct {
	Mode   Mode
	Tries  int
	Reason string
}

func (e *GenerationExhaustedError) Error() string {
	if e.Tries > 0 {
		return fmt.Sprintf("%s: %s after %d tries", e.Mode, e.Reason, e.Tries)
	}
	return fmt.Sprintf("%s: %s", e.Mode, e.Reason)
}

func (e *GenerationExhaustedError) Unwrap() error { return ErrGenerationExhausted }

// DataIntegrityError names verbs referenced by a request or template that
// the collection does not hold.
type DataIntegrityError struct {
	Mode    Mode
	Missing []string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("%s: verbs not found: %s", e.Mode, strings.Join(e.Missing, ", "))
}

func (e *DataIntegrityError) Unwrap() error { return ErrDataIntegrity }
