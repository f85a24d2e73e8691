package rounds

import (
	"log/slog"

	"github.com/abhisek/verbiz/internal/random"
)

// DefaultMaxTries bounds every sampling loop.
const DefaultMaxTries = 10

// Config controls generation.
type Config struct {
	// MaxTries bounds each retry loop. Non-positive means DefaultMaxTries.
	MaxTries int

	// Source drives every random choice. Nil means a time-seeded source.
	Source random.Source

	// Validators run on every candidate question in order. A failure
	// consumes one try. Nil means the default chain.
	Validators []Validator

	Logger *slog.Logger
}

// DefaultConfig returns the standard validator chain and retry budget.
func DefaultConfig() Config {
	return Config{
		MaxTries: DefaultMaxTries,
		Validators: []Validator{
			&StructuralValidator{},
			&DistinctOptionsValidator{},
		},
	}
}

func (c Config) withDefaults() Config {
	if c.MaxTries <= 0 {
		c.MaxTries = DefaultMaxTries
	}
	if c.Source == nil {
		c.Source = random.NewTime()
	}
	if c.Validators == nil {
		c.Validators = DefaultConfig().Validators
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
