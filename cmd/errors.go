package cmd

import (
	"errors"
	"fmt"

	"github.com/abhisek/verbiz/internal/app"
	"github.com/abhisek/verbiz/internal/conjugation"
	"github.com/abhisek/verbiz/internal/random"
	"github.com/abhisek/verbiz/internal/rounds"
	"github.com/abhisek/verbiz/internal/ui/theme"
)

// explain turns engine errors into messages that say what to change.
func explain(err error) string {
	var (
		cfgErr   *rounds.ConfigurationError
		exhErr   *rounds.GenerationExhaustedError
		dataErr  *rounds.DataIntegrityError
		headline = "error"
		advice   string
	)
	switch {
	case errors.As(err, &cfgErr):
		headline = "cannot build this round"
		advice = "adjust --verbs, --tenses or --steps for this mode"
	case errors.As(err, &exhErr):
		headline = "could not generate enough questions"
		advice = "add verbs or tenses with more distinct forms, or raise game.max_tries"
	case errors.As(err, &dataErr):
		headline = "verbs missing from the store"
		advice = "import them with `verbiz verbs import <file>`"
	case errors.Is(err, random.ErrEmptyPool):
		headline = "nothing to pick from"
		advice = "pass at least one verb and tense"
	case errors.Is(err, conjugation.ErrUnknownTense):
		advice = "see `verbiz conjugate --help` for tense names"
	case errors.Is(err, app.ErrNoProvider):
		headline = "LLM features unavailable"
	}

	msg := theme.Incorrect.Render(headline+":") + " " + err.Error()
	if advice != "" {
		msg += "\n" + theme.Hint.Render(fmt.Sprintf("hint: %s", advice))
	}
	return msg
}
