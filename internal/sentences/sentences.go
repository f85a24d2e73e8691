// Package sentences holds fill-in-the-blank sentence templates and the
// helpers that turn them into sentence-challenge questions.
package sentences

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/verbiz/internal/conjugation"
)

// DefaultLimit is the number of templates fetched when no limit is given.
const DefaultLimit = 50

//go:embed data/seed.json
var seedJSON []byte

var placeholder = regexp.MustCompile(`\(([^)]+)\)`)

// Slot is one conjugatable verb inside a template.
type Slot struct {
	Infinitive string `json:"infinitive"`
	Position   int    `json:"position"`
	Subject    string `json:"subject"`
}

// Template is a sentence with parenthesised infinitive placeholders,
// e.g. "Le guépard (courir) dans la savane.".
type Template struct {
	ID     string              `json:"id,omitempty"`
	Text   string              `json:"text"`
	Verbs  []Slot              `json:"verbs"`
	Tenses []conjugation.Tense `json:"tenses"`
}

// Supports reports whether the template shares at least one tense with ts.
func (t Template) Supports(ts []conjugation.Tense) bool {
	if len(ts) == 0 {
		return true
	}
	for _, tense := range t.Tenses {
		if slices.Contains(ts, tense) {
			return true
		}
	}
	return false
}

// Provider returns templates supporting any of the given tenses.
type Provider interface {
	// ByTenses returns up to limit templates whose tense list overlaps
	// tenses. A non-positive limit means DefaultLimit.
	ByTenses(ctx context.Context, tenses []conjugation.Tense, limit int) ([]Template, error)
}

// InferPerson guesses the grammatical person of a subject phrase by keyword.
// The checks run in a fixed order and the first hit wins: tu, then
// il/elle/on and singular determiners, then nous, then vous, then
// ils/elles and "les". Anything else is treated as je.
func InferPerson(subject string) conjugation.Person {
	s := strings.ToLower(subject)
	switch {
	case strings.Contains(s, "tu ") || strings.HasPrefix(s, "tu"):
		return conjugation.Tu
	case strings.Contains(s, "il ") || strings.Contains(s, "elle ") || strings.Contains(s, "on ") ||
		hasAnyPrefix(s, "le ", "la ", "l'", "cet ", "cette "):
		return conjugation.IlElle
	case strings.Contains(s, "nous ") || strings.HasPrefix(s, "nous"):
		return conjugation.Nous
	case strings.Contains(s, "vous ") || strings.HasPrefix(s, "vous"):
		return conjugation.Vous
	case strings.Contains(s, "ils ") || strings.Contains(s, "elles ") || strings.HasPrefix(s, "les "):
		return conjugation.IlsElles
	default:
		return conjugation.Je
	}
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// Blank replaces the first placeholder with the infinitive in parentheses
// followed by a gap.
func Blank(text, verb string) string {
	return replaceFirst(text, fmt.Sprintf("(%s) ______", verb))
}

// Reveal replaces the first placeholder with the infinitive and the answer.
func Reveal(text, verb, answer string) string {
	return replaceFirst(text, fmt.Sprintf("(%s) → %s", verb, answer))
}

// Placeholders returns the contents of every placeholder in text.
func Placeholders(text string) []string {
	var out []string
	for _, m := range placeholder.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out
}

func replaceFirst(text, repl string) string {
	loc := placeholder.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[:loc[0]] + repl + text[loc[1]:]
}

// Static serves templates from memory. It backs tests and runs without a
// database.
type Static struct {
	templates []Template
}

// NewStatic returns a provider over ts in order.
func NewStatic(ts []Template) *Static {
	return &Static{templates: ts}
}

// ByTenses implements Provider.
func (s *Static) ByTenses(ctx context.Context, tenses []conjugation.Tense, limit int) ([]Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	var out []Template
	for _, t := range s.templates {
		if len(out) == limit {
			break
		}
		if t.Supports(tenses) {
			out = append(out, t)
		}
	}
	return out, nil
}

// LoadJSON decodes an array of templates, assigning IDs where missing.
func LoadJSON(r io.Reader) ([]Template, error) {
	var ts []Template
	if err := json.NewDecoder(r).Decode(&ts); err != nil {
		return nil, fmt.Errorf("decoding sentences: %w", err)
	}
	for i := range ts {
		if err := ts[i].Validate(); err != nil {
			return nil, fmt.Errorf("sentence %d: %w", i, err)
		}
		if ts[i].ID == "" {
			ts[i].ID = uuid.NewString()
		}
	}
	return ts, nil
}

// Builtin returns the bundled starter templates.
func Builtin() ([]Template, error) {
	return LoadJSON(bytes.NewReader(seedJSON))
}

// Validate checks that the template is internally consistent: every slot
// has a matching placeholder and every tense is known.
func (t Template) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return fmt.Errorf("empty text")
	}
	if len(t.Verbs) == 0 {
		return fmt.Errorf("no verbs")
	}
	if len(t.Tenses) == 0 {
		return fmt.Errorf("no tenses")
	}
	holes := Placeholders(t.Text)
	for _, v := range t.Verbs {
		if v.Position < 0 || v.Position >= len(holes) {
			return fmt.Errorf("verb %q: position %d has no placeholder", v.Infinitive, v.Position)
		}
		if strings.TrimSpace(holes[v.Position]) != strings.TrimSpace(v.Infinitive) {
			return fmt.Errorf("verb %q: placeholder %d holds %q", v.Infinitive, v.Position, holes[v.Position])
		}
		if strings.TrimSpace(v.Subject) == "" {
			return fmt.Errorf("verb %q: empty subject", v.Infinitive)
		}
	}
	for _, tense := range t.Tenses {
		if !tense.Valid() {
			return fmt.Errorf("%w: %q", conjugation.ErrUnknownTense, tense)
		}
	}
	return nil
}
