package rounds

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/abhisek/verbiz/internal/conjugation"
	"github.com/abhisek/verbiz/internal/random"
	"github.com/abhisek/verbiz/internal/sentences"
	"github.com/abhisek/verbiz/internal/verbs"
)

// Generator builds a batch of questions for one mode.
type Generator interface {
	Mode() Mode

	// Generate returns a batch or a *ConfigurationError,
	// *GenerationExhaustedError or *DataIntegrityError.
	Generate(ctx context.Context, req Request) (*Batch, error)
}

// Deps are the read-only collaborators shared by every generator.
type Deps struct {
	Verbs     *verbs.Collection
	Sentences sentences.Provider
}

// Registry maps mode names to generators.
type Registry struct {
	gens map[Mode]Generator
}

// NewRegistry wires a generator for every mode. The sentence mode is only
// registered when deps.Sentences is set.
func NewRegistry(deps Deps, cfg Config) *Registry {
	b := newBase(deps, cfg)
	r := &Registry{gens: make(map[Mode]Generator)}
	for _, g := range []Generator{
		&findErrorGen{b},
		&matchingGen{b},
		&fillGridGen{b},
		&speedRaceGen{b},
		&randomGridGen{b},
		&participleGen{b},
	} {
		r.Register(g)
	}
	if deps.Sentences != nil {
		r.Register(&sentenceGen{b})
	}
	return r
}

// Register adds or replaces the generator for g.Mode().
func (r *Registry) Register(g Generator) {
	r.gens[g.Mode()] = g
}

// Get returns the generator for m.
func (r *Registry) Get(m Mode) (Generator, bool) {
	g, ok := r.gens[m]
	return g, ok
}

// Modes lists the registered modes in display order.
func (r *Registry) Modes() []Mode {
	var out []Mode
	for _, m := range allModes {
		if _, ok := r.gens[m]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Generate dispatches to the generator for m.
func (r *Registry) Generate(ctx context.Context, m Mode, req Request) (*Batch, error) {
	g, ok := r.Get(m)
	if !ok {
		return nil, &ConfigurationError{Mode: m, Reason: "mode not available"}
	}
	return g.Generate(ctx, req)
}

// base carries the shared state and sampling helpers.
type base struct {
	verbs     *verbs.Collection
	sentences sentences.Provider
	cfg       Config
}

func newBase(deps Deps, cfg Config) *base {
	if deps.Verbs == nil {
		deps.Verbs = verbs.NewCollection(nil)
	}
	return &base{verbs: deps.Verbs, sentences: deps.Sentences, cfg: cfg.withDefaults()}
}

func (b *base) src() random.Source { return b.cfg.Source }
func (b *base) log() *slog.Logger  { return b.cfg.Logger }
func (b *base) maxTries() int      { return b.cfg.MaxTries }

func (b *base) validate(q *Question) bool {
	if err := runValidators(b.cfg.Validators, q); err != nil {
		b.log().Debug("candidate rejected", "mode", q.Mode, "validator", err.Validator, "reason", err.Message)
		return false
	}
	return true
}

// pools validates the request and resolves the verb pool. minTenses is the
// number of distinct tenses the mode needs.
func (b *base) pools(m Mode, req Request, minTenses int) ([]*verbs.Verb, []conjugation.Tense, error) {
	if req.Steps <= 0 {
		return nil, nil, &ConfigurationError{Mode: m, Reason: "step count must be positive"}
	}
	if len(req.Verbs) == 0 {
		return nil, nil, &ConfigurationError{Mode: m, Reason: "verb pool is empty"}
	}
	tenses, err := distinctTenses(req.Tenses)
	if err != nil {
		return nil, nil, &ConfigurationError{Mode: m, Reason: err.Error()}
	}
	if len(tenses) < minTenses {
		return nil, nil, &ConfigurationError{
			Mode:   m,
			Reason: fmt.Sprintf("needs at least %d distinct tenses, got %d", minTenses, len(tenses)),
		}
	}
	vs, err := b.verbs.Resolve(req.Verbs)
	if err != nil {
		var nf *verbs.NotFoundError
		if errors.As(err, &nf) {
			return nil, nil, &DataIntegrityError{Mode: m, Missing: nf.Infinitives}
		}
		return nil, nil, err
	}
	return vs, tenses, nil
}

func distinctTenses(ts []conjugation.Tense) ([]conjugation.Tense, error) {
	var out []conjugation.Tense
	for _, t := range ts {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: %q", conjugation.ErrUnknownTense, t)
		}
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// pickPerson draws a uniform person.
func (b *base) pickPerson() conjugation.Person {
	return conjugation.Person(b.src().IntN(conjugation.NumPersons))
}

func (b *base) newQuestion(m Mode) Question {
	return Question{ID: uuid.NewString(), Mode: m}
}

// finish logs the outcome and rejects an empty batch.
func (b *base) finish(m Mode, req Request, qs []Question) (*Batch, error) {
	b.log().Debug("round generated", "mode", m, "requested", req.Steps, "produced", len(qs))
	if len(qs) == 0 {
		return nil, &GenerationExhaustedError{Mode: m, Reason: "no step could be generated"}
	}
	return &Batch{Mode: m, Requested: req.Steps, Questions: qs}, nil
}

func labelled(p conjugation.Person, form string) string {
	return p.Pronoun() + " " + form
}
