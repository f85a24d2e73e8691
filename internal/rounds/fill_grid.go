package rounds

import (
	"context"
	"fmt"

	"github.com/abhisek/verbiz/internal/conjugation"
	"github.com/abhisek/verbiz/internal/random"
	"github.com/abhisek/verbiz/internal/verbs"
)

// fillGridGen asks for every person of one verb in one tense.
type fillGridGen struct{ *base }

func (g *fillGridGen) Mode() Mode { return FillGrid }

func (g *fillGridGen) Generate(ctx context.Context, req Request) (*Batch, error) {
	vs, tenses, err := g.pools(FillGrid, req, 1)
	if err != nil {
		return nil, err
	}
	var qs []Question
	for i := 0; i < req.Steps; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		q, err := g.step(vs, tenses)
		if err != nil {
			return nil, err
		}
		if q == nil {
			g.log().Debug("step dropped", "mode", FillGrid, "step", i+1)
			continue
		}
		qs = append(qs, *q)
	}
	return g.finish(FillGrid, req, qs)
}

func (g *fillGridGen) step(vs []*verbs.Verb, tenses []conjugation.Tense) (*Question, error) {
	for tries := 0; tries < g.maxTries(); tries++ {
		v, err := random.PickOne(g.src(), vs)
		if err != nil {
			return nil, err
		}
		t, err := random.PickOne(g.src(), tenses)
		if err != nil {
			return nil, err
		}
		var slots []Slot
		for _, p := range conjugation.AllPersons() {
			// Defective persons (e.g. imperative je) are left out.
			if f := v.Form(t, p); f != "" {
				slots = append(slots, Slot{Label: p.Pronoun(), Verb: v.Infinitive, Tense: t, Person: p, Answer: f})
			}
		}
		if len(slots) == 0 {
			continue
		}
		q := g.newQuestion(FillGrid)
		q.Prompt = fmt.Sprintf("Conjugate %s in the %s.", v.Infinitive, t.DisplayName())
		q.Verb = v.Infinitive
		q.Tense = t
		q.Slots = slots
		if g.validate(&q) {
			return &q, nil
		}
	}
	return nil, nil
}
