package rounds

import (
	"context"
	"fmt"

	"github.com/abhisek/verbiz/internal/conjugation"
	"github.com/abhisek/verbiz/internal/random"
	"github.com/abhisek/verbiz/internal/verbs"
)

// randomGridSlots is the number of independent triples per step.
const randomGridSlots = 6

// randomGridGen asks for six unrelated (verb, tense, person) forms.
type randomGridGen struct{ *base }

func (g *randomGridGen) Mode() Mode { return RandomGrid }

func (g *randomGridGen) Generate(ctx context.Context, req Request) (*Batch, error) {
	vs, tenses, err := g.pools(RandomGrid, req, 1)
	if err != nil {
		return nil, err
	}
	qs := make([]Question, 0, req.Steps)
	for i := 0; i < req.Steps; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		q := g.newQuestion(RandomGrid)
		q.Prompt = "Conjugate each verb."
		for j := 0; j < randomGridSlots; j++ {
			s, err := g.triple(vs, tenses)
			if err != nil {
				return nil, err
			}
			if s == nil {
				return nil, &GenerationExhaustedError{
					Mode:   RandomGrid,
					Tries:  g.maxTries(),
					Reason: fmt.Sprintf("step %d slot %d: no conjugated form found", i+1, j+1),
				}
			}
			q.Slots = append(q.Slots, *s)
		}
		if !g.validate(&q) {
			return nil, &GenerationExhaustedError{Mode: RandomGrid, Reason: fmt.Sprintf("step %d failed validation", i+1)}
		}
		qs = append(qs, q)
	}
	return g.finish(RandomGrid, req, qs)
}

func (g *randomGridGen) triple(vs []*verbs.Verb, tenses []conjugation.Tense) (*Slot, error) {
	for tries := 0; tries < g.maxTries(); tries++ {
		v, err := random.PickOne(g.src(), vs)
		if err != nil {
			return nil, err
		}
		t, err := random.PickOne(g.src(), tenses)
		if err != nil {
			return nil, err
		}
		p := g.pickPerson()
		if f := v.Form(t, p); f != "" {
			return &Slot{
				Label:  fmt.Sprintf("%s · %s · %s", v.Infinitive, t.DisplayName(), p.Pronoun()),
				Verb:   v.Infinitive,
				Tense:  t,
				Person: p,
				Answer: f,
			}, nil
		}
	}
	return nil, nil
}
