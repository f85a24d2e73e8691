package rounds

import (
	"context"
	"fmt"

	"github.com/abhisek/verbiz/internal/random"
	"github.com/abhisek/verbiz/internal/verbs"
)

var participleKinds = []ParticipleKind{PastParticiple, PresentParticiple}

// participleGen drills past and present participles.
type participleGen struct{ *base }

func (g *participleGen) Mode() Mode { return Participle }

func (g *participleGen) Generate(ctx context.Context, req Request) (*Batch, error) {
	switch req.Participle {
	case "", PastParticiple, PresentParticiple:
	default:
		return nil, &ConfigurationError{Mode: Participle, Reason: fmt.Sprintf("unknown participle kind %q", req.Participle)}
	}
	vs, _, err := g.pools(Participle, req, 0)
	if err != nil {
		return nil, err
	}
	qs := make([]Question, 0, req.Steps)
	for i := 0; i < req.Steps; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := random.PickOne(g.src(), vs)
		if err != nil {
			return nil, err
		}
		kind := req.Participle
		if kind == "" {
			if kind, err = random.PickOne(g.src(), participleKinds); err != nil {
				return nil, err
			}
		}
		answer := participleOf(v, kind)
		if answer == "" {
			return nil, &GenerationExhaustedError{
				Mode:   Participle,
				Reason: fmt.Sprintf("verb %q has no %s participle", v.Infinitive, kind),
			}
		}
		q := g.newQuestion(Participle)
		q.Prompt = fmt.Sprintf("Give the %s participle of %s.", kind, v.Infinitive)
		q.Verb = v.Infinitive
		q.Participle = kind
		q.Answer = answer
		if !g.validate(&q) {
			return nil, &GenerationExhaustedError{Mode: Participle, Reason: fmt.Sprintf("verb %q failed validation", v.Infinitive)}
		}
		qs = append(qs, q)
	}
	return g.finish(Participle, req, qs)
}

func participleOf(v *verbs.Verb, kind ParticipleKind) string {
	if kind == PresentParticiple {
		return v.PresentParticiple
	}
	return v.PastParticiple
}
