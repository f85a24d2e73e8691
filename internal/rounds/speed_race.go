package rounds

import (
	"context"

	"github.com/abhisek/verbiz/internal/conjugation"
	"github.com/abhisek/verbiz/internal/grading"
	"github.com/abhisek/verbiz/internal/random"
	"github.com/abhisek/verbiz/internal/verbs"
)

// speedRaceGen shows a conjugated form and asks which tense it is in.
type speedRaceGen struct{ *base }

func (g *speedRaceGen) Mode() Mode { return SpeedRace }

func (g *speedRaceGen) Generate(ctx context.Context, req Request) (*Batch, error) {
	vs, tenses, err := g.pools(SpeedRace, req, 3)
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
			g.log().Debug("step dropped", "mode", SpeedRace, "step", i+1)
			continue
		}
		qs = append(qs, *q)
	}
	return g.finish(SpeedRace, req, qs)
}

func (g *speedRaceGen) step(vs []*verbs.Verb, tenses []conjugation.Tense) (*Question, error) {
	v, err := random.PickOne(g.src(), vs)
	if err != nil {
		return nil, err
	}
	for tries := 0; tries < g.maxTries(); tries++ {
		t, err := random.PickOne(g.src(), tenses)
		if err != nil {
			return nil, err
		}
		p := g.pickPerson()
		f := v.Form(t, p)
		if f == "" {
			continue
		}
		// Wrong tenses must not share the shown form, or two options
		// would be right.
		var wrong []conjugation.Tense
		for _, o := range without(tenses, t) {
			if grading.Normalize(v.Form(o, p)) != grading.Normalize(f) {
				wrong = append(wrong, o)
			}
		}
		wrong = random.PickN(g.src(), wrong, 2)
		if len(wrong) < 2 {
			continue
		}
		opts := []string{string(t), string(wrong[0]), string(wrong[1])}

		q := g.newQuestion(SpeedRace)
		q.Prompt = labelled(p, f)
		q.Verb = v.Infinitive
		q.Tense = t
		q.Person = p
		q.Answer = string(t)
		q.Options = random.Shuffle(g.src(), opts)
		if g.validate(&q) {
			return &q, nil
		}
	}
	return nil, nil
}
