package rounds

import (
	"context"
	"fmt"

	"github.com/abhisek/verbiz/internal/conjugation"
	"github.com/abhisek/verbiz/internal/grading"
	"github.com/abhisek/verbiz/internal/random"
	"github.com/abhisek/verbiz/internal/verbs"
)

// findErrorGen asks the learner to spot the one form conjugated in the
// target tense among three forms from other tenses.
type findErrorGen struct{ *base }

func (g *findErrorGen) Mode() Mode { return FindError }

func (g *findErrorGen) Generate(ctx context.Context, req Request) (*Batch, error) {
	vs, tenses, err := g.pools(FindError, req, 2)
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
			g.log().Debug("step dropped", "mode", FindError, "step", i+1)
			continue
		}
		qs = append(qs, *q)
	}
	return g.finish(FindError, req, qs)
}

func (g *findErrorGen) step(vs []*verbs.Verb, tenses []conjugation.Tense) (*Question, error) {
	target, err := random.PickOne(g.src(), tenses)
	if err != nil {
		return nil, err
	}
	others := without(tenses, target)

	var (
		answer string
		verb   *verbs.Verb
		person conjugation.Person
	)
	for tries := 0; answer == "" && tries < g.maxTries(); tries++ {
		v, err := random.PickOne(g.src(), vs)
		if err != nil {
			return nil, err
		}
		p := g.pickPerson()
		if f := v.Form(target, p); f != "" {
			answer, verb, person = labelled(p, f), v, p
		}
	}
	if answer == "" {
		return nil, nil
	}

	seen := map[string]struct{}{grading.Normalize(answer): {}}
	var decoys []string
	for tries := 0; len(decoys) < 3 && tries < g.maxTries(); tries++ {
		v, err := random.PickOne(g.src(), vs)
		if err != nil {
			return nil, err
		}
		t, err := random.PickOne(g.src(), others)
		if err != nil {
			return nil, err
		}
		p := g.pickPerson()
		f := v.Form(t, p)
		// A decoy that is also valid in the target tense would give two
		// right answers.
		if f == "" || grading.Normalize(v.Form(target, p)) == grading.Normalize(f) {
			continue
		}
		w := labelled(p, f)
		key := grading.Normalize(w)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		decoys = append(decoys, w)
	}
	if len(decoys) < 3 {
		return nil, nil
	}

	q := g.newQuestion(FindError)
	q.Prompt = fmt.Sprintf("Which form is in the %s?", target.DisplayName())
	q.Verb = verb.Infinitive
	q.Tense = target
	q.Person = person
	q.Answer = answer
	q.Options = random.Shuffle(g.src(), append([]string{answer}, decoys...))
	if !g.validate(&q) {
		return nil, nil
	}
	return &q, nil
}

func without(ts []conjugation.Tense, drop conjugation.Tense) []conjugation.Tense {
	out := make([]conjugation.Tense, 0, len(ts))
	for _, t := range ts {
		if t != drop {
			out = append(out, t)
		}
	}
	return out
}
