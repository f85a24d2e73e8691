package rounds

import (
	"context"
	"fmt"

	"github.com/abhisek/verbiz/internal/conjugation"
	"github.com/abhisek/verbiz/internal/grading"
	"github.com/abhisek/verbiz/internal/random"
	"github.com/abhisek/verbiz/internal/verbs"
)

// matchingPairs is the number of (tense, form) pairs per step.
const matchingPairs = 3

// matchingGen pairs tense labels with forms presented in shuffled order.
type matchingGen struct{ *base }

func (g *matchingGen) Mode() Mode { return Matching }

func (g *matchingGen) Generate(ctx context.Context, req Request) (*Batch, error) {
	vs, tenses, err := g.pools(Matching, req, matchingPairs)
	if err != nil {
		return nil, err
	}
	qs := make([]Question, 0, req.Steps)
	for i := 0; i < req.Steps; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		q, err := g.step(vs, tenses)
		if err != nil {
			return nil, err
		}
		if q == nil {
			// One unbuildable step invalidates the whole round.
			return nil, &GenerationExhaustedError{
				Mode:   Matching,
				Tries:  g.maxTries(),
				Reason: fmt.Sprintf("step %d: no %d distinct forms found", i+1, matchingPairs),
			}
		}
		qs = append(qs, *q)
	}
	return g.finish(Matching, req, qs)
}

func (g *matchingGen) step(vs []*verbs.Verb, tenses []conjugation.Tense) (*Question, error) {
attempts:
	for tries := 0; tries < g.maxTries(); tries++ {
		chosen := random.PickN(g.src(), tenses, matchingPairs)
		slots := make([]Slot, 0, len(chosen))
		picked := make([]*verbs.Verb, 0, len(chosen))
		seen := make(map[string]struct{}, len(chosen))
		for _, t := range chosen {
			v, err := random.PickOne(g.src(), vs)
			if err != nil {
				return nil, err
			}
			p := g.pickPerson()
			f := v.Form(t, p)
			if f == "" {
				continue attempts
			}
			w := labelled(p, f)
			key := grading.Normalize(w)
			if _, dup := seen[key]; dup {
				continue attempts
			}
			seen[key] = struct{}{}
			slots = append(slots, Slot{Label: t.DisplayName(), Verb: v.Infinitive, Tense: t, Person: p, Answer: w})
			picked = append(picked, v)
		}
		if ambiguousSlots(slots, picked) {
			continue attempts
		}

		forms := make([]string, len(slots))
		for i, s := range slots {
			forms[i] = s.Answer
		}
		q := g.newQuestion(Matching)
		q.Prompt = "Match each tense with its form."
		q.Slots = slots
		q.Options = random.Shuffle(g.src(), forms)
		if g.validate(&q) {
			return &q, nil
		}
	}
	return nil, nil
}

// ambiguousSlots reports whether a slot's form is also what its verb and
// person give under another label of the same question.
func ambiguousSlots(slots []Slot, vs []*verbs.Verb) bool {
	for i, s := range slots {
		want := grading.Normalize(s.Answer)
		for _, o := range slots {
			if o.Tense == s.Tense {
				continue
			}
			f := vs[i].Form(o.Tense, s.Person)
			if f != "" && grading.Normalize(labelled(s.Person, f)) == want {
				return true
			}
		}
	}
	return false
}
