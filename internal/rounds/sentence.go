package rounds

import (
	"context"
	"fmt"
	"slices"

	"github.com/abhisek/verbiz/internal/conjugation"
	"github.com/abhisek/verbiz/internal/random"
	"github.com/abhisek/verbiz/internal/sentences"
)

// maxSentenceFetch caps how many templates one batch pulls from the provider.
const maxSentenceFetch = 100

// sentenceGen fills the verb blank of a stored sentence template.
type sentenceGen struct{ *base }

func (g *sentenceGen) Mode() Mode { return Sentence }

func (g *sentenceGen) Generate(ctx context.Context, req Request) (*Batch, error) {
	if req.Steps <= 0 {
		return nil, &ConfigurationError{Mode: Sentence, Reason: "step count must be positive"}
	}
	tenses, err := distinctTenses(req.Tenses)
	if err != nil {
		return nil, &ConfigurationError{Mode: Sentence, Reason: err.Error()}
	}
	if len(tenses) == 0 {
		return nil, &ConfigurationError{Mode: Sentence, Reason: "tense pool is empty"}
	}
	if g.sentences == nil {
		return nil, &ConfigurationError{Mode: Sentence, Reason: "no sentence source configured"}
	}

	ts, err := g.sentences.ByTenses(ctx, tenses, min(req.Steps*2, maxSentenceFetch))
	if err != nil {
		return nil, fmt.Errorf("fetching sentences: %w", err)
	}
	if len(ts) == 0 {
		return nil, &ConfigurationError{Mode: Sentence, Reason: "no sentences match the selected tenses"}
	}

	used := make(map[int]bool, len(ts))
	var qs []Question
	for i := 0; i < req.Steps; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		q, err := g.step(ts, tenses, used)
		if err != nil {
			return nil, err
		}
		if q == nil {
			g.log().Debug("step dropped", "mode", Sentence, "step", i+1)
			continue
		}
		qs = append(qs, *q)
	}
	return g.finish(Sentence, req, qs)
}

// pickTemplate prefers templates not yet used in this batch and falls back
// to any template once the unused ones run out.
func (g *sentenceGen) pickTemplate(ts []sentences.Template, used map[int]bool) int {
	for attempts := 0; attempts < len(ts)*2; attempts++ {
		i := g.src().IntN(len(ts))
		if !used[i] {
			used[i] = true
			return i
		}
	}
	return g.src().IntN(len(ts))
}

func (g *sentenceGen) step(ts []sentences.Template, tenses []conjugation.Tense, used map[int]bool) (*Question, error) {
	for tries := 0; tries < g.maxTries(); tries++ {
		tpl := ts[g.pickTemplate(ts, used)]
		if len(tpl.Verbs) == 0 {
			continue
		}
		slot := tpl.Verbs[0]

		var allowed []conjugation.Tense
		for _, t := range tpl.Tenses {
			if slices.Contains(tenses, t) {
				allowed = append(allowed, t)
			}
		}
		t, err := random.PickOne(g.src(), allowed)
		if err != nil {
			continue
		}

		v, ok := g.verbs.FindByInfinitive(slot.Infinitive)
		if !ok {
			return nil, &DataIntegrityError{Mode: Sentence, Missing: []string{slot.Infinitive}}
		}
		p := sentences.InferPerson(slot.Subject)
		f := v.Form(t, p)
		if f == "" {
			continue
		}

		q := g.newQuestion(Sentence)
		q.Prompt = sentences.Blank(tpl.Text, slot.Infinitive)
		q.Verb = v.Infinitive
		q.Tense = t
		q.Person = p
		q.Answer = f
		q.SentenceID = tpl.ID
		if g.validate(&q) {
			return &q, nil
		}
	}
	return nil, nil
}
