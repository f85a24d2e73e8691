package rounds

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/abhisek/verbiz/internal/conjugation"
	"github.com/abhisek/verbiz/internal/grading"
	"github.com/abhisek/verbiz/internal/random"
	"github.com/abhisek/verbiz/internal/sentences"
	"github.com/abhisek/verbiz/internal/verbs"
)

var (
	allBuiltin = []string{"avoir", "être", "aller", "parler", "finir", "faire"}
	threeTense = []conjugation.Tense{conjugation.Present, conjugation.Imparfait, conjugation.FuturSimple}
)

func builtin(t *testing.T) *verbs.Collection {
	t.Helper()
	c, err := verbs.Builtin()
	if err != nil {
		t.Fatalf("loading builtin verbs: %v", err)
	}
	return c
}

func newRegistry(t *testing.T, c *verbs.Collection, seed uint64) *Registry {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Source = random.New(seed)
	return NewRegistry(Deps{Verbs: c}, cfg)
}

// presentOnly returns a verb with present forms and nothing else.
func presentOnly(inf string) *verbs.Verb {
	tbl := conjugation.NewTable()
	for _, p := range conjugation.AllPersons() {
		tbl.Set(conjugation.Present, p, inf+"-"+p.Pronoun())
	}
	return &verbs.Verb{Infinitive: inf, Conjugations: tbl}
}

func assertDistinct(t *testing.T, opts []string) {
	t.Helper()
	seen := make(map[string]bool)
	for _, o := range opts {
		n := grading.Normalize(o)
		if seen[n] {
			t.Errorf("duplicate option %q in %v", o, opts)
		}
		seen[n] = true
	}
}

func TestAccessor_AvoirPresent(t *testing.T) {
	c := builtin(t)
	v, ok := c.FindByInfinitive("avoir")
	if !ok {
		t.Fatal("avoir missing")
	}
	if got := v.Form(conjugation.Present, 0); got != "ai" {
		t.Errorf("person 0 = %q, want ai", got)
	}
	if got := v.Form(conjugation.Present, 5); got != "ont" {
		t.Errorf("person 5 = %q, want ont", got)
	}
}

func TestFindError_OptionsDistinctWithOneAnswer(t *testing.T) {
	c := builtin(t)
	r := newRegistry(t, c, 1)

	b, err := r.Generate(context.Background(), FindError, Request{Verbs: allBuiltin, Tenses: threeTense, Steps: 20})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if b.Len() == 0 || b.Len() > 20 {
		t.Fatalf("unexpected batch size %d", b.Len())
	}
	for _, q := range b.Questions {
		if len(q.Options) != 4 {
			t.Fatalf("expected 4 options, got %v", q.Options)
		}
		assertDistinct(t, q.Options)

		matches := 0
		for _, o := range q.Options {
			if grading.IsCorrect(o, q.Answer) {
				matches++
			}
		}
		if matches != 1 {
			t.Errorf("answer %q matches %d options in %v", q.Answer, matches, q.Options)
		}

		v, _ := c.FindByInfinitive(q.Verb)
		if want := labelled(q.Person, v.Form(q.Tense, q.Person)); q.Answer != want {
			t.Errorf("answer %q is not the %s form %q", q.Answer, q.Tense, want)
		}
		if q.ID == "" {
			t.Error("question has no ID")
		}
	}
}

func TestFindError_SingleVerbSingleTense(t *testing.T) {
	r := newRegistry(t, builtin(t), 1)
	_, err := r.Generate(context.Background(), FindError, Request{
		Verbs:  []string{"avoir"},
		Tenses: []conjugation.Tense{conjugation.Present},
		Steps:  5,
	})
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	var ce *ConfigurationError
	if !errors.As(err, &ce) || ce.Mode != FindError {
		t.Errorf("expected *ConfigurationError for find-error, got %#v", err)
	}
}

func TestFindError_ExhaustedWhenNoDecoys(t *testing.T) {
	c := verbs.NewCollection([]*verbs.Verb{presentOnly("chanter")})
	r := newRegistry(t, c, 3)

	_, err := r.Generate(context.Background(), FindError, Request{
		Verbs:  []string{"chanter"},
		Tenses: []conjugation.Tense{conjugation.Present, conjugation.Imparfait},
		Steps:  3,
	})
	if !errors.Is(err, ErrGenerationExhausted) {
		t.Fatalf("expected ErrGenerationExhausted, got %v", err)
	}
}

func TestMatching_ThreeDistinctPairs(t *testing.T) {
	c := builtin(t)
	r := newRegistry(t, c, 7)

	b, err := r.Generate(context.Background(), Matching, Request{
		Verbs:  []string{"avoir", "être", "aller"},
		Tenses: threeTense,
		Steps:  5,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if b.Len() != 5 {
		t.Fatalf("expected 5 steps, got %d", b.Len())
	}
	for _, q := range b.Questions {
		if len(q.Slots) != 3 {
			t.Fatalf("expected 3 pairs, got %d", len(q.Slots))
		}
		tenses := make(map[conjugation.Tense]bool)
		var forms []string
		for _, s := range q.Slots {
			if tenses[s.Tense] {
				t.Errorf("tense %s used twice", s.Tense)
			}
			tenses[s.Tense] = true
			v, _ := c.FindByInfinitive(s.Verb)
			if want := labelled(s.Person, v.Form(s.Tense, s.Person)); s.Answer != want {
				t.Errorf("slot answer %q, want %q", s.Answer, want)
			}
			forms = append(forms, s.Answer)
		}
		assertDistinct(t, forms)

		opts := slices.Clone(q.Options)
		slices.Sort(opts)
		slices.Sort(forms)
		if !slices.Equal(opts, forms) {
			t.Errorf("options %v are not the pair forms %v", q.Options, forms)
		}
	}
}

func TestMatching_SharedFormsNotPaired(t *testing.T) {
	// Present and passé simple of finir coincide in the singular; give
	// every person the same form so any question holding both is ambiguous.
	tbl := conjugation.NewTable()
	for _, p := range conjugation.AllPersons() {
		tbl.Set(conjugation.Present, p, "finis-"+p.Pronoun())
		tbl.Set(conjugation.PasseSimple, p, "finis-"+p.Pronoun())
		tbl.Set(conjugation.Imparfait, p, "finissais-"+p.Pronoun())
		tbl.Set(conjugation.FuturSimple, p, "finirai-"+p.Pronoun())
		tbl.Set(conjugation.ConditionnelPresent, p, "finirais-"+p.Pronoun())
	}
	v := &verbs.Verb{Infinitive: "finir", Conjugations: tbl}
	r := newRegistry(t, verbs.NewCollection([]*verbs.Verb{v}), 7)

	b, err := r.Generate(context.Background(), Matching, Request{
		Verbs: []string{"finir"},
		Tenses: []conjugation.Tense{
			conjugation.Present, conjugation.PasseSimple, conjugation.Imparfait,
			conjugation.FuturSimple, conjugation.ConditionnelPresent,
		},
		Steps: 20,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, q := range b.Questions {
		for _, s := range q.Slots {
			for _, o := range q.Slots {
				if o.Tense == s.Tense {
					continue
				}
				if labelled(s.Person, v.Form(o.Tense, s.Person)) == s.Answer {
					t.Errorf("slot %s answer %q also valid for %s", s.Tense, s.Answer, o.Tense)
				}
			}
		}
	}
}

func TestMatching_AlwaysAmbiguousExhausts(t *testing.T) {
	tbl := conjugation.NewTable()
	for _, p := range conjugation.AllPersons() {
		tbl.Set(conjugation.Present, p, "finis-"+p.Pronoun())
		tbl.Set(conjugation.PasseSimple, p, "finis-"+p.Pronoun())
		tbl.Set(conjugation.Imparfait, p, "finissais-"+p.Pronoun())
	}
	c := verbs.NewCollection([]*verbs.Verb{{Infinitive: "finir", Conjugations: tbl}})
	r := newRegistry(t, c, 7)

	_, err := r.Generate(context.Background(), Matching, Request{
		Verbs:  []string{"finir"},
		Tenses: []conjugation.Tense{conjugation.Present, conjugation.PasseSimple, conjugation.Imparfait},
		Steps:  3,
	})
	var ge *GenerationExhaustedError
	if !errors.As(err, &ge) {
		t.Fatalf("expected *GenerationExhaustedError, got %v", err)
	}
}

func TestMatching_TooFewTenses(t *testing.T) {
	r := newRegistry(t, builtin(t), 1)
	_, err := r.Generate(context.Background(), Matching, Request{
		Verbs:  allBuiltin,
		Tenses: []conjugation.Tense{conjugation.Present, conjugation.Imparfait},
		Steps:  1,
	})
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestMatching_ExhaustionInvalidatesBatch(t *testing.T) {
	c := verbs.NewCollection([]*verbs.Verb{presentOnly("chanter")})
	r := newRegistry(t, c, 1)

	b, err := r.Generate(context.Background(), Matching, Request{Verbs: []string{"chanter"}, Tenses: threeTense, Steps: 2})
	if b != nil {
		t.Errorf("expected no batch, got %d questions", b.Len())
	}
	var ge *GenerationExhaustedError
	if !errors.As(err, &ge) {
		t.Fatalf("expected *GenerationExhaustedError, got %v", err)
	}
	if ge.Tries != DefaultMaxTries {
		t.Errorf("Tries = %d, want %d", ge.Tries, DefaultMaxTries)
	}
}

func TestFillGrid(t *testing.T) {
	c := builtin(t)
	r := newRegistry(t, c, 2)

	b, err := r.Generate(context.Background(), FillGrid, Request{
		Verbs:  []string{"avoir"},
		Tenses: []conjugation.Tense{conjugation.Present},
		Steps:  2,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := []string{"ai", "as", "a", "avons", "avez", "ont"}
	for _, q := range b.Questions {
		if got := q.Expected(); !slices.Equal(got, want) {
			t.Errorf("expected answers %v, want %v", got, want)
		}
		res := q.Grade("ai", "as", "a", "avons")
		if res.Count != 4 {
			t.Errorf("partial grade count = %d, want 4", res.Count)
		}
		if score := grading.StepScore(q.Mode.Scoring(), res); score != 66 {
			t.Errorf("score = %d, want 66", score)
		}
	}
}

func TestFillGrid_DefectiveTenseKeepsPresentPersons(t *testing.T) {
	tbl := conjugation.NewTable()
	tbl.Set(conjugation.Imperatif, conjugation.Tu, "va")
	tbl.Set(conjugation.Imperatif, conjugation.Nous, "allons")
	tbl.Set(conjugation.Imperatif, conjugation.Vous, "allez")
	c := verbs.NewCollection([]*verbs.Verb{{Infinitive: "aller", Conjugations: tbl}})
	r := newRegistry(t, c, 2)

	b, err := r.Generate(context.Background(), FillGrid, Request{
		Verbs:  []string{"aller"},
		Tenses: []conjugation.Tense{conjugation.Imperatif},
		Steps:  1,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got := b.Questions[0].Expected(); !slices.Equal(got, []string{"va", "allons", "allez"}) {
		t.Errorf("slots = %v", got)
	}
}

func TestFillGrid_NoFormsDropsEveryStep(t *testing.T) {
	c := verbs.NewCollection([]*verbs.Verb{{Infinitive: "vide"}})
	r := newRegistry(t, c, 2)
	_, err := r.Generate(context.Background(), FillGrid, Request{
		Verbs:  []string{"vide"},
		Tenses: []conjugation.Tense{conjugation.Present},
		Steps:  3,
	})
	if !errors.Is(err, ErrGenerationExhausted) {
		t.Fatalf("expected ErrGenerationExhausted, got %v", err)
	}
}

func TestSpeedRace(t *testing.T) {
	c := builtin(t)
	r := newRegistry(t, c, 9)

	b, err := r.Generate(context.Background(), SpeedRace, Request{Verbs: allBuiltin, Tenses: threeTense, Steps: 10})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, q := range b.Questions {
		if len(q.Options) != 3 {
			t.Fatalf("expected 3 options, got %v", q.Options)
		}
		assertDistinct(t, q.Options)
		if q.Answer != string(q.Tense) || !slices.Contains(q.Options, q.Answer) {
			t.Errorf("answer %q not among %v", q.Answer, q.Options)
		}
		for _, o := range q.Options {
			if _, err := conjugation.ParseTense(o); err != nil {
				t.Errorf("option %q is not a tense identifier", o)
			}
		}
		v, _ := c.FindByInfinitive(q.Verb)
		if q.Prompt != labelled(q.Person, v.Form(q.Tense, q.Person)) {
			t.Errorf("prompt %q does not show the %s form", q.Prompt, q.Tense)
		}
	}
}

func TestSpeedRace_AmbiguousFormsNotOffered(t *testing.T) {
	// "parle" is both present and present subjunctive for je and il.
	c := builtin(t)
	r := newRegistry(t, c, 4)
	tenses := []conjugation.Tense{conjugation.Present, conjugation.SubjonctifPresent, conjugation.Imparfait}

	b, err := r.Generate(context.Background(), SpeedRace, Request{Verbs: []string{"parler"}, Tenses: tenses, Steps: 10})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	v, _ := c.FindByInfinitive("parler")
	for _, q := range b.Questions {
		shown := v.Form(q.Tense, q.Person)
		for _, o := range q.Options {
			if o == q.Answer {
				continue
			}
			if v.Form(conjugation.Tense(o), q.Person) == shown {
				t.Errorf("option %s also yields %q", o, shown)
			}
		}
	}
}

func TestSpeedRace_TooFewTenses(t *testing.T) {
	r := newRegistry(t, builtin(t), 1)
	_, err := r.Generate(context.Background(), SpeedRace, Request{
		Verbs:  []string{"avoir"},
		Tenses: []conjugation.Tense{conjugation.Present, conjugation.Present, conjugation.Imparfait},
		Steps:  1,
	})
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration for duplicate tenses, got %v", err)
	}
}

func TestRandomGrid(t *testing.T) {
	c := builtin(t)
	r := newRegistry(t, c, 5)

	b, err := r.Generate(context.Background(), RandomGrid, Request{Verbs: allBuiltin, Tenses: threeTense, Steps: 3})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if b.Len() != 3 {
		t.Fatalf("expected 3 steps, got %d", b.Len())
	}
	for _, q := range b.Questions {
		if len(q.Slots) != 6 {
			t.Fatalf("expected 6 slots, got %d", len(q.Slots))
		}
		for _, s := range q.Slots {
			v, _ := c.FindByInfinitive(s.Verb)
			if s.Answer == "" || s.Answer != v.Form(s.Tense, s.Person) {
				t.Errorf("slot %+v has wrong answer", s)
			}
		}
		if q.MaxScore() != 600 {
			t.Errorf("MaxScore = %d, want 600", q.MaxScore())
		}
	}
	if b.MaxScore() != 1800 {
		t.Errorf("batch MaxScore = %d, want 1800", b.MaxScore())
	}
}

func TestRandomGrid_UnresolvableFailsWholeBatch(t *testing.T) {
	c := verbs.NewCollection([]*verbs.Verb{presentOnly("chanter")})
	r := newRegistry(t, c, 5)
	_, err := r.Generate(context.Background(), RandomGrid, Request{
		Verbs:  []string{"chanter"},
		Tenses: []conjugation.Tense{conjugation.Imparfait},
		Steps:  2,
	})
	if !errors.Is(err, ErrGenerationExhausted) {
		t.Fatalf("expected ErrGenerationExhausted, got %v", err)
	}
}

func sentenceRegistry(t *testing.T, ts []sentences.Template, seed uint64) *Registry {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Source = random.New(seed)
	return NewRegistry(Deps{Verbs: builtin(t), Sentences: sentences.NewStatic(ts)}, cfg)
}

func TestSentence(t *testing.T) {
	ts, err := sentences.Builtin()
	if err != nil {
		t.Fatalf("Builtin sentences: %v", err)
	}
	c := builtin(t)
	r := sentenceRegistry(t, ts, 11)

	b, err := r.Generate(context.Background(), Sentence, Request{Tenses: []conjugation.Tense{conjugation.Present}, Steps: 5})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, q := range b.Questions {
		if !strings.Contains(q.Prompt, "______") {
			t.Errorf("prompt %q has no blank", q.Prompt)
		}
		if q.Tense != conjugation.Present {
			t.Errorf("tense %s not in pool", q.Tense)
		}
		v, _ := c.FindByInfinitive(q.Verb)
		if q.Answer != v.Form(q.Tense, q.Person) {
			t.Errorf("answer %q, want %q", q.Answer, v.Form(q.Tense, q.Person))
		}
		if q.SentenceID == "" {
			t.Error("question has no sentence ID")
		}
	}
}

func TestSentence_NoMatch(t *testing.T) {
	ts, _ := sentences.Builtin()
	r := sentenceRegistry(t, ts, 1)
	_, err := r.Generate(context.Background(), Sentence, Request{Tenses: []conjugation.Tense{conjugation.PasseSimple}, Steps: 3})
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestSentence_UnknownVerb(t *testing.T) {
	ts := []sentences.Template{{
		ID:     "x",
		Text:   "Le guépard (courir) vite.",
		Verbs:  []sentences.Slot{{Infinitive: "courir", Subject: "Le guépard"}},
		Tenses: []conjugation.Tense{conjugation.Present},
	}}
	r := sentenceRegistry(t, ts, 1)
	_, err := r.Generate(context.Background(), Sentence, Request{Tenses: []conjugation.Tense{conjugation.Present}, Steps: 1})
	var de *DataIntegrityError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DataIntegrityError, got %v", err)
	}
	if len(de.Missing) != 1 || de.Missing[0] != "courir" {
		t.Errorf("Missing = %v", de.Missing)
	}
}

func TestSentence_NotRegisteredWithoutProvider(t *testing.T) {
	r := newRegistry(t, builtin(t), 1)
	if _, ok := r.Get(Sentence); ok {
		t.Fatal("sentence mode registered without a provider")
	}
	_, err := r.Generate(context.Background(), Sentence, Request{Tenses: threeTense, Steps: 1})
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
	if slices.Contains(r.Modes(), Sentence) {
		t.Error("Modes() lists sentence")
	}
}

func TestParticiple(t *testing.T) {
	c := builtin(t)
	r := newRegistry(t, c, 8)

	b, err := r.Generate(context.Background(), Participle, Request{Verbs: allBuiltin, Steps: 6, Participle: PastParticiple})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, q := range b.Questions {
		v, _ := c.FindByInfinitive(q.Verb)
		if q.Answer != v.PastParticiple {
			t.Errorf("%s: answer %q, want %q", q.Verb, q.Answer, v.PastParticiple)
		}
	}

	b, err = r.Generate(context.Background(), Participle, Request{Verbs: allBuiltin, Steps: 10})
	if err != nil {
		t.Fatalf("Generate (mixed): %v", err)
	}
	for _, q := range b.Questions {
		v, _ := c.FindByInfinitive(q.Verb)
		if q.Answer != participleOf(v, q.Participle) {
			t.Errorf("%s %s: answer %q", q.Verb, q.Participle, q.Answer)
		}
	}
}

func TestParticiple_Missing(t *testing.T) {
	c := verbs.NewCollection([]*verbs.Verb{{Infinitive: "chanter", PastParticiple: "chanté"}})
	r := newRegistry(t, c, 1)
	_, err := r.Generate(context.Background(), Participle, Request{Verbs: []string{"chanter"}, Steps: 1, Participle: PresentParticiple})
	if !errors.Is(err, ErrGenerationExhausted) {
		t.Fatalf("expected ErrGenerationExhausted, got %v", err)
	}
	if !strings.Contains(err.Error(), "chanter") {
		t.Errorf("error %q does not name the verb", err)
	}

	_, err = r.Generate(context.Background(), Participle, Request{Verbs: []string{"chanter"}, Steps: 1, Participle: "future"})
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration for unknown kind, got %v", err)
	}
}

func TestPools_Validation(t *testing.T) {
	r := newRegistry(t, builtin(t), 1)
	ctx := context.Background()

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"no steps", Request{Verbs: allBuiltin, Tenses: threeTense}, ErrConfiguration},
		{"no verbs", Request{Tenses: threeTense, Steps: 1}, ErrConfiguration},
		{"no tenses", Request{Verbs: allBuiltin, Steps: 1}, ErrConfiguration},
		{"unknown tense", Request{Verbs: allBuiltin, Tenses: []conjugation.Tense{"aoriste"}, Steps: 1}, ErrConfiguration},
		{"unknown verb", Request{Verbs: []string{"avoir", "nager"}, Tenses: threeTense, Steps: 1}, ErrDataIntegrity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, m := range []Mode{FindError, FillGrid, RandomGrid} {
				if _, err := r.Generate(ctx, m, tc.req); !errors.Is(err, tc.want) {
					t.Errorf("%s: expected %v, got %v", m, tc.want, err)
				}
			}
		})
	}
}

func TestGenerate_SameSeedSameBatch(t *testing.T) {
	c := builtin(t)
	req := Request{Verbs: allBuiltin, Tenses: threeTense, Steps: 5}

	a, err := newRegistry(t, c, 42).Generate(context.Background(), FindError, req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := newRegistry(t, c, 42).Generate(context.Background(), FindError, req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if a.Len() != b.Len() {
		t.Fatalf("lengths differ: %d vs %d", a.Len(), b.Len())
	}
	for i := range a.Questions {
		if a.Questions[i].Answer != b.Questions[i].Answer || !slices.Equal(a.Questions[i].Options, b.Questions[i].Options) {
			t.Errorf("step %d differs", i)
		}
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	r := newRegistry(t, builtin(t), 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Generate(ctx, FillGrid, Request{Verbs: allBuiltin, Tenses: threeTense, Steps: 1}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range AllModes() {
		got, err := ParseMode(strings.ToUpper(string(m)))
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %q, %v", m, got, err)
		}
	}
	if _, err := ParseMode("bingo"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
