package conjugation

import (
	"errors"
	"testing"
)

func TestAllTenses(t *testing.T) {
	all := AllTenses()
	if len(all) != 17 {
		t.Fatalf("expected 17 tenses, got %d", len(all))
	}
	seen := make(map[Tense]bool)
	for _, tense := range all {
		if seen[tense] {
			t.Errorf("duplicate tense %s", tense)
		}
		seen[tense] = true
		if !tense.Valid() {
			t.Errorf("%s should be valid", tense)
		}
	}
}

func TestParseTense(t *testing.T) {
	tests := []struct {
		input string
		want  Tense
	}{
		{"present", Present},
		{" passe_compose ", PasseCompose},
		{"passé composé", PasseCompose},
		{"Subjonctif Présent", SubjonctifPresent},
		{"impératif présent", Imperatif},
		{"impératif passé", ImperatifPasse},
	}

	for _, tc := range tests {
		got, err := ParseTense(tc.input)
		if err != nil {
			t.Errorf("ParseTense(%q): unexpected error %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTense(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}

	if _, err := ParseTense("aoriste"); !errors.Is(err, ErrUnknownTense) {
		t.Errorf("expected ErrUnknownTense, got %v", err)
	}
}

func TestTensesByCategory(t *testing.T) {
	counts := map[Category]int{
		CategoryIndicative:  8,
		CategorySubjunctive: 4,
		CategoryConditional: 3,
		CategoryImperative:  2,
	}
	for cat, want := range counts {
		if got := len(TensesByCategory(cat)); got != want {
			t.Errorf("%s: got %d tenses, want %d", cat, got, want)
		}
	}
	if !PasseCompose.Info().Compound || Present.Info().Compound {
		t.Error("compound flags are wrong")
	}
	if got := Tense("bogus").DisplayName(); got != "bogus" {
		t.Errorf("unknown tense display name = %q", got)
	}
}
