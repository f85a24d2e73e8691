package conjugation

import (
	"encoding/json"
	"fmt"
	"testing"
)

func avoirFlat() map[string]string {
	return map[string]string{
		"present_1":   "ai",
		"present_2":   "as",
		"present_3":   "a",
		"present_4":   "avons",
		"present_5":   "avez",
		"present_6":   "ont",
		"imparfait_1": "avais",
		"imparfait_4": "",
		"imperatif_2": "aie",
	}
}

func TestForm_Avoir(t *testing.T) {
	table := FromFlat(avoirFlat())

	if got := Form(table, Present, Je); got != "ai" {
		t.Errorf("Form(present, je) = %q, want %q", got, "ai")
	}
	if got := Form(table, Present, IlsElles); got != "ont" {
		t.Errorf("Form(present, ils) = %q, want %q", got, "ont")
	}
	if got := Form(table, Imparfait, Nous); got != "" {
		t.Errorf("empty stored form should read as absent, got %q", got)
	}
	if got := Form(table, FuturSimple, Je); got != "" {
		t.Errorf("missing key should read as absent, got %q", got)
	}
}

func TestForm_MatchesFlatKeyForEverySlot(t *testing.T) {
	flat := make(map[string]string)
	for _, tense := range AllTenses() {
		for _, p := range AllPersons() {
			flat[fmt.Sprintf("%s_%d", tense, int(p)+1)] = fmt.Sprintf("%s/%d", tense, p)
		}
	}
	table := FromFlat(flat)

	for _, tense := range AllTenses() {
		for _, p := range AllPersons() {
			want := flat[fmt.Sprintf("%s_%d", tense, int(p)+1)]
			if got := Form(table, tense, p); got != want {
				t.Errorf("Form(%s, %d) = %q, want %q", tense, p, got, want)
			}
			if got := FlatForm(flat, tense, p); got != want {
				t.Errorf("FlatForm(%s, %d) = %q, want %q", tense, p, got, want)
			}
		}
	}
	if len(table.Unmapped) != 0 {
		t.Errorf("expected no unmapped keys, got %v", table.Unmapped)
	}
}

func TestForm_OutOfRangePerson(t *testing.T) {
	table := FromFlat(avoirFlat())
	for _, p := range []Person{-1, 6, 42} {
		if got := Form(table, Present, p); got != "" {
			t.Errorf("Form(present, %d) = %q, want empty", p, got)
		}
	}
	if got := Form(nil, Present, Je); got != "" {
		t.Errorf("Form(nil table) = %q, want empty", got)
	}
}

func TestFromFlat_Unmapped(t *testing.T) {
	flat := avoirFlat()
	flat["id"] = "7"
	flat["verb_id"] = "3"
	flat["present_7"] = "x"
	flat["gerondif_1"] = "ayant"

	table := FromFlat(flat)
	want := []string{"gerondif_1", "present_7"}
	if len(table.Unmapped) != len(want) {
		t.Fatalf("Unmapped = %v, want %v", table.Unmapped, want)
	}
	for i := range want {
		if table.Unmapped[i] != want[i] {
			t.Errorf("Unmapped[%d] = %q, want %q", i, table.Unmapped[i], want[i])
		}
	}
}

func TestAvailableTenses(t *testing.T) {
	flat := avoirFlat()
	flat["verb_id"] = "3"

	got := AvailableTenses(flat)
	for _, want := range []Tense{Present, Imparfait, Imperatif} {
		if _, ok := got[want]; !ok {
			t.Errorf("expected %s in available tenses", want)
		}
	}
	if len(got) != 3 {
		t.Errorf("expected 3 tenses, got %d: %v", len(got), got)
	}
}

func TestTable_TensesAndMissing(t *testing.T) {
	table := FromFlat(avoirFlat())

	tenses := table.Tenses()
	want := []Tense{Present, Imparfait, Imperatif}
	if len(tenses) != len(want) {
		t.Fatalf("Tenses() = %v, want %v", tenses, want)
	}
	for i := range want {
		if tenses[i] != want[i] {
			t.Errorf("Tenses()[%d] = %s, want %s", i, tenses[i], want[i])
		}
	}

	missing := table.Missing([]Tense{Present, PasseSimple, FuturSimple})
	if len(missing) != 2 || missing[0] != PasseSimple || missing[1] != FuturSimple {
		t.Errorf("Missing() = %v", missing)
	}
}

func TestTable_UnmarshalSkipsNonStrings(t *testing.T) {
	raw := `{"id": 12, "verb_id": 4, "verb": {"infinitive": "avoir"}, "present_1": "ai", "present_6": "ont"}`

	var table Table
	if err := json.Unmarshal([]byte(raw), &table); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := Form(&table, Present, Je); got != "ai" {
		t.Errorf("present je = %q", got)
	}
	if got := Form(&table, Present, IlsElles); got != "ont" {
		t.Errorf("present ils = %q", got)
	}
}

func TestPerson_KeyAndPronoun(t *testing.T) {
	if got := Je.Key(Present); got != "present_1" {
		t.Errorf("Je.Key = %q", got)
	}
	if got := IlsElles.Key(ConditionnelPasseII); got != "conditionnel_passe_ii_6" {
		t.Errorf("IlsElles.Key = %q", got)
	}
	if got := Nous.Pronoun(); got != "nous" {
		t.Errorf("Nous.Pronoun = %q", got)
	}
	if got := Person(9).Pronoun(); got != "" {
		t.Errorf("out of range pronoun = %q", got)
	}
}
