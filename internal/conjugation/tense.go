package conjugation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTense is returned when a string does not name one of the 17 tenses.
var ErrUnknownTense = errors.New("unknown tense")

// Tense identifies a conjugation tense. The values double as the prefix of
// the flat storage keys ("present_1" ... "imperatif_passe_6").
type Tense string

const (
	Present                  Tense = "present"
	Imparfait                Tense = "imparfait"
	PasseSimple              Tense = "passe_simple"
	FuturSimple              Tense = "futur_simple"
	PasseCompose             Tense = "passe_compose"
	PlusQueParfait           Tense = "plus_que_parfait"
	PasseAnterieur           Tense = "passe_anterieur"
	FuturAnterieur           Tense = "futur_anterieur"
	SubjonctifPresent        Tense = "subjonctif_present"
	SubjonctifImparfait      Tense = "subjonctif_imparfait"
	SubjonctifPasse          Tense = "subjonctif_passe"
	SubjonctifPlusQueParfait Tense = "subjonctif_plus_que_parfait"
	ConditionnelPresent      Tense = "conditionnel_present"
	ConditionnelPasse        Tense = "conditionnel_passe"
	ConditionnelPasseII      Tense = "conditionnel_passe_ii"
	Imperatif                Tense = "imperatif"
	ImperatifPasse           Tense = "imperatif_passe"
)

// Category is the grammatical mood a tense belongs to.
type Category string

const (
	CategoryIndicative  Category = "indicative"
	CategorySubjunctive Category = "subjunctive"
	CategoryConditional Category = "conditional"
	CategoryImperative  Category = "imperative"
)

// TenseInfo describes a tense for display and filtering.
type TenseInfo struct {
	Tense       Tense
	DisplayName string
	Category    Category
	Compound    bool
}

// tenseTable lists every tense in canonical order.
var tenseTable = []TenseInfo{
	{Present, "Présent", CategoryIndicative, false},
	{Imparfait, "Imparfait", CategoryIndicative, false},
	{PasseSimple, "Passé Simple", CategoryIndicative, false},
	{FuturSimple, "Futur Simple", CategoryIndicative, false},
	{PasseCompose, "Passé Composé", CategoryIndicative, true},
	{PlusQueParfait, "Plus-que-parfait", CategoryIndicative, true},
	{PasseAnterieur, "Passé Antérieur", CategoryIndicative, true},
	{FuturAnterieur, "Futur Antérieur", CategoryIndicative, true},
	{SubjonctifPresent, "Subjonctif Présent", CategorySubjunctive, false},
	{SubjonctifImparfait, "Subjonctif Imparfait", CategorySubjunctive, false},
	{SubjonctifPasse, "Subjonctif Passé", CategorySubjunctive, true},
	{SubjonctifPlusQueParfait, "Subjonctif Plus-que-parfait", CategorySubjunctive, true},
	{ConditionnelPresent, "Conditionnel Présent", CategoryConditional, false},
	{ConditionnelPasse, "Conditionnel Passé", CategoryConditional, true},
	{ConditionnelPasseII, "Conditionnel Passé II", CategoryConditional, true},
	{Imperatif, "Impératif", CategoryImperative, false},
	{ImperatifPasse, "Impératif Passé", CategoryImperative, true},
}

// frenchLabels maps the lower-case labels shown in tense pickers to tenses.
var frenchLabels = map[string]Tense{
	"présent":                     Present,
	"passé composé":               PasseCompose,
	"imparfait":                   Imparfait,
	"plus-que-parfait":            PlusQueParfait,
	"passé simple":                PasseSimple,
	"passé antérieur":             PasseAnterieur,
	"futur simple":                FuturSimple,
	"futur antérieur":             FuturAnterieur,
	"conditionnel présent":        ConditionnelPresent,
	"conditionnel passé":          ConditionnelPasse,
	"subjonctif présent":          SubjonctifPresent,
	"subjonctif passé":            SubjonctifPasse,
	"subjonctif imparfait":        SubjonctifImparfait,
	"subjonctif plus-que-parfait": SubjonctifPlusQueParfait,
	"impératif présent":           Imperatif,
	"impératif passé":             ImperatifPasse,
}

var tenseIndex = func() map[Tense]TenseInfo {
	m := make(map[Tense]TenseInfo, len(tenseTable))
	for _, ti := range tenseTable {
		m[ti.Tense] = ti
	}
	return m
}()

// AllTenses returns the 17 tenses in canonical order.
func AllTenses() []Tense {
	out := make([]Tense, len(tenseTable))
	for i, ti := range tenseTable {
		out[i] = ti.Tense
	}
	return out
}

// TensesByCategory returns the tenses of one mood in canonical order.
func TensesByCategory(c Category) []Tense {
	var out []Tense
	for _, ti := range tenseTable {
		if ti.Category == c {
			out = append(out, ti.Tense)
		}
	}
	return out
}

// Valid reports whether t is one of the 17 recognized tenses.
func (t Tense) Valid() bool {
	_, ok := tenseIndex[t]
	return ok
}

// Info returns the metadata for t. Unknown tenses get their raw
// identifier as display name.
func (t Tense) Info() TenseInfo {
	if ti, ok := tenseIndex[t]; ok {
		return ti
	}
	return TenseInfo{Tense: t, DisplayName: string(t)}
}

// DisplayName returns the human-readable name of t.
func (t Tense) DisplayName() string {
	return t.Info().DisplayName
}

// ParseTense accepts a tense identifier ("passe_compose") or a French
// label ("passé composé").
func ParseTense(s string) (Tense, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if t := Tense(key); t.Valid() {
		return t, nil
	}
	if t, ok := frenchLabels[key]; ok {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTense, s)
}

// ParseTenses parses every element of ss, failing on the first unknown one.
func ParseTenses(ss []string) ([]Tense, error) {
	out := make([]Tense, 0, len(ss))
	for _, s := range ss {
		t, err := ParseTense(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
