package conjugation

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
)

// flatKey matches "<tense>_<1..6>".
var flatKey = regexp.MustCompile(`^(.+)_([1-6])$`)

// Table holds the parsed conjugation forms of one verb. An empty string
// means no form is available for that slot.
type Table struct {
	forms map[Tense][NumPersons]string

	// Unmapped lists flat keys that did not match a recognized tense slot,
	// sorted. Bookkeeping keys ("id", "verb_id", "verb") are not reported.
	Unmapped []string
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{forms: make(map[Tense][NumPersons]string)}
}

// FromFlat parses the flat wire format where every key is
// "{tense}_{person}" with person 1..6.
func FromFlat(flat map[string]string) *Table {
	t := NewTable()
	for key, form := range flat {
		switch key {
		case "id", "verb_id", "verb":
			continue
		}
		m := flatKey.FindStringSubmatch(key)
		if m == nil || !Tense(m[1]).Valid() {
			t.Unmapped = append(t.Unmapped, key)
			continue
		}
		n, _ := strconv.Atoi(m[2])
		t.Set(Tense(m[1]), Person(n-1), form)
	}
	sort.Strings(t.Unmapped)
	return t
}

// Set stores form at (tense, person). Out-of-range persons are ignored.
func (t *Table) Set(tense Tense, p Person, form string) {
	if !p.Valid() {
		return
	}
	row := t.forms[tense]
	row[p] = form
	t.forms[tense] = row
}

// Forms returns the six forms of tense, empty strings where absent.
func (t *Table) Forms(tense Tense) [NumPersons]string {
	if t == nil {
		return [NumPersons]string{}
	}
	return t.forms[tense]
}

// HasForms reports whether at least one person has a form in tense.
func (t *Table) HasForms(tense Tense) bool {
	for _, f := range t.Forms(tense) {
		if f != "" {
			return true
		}
	}
	return false
}

// Tenses returns the tenses with at least one non-empty form, in
// canonical order.
func (t *Table) Tenses() []Tense {
	var out []Tense
	for _, tense := range AllTenses() {
		if t.HasForms(tense) {
			out = append(out, tense)
		}
	}
	return out
}

// Missing returns the tenses from required that have no forms at all.
func (t *Table) Missing(required []Tense) []Tense {
	var out []Tense
	for _, tense := range required {
		if !t.HasForms(tense) {
			out = append(out, tense)
		}
	}
	return out
}

// Flat renders the table back into the flat wire format. Empty forms are
// omitted.
func (t *Table) Flat() map[string]string {
	out := make(map[string]string)
	if t == nil {
		return out
	}
	for tense, row := range t.forms {
		for i, form := range row {
			if form != "" {
				out[Person(i).Key(tense)] = form
			}
		}
	}
	return out
}

// Form returns the conjugated form of tense at person p (0..5), or "" when
// the table is nil, the person is out of range, or no form is stored.
// Absence is an expected outcome and never an error.
func Form(t *Table, tense Tense, p Person) string {
	if t == nil || !p.Valid() {
		return ""
	}
	return t.forms[tense][p]
}

// FlatForm looks up a form directly in the flat wire format using the
// 0-based person p.
func FlatForm(flat map[string]string, tense Tense, p Person) string {
	if !p.Valid() {
		return ""
	}
	return flat[p.Key(tense)]
}

// AvailableTenses derives the tense vocabulary of a flat record by
// stripping the trailing "_N" suffix from every key. Bookkeeping keys and
// keys without a person suffix are skipped.
func AvailableTenses(flat map[string]string) map[Tense]struct{} {
	out := make(map[Tense]struct{})
	for key := range flat {
		m := flatKey.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		out[Tense(m[1])] = struct{}{}
	}
	return out
}

// MarshalJSON encodes the table in the flat wire format.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Flat())
}

// UnmarshalJSON decodes the flat wire format. Non-string values (numeric
// ids, nested verb objects) are skipped.
func (t *Table) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	flat := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			flat[k] = s
		}
	}
	*t = *FromFlat(flat)
	return nil
}
