// Package verbs holds verb records and resolves learner-facing infinitives
// against a collection.
package verbs

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/abhisek/verbiz/internal/conjugation"
)

//go:embed data/seed.json
var seedJSON []byte

// ErrNotFound is returned when an infinitive has no record in a collection.
var ErrNotFound = errors.New("verb not found")

// Verb is one lexical entry. The infinitive is its identity.
type Verb struct {
	ID                int                `json:"id,omitempty"`
	Infinitive        string             `json:"infinitive"`
	PastParticiple    string             `json:"past_participle,omitempty"`
	PresentParticiple string             `json:"present_participle,omitempty"`
	Auxiliary         string             `json:"auxiliary,omitempty"`
	PronominalForm    string             `json:"pronominal_form,omitempty"`
	Translation       string             `json:"translation,omitempty"`
	Category          string             `json:"category,omitempty"`
	Difficulty        int                `json:"difficulty,omitempty"`
	Conjugations      *conjugation.Table `json:"conjugations,omitempty"`
}

// Form returns the conjugated form for tense and person, or "" when absent.
func (v *Verb) Form(t conjugation.Tense, p conjugation.Person) string {
	if v == nil {
		return ""
	}
	return conjugation.Form(v.Conjugations, t, p)
}

// Key returns the NFC-normalized infinitive used for lookups.
func Key(infinitive string) string {
	return norm.NFC.String(infinitive)
}

// NotFoundError lists infinitives that could not be resolved.
type NotFoundError struct {
	Infinitives []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("verbs not found: %s", strings.Join(e.Infinitives, ", "))
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Collection is an ordered set of verbs indexed by normalized infinitive.
// When two records share an infinitive the first one added wins.
type Collection struct {
	verbs []*Verb
	index map[string]*Verb
}

// NewCollection builds a collection from vs in order.
func NewCollection(vs []*Verb) *Collection {
	c := &Collection{index: make(map[string]*Verb, len(vs))}
	for _, v := range vs {
		c.Add(v)
	}
	return c
}

// Add appends v. A later duplicate is kept in order but never returned by
// lookups.
func (c *Collection) Add(v *Verb) {
	if v == nil {
		return
	}
	if c.index == nil {
		c.index = make(map[string]*Verb)
	}
	c.verbs = append(c.verbs, v)
	k := Key(v.Infinitive)
	if _, ok := c.index[k]; !ok {
		c.index[k] = v
	}
}

// Len returns the number of records, duplicates included.
func (c *Collection) Len() int { return len(c.verbs) }

// All returns the records in collection order.
func (c *Collection) All() []*Verb {
	out := make([]*Verb, len(c.verbs))
	copy(out, c.verbs)
	return out
}

// FindByInfinitive looks up inf after NFC normalization of both sides.
func (c *Collection) FindByInfinitive(inf string) (*Verb, bool) {
	v, ok := c.index[Key(inf)]
	return v, ok
}

// Resolve maps every infinitive in pool to its record, preserving order.
// Any miss yields a *NotFoundError naming all missing infinitives.
func (c *Collection) Resolve(pool []string) ([]*Verb, error) {
	out := make([]*Verb, 0, len(pool))
	var missing []string
	for _, inf := range pool {
		v, ok := c.FindByInfinitive(inf)
		if !ok {
			missing = append(missing, inf)
			continue
		}
		out = append(out, v)
	}
	if len(missing) > 0 {
		return nil, &NotFoundError{Infinitives: missing}
	}
	return out, nil
}

// LoadJSON decodes an array of verb records with flat conjugation objects.
func LoadJSON(r io.Reader) (*Collection, error) {
	var vs []*Verb
	if err := json.NewDecoder(r).Decode(&vs); err != nil {
		return nil, fmt.Errorf("decoding verbs: %w", err)
	}
	for i, v := range vs {
		if v == nil || strings.TrimSpace(v.Infinitive) == "" {
			return nil, fmt.Errorf("verb %d: missing infinitive", i)
		}
	}
	return NewCollection(vs), nil
}

// Builtin returns the bundled starter collection.
func Builtin() (*Collection, error) {
	return LoadJSON(bytes.NewReader(seedJSON))
}
