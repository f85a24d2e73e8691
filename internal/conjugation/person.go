package conjugation

import "fmt"

// Person is a grammatical person indexed 0..5 (je .. ils/elles).
// Storage keys use 1..6; Key performs that conversion.
type Person int

const (
	Je Person = iota
	Tu
	IlElle
	Nous
	Vous
	IlsElles
)

// NumPersons is the number of grammatical persons per tense.
const NumPersons = 6

var pronouns = [NumPersons]string{"je/j'", "tu", "il/elle", "nous", "vous", "ils/elles"}

// Valid reports whether p is in 0..5.
func (p Person) Valid() bool {
	return p >= Je && p <= IlsElles
}

// Pronoun returns the subject pronoun for p, or "" when p is out of range.
func (p Person) Pronoun() string {
	if !p.Valid() {
		return ""
	}
	return pronouns[p]
}

// Key returns the flat storage key for tense t at person p, e.g.
// Present with Je yields "present_1".
func (p Person) Key(t Tense) string {
	return fmt.Sprintf("%s_%d", t, int(p)+1)
}

// AllPersons returns Je through IlsElles.
func AllPersons() []Person {
	return []Person{Je, Tu, IlElle, Nous, Vous, IlsElles}
}
