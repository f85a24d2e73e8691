// Package random provides the sampling primitives shared by the round
// generators. Every function takes an explicit Source so callers can seed
// generation for reproducible rounds.
package random

import (
	"errors"
	"math/rand/v2"
	"time"
)

// ErrEmptyPool is returned when an element is requested from an empty slice.
var ErrEmptyPool = errors.New("empty pool")

// Source yields uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// New returns a deterministic PCG source for the given seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTime returns a PCG source seeded from the wall clock.
func NewTime() *rand.Rand {
	now := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(now, now>>1))
}

// Shuffle returns a Fisher–Yates permutation of xs. The input is left
// untouched.
func Shuffle[T any](src Source, xs []T) []T {
	out := make([]T, len(xs))
	copy(out, xs)
	for i := len(out) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// PickOne returns a uniformly chosen element of xs.
func PickOne[T any](src Source, xs []T) (T, error) {
	var zero T
	if len(xs) == 0 {
		return zero, ErrEmptyPool
	}
	return xs[src.IntN(len(xs))], nil
}

// PickN returns n distinct positions of xs in random order. When n exceeds
// len(xs) the whole shuffled slice is returned without error.
func PickN[T any](src Source, xs []T, n int) []T {
	if n < 0 {
		n = 0
	}
	shuffled := Shuffle(src, xs)
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

// IntBetween returns a uniform integer in [lo, hi]. It returns lo when
// hi < lo.
func IntBetween(src Source, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}
