// Package scoring synthesizes credit scores, historical trajectories and
// credit events from customer demographics.
package scoring

import "math/rand/v2"

// Rand is the random source threaded through every operation. *rand.Rand
// from math/rand/v2 satisfies it.
type Rand interface {
	// IntN returns a uniform integer in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// NewStream returns an independent, reproducible stream for one unit of work
// (a customer index, or the run-level sampler) under a run seed.
func NewStream(seed, index uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, index)) //nolint:gosec // synthetic data, not security sensitive
}

// span is an inclusive integer range.
type span struct {
	lo, hi int
}

// draw returns a uniform integer in [s.lo, s.hi].
func (s span) draw(r Rand) int {
	return s.lo + r.IntN(s.hi-s.lo+1)
}

func (s span) contains(v int) bool {
	return v >= s.lo && v <= s.hi
}
