// Package random wraps a seedable PRNG with the range and Bernoulli
// sampling primitives the generator needs, in the style of the chaos
// fuzzer's sampler: one small struct, one method per distribution shape.
package random

import (
	"math/rand"
	"time"
)

// Source is a seedable, reproducible pseudo-random stream.
type Source struct {
	rng  *rand.Rand
	seed uint64
}

// NewSeeded builds a Source from an explicit 64-bit seed.
func NewSeeded(seed uint64) *Source {
	return &Source{rng: rand.New(rand.NewSource(int64(seed))), seed: seed}
}

// NewEntropy builds a Source seeded from the system clock, recording the
// seed it derived so the caller can log it for reproduction.
func NewEntropy() *Source {
	seed := uint64(time.Now().UnixNano())
	return NewSeeded(seed)
}

// Seed returns the seed this Source was constructed from.
func (s *Source) Seed() uint64 {
	return s.seed
}

// IntRange draws a uniform integer in the inclusive range [lo, hi].
func (s *Source) IntRange(lo, hi int) int {
	if hi < lo {
		panic("random: empty range")
	}
	if hi == lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

// Uint64Range draws a uniform uint64 in the inclusive range [lo, hi].
func (s *Source) Uint64Range(lo, hi uint64) uint64 {
	if hi < lo {
		panic("random: empty range")
	}
	if hi == lo {
		return lo
	}
	span := hi - lo
	if span == ^uint64(0) {
		return s.rng.Uint64()
	}
	return lo + s.rng.Uint64()%(span+1)
}

// Bool draws a weighted Boolean, true with probability p.
func (s *Source) Bool(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.rng.Float64() < p
}

// Float64 draws a uniform float in [0, 1).
func (s *Source) Float64() float64 {
	return s.rng.Float64()
}

// Uint64 draws a uniform uint64 over the full range.
func (s *Source) Uint64() uint64 {
	return s.rng.Uint64()
}

// Int63 draws a non-negative int64.
func (s *Source) Int63() int64 {
	return s.rng.Int63()
}

// PopLit removes and returns a uniformly-chosen element of pool by
// swap-remove (the last element moves into the vacated slot, so the pool's
// order is not preserved), mirroring the generator's
// "unused literal" pool draws.
func PopLit[T any](s *Source, pool []T) (T, []T) {
	idx := s.IntRange(0, len(pool)-1)
	v := pool[idx]
	last := len(pool) - 1
	pool[idx] = pool[last]
	pool = pool[:last]
	return v, pool
}
