// Package rng provides the randomness abstraction for the Wildbound rules
// core. Every resolver that rolls (damage variance, accuracy, capture,
// breeding) takes an explicit Source so outcomes are reproducible under a
// seeded source in tests and simulations.
package rng

import (
	"crypto/rand"
	"math/big"
)

// Source is the randomness provider for all rules-core rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int

	// Float64 returns a random float64 in [0.0, 1.0).
	Float64() float64
}

// cryptoSource implements Source using crypto/rand.
//
// Invariant: all values produced are uniformly distributed in their range.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand. This is the
// production source; use NewSeededSource for deterministic tests.
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "rng: Intn called with n <= 0" if n <= 0.
// Panics with "rng: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("rng: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// float64Denom is 2^53, the largest power of two whose reciprocal steps are
// exactly representable in a float64 mantissa.
const float64Denom = 1 << 53

// Float64 returns a cryptographically secure random float64 in [0.0, 1.0).
func (c *cryptoSource) Float64() float64 {
	return float64(c.Intn(float64Denom)) / float64Denom
}
