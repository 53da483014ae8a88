// Package random provides seed generation and seeded source helpers.
//
// Role shuffles and delegated tie-breaks are deterministic with respect
// to a game's seed; this package is the single place seeds come from.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// New returns a pseudo-random source seeded with the provided seed.
// Given the same seed, the source produces the same sequence.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
