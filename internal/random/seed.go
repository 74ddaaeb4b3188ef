// Package random provides the seeded generator used for encounter decisions
// and a cryptographic helper for fresh entropy.
//
// Every randomized choice in an encounter goes through a *Random built from
// that encounter's seed, so the whole encounter can be replayed from one
// integer. Nothing here uses the global math/rand source.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed returns 64 bits from crypto/rand. Use it for values that must not
// be guessable, such as the low bits of a synthesized event identifier.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return binary.LittleEndian.Uint64(b[:]), nil
}
