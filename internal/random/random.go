package random

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// goldenRatio64 separates the two PCG seed words.
const goldenRatio64 = 0x9e3779b97f4a7c15

// ErrInvalidState indicates a state that did not come from State.
var ErrInvalidState = errors.New("invalid generator state")

// Seeder is anything that reduces to a 64-bit seed.
type Seeder interface {
	Uint64() uint64
}

// Value is a plain integer seed.
type Value uint64

// Uint64 implements Seeder.
func (v Value) Uint64() uint64 { return uint64(v) }

// Random is a deterministic generator that remembers its seed.
//
// Two generators built from seeds with the same Uint64 produce identical
// output for identical call sequences. A Random is not safe for concurrent
// use.
type Random struct {
	seed Seeder
	pcg  *rand.PCG
	rng  *rand.Rand
}

// New creates a generator from seed. The seed object itself is retained and
// returned by Seed; only its integer value drives the generator.
func New(seed Seeder) *Random {
	if seed == nil {
		panic("random: nil seed")
	}
	value := seed.Uint64()
	pcg := rand.NewPCG(mix(value), mix(value+goldenRatio64))
	return &Random{seed: seed, pcg: pcg, rng: rand.New(pcg)}
}

// FromUint64 creates a generator from a plain integer seed.
func FromUint64(seed uint64) *Random {
	return New(Value(seed))
}

// mix is the splitmix64 finalizer.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Seed returns the seed the generator was built from.
func (r *Random) Seed() Seeder {
	return r.seed
}

// SeedHex returns the seed value as uppercase hexadecimal.
func (r *Random) SeedHex() string {
	return strings.ToUpper(strconv.FormatUint(r.seed.Uint64(), 16))
}

// Float64 returns a value in [0, 1).
func (r *Random) Float64() float64 {
	return r.rng.Float64()
}

// Uint64 returns 64 random bits.
func (r *Random) Uint64() uint64 {
	return r.rng.Uint64()
}

// IntN returns a value in [0, n). It panics if n <= 0.
func (r *Random) IntN(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("random: IntN(%d): n must be positive", n))
	}
	return r.rng.IntN(n)
}

// IntRange returns a value in [lo, hi], both ends inclusive. It panics if
// lo > hi.
func (r *Random) IntRange(lo, hi int) int {
	if lo > hi {
		panic(fmt.Sprintf("random: IntRange(%d, %d): empty range", lo, hi))
	}
	span := uint64(hi-lo) + 1
	if span == 0 {
		// lo and hi cover every int.
		return int(r.rng.Uint64())
	}
	return lo + int(r.rng.Uint64N(span))
}

// Bit returns a single random bit.
func (r *Random) Bit() uint64 {
	return r.Bits(1)
}

// Bits returns an integer with n random bits, 0 <= n <= 64.
func (r *Random) Bits(n int) uint64 {
	if n < 0 || n > 64 {
		panic(fmt.Sprintf("random: Bits(%d): n must be between 0 and 64", n))
	}
	if n == 0 {
		return 0
	}
	return r.rng.Uint64() >> (64 - n)
}

// Bool returns true with probability one half.
func (r *Random) Bool() bool {
	return r.Bit() == 1
}

// State is an opaque snapshot of a generator's position in its stream.
type State struct {
	data []byte
}

// State captures the generator's current position.
func (r *Random) State() State {
	data, err := r.pcg.MarshalBinary()
	if err != nil {
		// PCG marshaling has no failure path.
		panic(err)
	}
	return State{data: data}
}

// Restore rewinds or advances the generator to a captured position. Drawing
// after Restore repeats the draws made after the matching State call.
func (r *Random) Restore(state State) error {
	if len(state.data) == 0 {
		return ErrInvalidState
	}
	if err := r.pcg.UnmarshalBinary(state.data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	return nil
}
