package random

import (
	"errors"
	"math"
	"testing"
)

type labeledSeed struct {
	label string
	value uint64
}

func (s labeledSeed) Uint64() uint64 { return s.value }

func TestSameSeedSameSequence(t *testing.T) {
	a := FromUint64(123557703313481)
	b := New(labeledSeed{label: "encounter", value: 123557703313481})

	for i := 0; i < 5; i++ {
		if x, y := a.IntRange(1, 20), b.IntRange(1, 20); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
	}
	if a.Float64() != b.Float64() {
		t.Fatal("Float64 sequences diverged")
	}
	if a.Bits(37) != b.Bits(37) {
		t.Fatal("Bits sequences diverged")
	}
	if Choice(a, []string{"goblin", "ogre", "dragon"}) != Choice(b, []string{"goblin", "ogre", "dragon"}) {
		t.Fatal("Choice sequences diverged")
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := FromUint64(1)
	b := FromUint64(2)
	same := true
	for i := 0; i < 8; i++ {
		if a.Uint64() != b.Uint64() {
			same = false
		}
	}
	if same {
		t.Fatal("seeds 1 and 2 produced identical streams")
	}
}

func TestSeedIsRetained(t *testing.T) {
	seed := labeledSeed{label: "kept", value: 0x70600503E849}
	r := New(seed)

	got, ok := r.Seed().(labeledSeed)
	if !ok {
		t.Fatalf("Seed() type = %T, want labeledSeed", r.Seed())
	}
	if got.label != "kept" {
		t.Fatalf("Seed().label = %q, want %q", got.label, "kept")
	}
	if r.SeedHex() != "70600503E849" {
		t.Fatalf("SeedHex() = %q, want %q", r.SeedHex(), "70600503E849")
	}
}

func TestNewRejectsNilSeed(t *testing.T) {
	assertPanics(t, "New(nil)", func() { New(nil) })
}

func TestStateRestoreReplaysDraw(t *testing.T) {
	r := FromUint64(42)
	r.IntRange(0, 100)

	state := r.State()
	first := r.IntRange(0, 100)
	bit := r.Bit()
	if err := r.Restore(state); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	second := r.IntRange(0, 100)
	if first != second {
		t.Fatalf("draw after restore = %d, want %d", second, first)
	}
	if r.Bit() != bit {
		t.Fatal("bit after restore diverged")
	}
}

func TestStateTransfersBetweenGenerators(t *testing.T) {
	a := FromUint64(7)
	a.Float64()
	state := a.State()
	want := a.Uint64()

	b := FromUint64(99)
	if err := b.Restore(state); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got := b.Uint64(); got != want {
		t.Fatalf("Uint64 after restore = %d, want %d", got, want)
	}
}

func TestRestoreRejectsZeroState(t *testing.T) {
	r := FromUint64(1)
	if err := r.Restore(State{}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Restore(State{}) = %v, want %v", err, ErrInvalidState)
	}
	if err := r.Restore(State{data: []byte("garbage")}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Restore(garbage) = %v, want %v", err, ErrInvalidState)
	}
}

func TestIntRangeBounds(t *testing.T) {
	r := FromUint64(3)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := r.IntRange(-2, 2)
		if v < -2 || v > 2 {
			t.Fatalf("IntRange(-2, 2) = %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 5 {
		t.Fatalf("IntRange(-2, 2) hit %d values, want 5", len(seen))
	}
	if v := r.IntRange(9, 9); v != 9 {
		t.Fatalf("IntRange(9, 9) = %d", v)
	}
	r.IntRange(math.MinInt, math.MaxInt)
}

func TestFloat64Range(t *testing.T) {
	r := FromUint64(11)
	sum := 0.0
	const n = 10000
	for i := 0; i < n; i++ {
		v := r.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64() = %v", v)
		}
		sum += v
	}
	if mean := sum / n; mean < 0.45 || mean > 0.55 {
		t.Fatalf("Float64 mean = %v, want near 0.5", mean)
	}
}

func TestBits(t *testing.T) {
	r := FromUint64(5)
	if r.Bits(0) != 0 {
		t.Fatal("Bits(0) != 0")
	}
	for i := 0; i < 100; i++ {
		if v := r.Bits(3); v > 7 {
			t.Fatalf("Bits(3) = %d", v)
		}
		if v := r.Bit(); v > 1 {
			t.Fatalf("Bit() = %d", v)
		}
	}
	r.Bits(64)
}

func TestInvalidArgumentsPanic(t *testing.T) {
	r := FromUint64(1)
	assertPanics(t, "IntN(0)", func() { r.IntN(0) })
	assertPanics(t, "IntRange(2, 1)", func() { r.IntRange(2, 1) })
	assertPanics(t, "Bits(-1)", func() { r.Bits(-1) })
	assertPanics(t, "Bits(65)", func() { r.Bits(65) })
	assertPanics(t, "Choice(empty)", func() { Choice(r, []int{}) })
	assertPanics(t, "WeightedChoice(empty)", func() { WeightedChoice(r, []Weighted[int]{}) })
	assertPanics(t, "WeightedChoice(zero)", func() {
		WeightedChoice(r, []Weighted[int]{{Item: 1, Weight: 0}})
	})
	assertPanics(t, "WeightedChoice(negative)", func() {
		WeightedChoice(r, []Weighted[int]{{Item: 1, Weight: 2}, {Item: 2, Weight: -1}})
	})
	assertPanics(t, "WeightedChoice(NaN)", func() {
		WeightedChoice(r, []Weighted[int]{{Item: 1, Weight: math.NaN()}})
	})
}

func TestWeightedChoiceSkipsZeroWeights(t *testing.T) {
	r := FromUint64(8)
	items := []Weighted[string]{
		{Item: "never", Weight: 0},
		{Item: "common", Weight: 9},
		{Item: "rare", Weight: 1},
		{Item: "never-either", Weight: 0},
	}
	counts := map[string]int{}
	for i := 0; i < 5000; i++ {
		counts[WeightedChoice(r, items)]++
	}
	if counts["never"] != 0 || counts["never-either"] != 0 {
		t.Fatalf("zero-weight items chosen: %v", counts)
	}
	if counts["common"] < 4*counts["rare"] {
		t.Fatalf("weights not respected: %v", counts)
	}
}

func TestShuffleIsDeterministicPermutation(t *testing.T) {
	a := []int{1, 2, 3, 4, 5, 6, 7, 8}
	b := []int{1, 2, 3, 4, 5, 6, 7, 8}
	Shuffle(FromUint64(77), a)
	Shuffle(FromUint64(77), b)

	sum := 0
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("shuffles diverged: %v vs %v", a, b)
		}
		sum += a[i]
	}
	if sum != 36 {
		t.Fatalf("shuffle lost elements: %v", a)
	}
}

func TestNewSeedReturnsEntropy(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed: %v", err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed: %v", err)
	}
	if a == b {
		t.Fatalf("NewSeed returned %d twice", a)
	}
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s did not panic", name)
		}
	}()
	fn()
}
