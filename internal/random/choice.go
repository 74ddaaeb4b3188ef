package random

import (
	"fmt"
	"math"
)

// Weighted pairs an item with its relative selection weight.
type Weighted[T any] struct {
	Item   T
	Weight float64
}

// Choice returns a uniformly chosen element of items. It panics when items
// is empty.
func Choice[T any](r *Random, items []T) T {
	if len(items) == 0 {
		panic("random: Choice from empty sequence")
	}
	return items[r.IntN(len(items))]
}

// WeightedChoice returns an item with probability proportional to its
// weight. Weights must be finite and non-negative with a positive sum;
// anything else panics.
func WeightedChoice[T any](r *Random, items []Weighted[T]) T {
	if len(items) == 0 {
		panic("random: WeightedChoice from empty sequence")
	}
	total := 0.0
	for i, item := range items {
		if item.Weight < 0 || math.IsNaN(item.Weight) || math.IsInf(item.Weight, 0) {
			panic(fmt.Sprintf("random: WeightedChoice weight %d is %v", i, item.Weight))
		}
		total += item.Weight
	}
	if total <= 0 || math.IsInf(total, 0) {
		panic(fmt.Sprintf("random: WeightedChoice total weight is %v", total))
	}

	target := r.Float64() * total
	last := -1
	cumulative := 0.0
	for i, item := range items {
		if item.Weight == 0 {
			continue
		}
		last = i
		cumulative += item.Weight
		if target < cumulative {
			return item.Item
		}
	}
	// Rounding can leave target at the very top of the range.
	return items[last].Item
}

// Shuffle permutes items in place.
func Shuffle[T any](r *Random, items []T) {
	r.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
