// Package analytics computes summary statistics over decoded result sets.
// All sums, averages, and comparisons of monetary and gas values run on
// exact integer arithmetic; floating point appears only in display-facing
// percentage figures, rounded at the final step.
package analytics

import (
	"math"
	"math/big"
	"sort"
)

// Sum adds the designated numeric field across all items. An empty input
// yields zero.
func Sum[T any](items []T, value func(T) *big.Int) *big.Int {
	total := new(big.Int)
	for _, item := range items {
		total.Add(total, value(item))
	}
	return total
}

// Mean divides a total by a count using integer division. The result
// truncates toward zero; it is not rounded. A zero count yields zero.
func Mean(total *big.Int, count int) *big.Int {
	if count == 0 {
		return new(big.Int)
	}
	return new(big.Int).Quo(total, big.NewInt(int64(count)))
}

// MinMax returns the smallest and largest of the designated field. An empty
// input yields nil, nil.
func MinMax[T any](items []T, value func(T) *big.Int) (*big.Int, *big.Int) {
	if len(items) == 0 {
		return nil, nil
	}
	minVal := new(big.Int).Set(value(items[0]))
	maxVal := new(big.Int).Set(value(items[0]))
	for _, item := range items[1:] {
		v := value(item)
		if v.Cmp(minVal) < 0 {
			minVal.Set(v)
		}
		if v.Cmp(maxVal) > 0 {
			maxVal.Set(v)
		}
	}
	return minVal, maxVal
}

// Median returns the middle value after a full sort. Even-length inputs
// resolve to the lower-middle element, matching the subgraph's own rollups.
// An empty input yields nil rather than an error.
func Median[T any](items []T, value func(T) *big.Int) *big.Int {
	if len(items) == 0 {
		return nil
	}
	values := make([]*big.Int, len(items))
	for i, item := range items {
		values[i] = value(item)
	}
	sort.Slice(values, func(i, j int) bool {
		return values[i].Cmp(values[j]) < 0
	})
	// Lower-middle on even length: index (n-1)/2
	return new(big.Int).Set(values[(len(values)-1)/2])
}

// Peak returns the item holding the largest value of the designated field,
// or nil for an empty input. Ties resolve to the earliest item.
func Peak[T any](items []T, value func(T) *big.Int) *T {
	if len(items) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(items); i++ {
		if value(items[i]).Cmp(value(items[best])) > 0 {
			best = i
		}
	}
	return &items[best]
}

// UniqueCount counts distinct values of the designated identity field.
// The result is order-independent.
func UniqueCount[T any, K comparable](items []T, key func(T) K) int {
	seen := make(map[K]struct{}, len(items))
	for _, item := range items {
		seen[key(item)] = struct{}{}
	}
	return len(seen)
}

// PercentChange computes the growth from prev to curr as a display-only
// percentage, rounded to two decimals. A zero or nil prev yields 0; the
// figure must never feed back into stored or compared values.
func PercentChange(prev, curr *big.Int) float64 {
	if prev == nil || curr == nil || prev.Sign() == 0 {
		return 0
	}
	p, _ := new(big.Float).SetInt(prev).Float64()
	c, _ := new(big.Float).SetInt(curr).Float64()
	return round2((c - p) / p * 100)
}

// Rate computes part/whole as a display-only percentage, two decimals.
// A zero whole yields 0.
func Rate(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round2(float64(part) / float64(whole) * 100)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
