package oddsmath

import (
	"math"
	"sort"
)

// DefaultVigFactor assumes a flat 5% bookmaker margin on every market
const DefaultVigFactor = 0.95

// TrimBounds returns the inclusive index range kept by FairOdds for n sorted
// prices: floor(n*0.25) through floor(n*0.75), clamped to the last index.
// For small n the range barely trims: n=3 keeps 0..2, n=4 keeps 1..3.
func TrimBounds(n int) (lo, hi int) {
	if n <= 0 {
		return 0, -1
	}
	lo = int(math.Floor(float64(n) * 0.25))
	hi = int(math.Floor(float64(n) * 0.75))
	if hi > n-1 {
		hi = n - 1
	}
	return lo, hi
}

// ConsensusProbability averages the implied probabilities of the central
// quantile of prices. The input slice is not modified.
func ConsensusProbability(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}

	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	lo, hi := TrimBounds(len(sorted))
	kept := sorted[lo : hi+1]

	sum := 0.0
	for _, p := range kept {
		sum += 1.0 / p
	}
	return sum / float64(len(kept))
}

// FairOdds estimates de-vigged consensus odds for one outcome from every
// bookmaker's price. It is an estimator and never fails: identical prices
// with a vig factor of 1 return that price, and an empty list returns 0.
func FairOdds(prices []float64, vigFactor float64) float64 {
	avg := ConsensusProbability(prices)
	if avg == 0 {
		return 0
	}
	return 1.0 / (avg * vigFactor)
}
