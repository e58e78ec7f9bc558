package oddsmath

import "math"

// KellyPercentage is the full Kelly fraction of bankroll f* = (b*p - q) / b
// where b = decimal - 1. It is negative when the bet has no edge.
func KellyPercentage(decimal, winProbability float64) float64 {
	b := decimal - 1.0
	if b <= 0 {
		return 0
	}
	q := 1.0 - winProbability
	return (b*winProbability - q) / b
}

// KellyStake sizes a bet at the given Kelly fraction of bankroll. Bets
// without an edge size to zero.
func KellyStake(decimal, winProbability, bankroll, fraction float64) float64 {
	f := KellyPercentage(decimal, winProbability)
	if f <= 0 {
		return 0
	}
	return f * fraction * bankroll
}

// SuggestedStake sizes a +EV bet in stake units from its probability edge:
// max(0, (p - 1/price) * fraction * unit), capped at limit.
func SuggestedStake(decimal, trueProbability, fraction, unit, limit float64) float64 {
	edge := trueProbability - 1.0/decimal
	stake := math.Max(0, edge*fraction*unit)
	return math.Min(stake, limit)
}
