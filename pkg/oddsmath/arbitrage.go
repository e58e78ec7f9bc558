package oddsmath

// Arbitrage is the result of testing a set of best prices, one per outcome
type Arbitrage struct {
	Exists           bool
	TotalProbability float64   // Sum of implied probabilities
	ProfitPercentage float64   // (1/total - 1) * 100 when Exists
	StakeWeights     []float64 // implied_i / total, sums to 1.0
}

// CalculateArbitrage checks whether backing every price proportionally
// guarantees a profit. Fewer than two prices never form an arbitrage.
func CalculateArbitrage(decimalOdds []float64) Arbitrage {
	if len(decimalOdds) < 2 {
		return Arbitrage{}
	}

	total := 0.0
	for _, decimal := range decimalOdds {
		if decimal <= 1.0 {
			return Arbitrage{}
		}
		total += 1.0 / decimal
	}

	weights := make([]float64, len(decimalOdds))
	for i, decimal := range decimalOdds {
		weights[i] = (1.0 / decimal) / total
	}

	arb := Arbitrage{
		Exists:           total < 1.0,
		TotalProbability: total,
		StakeWeights:     weights,
	}
	if arb.Exists {
		arb.ProfitPercentage = (1.0/total - 1.0) * 100.0
	}

	return arb
}

// Distribution is a stake split for a custom total stake
type Distribution struct {
	Stakes           []float64
	Returns          []float64
	ProfitPercentage float64
	GuaranteedProfit float64
}

// StakeDistribution splits totalStake across the odds so every leg returns
// the same amount. It fails with ErrNoArbitrage rather than returning a split
// that does not guarantee profit.
func StakeDistribution(decimalOdds []float64, totalStake float64) (Distribution, error) {
	if totalStake <= 0 {
		return Distribution{}, ErrInvalidStake
	}
	for _, d := range decimalOdds {
		if err := ValidateDecimal(d); err != nil {
			return Distribution{}, err
		}
	}

	arb := CalculateArbitrage(decimalOdds)
	if !arb.Exists {
		return Distribution{}, ErrNoArbitrage
	}

	dist := Distribution{
		Stakes:           make([]float64, len(decimalOdds)),
		Returns:          make([]float64, len(decimalOdds)),
		ProfitPercentage: arb.ProfitPercentage,
		GuaranteedProfit: arb.ProfitPercentage / 100.0 * totalStake,
	}
	for i, w := range arb.StakeWeights {
		dist.Stakes[i] = w * totalStake
		dist.Returns[i] = dist.Stakes[i] * decimalOdds[i]
	}

	return dist, nil
}
