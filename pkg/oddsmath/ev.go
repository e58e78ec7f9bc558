package oddsmath

// Expectation is the expected value of a single wager
type Expectation struct {
	EV           float64 // In stake units
	EVPercentage float64 // EV / stake * 100
	Profit       float64 // Net win amount
	Loss         float64 // Amount lost, equal to the stake
}

// ExpectedValue computes EV = p*profit - (1-p)*loss for a stake at decimal odds
func ExpectedValue(decimal, trueProbability, stake float64) Expectation {
	profit := (decimal - 1.0) * stake
	loss := stake

	ev := trueProbability*profit - (1.0-trueProbability)*loss

	exp := Expectation{
		EV:     ev,
		Profit: profit,
		Loss:   loss,
	}
	if stake != 0 {
		exp.EVPercentage = ev / stake * 100.0
	}
	return exp
}

// CalculateROI returns the return on investment percentage of a settled bet.
// A lost bet is always -100.
func CalculateROI(stake, decimal float64, won bool) float64 {
	if !won || stake == 0 {
		return -100.0
	}
	profit := stake * (decimal - 1.0)
	return profit / stake * 100.0
}
