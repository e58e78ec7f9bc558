package oddsmath

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidOdds is returned for decimal odds that are not > 1.0 or American odds of 0
	ErrInvalidOdds = errors.New("invalid odds")

	// ErrInvalidProbability is returned for probabilities outside (0, 1)
	ErrInvalidProbability = errors.New("invalid probability")

	// ErrInvalidStake is returned for non-positive stakes or bankrolls
	ErrInvalidStake = errors.New("invalid stake")

	// ErrNoArbitrage is returned when a stake split is requested for odds
	// whose implied probabilities do not sum below 1
	ErrNoArbitrage = errors.New("no arbitrage opportunity exists for these odds")
)

// ValidateDecimal returns an error unless decimal odds are > 1.0 and finite
func ValidateDecimal(decimal float64) error {
	if math.IsNaN(decimal) || math.IsInf(decimal, 0) || decimal <= 1.0 {
		return fmt.Errorf("%w: decimal %v must be > 1.0", ErrInvalidOdds, decimal)
	}
	return nil
}

// AmericanToDecimal converts American odds to decimal odds
// American +150 → Decimal 2.50
// American -150 → Decimal 1.67
func AmericanToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, fmt.Errorf("%w: American odds cannot be 0", ErrInvalidOdds)
	}

	if american > 0 {
		return (float64(american) / 100.0) + 1.0, nil
	}

	return (100.0 / float64(-american)) + 1.0, nil
}

// DecimalToAmerican converts decimal odds to American odds
// Decimal 2.50 → American +150
// Decimal 1.67 → American -149
func DecimalToAmerican(decimal float64) (int, error) {
	if err := ValidateDecimal(decimal); err != nil {
		return 0, err
	}

	if decimal >= 2.0 {
		return int(math.Round((decimal - 1.0) * 100.0)), nil
	}

	return int(math.Round(-100.0 / (decimal - 1.0))), nil
}

// ImpliedProbability converts decimal odds to the probability they imply.
// It assumes validated input; use DecimalToImpliedProbability at boundaries.
func ImpliedProbability(decimal float64) float64 {
	return 1.0 / decimal
}

// DecimalToImpliedProbability converts decimal odds to implied probability
// Decimal 2.00 → 0.50 (50%)
// Decimal 1.50 → 0.667 (66.7%)
func DecimalToImpliedProbability(decimal float64) (float64, error) {
	if err := ValidateDecimal(decimal); err != nil {
		return 0, err
	}

	return 1.0 / decimal, nil
}

// ProbabilityToDecimal converts probability to decimal odds
func ProbabilityToDecimal(probability float64) (float64, error) {
	if probability <= 0 || probability >= 1 {
		return 0, fmt.Errorf("%w: %v must be between 0 and 1", ErrInvalidProbability, probability)
	}

	return 1.0 / probability, nil
}

// VigPercentage returns the bookmaker margin implied by a full set of market
// prices: (sum of implied probabilities - 1) * 100
func VigPercentage(decimals []float64) (float64, error) {
	if len(decimals) == 0 {
		return 0, fmt.Errorf("no prices provided")
	}

	total := 0.0
	for _, d := range decimals {
		if err := ValidateDecimal(d); err != nil {
			return 0, err
		}
		total += 1.0 / d
	}

	return (total - 1.0) * 100.0, nil
}
