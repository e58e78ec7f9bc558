package detector

import (
	"time"

	"github.com/XavierBriggs/fortuna/services/betedge/pkg/models"
	"github.com/XavierBriggs/fortuna/services/betedge/pkg/oddsmath"
)

// Config holds the tunable constants of arbitrage and +EV detection
type Config struct {
	// Arbitrage
	ArbitrageTTL     time.Duration // expires_at = created_at + TTL
	TotalStake       float64       // Normalized stake basis for legs
	MinOutcomes      int           // Distinct outcomes required for an arbitrage
	DefaultMinProfit float64       // Percent

	// Positive EV
	EVFreshness             time.Duration // Max age of a +EV bet before it is discarded
	VigFactor               float64       // Flat margin removal applied to the consensus probability
	MinQuotes               int           // Quotes per outcome required for a fair-odds estimate
	StakeUnit               float64       // Reference stake for EV
	KellyFraction           float64
	StakeCap                float64 // Max suggested stake in units
	DefaultMinEV            float64 // Percent
	HighConfidenceEV        float64
	MediumConfidenceEV      float64
	HighConfidenceSamples   int
	MediumConfidenceSamples int
}

// DefaultConfig returns the standard detection constants
func DefaultConfig() Config {
	return Config{
		ArbitrageTTL:     10 * time.Minute,
		TotalStake:       100,
		MinOutcomes:      2,
		DefaultMinProfit: 0.5,

		EVFreshness:             15 * time.Minute,
		VigFactor:               oddsmath.DefaultVigFactor,
		MinQuotes:               3,
		StakeUnit:               100,
		KellyFraction:           0.25,
		StakeCap:                50,
		DefaultMinEV:            2.0,
		HighConfidenceEV:        5,
		MediumConfidenceEV:      3,
		HighConfidenceSamples:   5,
		MediumConfidenceSamples: 4,
	}
}

// Confidence grades a +EV bet: high needs both a large edge and a large
// sample, medium needs either a moderate edge or a moderate sample.
func (c Config) Confidence(evPercentage float64, samples int) models.Confidence {
	if evPercentage >= c.HighConfidenceEV && samples >= c.HighConfidenceSamples {
		return models.ConfidenceHigh
	}
	if evPercentage >= c.MediumConfidenceEV || samples >= c.MediumConfidenceSamples {
		return models.ConfidenceMedium
	}
	return models.ConfidenceLow
}
