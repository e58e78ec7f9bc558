package detector

import (
	"fmt"
	"time"

	"github.com/XavierBriggs/fortuna/services/betedge/pkg/models"
	"github.com/XavierBriggs/fortuna/services/betedge/pkg/oddsmath"
)

// ArbitrageDetector finds markets where the best price on every outcome,
// taken across bookmakers, guarantees a profit
type ArbitrageDetector struct {
	config Config
}

// NewArbitrageDetector creates a new arbitrage detector
func NewArbitrageDetector(config Config) *ArbitrageDetector {
	return &ArbitrageDetector{
		config: config,
	}
}

// Detect returns one opportunity per market of the event whose profit meets
// minProfit (percent). All opportunities share the detection time now.
func (d *ArbitrageDetector) Detect(grouped GroupedEvent, minProfit float64, now time.Time) []models.ArbitrageOpportunity {
	var opportunities []models.ArbitrageOpportunity

	for _, market := range grouped.Markets {
		if opp, ok := d.detectMarket(grouped.Event, market, minProfit, now); ok {
			opportunities = append(opportunities, opp)
		}
	}

	return opportunities
}

func (d *ArbitrageDetector) detectMarket(event models.Event, market GroupedMarket, minProfit float64, now time.Time) (models.ArbitrageOpportunity, bool) {
	// Arbitrage across a single outcome is undefined
	if len(market.Outcomes) < d.config.MinOutcomes {
		return models.ArbitrageOpportunity{}, false
	}

	best := make([]models.Quote, len(market.Outcomes))
	prices := make([]float64, len(market.Outcomes))
	for i, outcome := range market.Outcomes {
		best[i] = BestQuote(outcome.Quotes)
		prices[i] = best[i].Price
	}

	arb := oddsmath.CalculateArbitrage(prices)
	if !arb.Exists || arb.ProfitPercentage < minProfit {
		return models.ArbitrageOpportunity{}, false
	}

	totalStake := d.config.TotalStake
	legs := make([]models.Leg, len(market.Outcomes))
	for i, outcome := range market.Outcomes {
		stake := arb.StakeWeights[i] * totalStake
		legs[i] = models.Leg{
			Bookmaker:       best[i].Bookmaker,
			BookmakerKey:    best[i].BookmakerKey,
			Outcome:         outcome.Key.Name,
			Point:           outcome.Key.PointPtr(),
			Odds:            best[i].Price,
			Stake:           stake,
			PotentialReturn: stake * best[i].Price,
		}
	}

	return models.ArbitrageOpportunity{
		ID:               fmt.Sprintf("%s_%s_%d", event.ID, market.Key, now.UnixMilli()),
		Event:            event,
		Market:           market.Key,
		ProfitPercentage: arb.ProfitPercentage,
		TotalStake:       totalStake,
		GuaranteedProfit: arb.ProfitPercentage / 100.0 * totalStake,
		Legs:             legs,
		CreatedAt:        now,
		ExpiresAt:        now.Add(d.config.ArbitrageTTL),
	}, true
}

// BestQuote returns the highest price. Ties go to the first bookmaker seen.
func BestQuote(quotes []models.Quote) models.Quote {
	var best models.Quote
	for i, q := range quotes {
		if i == 0 || q.Price > best.Price {
			best = q
		}
	}
	return best
}
