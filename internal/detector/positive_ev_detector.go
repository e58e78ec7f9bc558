package detector

import (
	"fmt"
	"strconv"
	"time"

	"github.com/XavierBriggs/fortuna/services/betedge/pkg/models"
	"github.com/XavierBriggs/fortuna/services/betedge/pkg/oddsmath"
)

// PositiveEVDetector scores every bookmaker quote against the market's
// de-vigged consensus price
type PositiveEVDetector struct {
	config Config
}

// NewPositiveEVDetector creates a new +EV detector
func NewPositiveEVDetector(config Config) *PositiveEVDetector {
	return &PositiveEVDetector{
		config: config,
	}
}

// Detect returns every quote of the event whose EV meets minEV (percent).
// Unlike arbitrage, all quotes are scored, not just the best one.
func (d *PositiveEVDetector) Detect(grouped GroupedEvent, minEV float64, now time.Time) []models.PositiveEVBet {
	var bets []models.PositiveEVBet

	for _, market := range grouped.Markets {
		for _, outcome := range market.Outcomes {
			bets = append(bets, d.detectOutcome(grouped.Event, market.Key, outcome, minEV, now)...)
		}
	}

	return bets
}

func (d *PositiveEVDetector) detectOutcome(event models.Event, marketKey string, outcome OutcomeGroup, minEV float64, now time.Time) []models.PositiveEVBet {
	n := len(outcome.Quotes)
	if n < d.config.MinQuotes {
		return nil
	}

	fairOdds := oddsmath.FairOdds(outcome.Prices(), d.config.VigFactor)
	trueProbability := 1.0 / fairOdds

	var bets []models.PositiveEVBet
	for _, quote := range outcome.Quotes {
		exp := oddsmath.ExpectedValue(quote.Price, trueProbability, d.config.StakeUnit)
		if exp.EVPercentage < minEV {
			continue
		}

		stake := oddsmath.SuggestedStake(quote.Price, trueProbability, d.config.KellyFraction, d.config.StakeUnit, d.config.StakeCap)

		bets = append(bets, models.PositiveEVBet{
			ID:             fmt.Sprintf("%s_%s_%s_%s_%d", event.ID, marketKey, outcomeID(outcome.Key), quote.BookmakerKey, now.UnixMilli()),
			Event:          event,
			Bookmaker:      quote.Bookmaker,
			BookmakerKey:   quote.BookmakerKey,
			Market:         marketKey,
			Outcome:        outcome.Key.Name,
			Point:          outcome.Key.PointPtr(),
			Odds:           quote.Price,
			FairOdds:       fairOdds,
			EVPercentage:   exp.EVPercentage,
			Confidence:     d.config.Confidence(exp.EVPercentage, n),
			SuggestedStake: stake,
			SampleSize:     n,
			CreatedAt:      now,
		})
	}

	return bets
}

// outcomeID renders an outcome key for use inside a bet ID. The point sits
// behind an "@" so that "Team 1" and "Team" at 1 stay distinct.
func outcomeID(key models.OutcomeKey) string {
	if !key.HasPoint {
		return key.Name
	}
	return key.Name + "@" + strconv.FormatFloat(key.Point, 'f', -1, 64)
}
