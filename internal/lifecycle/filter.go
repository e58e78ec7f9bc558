package lifecycle

import (
	"fmt"
	"time"

	"github.com/XavierBriggs/fortuna/services/betedge/pkg/contracts"
	"github.com/XavierBriggs/fortuna/services/betedge/pkg/models"
)

// IsArbitrageValid reports whether an arbitrage opportunity can still be shown:
// it has not expired and its event has not started
func IsArbitrageValid(opp models.ArbitrageOpportunity, now time.Time) bool {
	return now.Before(opp.ExpiresAt) && now.Before(opp.Event.CommenceTime)
}

// IsPositiveEVValid reports whether a +EV bet can still be shown: its event
// has not started and it was found less than freshness ago
func IsPositiveEVValid(bet models.PositiveEVBet, now time.Time, freshness time.Duration) bool {
	return now.Before(bet.Event.CommenceTime) && now.Sub(bet.CreatedAt) < freshness
}

// Filter re-checks opportunity validity before display. It never mutates
// opportunities, it only excludes the ones that are no longer valid.
type Filter struct {
	clock       contracts.Clock
	evFreshness time.Duration
}

// NewFilter creates a new filter
func NewFilter(clock contracts.Clock, evFreshness time.Duration) *Filter {
	if clock == nil {
		clock = contracts.SystemClock
	}
	return &Filter{
		clock:       clock,
		evFreshness: evFreshness,
	}
}

// ShouldDisplayArbitrage returns true if the opportunity is still valid, or
// false with the reason it is not
func (f *Filter) ShouldDisplayArbitrage(opp models.ArbitrageOpportunity) (bool, string) {
	now := f.clock.Now()

	if !now.Before(opp.ExpiresAt) {
		return false, fmt.Sprintf("expired %s ago", now.Sub(opp.ExpiresAt).Round(time.Second))
	}
	if !now.Before(opp.Event.CommenceTime) {
		return false, "event has started"
	}

	return true, ""
}

// ShouldDisplayPositiveEV returns true if the bet is still valid, or false
// with the reason it is not
func (f *Filter) ShouldDisplayPositiveEV(bet models.PositiveEVBet) (bool, string) {
	now := f.clock.Now()

	if !now.Before(bet.Event.CommenceTime) {
		return false, "event has started"
	}
	if age := now.Sub(bet.CreatedAt); age >= f.evFreshness {
		return false, fmt.Sprintf("age %s exceeds %s", age.Round(time.Second), f.evFreshness)
	}

	return true, ""
}

// ValidArbitrage returns the opportunities that are still valid, in order
func (f *Filter) ValidArbitrage(opps []models.ArbitrageOpportunity) []models.ArbitrageOpportunity {
	filtered := make([]models.ArbitrageOpportunity, 0, len(opps))

	for _, opp := range opps {
		if ok, _ := f.ShouldDisplayArbitrage(opp); ok {
			filtered = append(filtered, opp)
		}
	}

	return filtered
}

// ValidPositiveEV returns the bets that are still valid, in order
func (f *Filter) ValidPositiveEV(bets []models.PositiveEVBet) []models.PositiveEVBet {
	filtered := make([]models.PositiveEVBet, 0, len(bets))

	for _, bet := range bets {
		if ok, _ := f.ShouldDisplayPositiveEV(bet); ok {
			filtered = append(filtered, bet)
		}
	}

	return filtered
}
