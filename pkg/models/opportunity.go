package models

import "time"

// OpportunityType defines the type of betting opportunity
type OpportunityType string

const (
	OpportunityTypeArbitrage  OpportunityType = "arbitrage"   // Guaranteed profit across books
	OpportunityTypePositiveEV OpportunityType = "positive_ev" // Single bet priced above fair odds
)

// Confidence grades a +EV bet by edge size and sample size
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ArbitrageOpportunity is a set of legs, one per outcome of a market, whose
// proportional stakes return the same amount whatever the result.
type ArbitrageOpportunity struct {
	ID               string  `json:"id"`
	Event            Event   `json:"event"`
	Market           string  `json:"market"`
	ProfitPercentage float64 `json:"profit_percentage"`
	TotalStake       float64 `json:"total_stake"`
	GuaranteedProfit float64 `json:"guaranteed_profit"`
	Legs             []Leg   `json:"bets"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Leg represents a single bet within an arbitrage opportunity
type Leg struct {
	Bookmaker       string   `json:"bookmaker"`
	BookmakerKey    string   `json:"bookmaker_key"`
	Outcome         string   `json:"outcome"`
	Point           *float64 `json:"point,omitempty"`
	Odds            float64  `json:"odds"`
	Stake           float64  `json:"stake"`
	PotentialReturn float64  `json:"potential_return"`
}

// PositiveEVBet is a single bookmaker quote priced above the market's fair odds
type PositiveEVBet struct {
	ID             string     `json:"id"`
	Event          Event      `json:"event"`
	Bookmaker      string     `json:"bookmaker"`
	BookmakerKey   string     `json:"bookmaker_key"`
	Market         string     `json:"market"`
	Outcome        string     `json:"outcome"`
	Point          *float64   `json:"point,omitempty"`
	Odds           float64    `json:"odds"`
	FairOdds       float64    `json:"fair_odds"`
	EVPercentage   float64    `json:"ev_percentage"`
	Confidence     Confidence `json:"confidence"`
	SuggestedStake float64    `json:"suggested_stake"`
	SampleSize     int        `json:"sample_size"`

	CreatedAt time.Time `json:"created_at"`
}
