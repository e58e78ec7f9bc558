package models

import "time"

// ErrorResponse is returned for all API errors
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse reports service and dependency health
type HealthResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks"`
	Duration string            `json:"duration"`
}

// ListResponse wraps a ranked, possibly truncated opportunity list
type ListResponse struct {
	Data        interface{} `json:"data"`
	Total       int         `json:"total"`
	ScanID      string      `json:"scan_id"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// StakeDistributionRequest asks for an arbitrage stake split
type StakeDistributionRequest struct {
	Odds       []float64 `json:"odds"`
	TotalStake float64   `json:"total_stake"`
}

// StakeDistributionResponse is the stake split for a set of arbitrage odds
type StakeDistributionResponse struct {
	Stakes           []float64 `json:"stakes"`
	Returns          []float64 `json:"returns"`
	TotalStake       float64   `json:"total_stake"`
	ProfitPercentage float64   `json:"profit_percentage"`
	GuaranteedProfit float64   `json:"guaranteed_profit"`
}

// KellyRequest asks for Kelly stake sizing
type KellyRequest struct {
	Odds           float64  `json:"odds"`
	WinProbability float64  `json:"win_probability"` // 0-1
	Bankroll       float64  `json:"bankroll"`
	Fraction       *float64 `json:"fraction,omitempty"`
}

// KellyResponse contains Kelly sizing at the common fractions
type KellyResponse struct {
	Edge             float64 `json:"edge"`
	KellyPercentage  float64 `json:"kelly_percentage"`
	FullKellyStake   float64 `json:"full_kelly_stake"`
	HalfKellyStake   float64 `json:"half_kelly_stake"`
	QuarterKelly     float64 `json:"quarter_kelly_stake"`
	RecommendedStake float64 `json:"recommended_stake"`
	Fraction         float64 `json:"fraction"`
	HasEdge          bool    `json:"has_edge"`
}

// EVRequest asks for the expected value of a single wager
type EVRequest struct {
	Odds            float64  `json:"odds"`
	FairOdds        *float64 `json:"fair_odds,omitempty"`
	TrueProbability *float64 `json:"true_probability,omitempty"`
	Stake           float64  `json:"stake"`
}

// EVResponse is the expected value of a single wager
type EVResponse struct {
	EV                 float64 `json:"ev"`
	EVPercentage       float64 `json:"ev_percentage"`
	PotentialProfit    float64 `json:"potential_profit"`
	PotentialReturn    float64 `json:"potential_return"`
	ImpliedProbability float64 `json:"implied_probability"`
	TrueProbability    float64 `json:"true_probability"`
}

// ConvertRequest carries odds in either format
type ConvertRequest struct {
	Decimal  *float64 `json:"decimal,omitempty"`
	American *int     `json:"american,omitempty"`
}

// ConvertResponse carries odds in every supported format
type ConvertResponse struct {
	Decimal            float64 `json:"decimal"`
	American           int     `json:"american"`
	ImpliedProbability float64 `json:"implied_probability"`
}

// ROIRequest describes a settled bet
type ROIRequest struct {
	Stake float64 `json:"stake"`
	Odds  float64 `json:"odds"`
	Won   bool    `json:"won"`
}

// ROIResponse is the outcome of a settled bet
type ROIResponse struct {
	Profit float64 `json:"profit"`
	ROI    float64 `json:"roi"`
}
