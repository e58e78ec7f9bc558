// Package calculator implements the betting calculators served by the API.
// Money values are rounded to cents, percentages to two places and
// probabilities to four.
package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/XavierBriggs/fortuna/services/betedge/pkg/models"
	"github.com/XavierBriggs/fortuna/services/betedge/pkg/oddsmath"
)

// DefaultKellyFraction is used when a Kelly request names no fraction
const DefaultKellyFraction = 0.25

// StakeDistribution splits a total stake across arbitrage odds.
// It returns oddsmath.ErrNoArbitrage when the odds do not guarantee profit.
func StakeDistribution(req models.StakeDistributionRequest) (*models.StakeDistributionResponse, error) {
	if len(req.Odds) < 2 {
		return nil, fmt.Errorf("%w: at least 2 odds are required", oddsmath.ErrInvalidOdds)
	}

	dist, err := oddsmath.StakeDistribution(req.Odds, req.TotalStake)
	if err != nil {
		return nil, err
	}

	resp := &models.StakeDistributionResponse{
		Stakes:           make([]float64, len(dist.Stakes)),
		Returns:          make([]float64, len(dist.Returns)),
		TotalStake:       cents(req.TotalStake),
		ProfitPercentage: percent(dist.ProfitPercentage),
		GuaranteedProfit: cents(dist.GuaranteedProfit),
	}
	for i := range dist.Stakes {
		resp.Stakes[i] = cents(dist.Stakes[i])
		resp.Returns[i] = cents(dist.Returns[i])
	}
	return resp, nil
}

// Kelly sizes a bet with the Kelly criterion. A bet without an edge is not
// an error; it sizes to zero with HasEdge false.
func Kelly(req models.KellyRequest) (*models.KellyResponse, error) {
	if err := oddsmath.ValidateDecimal(req.Odds); err != nil {
		return nil, err
	}
	if err := validateProbability(req.WinProbability); err != nil {
		return nil, err
	}
	if req.Bankroll <= 0 {
		return nil, fmt.Errorf("%w: bankroll must be positive", oddsmath.ErrInvalidStake)
	}

	fraction := DefaultKellyFraction
	if req.Fraction != nil {
		fraction = *req.Fraction
		if fraction <= 0 || fraction > 1 {
			return nil, fmt.Errorf("%w: fraction must be in (0, 1]", oddsmath.ErrInvalidProbability)
		}
	}

	k := oddsmath.KellyPercentage(req.Odds, req.WinProbability)
	edge := req.WinProbability - oddsmath.ImpliedProbability(req.Odds)

	return &models.KellyResponse{
		Edge:             percent(edge * 100),
		KellyPercentage:  percent(k * 100),
		FullKellyStake:   cents(oddsmath.KellyStake(req.Odds, req.WinProbability, req.Bankroll, 1.0)),
		HalfKellyStake:   cents(oddsmath.KellyStake(req.Odds, req.WinProbability, req.Bankroll, 0.5)),
		QuarterKelly:     cents(oddsmath.KellyStake(req.Odds, req.WinProbability, req.Bankroll, 0.25)),
		RecommendedStake: cents(oddsmath.KellyStake(req.Odds, req.WinProbability, req.Bankroll, fraction)),
		Fraction:         fraction,
		HasEdge:          k > 0,
	}, nil
}

// ExpectedValue prices a single wager against a fair price or a true
// probability. Fair odds win when both are given.
func ExpectedValue(req models.EVRequest) (*models.EVResponse, error) {
	if err := oddsmath.ValidateDecimal(req.Odds); err != nil {
		return nil, err
	}
	if req.Stake <= 0 {
		return nil, fmt.Errorf("%w: stake must be positive", oddsmath.ErrInvalidStake)
	}

	var p float64
	switch {
	case req.FairOdds != nil:
		if err := oddsmath.ValidateDecimal(*req.FairOdds); err != nil {
			return nil, err
		}
		p = oddsmath.ImpliedProbability(*req.FairOdds)
	case req.TrueProbability != nil:
		if err := validateProbability(*req.TrueProbability); err != nil {
			return nil, err
		}
		p = *req.TrueProbability
	default:
		return nil, fmt.Errorf("%w: fair_odds or true_probability is required", oddsmath.ErrInvalidProbability)
	}

	exp := oddsmath.ExpectedValue(req.Odds, p, req.Stake)

	return &models.EVResponse{
		EV:                 cents(exp.EV),
		EVPercentage:       percent(exp.EVPercentage),
		PotentialProfit:    cents(exp.Profit),
		PotentialReturn:    cents(exp.Profit + req.Stake),
		ImpliedProbability: probability(oddsmath.ImpliedProbability(req.Odds)),
		TrueProbability:    probability(p),
	}, nil
}

// Convert converts odds given in either format. Decimal wins when both are given.
func Convert(req models.ConvertRequest) (*models.ConvertResponse, error) {
	var d float64
	switch {
	case req.Decimal != nil:
		d = *req.Decimal
		if err := oddsmath.ValidateDecimal(d); err != nil {
			return nil, err
		}
	case req.American != nil:
		var err error
		if d, err = oddsmath.AmericanToDecimal(*req.American); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: decimal or american is required", oddsmath.ErrInvalidOdds)
	}

	american, err := oddsmath.DecimalToAmerican(d)
	if err != nil {
		return nil, err
	}

	return &models.ConvertResponse{
		Decimal:            round(d, 4),
		American:           american,
		ImpliedProbability: probability(oddsmath.ImpliedProbability(d)),
	}, nil
}

// ROI reports the profit and return on investment of a settled bet
func ROI(req models.ROIRequest) (*models.ROIResponse, error) {
	if err := oddsmath.ValidateDecimal(req.Odds); err != nil {
		return nil, err
	}
	if req.Stake <= 0 {
		return nil, fmt.Errorf("%w: stake must be positive", oddsmath.ErrInvalidStake)
	}

	profit := -req.Stake
	if req.Won {
		profit = req.Stake * (req.Odds - 1.0)
	}

	return &models.ROIResponse{
		Profit: cents(profit),
		ROI:    percent(oddsmath.CalculateROI(req.Stake, req.Odds, req.Won)),
	}, nil
}

func validateProbability(p float64) error {
	if p <= 0 || p >= 1 {
		return fmt.Errorf("%w: %v must be in (0, 1)", oddsmath.ErrInvalidProbability, p)
	}
	return nil
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

func cents(v float64) float64 { return round(v, 2) }

func percent(v float64) float64 { return round(v, 2) }

func probability(v float64) float64 { return round(v, 4) }
