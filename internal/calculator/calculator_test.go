package calculator

import (
	"errors"
	"testing"

	"github.com/XavierBriggs/fortuna/services/betedge/pkg/models"
	"github.com/XavierBriggs/fortuna/services/betedge/pkg/oddsmath"
)

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func TestStakeDistribution(t *testing.T) {
	resp, err := StakeDistribution(models.StakeDistributionRequest{Odds: []float64{2.10, 2.20}, TotalStake: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Stakes[0] != 51.16 || resp.Stakes[1] != 48.84 {
		t.Errorf("stakes = %v, want [51.16 48.84]", resp.Stakes)
	}
	for i, r := range resp.Returns {
		if r != 107.44 {
			t.Errorf("returns[%d] = %v, want 107.44", i, r)
		}
	}
	if resp.ProfitPercentage != 7.44 || resp.GuaranteedProfit != 7.44 || resp.TotalStake != 100 {
		t.Errorf("unexpected totals %+v", resp)
	}
}

func TestStakeDistributionErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     models.StakeDistributionRequest
		wantErr error
	}{
		{name: "No arbitrage", req: models.StakeDistributionRequest{Odds: []float64{1.90, 1.90}, TotalStake: 100}, wantErr: oddsmath.ErrNoArbitrage},
		{name: "Single leg", req: models.StakeDistributionRequest{Odds: []float64{3.0}, TotalStake: 100}, wantErr: oddsmath.ErrInvalidOdds},
		{name: "Invalid price", req: models.StakeDistributionRequest{Odds: []float64{2.5, 1.0}, TotalStake: 100}, wantErr: oddsmath.ErrInvalidOdds},
		{name: "Zero stake", req: models.StakeDistributionRequest{Odds: []float64{2.1, 2.2}}, wantErr: oddsmath.ErrInvalidStake},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := StakeDistribution(tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestKelly(t *testing.T) {
	resp, err := Kelly(models.KellyRequest{Odds: 2.5, WinProbability: 0.45, Bankroll: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.FullKellyStake != 83.33 || resp.HalfKellyStake != 41.67 || resp.QuarterKelly != 20.83 {
		t.Errorf("unexpected stakes %+v", resp)
	}
	if resp.RecommendedStake != 20.83 || resp.Fraction != DefaultKellyFraction {
		t.Errorf("recommended = %v at fraction %v", resp.RecommendedStake, resp.Fraction)
	}
	if resp.KellyPercentage != 8.33 || resp.Edge != 5 || !resp.HasEdge {
		t.Errorf("unexpected edge %+v", resp)
	}
}

func TestKellyNoEdge(t *testing.T) {
	resp, err := Kelly(models.KellyRequest{Odds: 2.0, WinProbability: 0.4, Bankroll: 1000, Fraction: floatPtr(0.5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.HasEdge || resp.FullKellyStake != 0 || resp.RecommendedStake != 0 {
		t.Errorf("expected zero sizing, got %+v", resp)
	}
}

func TestKellyValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     models.KellyRequest
		wantErr error
	}{
		{name: "Bad odds", req: models.KellyRequest{Odds: 1.0, WinProbability: 0.5, Bankroll: 100}, wantErr: oddsmath.ErrInvalidOdds},
		{name: "Bad probability", req: models.KellyRequest{Odds: 2.0, WinProbability: 1.2, Bankroll: 100}, wantErr: oddsmath.ErrInvalidProbability},
		{name: "Bad bankroll", req: models.KellyRequest{Odds: 2.0, WinProbability: 0.5}, wantErr: oddsmath.ErrInvalidStake},
		{name: "Bad fraction", req: models.KellyRequest{Odds: 2.0, WinProbability: 0.5, Bankroll: 100, Fraction: floatPtr(2)}, wantErr: oddsmath.ErrInvalidProbability},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Kelly(tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpectedValue(t *testing.T) {
	resp, err := ExpectedValue(models.EVRequest{Odds: 2.8, FairOdds: floatPtr(2.5), Stake: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.EV != 12 || resp.EVPercentage != 12 {
		t.Errorf("EV = %v (%v%%), want 12", resp.EV, resp.EVPercentage)
	}
	if resp.PotentialProfit != 180 || resp.PotentialReturn != 280 {
		t.Errorf("unexpected payout %+v", resp)
	}
	if resp.ImpliedProbability != 0.3571 || resp.TrueProbability != 0.4 {
		t.Errorf("unexpected probabilities %+v", resp)
	}

	byProbability, err := ExpectedValue(models.EVRequest{Odds: 2.8, TrueProbability: floatPtr(0.4), Stake: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byProbability.EV != resp.EV {
		t.Errorf("true probability EV = %v, want %v", byProbability.EV, resp.EV)
	}

	if _, err := ExpectedValue(models.EVRequest{Odds: 2.8, Stake: 100}); !errors.Is(err, oddsmath.ErrInvalidProbability) {
		t.Errorf("missing probability should fail, got %v", err)
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name         string
		req          models.ConvertRequest
		wantDecimal  float64
		wantAmerican int
		wantProb     float64
	}{
		{name: "Decimal underdog", req: models.ConvertRequest{Decimal: floatPtr(2.5)}, wantDecimal: 2.5, wantAmerican: 150, wantProb: 0.4},
		{name: "American favourite", req: models.ConvertRequest{American: intPtr(-150)}, wantDecimal: 1.6667, wantAmerican: -150, wantProb: 0.6},
		{name: "Even money", req: models.ConvertRequest{American: intPtr(100)}, wantDecimal: 2.0, wantAmerican: 100, wantProb: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Convert(tt.req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Decimal != tt.wantDecimal || resp.American != tt.wantAmerican || resp.ImpliedProbability != tt.wantProb {
				t.Errorf("got %+v, want %v/%v/%v", resp, tt.wantDecimal, tt.wantAmerican, tt.wantProb)
			}
		})
	}

	if _, err := Convert(models.ConvertRequest{}); !errors.Is(err, oddsmath.ErrInvalidOdds) {
		t.Errorf("empty request should fail, got %v", err)
	}
	if _, err := Convert(models.ConvertRequest{American: intPtr(0)}); !errors.Is(err, oddsmath.ErrInvalidOdds) {
		t.Errorf("american 0 should fail, got %v", err)
	}
}

func TestROI(t *testing.T) {
	won, err := ROI(models.ROIRequest{Stake: 50, Odds: 3.0, Won: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if won.Profit != 100 || won.ROI != 200 {
		t.Errorf("won = %+v, want profit 100 roi 200", won)
	}

	lost, err := ROI(models.ROIRequest{Stake: 50, Odds: 3.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lost.Profit != -50 || lost.ROI != -100 {
		t.Errorf("lost = %+v, want profit -50 roi -100", lost)
	}
}
