package oddsmath_test

import (
	"math"
	"testing"

	"github.com/XavierBriggs/fortuna/services/betedge/pkg/oddsmath"
)

func TestExpectedValue(t *testing.T) {
	tests := []struct {
		name      string
		decimal   float64
		trueProb  float64
		stake     float64
		wantEV    float64
		wantEVPct float64
	}{
		{
			name:      "Fair 2.50 priced at 2.80",
			decimal:   2.80,
			trueProb:  1 / 2.50,
			stake:     100,
			wantEV:    12.0,
			wantEVPct: 12.0,
		},
		{
			name:      "Fair price has zero EV",
			decimal:   2.0,
			trueProb:  0.5,
			stake:     100,
			wantEV:    0,
			wantEVPct: 0,
		},
		{
			name:      "Negative EV",
			decimal:   1.80,
			trueProb:  0.5,
			stake:     50,
			wantEV:    -5.0,
			wantEVPct: -10.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := oddsmath.ExpectedValue(tt.decimal, tt.trueProb, tt.stake)

			if math.Abs(got.EV-tt.wantEV) > 1e-9 {
				t.Errorf("EV = %f, want %f", got.EV, tt.wantEV)
			}
			if math.Abs(got.EVPercentage-tt.wantEVPct) > 1e-9 {
				t.Errorf("EVPercentage = %f, want %f", got.EVPercentage, tt.wantEVPct)
			}
			if got.Loss != tt.stake {
				t.Errorf("Loss = %f, want %f", got.Loss, tt.stake)
			}
		})
	}
}

func TestCalculateROI(t *testing.T) {
	if got := oddsmath.CalculateROI(100, 2.5, true); math.Abs(got-150) > 1e-9 {
		t.Errorf("won ROI = %f, want 150", got)
	}
	if got := oddsmath.CalculateROI(100, 2.5, false); got != -100 {
		t.Errorf("lost ROI = %f, want -100", got)
	}
}

func TestKelly(t *testing.T) {
	const (
		odds     = 2.5
		winProb  = 0.45
		bankroll = 1000.0
	)

	edge := winProb - 1/odds
	if math.Abs(edge-0.05) > 1e-9 {
		t.Errorf("edge = %f, want 0.05", edge)
	}

	full := oddsmath.KellyPercentage(odds, winProb)
	if math.Abs(full-0.083333) > 0.0001 {
		t.Errorf("KellyPercentage = %f, want 0.0833", full)
	}

	tests := []struct {
		name     string
		fraction float64
		want     float64
	}{
		{name: "Full Kelly", fraction: 1.0, want: 83.33},
		{name: "Half Kelly", fraction: 0.5, want: 41.67},
		{name: "Quarter Kelly", fraction: 0.25, want: 20.83},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := oddsmath.KellyStake(odds, winProb, bankroll, tt.fraction)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("KellyStake = %f, want %f", got, tt.want)
			}
		})
	}

	t.Run("No edge sizes to zero", func(t *testing.T) {
		if got := oddsmath.KellyStake(2.0, 0.45, bankroll, 1.0); got != 0 {
			t.Errorf("KellyStake = %f, want 0", got)
		}
	})
}

func TestSuggestedStake(t *testing.T) {
	tests := []struct {
		name     string
		decimal  float64
		trueProb float64
		fraction float64
		want     float64
	}{
		{name: "Quarter of the edge in units", decimal: 2.8, trueProb: 0.4, fraction: 0.25, want: (0.4 - 1/2.8) * 0.25 * 100},
		{name: "No edge", decimal: 2.0, trueProb: 0.4, fraction: 0.25, want: 0},
		{name: "Capped at limit", decimal: 10.0, trueProb: 0.95, fraction: 1.0, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := oddsmath.SuggestedStake(tt.decimal, tt.trueProb, tt.fraction, 100, 50)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SuggestedStake = %f, want %f", got, tt.want)
			}
		})
	}
}
