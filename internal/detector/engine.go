package detector

import (
	"sort"
	"time"

	"github.com/XavierBriggs/fortuna/services/betedge/pkg/contracts"
	"github.com/XavierBriggs/fortuna/services/betedge/pkg/models"
)

// Recorder receives detection metrics
type Recorder interface {
	ObserveScan(kind models.OpportunityType, events, found int, elapsed time.Duration)
}

// Engine runs the detectors over a snapshot of events and ranks the results
type Engine struct {
	config   Config
	clock    contracts.Clock
	recorder Recorder

	arbitrageDetector  *ArbitrageDetector
	positiveEVDetector *PositiveEVDetector
}

// Option configures an Engine
type Option func(*Engine)

// WithClock sets the clock used to stamp opportunities
func WithClock(clock contracts.Clock) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithRecorder sets the metrics recorder
func WithRecorder(recorder Recorder) Option {
	return func(e *Engine) {
		e.recorder = recorder
	}
}

// NewEngine creates a new detection engine
func NewEngine(config Config, opts ...Option) *Engine {
	e := &Engine{
		config:             config,
		clock:              contracts.SystemClock,
		arbitrageDetector:  NewArbitrageDetector(config),
		positiveEVDetector: NewPositiveEVDetector(config),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Config returns the engine's detection constants
func (e *Engine) Config() Config {
	return e.config
}

// DetectArbitrage finds arbitrage across every event and ranks it by profit,
// highest first. Equal profits keep snapshot order.
func (e *Engine) DetectArbitrage(events []models.Event, minProfit float64) []models.ArbitrageOpportunity {
	start := time.Now()
	now := e.clock.Now()

	opportunities := make([]models.ArbitrageOpportunity, 0)
	for _, event := range events {
		opportunities = append(opportunities, e.arbitrageDetector.Detect(GroupEvent(event), minProfit, now)...)
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].ProfitPercentage > opportunities[j].ProfitPercentage
	})

	e.observe(models.OpportunityTypeArbitrage, len(events), len(opportunities), time.Since(start))
	return opportunities
}

// DetectPositiveEV finds +EV quotes across every event and ranks them by EV,
// highest first. Equal EVs keep snapshot order.
func (e *Engine) DetectPositiveEV(events []models.Event, minEV float64) []models.PositiveEVBet {
	start := time.Now()
	now := e.clock.Now()

	bets := make([]models.PositiveEVBet, 0)
	for _, event := range events {
		bets = append(bets, e.positiveEVDetector.Detect(GroupEvent(event), minEV, now)...)
	}

	sort.SliceStable(bets, func(i, j int) bool {
		return bets[i].EVPercentage > bets[j].EVPercentage
	})

	e.observe(models.OpportunityTypePositiveEV, len(events), len(bets), time.Since(start))
	return bets
}

func (e *Engine) observe(kind models.OpportunityType, events, found int, elapsed time.Duration) {
	if e.recorder == nil {
		return
	}
	e.recorder.ObserveScan(kind, events, found, elapsed)
}
