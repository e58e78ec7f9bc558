package testutil

import (
	"strings"
	"time"

	"github.com/XavierBriggs/fortuna/services/betedge/pkg/contracts"
	"github.com/XavierBriggs/fortuna/services/betedge/pkg/models"
)

// FixedNow is the reference detection time used across tests
var FixedNow = time.Date(2026, time.January, 10, 18, 0, 0, 0, time.UTC)

// FixedClock returns a clock stuck at t
func FixedClock(t time.Time) contracts.Clock {
	return contracts.ClockFunc(func() time.Time { return t })
}

// EventFixture creates a test Event with sensible defaults and no bookmakers
func EventFixture(overrides ...func(*models.Event)) models.Event {
	event := models.Event{
		ID:           "test-event-1",
		SportKey:     "basketball_nba",
		SportTitle:   "NBA",
		CommenceTime: FixedNow.Add(2 * time.Hour),
		HomeTeam:     "Los Angeles Lakers",
		AwayTeam:     "Boston Celtics",
	}

	// Apply overrides
	for _, override := range overrides {
		override(&event)
	}

	return event
}

// WithBooks appends bookmakers to an event fixture
func WithBooks(books ...models.BookmakerQuote) func(*models.Event) {
	return func(e *models.Event) {
		e.Bookmakers = append(e.Bookmakers, books...)
	}
}

// Book creates a bookmaker quoting the given markets. The title is derived
// from the key ("draftkings" → "Draftkings").
func Book(key string, markets ...models.Market) models.BookmakerQuote {
	return models.BookmakerQuote{
		Key:        key,
		Title:      strings.ToUpper(key[:1]) + key[1:],
		LastUpdate: FixedNow.Add(-30 * time.Second),
		Markets:    markets,
	}
}

// H2H creates a head-to-head market with home and away prices
func H2H(home, away float64) models.Market {
	return models.Market{
		Key: "h2h",
		Outcomes: []models.Outcome{
			{Name: "Los Angeles Lakers", Price: home},
			{Name: "Boston Celtics", Price: away},
		},
	}
}

// Totals creates an over/under market at the given line
func Totals(point, over, under float64) models.Market {
	return models.Market{
		Key: "totals",
		Outcomes: []models.Outcome{
			{Name: "Over", Price: over, Point: Point(point)},
			{Name: "Under", Price: under, Point: Point(point)},
		},
	}
}

// Point returns a pointer to p
func Point(p float64) *float64 {
	return &p
}
