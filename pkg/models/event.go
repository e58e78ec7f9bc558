package models

import (
	"strconv"
	"time"
)

// Sport describes a sport offered by the odds provider
type Sport struct {
	Key          string `json:"key"`
	Group        string `json:"group"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Active       bool   `json:"active"`
	HasOutrights bool   `json:"has_outrights"`
}

// Event is a single fixture with every bookmaker's quoted markets.
// Events are treated as immutable once read from a snapshot.
type Event struct {
	ID           string           `json:"id"`
	SportKey     string           `json:"sport_key"`
	SportTitle   string           `json:"sport_title"`
	CommenceTime time.Time        `json:"commence_time"`
	HomeTeam     string           `json:"home_team"`
	AwayTeam     string           `json:"away_team"`
	Bookmakers   []BookmakerQuote `json:"bookmakers"`
}

// BookmakerQuote holds the markets one bookmaker quotes for an event
type BookmakerQuote struct {
	Key        string    `json:"key"`
	Title      string    `json:"title"`
	LastUpdate time.Time `json:"last_update"`
	Markets    []Market  `json:"markets"`
}

// Market is a market type (h2h, spreads, totals) and its outcomes
type Market struct {
	Key        string    `json:"key"`
	LastUpdate time.Time `json:"last_update,omitempty"`
	Outcomes   []Outcome `json:"outcomes"`
}

// Outcome is a single priced selection
type Outcome struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`           // Decimal odds, always > 1.0
	Point *float64 `json:"point,omitempty"` // For spreads/totals
}

// Key returns the canonical identity of the outcome
func (o Outcome) Key() OutcomeKey {
	if o.Point == nil {
		return OutcomeKey{Name: o.Name}
	}
	return OutcomeKey{Name: o.Name, Point: *o.Point, HasPoint: true}
}

// OutcomeKey identifies "the same bet" across bookmakers. Two outcomes match
// only if name and point match exactly, and an outcome with a point never
// matches one without.
type OutcomeKey struct {
	Name     string
	Point    float64
	HasPoint bool
}

// PointPtr returns the point as a pointer, nil when the key has none
func (k OutcomeKey) PointPtr() *float64 {
	if !k.HasPoint {
		return nil
	}
	p := k.Point
	return &p
}

// String renders the key for display and opportunity ids
func (k OutcomeKey) String() string {
	if !k.HasPoint {
		return k.Name
	}
	return k.Name + " " + strconv.FormatFloat(k.Point, 'f', -1, 64)
}

// Quote is one bookmaker's price for an outcome
type Quote struct {
	Price        float64 `json:"price"`
	Bookmaker    string  `json:"bookmaker"`
	BookmakerKey string  `json:"bookmaker_key"`
}
