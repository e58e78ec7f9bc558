package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/XavierBriggs/fortuna/services/betedge/pkg/models"
	"github.com/XavierBriggs/fortuna/services/betedge/pkg/oddsmath"
)

// Client reads the latest odds snapshot from the Alexandria odds store.
// It satisfies contracts.SnapshotSource.
type Client struct {
	db *sql.DB
}

// NewClient creates a new Alexandria DB client
func NewClient(dsn string) (*Client, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{db: db}, nil
}

// oddsRow is one latest price joined with its event
type oddsRow struct {
	EventID      string
	SportKey     string
	HomeTeam     string
	AwayTeam     string
	CommenceTime time.Time
	BookKey      string
	BookTitle    string
	MarketKey    string
	OutcomeName  string
	Price        int // American odds
	Point        sql.NullFloat64
	LastUpdate   time.Time
}

// GetEvents returns upcoming events for a sport with the latest odds for the
// requested markets. Prices are stored as American odds and converted to decimal.
func (c *Client) GetEvents(ctx context.Context, sportKey string, markets []string) ([]models.Event, error) {
	query := `
		SELECT e.event_id, e.sport_key, e.home_team, e.away_team, e.commence_time,
		       o.book_key, COALESCE(b.display_name, o.book_key), o.market_key,
		       o.outcome_name, o.price, o.point, o.vendor_last_update
		FROM events e
		JOIN odds_raw o ON o.event_id = e.event_id
		LEFT JOIN books b ON b.book_key = o.book_key
		WHERE o.is_latest = true
		  AND e.sport_key = $1
		  AND o.market_key = ANY($2)
		  AND e.commence_time > NOW()
		ORDER BY e.commence_time ASC, e.event_id, o.book_key, o.market_key, o.outcome_name, o.point
	`

	rows, err := c.db.QueryContext(ctx, query, sportKey, pq.Array(markets))
	if err != nil {
		return nil, fmt.Errorf("query odds: %w", err)
	}
	defer rows.Close()

	var records []oddsRow
	for rows.Next() {
		var r oddsRow
		if err := rows.Scan(
			&r.EventID, &r.SportKey, &r.HomeTeam, &r.AwayTeam, &r.CommenceTime,
			&r.BookKey, &r.BookTitle, &r.MarketKey,
			&r.OutcomeName, &r.Price, &r.Point, &r.LastUpdate,
		); err != nil {
			return nil, fmt.Errorf("scan odds: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate odds: %w", err)
	}

	return assembleEvents(records), nil
}

// GetSports returns the sports that have upcoming events
func (c *Client) GetSports(ctx context.Context) ([]models.Sport, error) {
	query := `
		SELECT DISTINCT sport_key
		FROM events
		WHERE commence_time > NOW()
		ORDER BY sport_key
	`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query sports: %w", err)
	}
	defer rows.Close()

	var sports []models.Sport
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan sport: %w", err)
		}
		sports = append(sports, models.Sport{Key: key, Title: key, Active: true})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sports: %w", err)
	}

	return sports, nil
}

// Ping checks database connectivity
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close closes the database connection
func (c *Client) Close() error {
	return c.db.Close()
}

// assembleEvents folds ordered rows into events. Event, bookmaker and market
// order follow first appearance. Rows with unconvertible prices are skipped.
func assembleEvents(records []oddsRow) []models.Event {
	events := []models.Event{}
	eventIdx := map[string]int{}
	bookIdx := map[string]map[string]int{}

	for _, r := range records {
		price, err := oddsmath.AmericanToDecimal(r.Price)
		if err != nil {
			continue
		}

		ei, ok := eventIdx[r.EventID]
		if !ok {
			ei = len(events)
			eventIdx[r.EventID] = ei
			bookIdx[r.EventID] = map[string]int{}
			events = append(events, models.Event{
				ID:           r.EventID,
				SportKey:     r.SportKey,
				SportTitle:   r.SportKey,
				CommenceTime: r.CommenceTime,
				HomeTeam:     r.HomeTeam,
				AwayTeam:     r.AwayTeam,
			})
		}
		event := &events[ei]

		bi, ok := bookIdx[r.EventID][r.BookKey]
		if !ok {
			bi = len(event.Bookmakers)
			bookIdx[r.EventID][r.BookKey] = bi
			event.Bookmakers = append(event.Bookmakers, models.BookmakerQuote{
				Key:   r.BookKey,
				Title: r.BookTitle,
			})
		}
		book := &event.Bookmakers[bi]
		if r.LastUpdate.After(book.LastUpdate) {
			book.LastUpdate = r.LastUpdate
		}

		mi := -1
		for i := range book.Markets {
			if book.Markets[i].Key == r.MarketKey {
				mi = i
				break
			}
		}
		if mi < 0 {
			mi = len(book.Markets)
			book.Markets = append(book.Markets, models.Market{Key: r.MarketKey})
		}
		market := &book.Markets[mi]
		if r.LastUpdate.After(market.LastUpdate) {
			market.LastUpdate = r.LastUpdate
		}

		outcome := models.Outcome{Name: r.OutcomeName, Price: price}
		if r.Point.Valid {
			p := r.Point.Float64
			outcome.Point = &p
		}
		market.Outcomes = append(market.Outcomes, outcome)
	}

	return events
}
