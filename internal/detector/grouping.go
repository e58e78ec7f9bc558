package detector

import (
	"github.com/XavierBriggs/fortuna/services/betedge/pkg/models"
)

// GroupedEvent is an event's quotes indexed by market and canonical outcome.
// Markets and outcomes keep the order they were first seen in the snapshot.
type GroupedEvent struct {
	Event   models.Event
	Markets []GroupedMarket
}

// GroupedMarket holds every bookmaker quote for one market of an event
type GroupedMarket struct {
	Key      string
	Outcomes []OutcomeGroup
}

// OutcomeGroup is every (price, bookmaker) pair offering the same outcome
type OutcomeGroup struct {
	Key    models.OutcomeKey
	Quotes []models.Quote
}

// Prices returns the quoted prices in bookmaker order
func (g OutcomeGroup) Prices() []float64 {
	prices := make([]float64, len(g.Quotes))
	for i, q := range g.Quotes {
		prices[i] = q.Price
	}
	return prices
}

// Market returns the grouped market with the given key
func (e GroupedEvent) Market(key string) (GroupedMarket, bool) {
	for _, m := range e.Markets {
		if m.Key == key {
			return m, true
		}
	}
	return GroupedMarket{}, false
}

// Quotes returns the quotes for an outcome, nil when no bookmaker offers it
func (m GroupedMarket) Quotes(key models.OutcomeKey) []models.Quote {
	for _, o := range m.Outcomes {
		if o.Key == key {
			return o.Quotes
		}
	}
	return nil
}

// GroupEvent folds an event's bookmaker quotes into per-market outcome
// groups. Only the first market with a given key is read from each
// bookmaker, and bookmakers that do not quote a market are skipped.
func GroupEvent(event models.Event) GroupedEvent {
	type marketAcc struct {
		outcomes []OutcomeGroup
		index    map[models.OutcomeKey]int
	}

	var marketOrder []string
	markets := make(map[string]*marketAcc)

	for _, book := range event.Bookmakers {
		seen := make(map[string]bool, len(book.Markets))

		for _, market := range book.Markets {
			if seen[market.Key] {
				continue
			}
			seen[market.Key] = true

			acc, ok := markets[market.Key]
			if !ok {
				acc = &marketAcc{index: make(map[models.OutcomeKey]int)}
				markets[market.Key] = acc
				marketOrder = append(marketOrder, market.Key)
			}

			for _, outcome := range market.Outcomes {
				key := outcome.Key()
				quote := models.Quote{
					Price:        outcome.Price,
					Bookmaker:    book.Title,
					BookmakerKey: book.Key,
				}

				i, ok := acc.index[key]
				if !ok {
					i = len(acc.outcomes)
					acc.index[key] = i
					acc.outcomes = append(acc.outcomes, OutcomeGroup{Key: key})
				}
				acc.outcomes[i].Quotes = append(acc.outcomes[i].Quotes, quote)
			}
		}
	}

	grouped := GroupedEvent{
		Event:   event,
		Markets: make([]GroupedMarket, 0, len(marketOrder)),
	}
	for _, key := range marketOrder {
		grouped.Markets = append(grouped.Markets, GroupedMarket{
			Key:      key,
			Outcomes: markets[key].outcomes,
		})
	}

	return grouped
}
