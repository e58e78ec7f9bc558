// Package ingest fetches odds snapshots for a set of sports and cleans them
// before detection.
package ingest

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/XavierBriggs/fortuna/services/betedge/pkg/contracts"
	"github.com/XavierBriggs/fortuna/services/betedge/pkg/models"
)

// Recorder receives fetch and validation metrics
type Recorder interface {
	ObserveFetch(sport string, err error, elapsed time.Duration)
	AddDroppedQuotes(n int)
}

// Snapshot is the merged, validated result of one multi-sport fetch
type Snapshot struct {
	Events []models.Event
	// Failed lists sports whose fetch failed and contributed no events
	Failed []string
}

// Service fans snapshot fetches out per sport
type Service struct {
	source      contracts.SnapshotSource
	concurrency int
	recorder    Recorder
	logger      *zap.Logger
}

// NewService creates an ingest service. concurrency bounds in-flight fetches.
func NewService(source contracts.SnapshotSource, concurrency int, recorder Recorder, logger *zap.Logger) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:      source,
		concurrency: concurrency,
		recorder:    recorder,
		logger:      logger.Named("ingest"),
	}
}

// Fetch retrieves every sport concurrently. A failing sport is logged and
// skipped; events are returned in the order sports were given.
func (s *Service) Fetch(ctx context.Context, sports, markets []string) Snapshot {
	perSport := make([][]models.Event, len(sports))
	failed := make([]bool, len(sports))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, sport := range sports {
		i, sport := i, sport
		g.Go(func() error {
			start := time.Now()
			events, err := s.source.GetEvents(gctx, sport, markets)
			elapsed := time.Since(start)
			if s.recorder != nil {
				s.recorder.ObserveFetch(sport, err, elapsed)
			}
			if err != nil {
				failed[i] = true
				s.logger.Warn("snapshot fetch failed",
					zap.String("sport", sport),
					zap.Duration("elapsed", elapsed),
					zap.Error(err),
				)
				return nil
			}

			perSport[i] = events
			s.logger.Debug("snapshot fetched",
				zap.String("sport", sport),
				zap.Int("events", len(events)),
				zap.Duration("elapsed", elapsed),
			)
			return nil
		})
	}
	_ = g.Wait()

	snapshot := Snapshot{Events: []models.Event{}}
	dropped := 0
	for i, events := range perSport {
		if failed[i] {
			snapshot.Failed = append(snapshot.Failed, sports[i])
			continue
		}
		for _, event := range events {
			clean, n := ValidateEvent(event)
			dropped += n
			snapshot.Events = append(snapshot.Events, clean)
		}
	}

	if dropped > 0 {
		s.logger.Debug("dropped invalid quotes", zap.Int("count", dropped))
		if s.recorder != nil {
			s.recorder.AddDroppedQuotes(dropped)
		}
	}

	return snapshot
}

// ValidateEvent returns a copy of the event without outcomes priced at or
// below 1.0, then without markets and bookmakers left empty. The second
// result is the number of outcomes dropped.
func ValidateEvent(event models.Event) (models.Event, int) {
	dropped := 0
	clean := event
	clean.Bookmakers = make([]models.BookmakerQuote, 0, len(event.Bookmakers))

	for _, book := range event.Bookmakers {
		cleanBook := book
		cleanBook.Markets = make([]models.Market, 0, len(book.Markets))

		for _, market := range book.Markets {
			cleanMarket := market
			cleanMarket.Outcomes = make([]models.Outcome, 0, len(market.Outcomes))

			for _, outcome := range market.Outcomes {
				if !validPrice(outcome.Price) {
					dropped++
					continue
				}
				cleanMarket.Outcomes = append(cleanMarket.Outcomes, outcome)
			}

			if len(cleanMarket.Outcomes) > 0 {
				cleanBook.Markets = append(cleanBook.Markets, cleanMarket)
			}
		}

		if len(cleanBook.Markets) > 0 {
			clean.Bookmakers = append(clean.Bookmakers, cleanBook)
		}
	}

	return clean, dropped
}

func validPrice(price float64) bool {
	return price > 1.0 && !math.IsNaN(price) && !math.IsInf(price, 0)
}
