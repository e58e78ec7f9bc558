package contracts

import (
	"context"
	"time"

	"github.com/XavierBriggs/fortuna/services/betedge/pkg/models"
)

// SnapshotSource supplies odds snapshots to the detection engine
type SnapshotSource interface {
	// GetEvents returns every upcoming event for a sport with the requested markets quoted
	GetEvents(ctx context.Context, sportKey string, markets []string) ([]models.Event, error)

	// GetSports returns the sports the source can serve
	GetSports(ctx context.Context) ([]models.Sport, error)

	// Ping checks the source is reachable
	Ping(ctx context.Context) error
}

// Clock provides the current time so detection and validity checks stay deterministic under test
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface
type ClockFunc func() time.Time

// Now returns the function's result
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the wall clock
var SystemClock Clock = ClockFunc(time.Now)
