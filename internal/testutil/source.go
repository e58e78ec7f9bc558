package testutil

import (
	"context"
	"sync"

	"github.com/XavierBriggs/fortuna/services/betedge/pkg/models"
)

// StubSource is an in-memory SnapshotSource keyed by sport
type StubSource struct {
	mu      sync.Mutex
	Events  map[string][]models.Event
	Errors  map[string]error
	PingErr error
	Calls   []string
}

// NewStubSource creates an empty stub source
func NewStubSource() *StubSource {
	return &StubSource{
		Events: map[string][]models.Event{},
		Errors: map[string]error{},
	}
}

// GetEvents returns the configured events or error for the sport
func (s *StubSource) GetEvents(ctx context.Context, sportKey string, markets []string) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls = append(s.Calls, sportKey)
	if err := s.Errors[sportKey]; err != nil {
		return nil, err
	}
	return s.Events[sportKey], nil
}

// GetSports lists the sports with configured events
func (s *StubSource) GetSports(ctx context.Context) ([]models.Sport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sports := make([]models.Sport, 0, len(s.Events))
	for key := range s.Events {
		sports = append(sports, models.Sport{Key: key, Title: key, Active: true})
	}
	return sports, nil
}

// Ping returns PingErr
func (s *StubSource) Ping(ctx context.Context) error {
	return s.PingErr
}

// CallCount returns how many GetEvents calls were made
func (s *StubSource) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}
