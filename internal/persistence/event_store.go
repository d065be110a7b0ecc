package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/petrijr/featuretour/pkg/api"
)

// EventStore is an append-only history store for tour run events.
type EventStore interface {
	AppendEvent(ctx context.Context, ev api.TourEvent) error
	ListEvents(ctx context.Context, runID string) ([]api.TourEvent, error)
}

// NoopEventStore discards all events.
type NoopEventStore struct{}

func (NoopEventStore) AppendEvent(ctx context.Context, ev api.TourEvent) error { return nil }
func (NoopEventStore) ListEvents(ctx context.Context, runID string) ([]api.TourEvent, error) {
	return nil, nil
}

// InMemoryEventStore keeps events per run in append order.
type InMemoryEventStore struct {
	mu     sync.RWMutex
	events map[string][]api.TourEvent
}

var _ EventStore = (*InMemoryEventStore)(nil)

func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{events: make(map[string][]api.TourEvent)}
}

func (s *InMemoryEventStore) AppendEvent(ctx context.Context, ev api.TourEvent) error {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[ev.RunID] = append(s.events[ev.RunID], ev)
	return nil
}

func (s *InMemoryEventStore) ListEvents(ctx context.Context, runID string) ([]api.TourEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]api.TourEvent(nil), s.events[runID]...), nil
}
