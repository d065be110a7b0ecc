package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/petrijr/featuretour/pkg/api"
)

// InMemoryStore is a simple, goroutine-safe TourStore backed by a map.
// Documents are stored encoded so callers never share step slices with it.
type InMemoryStore struct {
	mu    sync.RWMutex
	tours map[string][]byte
}

// NewInMemoryStore creates a new InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		tours: make(map[string][]byte),
	}
}

// Ensure InMemoryStore implements TourStore.
var _ TourStore = (*InMemoryStore)(nil)

func (s *InMemoryStore) SaveTour(ctx context.Context, doc api.TourDocument) error {
	if err := validateForSave(doc); err != nil {
		return err
	}
	data, err := EncodeDocument(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tours[doc.TourID] = data
	return nil
}

func (s *InMemoryStore) GetTour(ctx context.Context, tourID string) (api.TourDocument, error) {
	s.mu.RLock()
	data, ok := s.tours[tourID]
	s.mu.RUnlock()

	if !ok {
		return api.TourDocument{}, ErrTourNotFound
	}
	return DecodeDocument(data)
}

func (s *InMemoryStore) ListTours(ctx context.Context) ([]api.TourDocument, error) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.tours))
	for id := range s.tours {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	encoded := make([][]byte, 0, len(ids))
	for _, id := range ids {
		encoded = append(encoded, s.tours[id])
	}
	s.mu.RUnlock()

	out := make([]api.TourDocument, 0, len(encoded))
	for _, data := range encoded {
		doc, err := DecodeDocument(data)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (s *InMemoryStore) DeleteTour(ctx context.Context, tourID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tours[tourID]; !ok {
		return ErrTourNotFound
	}
	delete(s.tours, tourID)
	return nil
}
