package featuretour

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/petrijr/featuretour/internal/persistence"
	"github.com/petrijr/featuretour/pkg/api"
)

// Re-export the store contracts so hosts can pass them around.

type (
	TourStore  = persistence.TourStore
	EventStore = persistence.EventStore
	TourEvent  = api.TourEvent
)

var ErrTourNotFound = persistence.ErrTourNotFound

// StoreBundle pairs a tour document store with a run history store.
type StoreBundle struct {
	Tours  TourStore
	Events EventStore
}

// NewInMemoryBundle returns a non-durable bundle, useful for tests.
func NewInMemoryBundle() *StoreBundle {
	return &StoreBundle{
		Tours:  persistence.NewInMemoryStore(),
		Events: persistence.NewInMemoryEventStore(),
	}
}

// NewSQLiteBundle constructs tour and event stores sharing the same SQLite
// database. Tables are created if missing.
//
// Typical usage:
//
//	db, _ := sql.Open("sqlite", "file:tours.db?_journal=WAL")
//	bundle, err := featuretour.NewSQLiteBundle(db)
//	session := featuretour.NewSession(featuretour.SessionConfig{History: bundle.Events})
func NewSQLiteBundle(db *sql.DB) (*StoreBundle, error) {
	tours, err := persistence.NewSQLiteTourStore(db)
	if err != nil {
		return nil, err
	}
	events, err := persistence.NewSQLiteEventStore(db)
	if err != nil {
		return nil, err
	}
	return &StoreBundle{Tours: tours, Events: events}, nil
}

// SaveTour stores tour under tourID, replacing any previous version.
func (b *StoreBundle) SaveTour(ctx context.Context, tourID string, tour *Tour) error {
	doc, err := api.DocumentFromTour(tourID, tour)
	if err != nil {
		return err
	}
	return b.Tours.SaveTour(ctx, doc)
}

// LoadTour reads and builds the tour stored under tourID.
func (b *StoreBundle) LoadTour(ctx context.Context, tourID string) (*Tour, error) {
	doc, err := b.Tours.GetTour(ctx, tourID)
	if err != nil {
		return nil, err
	}
	return doc.ToTour()
}

// LoadCatalog registers every stored tour in c, in TourID order, and
// returns how many were added.
func (b *StoreBundle) LoadCatalog(ctx context.Context, c *Catalog) (int, error) {
	docs, err := b.Tours.ListTours(ctx)
	if err != nil {
		return 0, fmt.Errorf("list tours: %w", err)
	}
	for i, doc := range docs {
		if err := c.Register(DocumentDefinition{Doc: doc, Order: i + 1}); err != nil {
			return i, err
		}
	}
	return len(docs), nil
}

// History returns the recorded events of one run.
func (b *StoreBundle) History(ctx context.Context, runID string) ([]TourEvent, error) {
	return b.Events.ListEvents(ctx, runID)
}
