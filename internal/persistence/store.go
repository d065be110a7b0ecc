package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/petrijr/featuretour/pkg/api"
)

var (
	// ErrTourNotFound is returned when a tour document is not found.
	ErrTourNotFound = errors.New("tour not found")
)

// TourStore handles storage of tour documents keyed by TourID.
type TourStore interface {
	// SaveTour inserts or replaces the document with the same TourID.
	SaveTour(ctx context.Context, doc api.TourDocument) error
	GetTour(ctx context.Context, tourID string) (api.TourDocument, error)
	// ListTours returns every stored document ordered by TourID.
	ListTours(ctx context.Context) ([]api.TourDocument, error)
	DeleteTour(ctx context.Context, tourID string) error
}

func validateForSave(doc api.TourDocument) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("save tour %q: %w", doc.TourID, err)
	}
	return nil
}
