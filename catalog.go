package featuretour

import (
	"fmt"
	"sort"
	"sync"

	"github.com/petrijr/featuretour/pkg/api"
)

// Catalog holds the tour definitions a host offers, for example in a tour
// selection menu.
type Catalog struct {
	mu   sync.RWMutex
	defs map[string]TourDefinition
}

// NewCatalog returns a catalog containing defs.
func NewCatalog(defs ...TourDefinition) (*Catalog, error) {
	c := &Catalog{defs: make(map[string]TourDefinition)}
	for _, d := range defs {
		if err := c.Register(d); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Register adds def. Tour ids must be unique within the catalog.
func (c *Catalog) Register(def TourDefinition) error {
	if def == nil {
		return api.NewValidationError("definition", "must not be nil")
	}
	id := def.TourID()
	if id == "" {
		return api.NewValidationError("tourId", "must not be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.defs[id]; exists {
		return api.NewValidationError("tourId", fmt.Sprintf("%q is already registered", id))
	}
	c.defs[id] = def
	return nil
}

// Get returns the definition registered under tourID.
func (c *Catalog) Get(tourID string) (TourDefinition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.defs[tourID]
	return d, ok
}

// List returns the definitions ordered by DisplayOrder, then TourID.
func (c *Catalog) List() []TourDefinition {
	c.mu.RLock()
	out := make([]TourDefinition, 0, len(c.defs))
	for _, d := range c.defs {
		out = append(out, d)
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder() != out[j].DisplayOrder() {
			return out[i].DisplayOrder() < out[j].DisplayOrder()
		}
		return out[i].TourID() < out[j].TourID()
	})
	return out
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.defs)
}

// CreateTour builds the tour registered under tourID.
func (c *Catalog) CreateTour(tourID string) (*Tour, error) {
	d, ok := c.Get(tourID)
	if !ok {
		return nil, api.NewValidationError("tourId", fmt.Sprintf("unknown tour %q", tourID))
	}
	t, err := d.CreateTour()
	if err != nil {
		return nil, fmt.Errorf("create tour %q: %w", tourID, err)
	}
	return t, nil
}

// DocumentDefinition adapts a stored TourDocument to TourDefinition.
type DocumentDefinition struct {
	Doc   TourDocument
	Order int
	Desc  string
}

func (d DocumentDefinition) TourID() string             { return d.Doc.TourID }
func (d DocumentDefinition) TourName() string           { return d.Doc.TourName }
func (d DocumentDefinition) Description() string        { return d.Desc }
func (d DocumentDefinition) DisplayOrder() int          { return d.Order }
func (d DocumentDefinition) CreateTour() (*Tour, error) { return d.Doc.ToTour() }
