package featuretour

import (
	"errors"
	"testing"
)

type staticDefinition struct {
	id    string
	order int
	err   error
}

func (d staticDefinition) TourID() string      { return d.id }
func (d staticDefinition) TourName() string    { return "Tour " + d.id }
func (d staticDefinition) Description() string { return "" }
func (d staticDefinition) DisplayOrder() int   { return d.order }

func (d staticDefinition) CreateTour() (*Tour, error) {
	if d.err != nil {
		return nil, d.err
	}
	return New(d.TourName()).Step("a", "A", "a").Build()
}

func TestCatalog_ListOrdersByDisplayOrder(t *testing.T) {
	c, err := NewCatalog(
		staticDefinition{id: "c", order: 2},
		staticDefinition{id: "b", order: 1},
		staticDefinition{id: "a", order: 2},
	)
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}

	var got []string
	for _, d := range c.List() {
		got = append(got, d.TourID())
	}
	want := []string{"b", "a", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order %v, want %v", got, want)
		}
	}
	if c.Len() != 3 {
		t.Fatalf("expected 3 definitions, got %d", c.Len())
	}
}

func TestCatalog_RegisterValidation(t *testing.T) {
	c, _ := NewCatalog()

	if err := c.Register(nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation failure for nil, got %v", err)
	}
	if err := c.Register(staticDefinition{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation failure for empty id, got %v", err)
	}
	if err := c.Register(staticDefinition{id: "x"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := c.Register(staticDefinition{id: "x"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected duplicate to fail, got %v", err)
	}
}

func TestCatalog_CreateTour(t *testing.T) {
	boom := errors.New("boom")
	c, _ := NewCatalog(staticDefinition{id: "ok"}, staticDefinition{id: "bad", err: boom})

	tour, err := c.CreateTour("ok")
	if err != nil || tour.Name() != "Tour ok" {
		t.Fatalf("unexpected result %v, %v", tour, err)
	}
	if _, err := c.CreateTour("bad"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped definition error, got %v", err)
	}
	if _, err := c.CreateTour("missing"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}
