package api

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Tour is a named, ordered sequence of steps. It is a value object: building
// it has no side effects and its steps cannot be changed afterwards.
type Tour struct {
	name                  string
	showNextButtonDefault bool
	steps                 []Step
}

// TourOption customizes a Tour built by NewTour.
type TourOption func(*Tour)

// WithShowNextButtonDefault sets the tour-level next button default
// (true unless overridden).
func WithShowNextButtonDefault(show bool) TourOption {
	return func(t *Tour) { t.showNextButtonDefault = show }
}

// NewTour validates and builds a tour. The steps slice is copied. All step
// problems are reported together.
func NewTour(name string, steps []Step, opts ...TourOption) (*Tour, error) {
	t := &Tour{
		name:                  name,
		showNextButtonDefault: true,
		steps:                 make([]Step, len(steps)),
	}
	for i, s := range steps {
		t.steps[i] = s.clone()
	}
	for _, opt := range opts {
		opt(t)
	}

	var errs error
	if strings.TrimSpace(name) == "" {
		errs = multierr.Append(errs, NewValidationError("name", "must not be empty"))
	}
	if len(steps) == 0 {
		errs = multierr.Append(errs, NewValidationError("steps", "tour must have at least one step"))
	}
	for i, s := range t.steps {
		if err := s.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("step %d: %w", i, err))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return t, nil
}

func (t *Tour) Name() string { return t.name }

func (t *Tour) ShowNextButtonDefault() bool { return t.showNextButtonDefault }

// Len returns the number of steps.
func (t *Tour) Len() int { return len(t.steps) }

// Step returns the step at index i.
func (t *Tour) Step(i int) Step { return t.steps[i].clone() }

// Steps returns a copy of the step list.
func (t *Tour) Steps() []Step {
	out := make([]Step, len(t.steps))
	for i, s := range t.steps {
		out[i] = s.clone()
	}
	return out
}

// Start hands the tour to nav. It is shorthand for nav.Start.
func (t *Tour) Start(ctx context.Context, nav Navigator) error {
	return nav.Start(ctx, t)
}

// TourDefinition is implemented by declarative tour providers, including
// the code emitted by the recorder.
type TourDefinition interface {
	TourID() string
	TourName() string
	Description() string
	DisplayOrder() int
	CreateTour() (*Tour, error)
}
