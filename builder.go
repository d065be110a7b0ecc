package featuretour

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/petrijr/featuretour/pkg/api"
)

// TourBuilder provides a fluent API for defining tours:
//
//	tour, err := featuretour.New("Introduction").
//	    Step("openButton", "Open", "Opens a document", featuretour.WithPlacement(featuretour.PlacementBottomLeft)).
//	    Step("saveButton", "Save", "Saves the document").
//	    Build()
//
// Step problems are collected and reported together by Build.
type TourBuilder struct {
	name     string
	showNext bool
	steps    []api.Step
	errs     error
}

// New creates a new tour builder with the given name.
func New(name string) *TourBuilder {
	return &TourBuilder{
		name:     name,
		showNext: true,
		steps:    make([]api.Step, 0),
	}
}

// Name returns the tour name.
func (b *TourBuilder) Name() string {
	return b.name
}

// ShowNextButtonDefault sets whether steps show a Next button unless they
// override it.
func (b *TourBuilder) ShowNextButtonDefault(show bool) *TourBuilder {
	b.showNext = show
	return b
}

// Step appends a step. header and content may be strings, api.Content
// values, nil or view models.
func (b *TourBuilder) Step(elementID string, header, content any, opts ...StepOption) *TourBuilder {
	s, err := api.NewStep(elementID, header, content, opts...)
	if err != nil {
		b.errs = multierr.Append(b.errs, fmt.Errorf("step %d: %w", len(b.steps), err))
		// Keep the index of later steps aligned with their position.
		b.steps = append(b.steps, api.Step{ElementID: elementID})
		return b
	}
	b.steps = append(b.steps, s)
	return b
}

// StepValue appends an already built step.
func (b *TourBuilder) StepValue(s Step) *TourBuilder {
	if err := s.Validate(); err != nil {
		b.errs = multierr.Append(b.errs, fmt.Errorf("step %d: %w", len(b.steps), err))
	}
	b.steps = append(b.steps, s)
	return b
}

// Build validates the tour and returns it.
func (b *TourBuilder) Build() (*Tour, error) {
	if b.errs != nil {
		return nil, b.errs
	}
	return api.NewTour(b.name, b.steps, api.WithShowNextButtonDefault(b.showNext))
}

// MustBuild is like Build but panics on error.
// Useful for static tour definitions in main().
func (b *TourBuilder) MustBuild() *Tour {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}
