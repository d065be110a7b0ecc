package api

import (
	"fmt"
	"strings"
)

// Step is one stop in a tour.
type Step struct {
	// ElementID is the logical id of the target element. Required.
	ElementID string

	Header  Content
	Content Content

	Placement Placement

	// ShowNextButton overrides the tour's ShowNextButtonDefault when set.
	ShowNextButton *bool

	// Tag is free-form correlation data for the host.
	Tag any

	// HeaderTemplateKey / ContentTemplateKey select the view template used
	// to render view-model payloads.
	HeaderTemplateKey  string
	ContentTemplateKey string
}

// StepOption customizes a Step built by NewStep.
type StepOption func(*Step)

// WithPlacement sets the callout placement.
func WithPlacement(p Placement) StepOption {
	return func(s *Step) { s.Placement = p }
}

// WithNextButton overrides the tour-level next button default for the step.
func WithNextButton(show bool) StepOption {
	return func(s *Step) { s.ShowNextButton = &show }
}

// WithTag attaches host correlation data.
func WithTag(tag any) StepOption {
	return func(s *Step) { s.Tag = tag }
}

// WithHeaderTemplate selects the template for a view-model header.
func WithHeaderTemplate(key string) StepOption {
	return func(s *Step) { s.HeaderTemplateKey = key }
}

// WithContentTemplate selects the template for a view-model body.
func WithContentTemplate(key string) StepOption {
	return func(s *Step) { s.ContentTemplateKey = key }
}

// NewStep builds and validates a step. header and content may be strings,
// Content values, nil, or arbitrary view models (see ContentOf).
func NewStep(elementID string, header, content any, opts ...StepOption) (Step, error) {
	s := Step{
		ElementID: elementID,
		Header:    ContentOf(header),
		Content:   ContentOf(content),
		Placement: PlacementTopLeft,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.Validate(); err != nil {
		return Step{}, err
	}
	return s, nil
}

// MustStep is like NewStep but panics on invalid input.
func MustStep(elementID string, header, content any, opts ...StepOption) Step {
	s, err := NewStep(elementID, header, content, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks the step invariants.
func (s Step) Validate() error {
	if strings.TrimSpace(s.ElementID) == "" {
		return NewValidationError("elementId", "must not be empty")
	}
	if !s.Placement.Valid() {
		return fmt.Errorf("step %q: %w: %d", s.ElementID, ErrInvalidPlacement, int(s.Placement))
	}
	return nil
}

// NextButtonVisible resolves the effective next button flag against the
// tour default.
func (s Step) NextButtonVisible(tourDefault bool) bool {
	if s.ShowNextButton != nil {
		return *s.ShowNextButton
	}
	return tourDefault
}

func (s Step) clone() Step {
	if s.ShowNextButton != nil {
		v := *s.ShowNextButton
		s.ShowNextButton = &v
	}
	return s
}
