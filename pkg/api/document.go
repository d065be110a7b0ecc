package api

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// TourDocument is the serializable form of a tour. It is the data format
// produced by the recorder and the record kept by tour stores.
type TourDocument struct {
	TourID                string         `json:"tourId"`
	TourName              string         `json:"tourName"`
	ShowNextButtonDefault bool           `json:"showNextButtonDefault"`
	Steps                 []StepDocument `json:"steps"`
}

// StepDocument is the serializable form of a text step.
type StepDocument struct {
	ElementID string    `json:"elementId"`
	Header    string    `json:"header"`
	Content   string    `json:"content"`
	Placement Placement `json:"placement"`

	ShowNextButton     *bool  `json:"showNextButton,omitempty"`
	HeaderTemplateKey  string `json:"headerTemplateKey,omitempty"`
	ContentTemplateKey string `json:"contentTemplateKey,omitempty"`
}

// Validate checks document-level invariants.
func (d TourDocument) Validate() error {
	var errs error
	if strings.TrimSpace(d.TourID) == "" {
		errs = multierr.Append(errs, NewValidationError("tourId", "must not be empty"))
	}
	if strings.TrimSpace(d.TourName) == "" {
		errs = multierr.Append(errs, NewValidationError("tourName", "must not be empty"))
	}
	for i, s := range d.Steps {
		if strings.TrimSpace(s.ElementID) == "" {
			errs = multierr.Append(errs, fmt.Errorf("step %d: %w", i, NewValidationError("elementId", "must not be empty")))
		}
		if !s.Placement.Valid() {
			errs = multierr.Append(errs, fmt.Errorf("step %d: %w", i, ErrInvalidPlacement))
		}
	}
	return errs
}

// ToTour builds a Tour from the document.
func (d TourDocument) ToTour() (*Tour, error) {
	steps := make([]Step, 0, len(d.Steps))
	for _, s := range d.Steps {
		steps = append(steps, Step{
			ElementID:          s.ElementID,
			Header:             Text(s.Header),
			Content:            Text(s.Content),
			Placement:          s.Placement,
			ShowNextButton:     s.ShowNextButton,
			HeaderTemplateKey:  s.HeaderTemplateKey,
			ContentTemplateKey: s.ContentTemplateKey,
		})
	}
	return NewTour(d.TourName, steps, WithShowNextButtonDefault(d.ShowNextButtonDefault))
}

// Recorded returns the document steps as recorded steps.
func (d TourDocument) Recorded() []RecordedStep {
	out := make([]RecordedStep, 0, len(d.Steps))
	for _, s := range d.Steps {
		out = append(out, RecordedStep{
			ElementID: s.ElementID,
			Header:    s.Header,
			Content:   s.Content,
			Placement: s.Placement,
		})
	}
	return out
}

// DocumentFromRecorded builds a document from recorded steps in order.
func DocumentFromRecorded(tourID, tourName string, steps []RecordedStep) TourDocument {
	doc := TourDocument{
		TourID:                tourID,
		TourName:              tourName,
		ShowNextButtonDefault: true,
		Steps:                 make([]StepDocument, 0, len(steps)),
	}
	for _, s := range steps {
		doc.Steps = append(doc.Steps, StepDocument{
			ElementID: s.ElementID,
			Header:    s.Header,
			Content:   s.Content,
			Placement: s.Placement,
		})
	}
	return doc
}

// DocumentFromTour converts a tour into a document. View-model payloads
// cannot be serialized and are rejected.
func DocumentFromTour(tourID string, t *Tour) (TourDocument, error) {
	doc := TourDocument{
		TourID:                tourID,
		TourName:              t.Name(),
		ShowNextButtonDefault: t.ShowNextButtonDefault(),
	}
	for i, s := range t.Steps() {
		if s.Header.Kind() == ContentViewModel || s.Content.Kind() == ContentViewModel {
			return TourDocument{}, fmt.Errorf("step %d (%s): %w", i, s.ElementID,
				NewValidationError("content", "view-model payloads cannot be serialized"))
		}
		doc.Steps = append(doc.Steps, StepDocument{
			ElementID:          s.ElementID,
			Header:             s.Header.String(),
			Content:            s.Content.String(),
			Placement:          s.Placement,
			ShowNextButton:     s.ShowNextButton,
			HeaderTemplateKey:  s.HeaderTemplateKey,
			ContentTemplateKey: s.ContentTemplateKey,
		})
	}
	return doc, nil
}
