package api

import "strings"

// RecordedStep is one step captured by the recorder. ElementType,
// AutomationID and ControlName are diagnostic only.
type RecordedStep struct {
	ElementID string
	Header    string
	Content   string
	Placement Placement

	ElementType  string
	AutomationID string
	ControlName  string
}

// ToStep converts the recorded step into a tour step, dropping the
// diagnostic fields.
func (r RecordedStep) ToStep() (Step, error) {
	return NewStep(r.ElementID, r.Header, r.Content, WithPlacement(r.Placement))
}

// Validate checks that the step has everything a tour step needs.
func (r RecordedStep) Validate() error {
	if strings.TrimSpace(r.ElementID) == "" {
		return NewValidationError("elementId", "must not be empty")
	}
	if strings.TrimSpace(r.Header) == "" {
		return NewValidationError("header", "must not be empty")
	}
	if strings.TrimSpace(r.Content) == "" {
		return NewValidationError("content", "must not be empty")
	}
	if !r.Placement.Valid() {
		return ErrInvalidPlacement
	}
	return nil
}

// TourFromRecorded converts recorded steps 1:1 into a tour with
// ShowNextButtonDefault=true.
func TourFromRecorded(name string, steps []RecordedStep) (*Tour, error) {
	converted := make([]Step, 0, len(steps))
	for _, r := range steps {
		converted = append(converted, Step{
			ElementID: r.ElementID,
			Header:    Text(r.Header),
			Content:   Text(r.Content),
			Placement: r.Placement,
		})
	}
	return NewTour(name, converted, WithShowNextButtonDefault(true))
}
