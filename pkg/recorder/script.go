package recorder

import (
	"errors"
	"fmt"

	"github.com/petrijr/featuretour/pkg/api"
)

// ErrIndexOutOfRange is returned by Script edits addressing a missing step.
var ErrIndexOutOfRange = errors.New("step index out of range")

// Script is an editable list of recorded steps, used after capture ends to
// reorder, edit or delete steps before generating output or previewing.
type Script struct {
	steps []api.RecordedStep
}

// NewScript copies steps into a new Script.
func NewScript(steps []api.RecordedStep) *Script {
	return &Script{steps: append([]api.RecordedStep(nil), steps...)}
}

func (s *Script) Len() int { return len(s.steps) }

// Steps returns a copy of the current list.
func (s *Script) Steps() []api.RecordedStep {
	return append([]api.RecordedStep(nil), s.steps...)
}

func (s *Script) Step(i int) (api.RecordedStep, error) {
	if err := s.check(i); err != nil {
		return api.RecordedStep{}, err
	}
	return s.steps[i], nil
}

// MoveUp swaps step i with its predecessor.
func (s *Script) MoveUp(i int) error {
	if err := s.check(i); err != nil {
		return err
	}
	if i == 0 {
		return fmt.Errorf("%w: step %d is already first", api.ErrInvalidState, i)
	}
	s.steps[i-1], s.steps[i] = s.steps[i], s.steps[i-1]
	return nil
}

// MoveDown swaps step i with its successor.
func (s *Script) MoveDown(i int) error {
	if err := s.check(i); err != nil {
		return err
	}
	if i == len(s.steps)-1 {
		return fmt.Errorf("%w: step %d is already last", api.ErrInvalidState, i)
	}
	s.steps[i], s.steps[i+1] = s.steps[i+1], s.steps[i]
	return nil
}

// Update replaces id, header and content of step i. An empty ElementID
// keeps the current one. Placement and diagnostics are preserved.
func (s *Script) Update(i int, input api.StepInput) error {
	if err := s.check(i); err != nil {
		return err
	}
	updated := s.steps[i]
	if input.ElementID != "" {
		updated.ElementID = input.ElementID
	}
	updated.Header = input.Header
	updated.Content = input.Content
	if err := updated.Validate(); err != nil {
		return err
	}
	s.steps[i] = updated
	return nil
}

// SetPlacement changes the callout placement of step i.
func (s *Script) SetPlacement(i int, p api.Placement) error {
	if err := s.check(i); err != nil {
		return err
	}
	if !p.Valid() {
		return fmt.Errorf("%w: %d", api.ErrInvalidPlacement, int(p))
	}
	s.steps[i].Placement = p
	return nil
}

// Delete removes step i.
func (s *Script) Delete(i int) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.steps = append(s.steps[:i], s.steps[i+1:]...)
	return nil
}

// Append adds a validated step at the end.
func (s *Script) Append(step api.RecordedStep) error {
	if err := step.Validate(); err != nil {
		return err
	}
	s.steps = append(s.steps, step)
	return nil
}

// ToTour converts the list 1:1 into a tour.
func (s *Script) ToTour(name string) (*api.Tour, error) {
	return api.TourFromRecorded(defaultName(name), s.steps)
}

// Document converts the list into a serializable tour document.
func (s *Script) Document(tourName, tourID string) api.TourDocument {
	return api.DocumentFromRecorded(defaultID(tourID), defaultName(tourName), s.steps)
}

func (s *Script) check(i int) error {
	if i < 0 || i >= len(s.steps) {
		return fmt.Errorf("%w: %d (have %d steps)", ErrIndexOutOfRange, i, len(s.steps))
	}
	return nil
}
