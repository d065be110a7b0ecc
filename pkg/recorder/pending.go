package recorder

import (
	"context"
	"errors"

	"github.com/petrijr/featuretour/pkg/api"
)

// Pending is a click waiting for header/content text. Capture is suspended
// while a Pending exists: further clicks and the escape key are ignored
// until it is confirmed or skipped.
type Pending struct {
	rec     *Recorder
	element api.Element
	draft   api.StepDraft
	done    bool
}

// Draft returns what is known about the clicked element.
func (p *Pending) Draft() api.StepDraft {
	p.rec.mu.Lock()
	defer p.rec.mu.Unlock()
	return p.draft
}

// Element returns the clicked element.
func (p *Pending) Element() api.Element { return p.element }

// Confirm validates input and appends the step. On a validation failure
// the capture stays pending so the host can prompt again.
func (p *Pending) Confirm(ctx context.Context, input api.StepInput) error {
	r := p.rec

	r.mu.Lock()
	if p.done || r.pending != p {
		r.mu.Unlock()
		return api.ErrNotRecording
	}

	id := input.ElementID
	if id == "" {
		id = p.draft.ElementID
	}
	step := api.RecordedStep{
		ElementID:    id,
		Header:       input.Header,
		Content:      input.Content,
		Placement:    r.placementFor(p.element),
		ElementType:  p.draft.ElementType,
		AutomationID: p.element.AutomationID(),
		ControlName:  p.element.Name(),
	}
	if err := step.Validate(); err != nil {
		p.draft.Err = err
		r.mu.Unlock()
		return err
	}

	r.steps = append(r.steps, step)
	index := len(r.steps) - 1
	p.done = true
	r.pending = nil
	overlay := r.overlay
	r.mu.Unlock()

	if overlay != nil {
		overlay.Show()
	}
	r.observer.OnStepRecorded(ctx, step, index)
	return nil
}

// Skip discards the capture and resumes recording.
func (p *Pending) Skip() {
	r := p.rec

	r.mu.Lock()
	if p.done || r.pending != p {
		r.mu.Unlock()
		return
	}
	p.done = true
	r.pending = nil
	overlay := r.overlay
	r.mu.Unlock()

	if overlay != nil {
		overlay.Show()
	}
}

func isValidation(err error) bool {
	return errors.Is(err, api.ErrValidation) || errors.Is(err, api.ErrInvalidPlacement)
}
