// Package recorder turns live clicks on a capture surface into a list of
// recorded tour steps, and renders that list as Go code, JSON or YAML.
package recorder

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/petrijr/featuretour/internal/elementid"
	"github.com/petrijr/featuretour/pkg/api"
)

// State is the capture state of a Recorder.
type State int

const (
	StateIdle State = iota
	StateCapturing
)

func (s State) String() string {
	if s == StateCapturing {
		return "Capturing"
	}
	return "Idle"
}

const (
	DefaultEscapeKey = "esc"
	DefaultBanner    = "RECORDING MODE - Click on any element to add a tour step. Press ESC to finish recording"
)

// PlacementHinter may be implemented by elements that carry a preferred
// callout placement.
type PlacementHinter interface {
	PreferredPlacement() api.Placement
}

// Config describes how to construct a Recorder. Every field is optional.
type Config struct {
	// Resolver names clicked elements. Share it with the host so synthesized
	// ids stay stable across recordings.
	Resolver *elementid.Resolver

	// Prompter, when set, is asked synchronously for header/content after
	// each click. Without it, clicks leave a Pending capture for the host to
	// complete.
	Prompter api.Prompter

	Observer Observer

	// EscapeKey ends the session when pressed on the overlay.
	EscapeKey string
	Banner    string

	// DefaultPlacement is used for elements that do not hint one.
	DefaultPlacement api.Placement
}

// Recorder is the capture state machine: Idle -> Capturing -> Idle.
// It implements api.InputHandler for the overlay it installs.
type Recorder struct {
	resolver  *elementid.Resolver
	prompter  api.Prompter
	observer  Observer
	escapeKey string
	banner    string
	placement api.Placement

	mu      sync.Mutex
	state   State
	target  api.CaptureTarget
	overlay api.Overlay
	steps   []api.RecordedStep
	pending *Pending
	session uint64
}

var _ api.InputHandler = (*Recorder)(nil)

// New creates an idle Recorder.
func New(cfg Config) *Recorder {
	r := &Recorder{
		resolver:  cfg.Resolver,
		prompter:  cfg.Prompter,
		observer:  cfg.Observer,
		escapeKey: cfg.EscapeKey,
		banner:    cfg.Banner,
		placement: cfg.DefaultPlacement,
	}
	if r.resolver == nil {
		r.resolver = elementid.NewResolver()
	}
	if r.observer == nil {
		r.observer = NoopObserver{}
	}
	if r.escapeKey == "" {
		r.escapeKey = DefaultEscapeKey
	}
	if r.banner == "" {
		r.banner = DefaultBanner
	}
	if !r.placement.Valid() {
		r.placement = api.PlacementTopLeft
	}
	return r
}

// State returns the current capture state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// IsRecording reports whether a capture session is active.
func (r *Recorder) IsRecording() bool { return r.State() == StateCapturing }

// Steps returns a copy of the buffered steps.
func (r *Recorder) Steps() []api.RecordedStep {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]api.RecordedStep(nil), r.steps...)
}

// Pending returns the capture waiting for header/content, if any.
func (r *Recorder) Pending() (*Pending, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending, r.pending != nil
}

// StartRecording clears the buffered steps and installs a capture overlay
// on target.
func (r *Recorder) StartRecording(ctx context.Context, target api.CaptureTarget) error {
	if target == nil {
		return api.NewValidationError("target", "must not be nil")
	}

	r.mu.Lock()
	if r.state == StateCapturing {
		r.mu.Unlock()
		return api.ErrAlreadyRecording
	}
	r.state = StateCapturing
	r.target = target
	r.session++
	r.steps = nil
	r.pending = nil
	r.mu.Unlock()

	overlay, err := target.InstallOverlay(r.banner, r)
	if err != nil {
		r.mu.Lock()
		r.state = StateIdle
		r.target = nil
		r.mu.Unlock()
		return fmt.Errorf("install capture overlay: %w", err)
	}

	r.mu.Lock()
	r.overlay = overlay
	r.mu.Unlock()

	r.observer.OnRecordingStarted(ctx)
	return nil
}

// StopRecording removes the overlay and returns the recorded steps. A
// capture still waiting for input is discarded.
func (r *Recorder) StopRecording(ctx context.Context) ([]api.RecordedStep, error) {
	r.mu.Lock()
	if r.state != StateCapturing {
		r.mu.Unlock()
		return nil, api.ErrNotRecording
	}
	r.state = StateIdle
	overlay := r.overlay
	r.overlay = nil
	r.target = nil
	if r.pending != nil {
		r.pending.done = true
		r.pending = nil
	}
	steps := append([]api.RecordedStep(nil), r.steps...)
	r.mu.Unlock()

	if overlay != nil {
		overlay.Remove()
	}
	r.observer.OnRecordingStopped(ctx, append([]api.RecordedStep(nil), steps...))
	return steps, nil
}

// HandlePointerDown hit-tests pt and starts a capture for the topmost
// element. Clicks on empty space, and clicks while a capture is pending,
// are ignored.
func (r *Recorder) HandlePointerDown(ctx context.Context, pt api.Point) error {
	r.mu.Lock()
	if r.state != StateCapturing || r.pending != nil {
		r.mu.Unlock()
		return nil
	}
	target, session := r.target, r.session
	r.mu.Unlock()

	el, ok := target.ElementAt(pt)
	if !ok || el == nil {
		return nil
	}

	r.mu.Lock()
	if r.state != StateCapturing || r.pending != nil || r.session != session {
		r.mu.Unlock()
		return nil
	}
	p := &Pending{
		rec:     r,
		element: el,
		draft: api.StepDraft{
			ElementID:   r.resolver.Resolve(el),
			ElementType: typeName(el),
		},
	}
	r.pending = p
	overlay := r.overlay
	r.mu.Unlock()

	if overlay != nil {
		overlay.Hide()
	}
	if r.prompter == nil {
		return nil
	}
	return r.prompt(ctx, p)
}

// HandleKey stops the session when key matches the escape key.
func (r *Recorder) HandleKey(ctx context.Context, key string) error {
	if !strings.EqualFold(strings.TrimSpace(key), r.escapeKey) {
		return nil
	}
	r.mu.Lock()
	busy := r.state != StateCapturing || r.pending != nil
	r.mu.Unlock()
	if busy {
		return nil
	}
	_, err := r.StopRecording(ctx)
	return err
}

// prompt drives the synchronous prompter until the capture is confirmed,
// skipped or the prompter fails. Rejected answers are re-prompted with the
// error attached to the draft.
func (r *Recorder) prompt(ctx context.Context, p *Pending) error {
	draft := p.Draft()
	for {
		input, confirmed, err := r.prompter.PromptStep(ctx, draft)
		if err != nil {
			p.Skip()
			return fmt.Errorf("prompt for %q: %w", draft.ElementID, err)
		}
		if !confirmed {
			p.Skip()
			return nil
		}
		err = p.Confirm(ctx, input)
		if err == nil {
			return nil
		}
		if !isValidation(err) {
			return err
		}
		draft.Header = input.Header
		draft.Content = input.Content
		if input.ElementID != "" {
			draft.ElementID = input.ElementID
		}
		draft.Err = err
	}
}

// AddManualStep appends a step that is not bound to a clicked element.
// Its id defaults to "Element{n}" with n the new step count.
func (r *Recorder) AddManualStep(ctx context.Context, input api.StepInput) (api.RecordedStep, error) {
	r.mu.Lock()
	id := input.ElementID
	if strings.TrimSpace(id) == "" {
		id = fmt.Sprintf("Element%d", len(r.steps)+1)
	}
	step := api.RecordedStep{
		ElementID:   id,
		Header:      input.Header,
		Content:     input.Content,
		Placement:   api.PlacementTopCenter,
		ElementType: "Manual",
	}
	if err := step.Validate(); err != nil {
		r.mu.Unlock()
		return api.RecordedStep{}, err
	}
	r.steps = append(r.steps, step)
	index := len(r.steps) - 1
	r.mu.Unlock()

	r.observer.OnStepRecorded(ctx, step, index)
	return step, nil
}

// Clear drops the buffered steps. It is not allowed while capturing.
func (r *Recorder) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateCapturing {
		return fmt.Errorf("%w: cannot clear while recording", api.ErrInvalidState)
	}
	r.steps = nil
	return nil
}

// Script returns an editable copy of the buffered steps.
func (r *Recorder) Script() *Script {
	return NewScript(r.Steps())
}

// GenerateCode renders the buffered steps as Go source.
func (r *Recorder) GenerateCode(tourName, tourID string) (string, error) {
	return GenerateCode(tourName, tourID, r.Steps())
}

// GenerateData renders the buffered steps as a JSON document.
func (r *Recorder) GenerateData(tourName, tourID string) (string, error) {
	return GenerateData(tourName, tourID, r.Steps())
}

// GenerateYAML renders the buffered steps as a YAML document.
func (r *Recorder) GenerateYAML(tourName, tourID string) (string, error) {
	return GenerateYAML(tourName, tourID, r.Steps())
}

func (r *Recorder) placementFor(el api.Element) api.Placement {
	if h, ok := el.(PlacementHinter); ok && h.PreferredPlacement().Valid() {
		return h.PreferredPlacement()
	}
	return r.placement
}

func typeName(el api.Element) string {
	if t := strings.TrimSpace(el.TypeName()); t != "" {
		return t
	}
	return "Element"
}
