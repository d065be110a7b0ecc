package navigator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/petrijr/featuretour/internal/actions"
	"github.com/petrijr/featuretour/internal/elementid"
	"github.com/petrijr/featuretour/pkg/api"
	"github.com/petrijr/featuretour/pkg/callout"
)

// Config describes how to construct a Navigator. Every field is optional.
type Config struct {
	Actions  *actions.Repository
	Elements api.ElementLookup
	Surface  api.Surface
	Callouts *callout.Registry
	Observer api.Observer
	Logger   *slog.Logger

	// NewID generates run IDs. Defaults to uuid.NewString.
	NewID func() string
	Now   func() time.Time
}

// Navigator is the step state machine driving one tour run at a time.
//
// Actions and surface calls run without the lock held, so actions may call
// back into the navigator. Every transition bumps an epoch; step-enter
// processing that observes a newer epoch stops without showing anything.
type Navigator struct {
	actions  *actions.Repository
	elements api.ElementLookup
	surface  api.Surface
	callouts *callout.Registry
	observer api.Observer
	logger   *slog.Logger
	newID    func() string
	now      func() time.Time

	mu          sync.Mutex
	tour        *api.Tour
	run         api.TourRun
	hasRun      bool
	epoch       uint64
	highlighted api.Element
}

// Ensure Navigator implements api.Navigator.
var _ api.Navigator = (*Navigator)(nil)

// New creates a Navigator from cfg.
func New(cfg Config) *Navigator {
	n := &Navigator{
		actions:  cfg.Actions,
		elements: cfg.Elements,
		surface:  cfg.Surface,
		callouts: cfg.Callouts,
		observer: cfg.Observer,
		logger:   cfg.Logger,
		newID:    cfg.NewID,
		now:      cfg.Now,
	}
	if n.actions == nil {
		n.actions = actions.NewRepository()
	}
	if n.surface == nil {
		n.surface = headless{}
	}
	if n.callouts == nil {
		n.callouts = callout.NewRegistry()
	}
	if n.observer == nil {
		n.observer = api.NoopObserver{}
	}
	if n.logger == nil {
		n.logger = slog.Default()
	}
	if n.newID == nil {
		n.newID = uuid.NewString
	}
	if n.now == nil {
		n.now = time.Now
	}
	return n
}

// Actions returns the repository attachments are registered in.
func (n *Navigator) Actions() *actions.Repository { return n.actions }

func (n *Navigator) Start(ctx context.Context, tour *api.Tour) error {
	if tour == nil || tour.Len() == 0 {
		return api.NewValidationError("tour", "must have at least one step")
	}

	n.mu.Lock()
	if n.hasRun && n.run.Status == api.StatusRunning {
		active := n.run.TourName
		n.mu.Unlock()
		return fmt.Errorf("%w: tour %q is already running", api.ErrInvalidState, active)
	}

	n.tour = tour
	n.run = api.TourRun{
		ID:           n.newID(),
		TourName:     tour.Name(),
		Status:       api.StatusRunning,
		CurrentIndex: 0,
		StepCount:    tour.Len(),
		StartedAt:    n.now(),
	}
	n.hasRun = true
	n.epoch++
	epoch := n.epoch
	run := n.run
	n.mu.Unlock()

	n.observer.OnTourStarted(ctx, run)
	n.enter(ctx, epoch, true)
	return nil
}

func (n *Navigator) MoveNext(ctx context.Context) error {
	n.mu.Lock()
	if err := n.requireRunningLocked("move next"); err != nil {
		n.mu.Unlock()
		return err
	}

	if n.run.CurrentIndex == n.tour.Len()-1 {
		run, prev := n.finishLocked(api.StatusCompleted)
		n.mu.Unlock()

		n.teardown(prev)
		n.observer.OnTourCompleted(ctx, run)
		return nil
	}

	n.run.CurrentIndex++
	n.epoch++
	epoch := n.epoch
	n.mu.Unlock()

	n.enter(ctx, epoch, true)
	return nil
}

func (n *Navigator) MovePrevious(ctx context.Context) error {
	n.mu.Lock()
	if err := n.requireRunningLocked("move previous"); err != nil {
		n.mu.Unlock()
		return err
	}
	if n.run.CurrentIndex == 0 {
		n.mu.Unlock()
		return fmt.Errorf("%w: already on the first step", api.ErrInvalidState)
	}

	n.run.CurrentIndex--
	n.epoch++
	epoch := n.epoch
	n.mu.Unlock()

	n.enter(ctx, epoch, false)
	return nil
}

func (n *Navigator) Close(ctx context.Context) error {
	n.mu.Lock()
	if err := n.requireRunningLocked("close"); err != nil {
		n.mu.Unlock()
		return err
	}
	run, prev := n.finishLocked(api.StatusCancelled)
	n.mu.Unlock()

	n.teardown(prev)
	n.observer.OnTourCancelled(ctx, run)
	return nil
}

func (n *Navigator) Run() (api.TourRun, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.run, n.hasRun
}

func (n *Navigator) CurrentStep() (api.Step, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.hasRun || n.run.Status != api.StatusRunning {
		return api.Step{}, false
	}
	return n.tour.Step(n.run.CurrentIndex), true
}

func (n *Navigator) IfCurrentStepEquals(elementID string) api.StepControl {
	if !n.onStep(elementID) {
		return noopControl{}
	}
	return &liveControl{nav: n, elementID: elementID}
}

// ForStep registers under actions.AnyTour while idle. Hosts that register
// at startup and need per-tour isolation should go through ForTour.
func (n *Navigator) ForStep(elementID string) api.StepExecution {
	tourName := actions.AnyTour
	n.mu.Lock()
	if n.hasRun && n.run.Status == api.StatusRunning {
		tourName = n.run.TourName
	}
	n.mu.Unlock()

	return &stepExecution{repo: n.actions, tourName: tourName, elementID: elementID}
}

func (n *Navigator) ForTour(name string) api.TourScope {
	return tourScope{repo: n.actions, tourName: name}
}

func (n *Navigator) onStep(elementID string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.hasRun || n.run.Status != api.StatusRunning {
		return false
	}
	return n.tour.Step(n.run.CurrentIndex).ElementID == elementID
}

func (n *Navigator) requireRunningLocked(op string) error {
	if !n.hasRun {
		return fmt.Errorf("%w: cannot %s: no tour has been started", api.ErrInvalidState, op)
	}
	if n.run.Status != api.StatusRunning {
		return fmt.Errorf("%w: cannot %s: tour %q is %s", api.ErrInvalidState, op, n.run.TourName, n.run.Status)
	}
	return nil
}

// finishLocked moves the run to a terminal status and returns the final
// snapshot and the element that was highlighted.
func (n *Navigator) finishLocked(status api.RunStatus) (api.TourRun, api.Element) {
	n.run.Status = status
	n.run.EndedAt = n.now()
	n.epoch++

	prev := n.highlighted
	n.highlighted = nil
	return n.run, prev
}

func (n *Navigator) teardown(prev api.Element) {
	if prev != nil {
		n.surface.HideHighlight(prev)
	}
	n.surface.HideCallout()
}

// current reports whether epoch is still the live transition and returns
// the run snapshot if so.
func (n *Navigator) current(epoch uint64) (api.TourRun, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.epoch != epoch || n.run.Status != api.StatusRunning {
		return api.TourRun{}, false
	}
	return n.run, true
}

// enter performs step-enter processing for the step selected by the
// transition identified by epoch: resolve the target, run attached actions
// (forward navigation only), then highlight and show the callout.
func (n *Navigator) enter(ctx context.Context, epoch uint64, runActions bool) {
	run, ok := n.current(epoch)
	if !ok {
		return
	}

	n.mu.Lock()
	tour := n.tour
	n.mu.Unlock()

	step := tour.Step(run.CurrentIndex)
	startTime := n.now()

	target, resolved := n.resolve(step.ElementID)
	if !resolved {
		n.observer.OnTargetUnresolved(ctx, run, step, &api.UnresolvedTargetError{ElementID: step.ElementID})
	}

	executed := 0
	if runActions {
		for _, entry := range n.actions.Get(tour.Name(), step.ElementID) {
			if _, ok := n.current(epoch); !ok {
				return
			}
			if !entry.Allowed(step) {
				continue
			}
			entry.Action(ctx, step)
			executed++
		}
	}

	// Actions may have cancelled or navigated away.
	n.mu.Lock()
	if n.epoch != epoch || n.run.Status != api.StatusRunning {
		n.mu.Unlock()
		return
	}
	prev := n.highlighted
	n.highlighted = target
	run = n.run
	n.mu.Unlock()

	if prev != nil && !elementid.Same(prev, target) {
		n.surface.HideHighlight(prev)
	}
	if target != nil {
		n.surface.ShowHighlight(target)
	}

	req := n.request(tour, step, run, target)
	if view, err := n.callouts.Create(req); err != nil {
		n.logger.WarnContext(ctx, "callout_create_failed",
			slog.String("tour", run.TourName),
			slog.String("element_id", step.ElementID),
			slog.Any("error", err),
		)
	} else {
		req.View = view
	}
	if err := n.surface.ShowCallout(req); err != nil {
		n.logger.WarnContext(ctx, "callout_show_failed",
			slog.String("tour", run.TourName),
			slog.String("element_id", step.ElementID),
			slog.Any("error", err),
		)
	}

	n.observer.OnStepEntered(ctx, run, step, executed, n.now().Sub(startTime))
}

func (n *Navigator) resolve(elementID string) (api.Element, bool) {
	if n.elements == nil {
		return nil, false
	}
	el, ok := n.elements.Lookup(elementID)
	if !ok || el == nil {
		return nil, false
	}
	return el, true
}

// request builds the callout request. Unresolved or unmeasurable targets
// anchor to the center of the viewport.
func (n *Navigator) request(tour *api.Tour, step api.Step, run api.TourRun, target api.Element) api.CalloutRequest {
	req := api.CalloutRequest{
		TourName:       tour.Name(),
		Step:           step,
		Index:          run.CurrentIndex,
		StepCount:      run.StepCount,
		ShowNextButton: step.NextButtonVisible(tour.ShowNextButtonDefault()),
		CanGoBack:      run.CurrentIndex > 0,
	}

	if target != nil {
		if bounds, ok := n.surface.Bounds(target); ok {
			req.Target = target
			req.Bounds = bounds
			req.Anchor, req.Direction = step.Placement.Anchor(bounds)
			return req
		}
	}
	req.Anchor, req.Direction = api.PlacementCenter.Anchor(n.surface.Viewport())
	return req
}

// headless is used when no surface is configured.
type headless struct{}

func (headless) Bounds(api.Element) (api.Rect, bool)  { return api.Rect{}, false }
func (headless) Viewport() api.Rect                   { return api.Rect{} }
func (headless) ShowHighlight(api.Element)            {}
func (headless) HideHighlight(api.Element)            {}
func (headless) ShowCallout(api.CalloutRequest) error { return nil }
func (headless) HideCallout()                         {}
