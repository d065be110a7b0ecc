package api

import (
	"context"
	"time"
)

// RunStatus is the lifecycle state of a tour run.
type RunStatus string

const (
	StatusIdle      RunStatus = "IDLE"
	StatusRunning   RunStatus = "RUNNING"
	StatusCompleted RunStatus = "COMPLETED"
	StatusCancelled RunStatus = "CANCELLED"
)

// Terminal reports whether s is Completed or Cancelled.
func (s RunStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// TourRun is a snapshot of one execution of a tour.
type TourRun struct {
	ID       string
	TourName string
	Status   RunStatus

	// CurrentIndex is the 0-based index of the displayed step. After
	// completion it stays on the last step.
	CurrentIndex int
	StepCount    int

	StartedAt time.Time
	EndedAt   time.Time
}

// Action runs when navigation enters a step it is attached to. Actions run
// synchronously before the callout is shown and may mutate host state.
type Action func(ctx context.Context, step Step)

// Guard gates whether an attached action runs for a given step entry.
type Guard func(step Step) bool

// StepExecution attaches actions to a step.
type StepExecution interface {
	// AttachDoable registers action; it fires each time the step is entered
	// and every guard returns true.
	AttachDoable(action Action, guards ...Guard) StepExecution
}

// TourScope selects the tour name that subsequent attachments are keyed by.
type TourScope interface {
	ForStep(elementID string) StepExecution
}

// StepControl is a navigator proxy returned by IfCurrentStepEquals. When the
// current step did not match, every method is a no-op returning nil.
type StepControl interface {
	// Active reports whether the proxy is bound to the live navigator.
	Active() bool
	MoveNext(ctx context.Context) error
	MovePrevious(ctx context.Context) error
	Close(ctx context.Context) error
}

// Navigator drives one tour run at a time.
type Navigator interface {
	// Start begins a run of tour. It fails with ErrInvalidState while
	// another run is active.
	Start(ctx context.Context, tour *Tour) error

	// MoveNext advances to the next step or completes the run on the last.
	MoveNext(ctx context.Context) error

	// MovePrevious goes back one step. Attached actions are not re-run.
	MovePrevious(ctx context.Context) error

	// Close cancels the active run. Safe to call from inside an action.
	Close(ctx context.Context) error

	// Run returns the current or most recent run.
	Run() (TourRun, bool)

	// CurrentStep returns the step being displayed while running.
	CurrentStep() (Step, bool)

	// IfCurrentStepEquals returns a live proxy when the running tour is on
	// a step with the given element id, and a no-op proxy otherwise.
	IfCurrentStepEquals(elementID string) StepControl

	// ForStep attaches actions for elementID under the active tour name,
	// or for every tour when no tour is running. Actions registered before
	// any tour starts therefore fire in every tour that has a step with that
	// id; use ForTour to bind them to a single tour.
	ForStep(elementID string) StepExecution

	// ForTour scopes attachments to the named tour.
	ForTour(name string) TourScope
}
