package api

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Observer receives callbacks from the navigator for logging, metrics and
// history. Callbacks run synchronously on the navigating goroutine and
// should return quickly.
type Observer interface {
	// OnTourStarted is called once per run, before the first step is entered.
	OnTourStarted(ctx context.Context, run TourRun)

	// OnStepEntered is called after actions ran and the callout was requested.
	OnStepEntered(ctx context.Context, run TourRun, step Step, actions int, d time.Duration)

	// OnTargetUnresolved is called when a step is displayed without a target.
	OnTargetUnresolved(ctx context.Context, run TourRun, step Step, err error)

	OnTourCompleted(ctx context.Context, run TourRun)

	OnTourCancelled(ctx context.Context, run TourRun)
}

// NoopObserver is an Observer that does nothing.
// It is used as the default when no observer is configured.
type NoopObserver struct{}

func (NoopObserver) OnTourStarted(ctx context.Context, run TourRun) {}
func (NoopObserver) OnStepEntered(ctx context.Context, run TourRun, step Step, actions int, d time.Duration) {
}
func (NoopObserver) OnTargetUnresolved(ctx context.Context, run TourRun, step Step, err error) {}
func (NoopObserver) OnTourCompleted(ctx context.Context, run TourRun)                          {}
func (NoopObserver) OnTourCancelled(ctx context.Context, run TourRun)                          {}

// CompositeObserver fans out events to multiple observers.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver creates an Observer that forwards events to each
// non-nil observer in obs.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnTourStarted(ctx context.Context, run TourRun) {
	for _, o := range c.observers {
		o.OnTourStarted(ctx, run)
	}
}

func (c *CompositeObserver) OnStepEntered(ctx context.Context, run TourRun, step Step, actions int, d time.Duration) {
	for _, o := range c.observers {
		o.OnStepEntered(ctx, run, step, actions, d)
	}
}

func (c *CompositeObserver) OnTargetUnresolved(ctx context.Context, run TourRun, step Step, err error) {
	for _, o := range c.observers {
		o.OnTargetUnresolved(ctx, run, step, err)
	}
}

func (c *CompositeObserver) OnTourCompleted(ctx context.Context, run TourRun) {
	for _, o := range c.observers {
		o.OnTourCompleted(ctx, run)
	}
}

func (c *CompositeObserver) OnTourCancelled(ctx context.Context, run TourRun) {
	for _, o := range c.observers {
		o.OnTourCancelled(ctx, run)
	}
}

// LoggingObserver writes structured logs using log/slog.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver creates an Observer that logs tour lifecycle events
// using the provided slog.Logger. If logger is nil, slog.Default() is used.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{Logger: logger}
}

func (o *LoggingObserver) OnTourStarted(ctx context.Context, run TourRun) {
	o.Logger.InfoContext(ctx, "tour_started",
		slog.String("tour", run.TourName),
		slog.String("run_id", run.ID),
		slog.Int("steps", run.StepCount),
	)
}

func (o *LoggingObserver) OnStepEntered(ctx context.Context, run TourRun, step Step, actions int, d time.Duration) {
	o.Logger.DebugContext(ctx, "step_entered",
		slog.String("tour", run.TourName),
		slog.String("run_id", run.ID),
		slog.String("element_id", step.ElementID),
		slog.Int("step_index", run.CurrentIndex),
		slog.Int("actions", actions),
		slog.Duration("duration", d),
	)
}

func (o *LoggingObserver) OnTargetUnresolved(ctx context.Context, run TourRun, step Step, err error) {
	o.Logger.WarnContext(ctx, "target_unresolved",
		slog.String("tour", run.TourName),
		slog.String("run_id", run.ID),
		slog.String("element_id", step.ElementID),
		slog.Int("step_index", run.CurrentIndex),
		slog.Any("error", err),
	)
}

func (o *LoggingObserver) OnTourCompleted(ctx context.Context, run TourRun) {
	o.Logger.InfoContext(ctx, "tour_completed",
		slog.String("tour", run.TourName),
		slog.String("run_id", run.ID),
	)
}

func (o *LoggingObserver) OnTourCancelled(ctx context.Context, run TourRun) {
	o.Logger.InfoContext(ctx, "tour_cancelled",
		slog.String("tour", run.TourName),
		slog.String("run_id", run.ID),
		slog.Int("step_index", run.CurrentIndex),
	)
}

// BasicMetrics collects simple counters about tour runs.
// It implements Observer, and can be combined with LoggingObserver via
// NewCompositeObserver.
type BasicMetrics struct {
	NoopObserver

	toursStarted    atomic.Int64
	toursCompleted  atomic.Int64
	toursCancelled  atomic.Int64
	stepsEntered    atomic.Int64
	unresolved      atomic.Int64
	actionsExecuted atomic.Int64
	totalEnterTime  atomic.Int64 // nanoseconds
}

// BasicMetricsSnapshot is an immutable snapshot of BasicMetrics.
type BasicMetricsSnapshot struct {
	ToursStarted   int64
	ToursCompleted int64
	ToursCancelled int64
	ActiveTours    int64

	StepsEntered      int64
	UnresolvedTargets int64
	ActionsExecuted   int64
	AvgStepEnter      time.Duration
}

func (m *BasicMetrics) OnTourStarted(ctx context.Context, run TourRun) {
	m.toursStarted.Add(1)
}

func (m *BasicMetrics) OnStepEntered(ctx context.Context, run TourRun, step Step, actions int, d time.Duration) {
	m.stepsEntered.Add(1)
	m.actionsExecuted.Add(int64(actions))
	m.totalEnterTime.Add(d.Nanoseconds())
}

func (m *BasicMetrics) OnTargetUnresolved(ctx context.Context, run TourRun, step Step, err error) {
	m.unresolved.Add(1)
}

func (m *BasicMetrics) OnTourCompleted(ctx context.Context, run TourRun) {
	m.toursCompleted.Add(1)
}

func (m *BasicMetrics) OnTourCancelled(ctx context.Context, run TourRun) {
	m.toursCancelled.Add(1)
}

// Snapshot returns a snapshot of the current metrics.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	started := m.toursStarted.Load()
	completed := m.toursCompleted.Load()
	cancelled := m.toursCancelled.Load()
	steps := m.stepsEntered.Load()
	totalNs := m.totalEnterTime.Load()

	var avg time.Duration
	if steps > 0 {
		avg = time.Duration(totalNs / steps)
	}

	return BasicMetricsSnapshot{
		ToursStarted:      started,
		ToursCompleted:    completed,
		ToursCancelled:    cancelled,
		ActiveTours:       started - completed - cancelled,
		StepsEntered:      steps,
		UnresolvedTargets: m.unresolved.Load(),
		ActionsExecuted:   m.actionsExecuted.Load(),
		AvgStepEnter:      avg,
	}
}
