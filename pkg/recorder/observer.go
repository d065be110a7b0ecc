package recorder

import (
	"context"
	"log/slog"

	"github.com/petrijr/featuretour/pkg/api"
)

// Observer receives recorder notifications. Callbacks run synchronously on
// the capturing goroutine, after the recorder released its lock, so they
// may call back into the recorder.
type Observer interface {
	OnRecordingStarted(ctx context.Context)
	OnStepRecorded(ctx context.Context, step api.RecordedStep, index int)
	OnRecordingStopped(ctx context.Context, steps []api.RecordedStep)
}

// NoopObserver is an Observer that does nothing.
type NoopObserver struct{}

func (NoopObserver) OnRecordingStarted(ctx context.Context)                               {}
func (NoopObserver) OnStepRecorded(ctx context.Context, step api.RecordedStep, index int) {}
func (NoopObserver) OnRecordingStopped(ctx context.Context, steps []api.RecordedStep)     {}

// CompositeObserver fans out notifications in registration order.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver forwards to each non-nil observer in obs.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	switch len(filtered) {
	case 0:
		return NoopObserver{}
	case 1:
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnRecordingStarted(ctx context.Context) {
	for _, o := range c.observers {
		o.OnRecordingStarted(ctx)
	}
}

func (c *CompositeObserver) OnStepRecorded(ctx context.Context, step api.RecordedStep, index int) {
	for _, o := range c.observers {
		o.OnStepRecorded(ctx, step, index)
	}
}

func (c *CompositeObserver) OnRecordingStopped(ctx context.Context, steps []api.RecordedStep) {
	for _, o := range c.observers {
		o.OnRecordingStopped(ctx, steps)
	}
}

// LoggingObserver writes structured logs using log/slog.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver logs recorder notifications to logger, or to
// slog.Default() when logger is nil.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{Logger: logger}
}

func (o *LoggingObserver) OnRecordingStarted(ctx context.Context) {
	o.Logger.InfoContext(ctx, "recording_started")
}

func (o *LoggingObserver) OnStepRecorded(ctx context.Context, step api.RecordedStep, index int) {
	o.Logger.InfoContext(ctx, "step_recorded",
		slog.Int("index", index),
		slog.String("element_id", step.ElementID),
		slog.String("element_type", step.ElementType),
		slog.String("placement", step.Placement.String()),
	)
}

func (o *LoggingObserver) OnRecordingStopped(ctx context.Context, steps []api.RecordedStep) {
	o.Logger.InfoContext(ctx, "recording_stopped",
		slog.Int("steps", len(steps)),
	)
}
