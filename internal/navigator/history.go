package navigator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/petrijr/featuretour/internal/persistence"
	"github.com/petrijr/featuretour/pkg/api"
)

// HistoryObserver appends a TourEvent for every navigator callback to an
// EventStore. Store failures are logged and never interrupt navigation.
type HistoryObserver struct {
	api.NoopObserver

	store  persistence.EventStore
	logger *slog.Logger
}

// NewHistoryObserver records run history into store.
func NewHistoryObserver(store persistence.EventStore, logger *slog.Logger) *HistoryObserver {
	if store == nil {
		store = persistence.NoopEventStore{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryObserver{store: store, logger: logger}
}

func (h *HistoryObserver) OnTourStarted(ctx context.Context, run api.TourRun) {
	h.append(ctx, api.TourEvent{
		RunID:    run.ID,
		Type:     api.EventTourStarted,
		TourName: run.TourName,
		Step:     -1,
		Detail:   fmt.Sprintf("steps=%d", run.StepCount),
	})
}

func (h *HistoryObserver) OnStepEntered(ctx context.Context, run api.TourRun, step api.Step, actions int, d time.Duration) {
	h.append(ctx, api.TourEvent{
		RunID:     run.ID,
		Type:      api.EventStepEntered,
		TourName:  run.TourName,
		Step:      run.CurrentIndex,
		ElementID: step.ElementID,
		Detail:    fmt.Sprintf("actions=%d", actions),
	})
}

func (h *HistoryObserver) OnTargetUnresolved(ctx context.Context, run api.TourRun, step api.Step, err error) {
	h.append(ctx, api.TourEvent{
		RunID:     run.ID,
		Type:      api.EventStepUnresolved,
		TourName:  run.TourName,
		Step:      run.CurrentIndex,
		ElementID: step.ElementID,
		Detail:    err.Error(),
	})
}

func (h *HistoryObserver) OnTourCompleted(ctx context.Context, run api.TourRun) {
	h.append(ctx, api.TourEvent{
		RunID:    run.ID,
		Type:     api.EventTourCompleted,
		TourName: run.TourName,
		Step:     -1,
	})
}

func (h *HistoryObserver) OnTourCancelled(ctx context.Context, run api.TourRun) {
	h.append(ctx, api.TourEvent{
		RunID:    run.ID,
		Type:     api.EventTourCancelled,
		TourName: run.TourName,
		Step:     -1,
		Detail:   fmt.Sprintf("at_step=%d", run.CurrentIndex),
	})
}

func (h *HistoryObserver) append(ctx context.Context, ev api.TourEvent) {
	ev.At = time.Now()
	if err := h.store.AppendEvent(ctx, ev); err != nil {
		h.logger.WarnContext(ctx, "history_append_failed",
			slog.String("run_id", ev.RunID),
			slog.String("type", string(ev.Type)),
			slog.Any("error", err),
		)
	}
}
