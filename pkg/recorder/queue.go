package recorder

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/petrijr/featuretour/pkg/api"
)

// EventType identifies a recorder notification.
type EventType string

const (
	EventRecordingStarted EventType = "recording.started"
	EventStepRecorded     EventType = "step.recorded"
	EventRecordingStopped EventType = "recording.stopped"
)

// Event is one recorder notification as delivered through an EventQueue.
type Event struct {
	Type EventType
	At   time.Time

	// Step and Index are set for EventStepRecorded.
	Step  api.RecordedStep
	Index int

	// Steps is set for EventRecordingStopped.
	Steps []api.RecordedStep
}

// EventQueue is an Observer that buffers notifications in a channel for the
// host to drain from its own loop. It never blocks the capturing goroutine:
// when the buffer is full, events are dropped and counted.
type EventQueue struct {
	ch      chan Event
	dropped atomic.Int64
}

// NewEventQueue creates a queue with the given capacity.
// A modest capacity (e.g. 256) is fine for interactive use.
func NewEventQueue(capacity int) *EventQueue {
	if capacity <= 0 {
		capacity = 256
	}
	return &EventQueue{
		ch: make(chan Event, capacity),
	}
}

// Ensure EventQueue implements Observer.
var _ Observer = (*EventQueue)(nil)

func (q *EventQueue) OnRecordingStarted(ctx context.Context) {
	q.offer(Event{Type: EventRecordingStarted})
}

func (q *EventQueue) OnStepRecorded(ctx context.Context, step api.RecordedStep, index int) {
	q.offer(Event{Type: EventStepRecorded, Step: step, Index: index})
}

func (q *EventQueue) OnRecordingStopped(ctx context.Context, steps []api.RecordedStep) {
	q.offer(Event{Type: EventRecordingStopped, Steps: steps})
}

func (q *EventQueue) offer(ev Event) {
	ev.At = time.Now()
	select {
	case q.ch <- ev:
	default:
		q.dropped.Add(1)
	}
}

// C exposes the channel for use in select loops.
func (q *EventQueue) C() <-chan Event { return q.ch }

// Next blocks until an event is available or ctx is done.
func (q *EventQueue) Next(ctx context.Context) (Event, error) {
	select {
	case ev := <-q.ch:
		return ev, nil
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}

// Drain returns every buffered event without blocking.
func (q *EventQueue) Drain() []Event {
	var out []Event
	for {
		select {
		case ev := <-q.ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func (q *EventQueue) Len() int { return len(q.ch) }

// Dropped returns how many events were discarded because the queue was full.
func (q *EventQueue) Dropped() int64 { return q.dropped.Load() }
