package api

import "time"

// EventType identifies a tour history event.
type EventType string

const (
	EventTourStarted    EventType = "tour.started"
	EventTourCompleted  EventType = "tour.completed"
	EventTourCancelled  EventType = "tour.cancelled"
	EventStepEntered    EventType = "step.entered"
	EventStepUnresolved EventType = "step.unresolved"
)

// TourEvent is a minimal append-only history record for one tour run.
type TourEvent struct {
	RunID    string
	At       time.Time
	Type     EventType
	TourName string

	// Step is the step index, or -1 for run-level events.
	Step      int
	ElementID string

	// Small, human-oriented details. Keep this low-volume.
	Detail string
}
