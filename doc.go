// Package featuretour provides guided feature tours for interactive Go
// applications: a sequence of callouts, each attached to a UI element,
// that walks a user through a screen step by step.
//
// # Core Concepts
//
// The programming model is small:
//
//  1. Tour and TourBuilder
//  2. Navigator
//  3. Session
//  4. Recorder
//  5. StoreBundle
//
// # Tours
//
// A Tour is an immutable, named list of steps. Each step names the logical
// id of its target element, a header, a body and a Placement telling where
// the callout sits relative to the element:
//
//	tour, err := featuretour.New("Introduction").
//	    Step("openButton", "Open", "Opens a document", featuretour.WithPlacement(featuretour.PlacementBottomLeft)).
//	    Step("saveButton", "Save", "Saves the document").
//	    Build()
//
// Header and body are plain text or opaque view models the rendering surface
// knows how to draw.
//
// # Navigator
//
// The Navigator runs one tour at a time through the states
// Idle -> Running -> Completed | Cancelled. Entering a step resolves its
// element id, runs the actions attached to that step, highlights the
// element and asks the Surface to show a callout. A missing element never
// stops a tour; the callout is centered in the viewport instead.
//
// Actions let a tour drive the application, for example to open a panel
// before the step that explains it:
//
//	session.Navigator.ForStep("settingsPanel").AttachDoable(openSettings)
//
// IfCurrentStepEquals lets application code advance or dismiss the tour
// only while a given step is displayed:
//
//	session.Navigator.IfCurrentStepEquals("clearButton").Close(ctx)
//
// # Session
//
// A Session wires a navigator, an element registry, the callout factory
// registry, a recorder and a catalog of tour definitions together for one
// host surface. Elements are registered with Attach and looked up by the
// ids they declare.
//
// # Recorder
//
// The recorder builds tours by example. While recording, a transparent
// overlay intercepts clicks; each clicked element becomes a step once a
// header and body are supplied. Recorded steps can be reordered and edited,
// previewed as a live tour, and exported as Go code, JSON or YAML.
//
// # Persistence
//
// Tour documents and run history can be stored in memory, SQLite,
// PostgreSQL, Redis or MongoDB. StoreBundle covers the common SQLite case.
//
// # Observability
//
// Observers receive run lifecycle callbacks. LoggingObserver writes them
// with log/slog, BasicMetrics keeps counters, and the history observer used
// by Session appends them to an EventStore.
//
// # tourctl
//
// cmd/tourctl is a small command line tool built on this package. It
// generates code from tour documents, manages stored tours, prints run
// history and runs an interactive terminal demo with a recorder.
package featuretour
