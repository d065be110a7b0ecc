package featuretour

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/petrijr/featuretour/internal/elementid"
	"github.com/petrijr/featuretour/internal/navigator"
	"github.com/petrijr/featuretour/pkg/api"
	"github.com/petrijr/featuretour/pkg/callout"
	"github.com/petrijr/featuretour/pkg/recorder"
)

const (
	// DefaultPreviewName is used when a preview is started without a name.
	DefaultPreviewName = "Preview Tour"

	DefaultPreviewRestoreDelay = 500 * time.Millisecond
)

// SessionConfig describes how to construct a Session. Every field is
// optional; a Session without a Surface runs headless.
type SessionConfig struct {
	Surface  api.Surface
	Observer api.Observer
	Logger   *slog.Logger
	Callouts *callout.Registry

	// History, when set, receives one event per run transition.
	History EventStore

	Prompter         api.Prompter
	RecorderObserver recorder.Observer
	EscapeKey        string
	DefaultPlacement api.Placement

	// PreviewRestoreDelay is how long after a preview starts OnPreviewRestore
	// fires. Hosts use it to bring the recorder UI back.
	PreviewRestoreDelay time.Duration
	OnPreviewRestore    func()
}

// Session bundles everything a host needs to run and record tours: an
// element registry, a navigator, the callout registry, a recorder and a
// catalog of tour definitions.
//
// Typical usage:
//
//	s := featuretour.NewSession(featuretour.SessionConfig{Surface: mySurface})
//	s.Attach(openButton)
//	s.Navigator.ForStep("openButton").AttachDoable(func(ctx context.Context, step featuretour.Step) { ... })
//	_ = s.Start(ctx, tour)
type Session struct {
	// Navigator drives tour runs.
	Navigator Navigator

	Callouts *callout.Registry
	Recorder *recorder.Recorder
	Catalog  *Catalog
	Metrics  *BasicMetrics

	elements *elementid.Registry
	resolver *elementid.Resolver
	logger   *slog.Logger

	restoreDelay time.Duration
	onRestore    func()

	mu           sync.Mutex
	restoreTimer *time.Timer
}

// NewSession constructs a Session from cfg.
func NewSession(cfg SessionConfig) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	callouts := cfg.Callouts
	if callouts == nil {
		callouts = callout.NewRegistry()
	}

	metrics := &api.BasicMetrics{}
	observers := []api.Observer{cfg.Observer, metrics}
	if cfg.History != nil {
		observers = append(observers, navigator.NewHistoryObserver(cfg.History, logger))
	}

	elements := elementid.NewRegistry()
	resolver := elementid.NewResolver()

	nav := navigator.New(navigator.Config{
		Elements: elements,
		Surface:  cfg.Surface,
		Callouts: callouts,
		Observer: api.NewCompositeObserver(observers...),
		Logger:   logger,
	})

	rec := recorder.New(recorder.Config{
		Resolver:         resolver,
		Prompter:         cfg.Prompter,
		Observer:         cfg.RecorderObserver,
		EscapeKey:        cfg.EscapeKey,
		DefaultPlacement: cfg.DefaultPlacement,
	})

	delay := cfg.PreviewRestoreDelay
	if delay <= 0 {
		delay = DefaultPreviewRestoreDelay
	}

	catalog, _ := NewCatalog()
	return &Session{
		Navigator:    nav,
		Callouts:     callouts,
		Recorder:     rec,
		Catalog:      catalog,
		Metrics:      metrics,
		elements:     elements,
		resolver:     resolver,
		logger:       logger,
		restoreDelay: delay,
		onRestore:    cfg.OnPreviewRestore,
	}
}

// Attach makes el resolvable by the ids it declares and returns the first
// of them, or "" when it declares none.
func (s *Session) Attach(el Element) string { return s.elements.Attach(el) }

// AttachAs registers el under an explicit id.
func (s *Session) AttachAs(id string, el Element) { s.elements.AttachAs(id, el) }

// Detach forgets el.
func (s *Session) Detach(el Element) { s.elements.Detach(el) }

// SyncTree attaches every element under root that declares an id and
// returns how many were attached.
func (s *Session) SyncTree(root Node) int { return elementid.SyncTree(s.elements, root) }

// FindByAutomationID searches the tree under root.
func (s *Session) FindByAutomationID(root Node, id string) (Node, bool) {
	return elementid.FindByAutomationID(root, id)
}

// Lookup resolves a logical element id to its live element.
func (s *Session) Lookup(id string) (Element, bool) { return s.elements.Lookup(id) }

// ElementID names el the way the recorder would.
func (s *Session) ElementID(el Element) string { return s.resolver.Resolve(el) }

// Start begins a run of tour.
func (s *Session) Start(ctx context.Context, tour *Tour) error {
	return s.Navigator.Start(ctx, tour)
}

// StartDefinition builds the catalog tour registered under tourID and
// starts it.
func (s *Session) StartDefinition(ctx context.Context, tourID string) error {
	tour, err := s.Catalog.CreateTour(tourID)
	if err != nil {
		return err
	}
	return s.Navigator.Start(ctx, tour)
}

// PreviewResult describes a started preview.
type PreviewResult struct {
	Tour *Tour
	// Unresolved lists step element ids with no live element. The preview
	// still runs; those steps show a centered callout.
	Unresolved []string
}

// Preview starts the recorder's buffered steps as a tour. It fails while
// the recorder is capturing or when nothing has been recorded.
func (s *Session) Preview(ctx context.Context, name string) (PreviewResult, error) {
	if s.Recorder.IsRecording() {
		return PreviewResult{}, fmt.Errorf("preview: %w", api.ErrAlreadyRecording)
	}
	steps := s.Recorder.Steps()
	if len(steps) == 0 {
		return PreviewResult{}, api.NewValidationError("steps", "record at least one step first")
	}
	if name == "" {
		name = DefaultPreviewName
	}

	tour, err := api.TourFromRecorded(name, steps)
	if err != nil {
		return PreviewResult{}, fmt.Errorf("preview: %w", err)
	}

	var unresolved []string
	for _, st := range steps {
		if _, ok := s.elements.Lookup(st.ElementID); !ok {
			unresolved = append(unresolved, st.ElementID)
		}
	}
	if len(unresolved) > 0 {
		s.logger.WarnContext(ctx, "preview_unresolved_targets",
			slog.String("tour", name),
			slog.Any("element_ids", unresolved),
		)
	}

	if err := s.Navigator.Start(ctx, tour); err != nil {
		return PreviewResult{}, err
	}
	s.scheduleRestore()
	return PreviewResult{Tour: tour, Unresolved: unresolved}, nil
}

func (s *Session) scheduleRestore() {
	if s.onRestore == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.restoreTimer != nil {
		s.restoreTimer.Stop()
	}
	s.restoreTimer = time.AfterFunc(s.restoreDelay, s.onRestore)
}

// Close cancels any active run and pending preview restore.
func (s *Session) Close(ctx context.Context) {
	s.mu.Lock()
	if s.restoreTimer != nil {
		s.restoreTimer.Stop()
		s.restoreTimer = nil
	}
	s.mu.Unlock()

	if run, ok := s.Navigator.Run(); ok && run.Status == api.StatusRunning {
		_ = s.Navigator.Close(ctx)
	}
}
