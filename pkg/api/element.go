package api

import "context"

// Element is an opaque handle to a live UI element supplied by the host.
// Handles are compared by identity, so implementations should be pointers.
type Element interface {
	// ElementID returns the explicitly assigned logical id, or "".
	ElementID() string
	// AutomationID returns the platform automation id, or "".
	AutomationID() string
	// Name returns the control/instance name, or "".
	Name() string
	// TypeName returns the element's type name (e.g. "Button").
	TypeName() string
}

// Node is an element that exposes its children, used for tree traversal.
type Node interface {
	Element
	Children() []Node
}

// ElementLookup resolves a logical element id to a live handle.
type ElementLookup interface {
	Lookup(elementID string) (Element, bool)
}

// CalloutRequest describes a callout the navigator wants displayed.
type CalloutRequest struct {
	TourName  string
	Step      Step
	Index     int
	StepCount int

	// Target is nil when the step's element could not be resolved; the
	// surface should anchor to a fallback position.
	Target Element

	// Bounds is the target's bounding box (zero when unresolved).
	Bounds    Rect
	Anchor    Point
	Direction Direction

	ShowNextButton bool
	CanGoBack      bool

	// View is the visual produced by the active callout factory.
	View any
}

// Surface is the rendering collaborator: it measures elements, toggles
// highlights and hosts callout views.
type Surface interface {
	// Bounds returns the element's bounding box in surface coordinates.
	Bounds(el Element) (Rect, bool)
	// Viewport is the visible area, used for fallback anchoring.
	Viewport() Rect
	ShowHighlight(el Element)
	HideHighlight(el Element)
	ShowCallout(req CalloutRequest) error
	HideCallout()
}

// HitTester resolves the topmost element at a surface point.
type HitTester interface {
	ElementAt(pt Point) (Element, bool)
}

// InputHandler receives input intercepted by a capture overlay.
type InputHandler interface {
	HandlePointerDown(ctx context.Context, pt Point) error
	HandleKey(ctx context.Context, key string) error
}

// Overlay is a transparent capture layer installed over a surface.
type Overlay interface {
	Show()
	Hide()
	Remove()
}

// CaptureTarget is the surface a recording session runs on.
type CaptureTarget interface {
	HitTester
	// InstallOverlay places a capture overlay showing banner text that
	// forwards intercepted input to handler.
	InstallOverlay(banner string, handler InputHandler) (Overlay, error)
}

// StepDraft is what the recorder knows about a clicked element when it asks
// for header/content text.
type StepDraft struct {
	ElementID   string
	ElementType string
	Header      string
	Content     string

	// Err is set when a previous answer was rejected.
	Err error
}

// StepInput is the answer to a StepDraft prompt.
type StepInput struct {
	ElementID string
	Header    string
	Content   string
}

// Prompter collects header/content text for a recorded step. It is modal:
// it returns confirmed=false when the user skips the element.
type Prompter interface {
	PromptStep(ctx context.Context, draft StepDraft) (input StepInput, confirmed bool, err error)
}
