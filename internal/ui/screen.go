package ui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/petrijr/featuretour/pkg/api"
)

// CalloutWidth is the outer width of a rendered callout, borders included.
const CalloutWidth = 36

// calloutStyle carries no colors, so the rendered box is plain runes that
// can be stamped onto the canvas.
var calloutStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1).
	Width(CalloutWidth - 2)

// Screen is a terminal rendering surface: it lays widgets out on a
// character grid, draws highlights and callouts, and hit-tests clicks for
// the recorder.
type Screen struct {
	mu sync.Mutex

	width, height int
	root          *Widget

	highlighted map[*Widget]bool
	callout     *api.CalloutRequest

	overlay *overlay
}

var (
	_ api.Surface       = (*Screen)(nil)
	_ api.CaptureTarget = (*Screen)(nil)
)

// NewScreen creates a screen of the given size showing root.
func NewScreen(width, height int, root *Widget) *Screen {
	return &Screen{
		width:       width,
		height:      height,
		root:        root,
		highlighted: make(map[*Widget]bool),
	}
}

// Root returns the widget tree.
func (s *Screen) Root() *Widget { return s.root }

// Resize changes the viewport size.
func (s *Screen) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
}

func (s *Screen) Bounds(el api.Element) (api.Rect, bool) {
	w, ok := el.(*Widget)
	if !ok {
		return api.Rect{}, false
	}
	return w.Box, true
}

func (s *Screen) Viewport() api.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return api.Rect{W: float64(s.width), H: float64(s.height)}
}

// ShowHighlight marks el for drawing. Elements that are not widgets of
// this screen are ignored.
func (s *Screen) ShowHighlight(el api.Element) {
	w, ok := el.(*Widget)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.highlighted[w] = true
}

func (s *Screen) HideHighlight(el api.Element) {
	w, ok := el.(*Widget)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.highlighted, w)
}

// Highlighted reports whether el is currently highlighted.
func (s *Screen) Highlighted(el api.Element) bool {
	w, ok := el.(*Widget)
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.highlighted[w]
}

func (s *Screen) ShowCallout(req api.CalloutRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callout = &req
	return nil
}

func (s *Screen) HideCallout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callout = nil
}

// Callout returns the callout currently displayed.
func (s *Screen) Callout() (api.CalloutRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.callout == nil {
		return api.CalloutRequest{}, false
	}
	return *s.callout, true
}

// ElementAt returns the deepest widget whose box contains pt. Later
// siblings are on top of earlier ones.
func (s *Screen) ElementAt(pt api.Point) (api.Element, bool) {
	var hit *Widget
	s.root.walk(func(w *Widget) {
		if w.Box.Contains(pt) {
			hit = w
		}
	})
	if hit == nil || hit == s.root {
		return nil, false
	}
	return hit, true
}

// InstallOverlay places the capture overlay. Only one overlay can be
// installed at a time.
func (s *Screen) InstallOverlay(banner string, handler api.InputHandler) (api.Overlay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overlay != nil {
		return nil, errors.New("capture overlay already installed")
	}
	s.overlay = &overlay{screen: s, banner: banner, handler: handler, visible: true}
	return s.overlay, nil
}

// Banner returns the overlay banner while the overlay is visible.
func (s *Screen) Banner() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overlay == nil || !s.overlay.visible {
		return "", false
	}
	return s.overlay.banner, true
}

// Capturing reports whether an overlay is installed.
func (s *Screen) Capturing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlay != nil
}

// PointerDown forwards a click to the installed overlay, if it is visible.
func (s *Screen) PointerDown(ctx context.Context, pt api.Point) error {
	h := s.handler()
	if h == nil {
		return nil
	}
	return h.HandlePointerDown(ctx, pt)
}

// Key forwards a key press to the installed overlay, if it is visible.
func (s *Screen) Key(ctx context.Context, key string) error {
	h := s.handler()
	if h == nil {
		return nil
	}
	return h.HandleKey(ctx, key)
}

func (s *Screen) handler() api.InputHandler {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overlay == nil || !s.overlay.visible {
		return nil
	}
	return s.overlay.handler
}

// Render draws the widgets, highlights and callout.
func (s *Screen) Render() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := newCanvas(s.width, s.height)
	s.root.walk(func(w *Widget) {
		drawWidget(c, w, s.highlighted[w])
	})
	if s.callout != nil {
		view := renderCallout(*s.callout)
		x, y := s.calloutOrigin(*s.callout, view)
		c.block(x, y, view)
	}
	return c.String()
}

// calloutOrigin places the callout next to its target, or centered when the
// target is unresolved, and keeps it inside the viewport.
func (s *Screen) calloutOrigin(req api.CalloutRequest, view string) (int, int) {
	size := api.Size{W: float64(lipgloss.Width(view)), H: float64(lipgloss.Height(view))}
	viewport := api.Rect{W: float64(s.width), H: float64(s.height)}

	var r api.Rect
	if req.Target != nil {
		r = req.Step.Placement.Layout(req.Bounds, size)
	} else {
		r = api.PlacementCenter.Layout(viewport, size)
	}
	x := clamp(int(math.Round(r.X)), 0, s.width-int(size.W))
	y := clamp(int(math.Round(r.Y)), 0, s.height-int(size.H))
	return x, y
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

func drawWidget(c *canvas, w *Widget, highlighted bool) {
	x, y := int(w.Box.X), int(w.Box.Y)
	width, height := int(w.Box.W), int(w.Box.H)

	switch w.Kind {
	case KindPanel:
		c.frame(x, y, width, height)
		if w.Label != "" {
			c.text(x+2, y, " "+w.Label+" ")
		}
	case KindButton:
		c.text(x, y, fit("[ "+w.Label+" ]", width))
	case KindTextBox:
		value := w.Value
		if value == "" {
			value = strings.Repeat("_", max(width-len(w.Label)-4, 0))
		}
		c.text(x, y, fit(w.Label+": "+value, width))
	default:
		c.text(x, y, fit(w.Label, width))
	}

	if highlighted {
		c.set(x-1, y, '▶')
		c.set(x+width, y, '◀')
	}
}

// fit pads or truncates s to exactly n runes.
func fit(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s + strings.Repeat(" ", n-len(r))
}

func renderCallout(req api.CalloutRequest) string {
	var body string
	switch v := req.View.(type) {
	case nil:
		body = req.Step.Header.String() + "\n" + req.Step.Content.String()
	case fmt.Stringer:
		body = v.String()
	default:
		body = fmt.Sprint(v)
	}
	return calloutStyle.Render(body)
}

type overlay struct {
	screen  *Screen
	banner  string
	handler api.InputHandler
	visible bool
}

func (o *overlay) Show() {
	o.screen.mu.Lock()
	defer o.screen.mu.Unlock()
	o.visible = true
}

func (o *overlay) Hide() {
	o.screen.mu.Lock()
	defer o.screen.mu.Unlock()
	o.visible = false
}

func (o *overlay) Remove() {
	o.screen.mu.Lock()
	defer o.screen.mu.Unlock()
	o.visible = false
	if o.screen.overlay == o {
		o.screen.overlay = nil
	}
}
