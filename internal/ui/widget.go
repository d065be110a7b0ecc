package ui

import (
	"github.com/petrijr/featuretour/pkg/api"
)

// Kind is the type name of a widget.
type Kind string

const (
	KindButton  Kind = "Button"
	KindTextBox Kind = "TextBox"
	KindLabel   Kind = "Label"
	KindPanel   Kind = "Panel"
)

// Widget is a terminal UI element placed on a character grid.
type Widget struct {
	ID         string
	Automation string
	Label      string
	Kind       Kind
	Box        api.Rect

	// Value is the text of a TextBox.
	Value string

	// Hint, when valid, is suggested to the recorder as callout placement.
	Hint *api.Placement

	Kids []*Widget
}

var _ api.Node = (*Widget)(nil)

func (w *Widget) ElementID() string    { return w.ID }
func (w *Widget) AutomationID() string { return w.Automation }
func (w *Widget) Name() string         { return "" }
func (w *Widget) TypeName() string     { return string(w.Kind) }

func (w *Widget) Children() []api.Node {
	out := make([]api.Node, len(w.Kids))
	for i, k := range w.Kids {
		out[i] = k
	}
	return out
}

// PreferredPlacement implements recorder.PlacementHinter.
func (w *Widget) PreferredPlacement() api.Placement {
	if w.Hint == nil {
		return api.Placement(-1)
	}
	return *w.Hint
}

// walk visits w and its descendants, parents before children.
func (w *Widget) walk(visit func(*Widget)) {
	stack := []*Widget{w}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(n)
		for i := len(n.Kids) - 1; i >= 0; i-- {
			stack = append(stack, n.Kids[i])
		}
	}
}
