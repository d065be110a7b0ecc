package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/petrijr/featuretour/pkg/api"
)

// FakeElement is a minimal api.Node used across tests.
type FakeElement struct {
	ID         string
	Automation string
	Control    string
	Type       string
	Box        api.Rect
	Kids       []api.Node
}

func (e *FakeElement) ElementID() string    { return e.ID }
func (e *FakeElement) AutomationID() string { return e.Automation }
func (e *FakeElement) Name() string         { return e.Control }
func (e *FakeElement) TypeName() string     { return e.Type }
func (e *FakeElement) Children() []api.Node { return e.Kids }
func (e *FakeElement) Bounds() api.Rect     { return e.Box }
func (e *FakeElement) String() string       { return e.Type + ":" + e.ID }

// FakeSurface records what the navigator asked it to display. It also acts
// as a capture target for the recorder.
type FakeSurface struct {
	mu sync.Mutex

	View     api.Rect
	Elements []*FakeElement

	Callouts    []api.CalloutRequest
	Highlighted []api.Element
	Hidden      int

	CalloutErr error

	// OnShowCallout, if set, runs inside ShowCallout.
	OnShowCallout func(req api.CalloutRequest)

	Overlay       *FakeOverlay
	Banner        string
	Handler       api.InputHandler
	InstallErr    error
	Installations int
}

var (
	_ api.Surface       = (*FakeSurface)(nil)
	_ api.CaptureTarget = (*FakeSurface)(nil)
)

func NewFakeSurface(elements ...*FakeElement) *FakeSurface {
	return &FakeSurface{
		View:     api.Rect{W: 800, H: 600},
		Elements: elements,
	}
}

func (s *FakeSurface) Bounds(el api.Element) (api.Rect, bool) {
	fe, ok := el.(*FakeElement)
	if !ok {
		return api.Rect{}, false
	}
	return fe.Box, true
}

func (s *FakeSurface) Viewport() api.Rect { return s.View }

func (s *FakeSurface) ShowHighlight(el api.Element) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Highlighted = append(s.Highlighted, el)
}

func (s *FakeSurface) HideHighlight(el api.Element) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Hidden++
}

func (s *FakeSurface) ShowCallout(req api.CalloutRequest) error {
	s.mu.Lock()
	s.Callouts = append(s.Callouts, req)
	hook := s.OnShowCallout
	err := s.CalloutErr
	s.mu.Unlock()

	if hook != nil {
		hook(req)
	}
	return err
}

func (s *FakeSurface) HideCallout() {}

// LastCallout returns the most recent callout request.
func (s *FakeSurface) LastCallout() (api.CalloutRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Callouts) == 0 {
		return api.CalloutRequest{}, false
	}
	return s.Callouts[len(s.Callouts)-1], true
}

// CalloutCount returns how many callouts were shown.
func (s *FakeSurface) CalloutCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Callouts)
}

// ElementAt returns the last element (topmost) whose box contains pt.
func (s *FakeSurface) ElementAt(pt api.Point) (api.Element, bool) {
	for i := len(s.Elements) - 1; i >= 0; i-- {
		if s.Elements[i].Box.Contains(pt) {
			return s.Elements[i], true
		}
	}
	return nil, false
}

func (s *FakeSurface) InstallOverlay(banner string, handler api.InputHandler) (api.Overlay, error) {
	if s.InstallErr != nil {
		return nil, s.InstallErr
	}
	s.Installations++
	s.Banner = banner
	s.Handler = handler
	s.Overlay = &FakeOverlay{Visible: true}
	return s.Overlay, nil
}

// Click forwards a pointer-down through the installed overlay.
func (s *FakeSurface) Click(ctx context.Context, pt api.Point) error {
	if s.Handler == nil || s.Overlay == nil || s.Overlay.Removed {
		return errors.New("no overlay installed")
	}
	return s.Handler.HandlePointerDown(ctx, pt)
}

// Press forwards a key through the installed overlay.
func (s *FakeSurface) Press(ctx context.Context, key string) error {
	if s.Handler == nil || s.Overlay == nil || s.Overlay.Removed {
		return errors.New("no overlay installed")
	}
	return s.Handler.HandleKey(ctx, key)
}

// FakeOverlay tracks visibility changes.
type FakeOverlay struct {
	Visible bool
	Removed bool
	Hides   int
	Shows   int
}

func (o *FakeOverlay) Show()   { o.Visible = true; o.Shows++ }
func (o *FakeOverlay) Hide()   { o.Visible = false; o.Hides++ }
func (o *FakeOverlay) Remove() { o.Visible = false; o.Removed = true }

// PromptAnswer is one scripted prompt response.
type PromptAnswer struct {
	Header  string
	Content string
	// ElementID overrides the proposed id when non-empty.
	ElementID string
	Skip      bool
	Err       error
}

// ScriptedPrompter answers prompts from a queue and records the drafts.
type ScriptedPrompter struct {
	Answers []PromptAnswer
	Drafts  []api.StepDraft

	// OnPrompt, if set, runs before answering.
	OnPrompt func(draft api.StepDraft)
}

func (p *ScriptedPrompter) PromptStep(ctx context.Context, draft api.StepDraft) (api.StepInput, bool, error) {
	p.Drafts = append(p.Drafts, draft)
	if p.OnPrompt != nil {
		p.OnPrompt(draft)
	}
	if len(p.Answers) == 0 {
		return api.StepInput{}, false, nil
	}
	a := p.Answers[0]
	p.Answers = p.Answers[1:]
	if a.Err != nil {
		return api.StepInput{}, false, a.Err
	}
	if a.Skip {
		return api.StepInput{}, false, nil
	}
	id := draft.ElementID
	if a.ElementID != "" {
		id = a.ElementID
	}
	return api.StepInput{ElementID: id, Header: a.Header, Content: a.Content}, true, nil
}
