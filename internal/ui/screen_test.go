package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/petrijr/featuretour/pkg/api"
)

type keyLog struct {
	points []api.Point
	keys   []string
}

func (k *keyLog) HandlePointerDown(ctx context.Context, pt api.Point) error {
	k.points = append(k.points, pt)
	return nil
}

func (k *keyLog) HandleKey(ctx context.Context, key string) error {
	k.keys = append(k.keys, key)
	return nil
}

func TestScreen_ElementAtReturnsDeepestWidget(t *testing.T) {
	w := NewDemoWidgets()
	s := NewScreen(DemoWidth, DemoHeight, w.Root)

	el, ok := s.ElementAt(api.Point{X: 5, Y: 6})
	require.True(t, ok)
	require.Same(t, w.Name, el)

	el, ok = s.ElementAt(api.Point{X: 3, Y: 5})
	require.True(t, ok)
	require.Equal(t, "settingsPanel", el.ElementID())

	_, ok = s.ElementAt(api.Point{X: 45, Y: 15})
	require.False(t, ok, "root is not a capture target")
}

func TestScreen_RenderDrawsWidgetsAndHighlight(t *testing.T) {
	w := NewDemoWidgets()
	s := NewScreen(DemoWidth, DemoHeight, w.Root)
	w.Name.Value = "Gopher"

	open, _ := s.ElementAt(api.Point{X: 3, Y: 2})
	s.ShowHighlight(open)

	out := s.Render()
	lines := strings.Split(out, "\n")
	require.Len(t, lines, DemoHeight)
	require.Contains(t, lines[0], "FeatureTour Demo")
	require.Contains(t, lines[2], "▶[ Open ]")
	require.Contains(t, lines[6], "Name: Gopher")
	require.Contains(t, out, "Settings")

	s.HideHighlight(open)
	require.False(t, s.Highlighted(open))
	require.NotContains(t, s.Render(), "▶")
}

func TestScreen_CalloutPlacement(t *testing.T) {
	w := NewDemoWidgets()
	s := NewScreen(DemoWidth, DemoHeight, w.Root)

	target, _ := s.ElementAt(api.Point{X: 3, Y: 2})
	step, err := api.NewStep("openButton", "Open", "Opens a document.", api.WithPlacement(api.PlacementBottomLeft))
	require.NoError(t, err)

	require.NoError(t, s.ShowCallout(api.CalloutRequest{Step: step, Target: target, Bounds: target.(*Widget).Box}))
	lines := strings.Split(s.Render(), "\n")
	// Below the button, left edges aligned.
	require.Equal(t, '╭', []rune(lines[3])[2], lines[3])
	require.Contains(t, lines[4], "Open")
	require.Contains(t, lines[5], "Opens a document.")

	s.HideCallout()
	_, ok := s.Callout()
	require.False(t, ok)
}

func TestScreen_UnresolvedCalloutIsCentered(t *testing.T) {
	s := NewScreen(DemoWidth, DemoHeight, NewDemoWidgets().Root)
	step, err := api.NewStep("missing", "Where", "Nowhere")
	require.NoError(t, err)

	require.NoError(t, s.ShowCallout(api.CalloutRequest{Step: step}))
	x, y := s.calloutOrigin(api.CalloutRequest{Step: step}, renderCallout(api.CalloutRequest{Step: step}))
	require.Equal(t, (DemoWidth-CalloutWidth)/2, x)
	require.Equal(t, (DemoHeight-4)/2, y)
}

func TestScreen_CalloutStaysInsideViewport(t *testing.T) {
	s := NewScreen(DemoWidth, DemoHeight, NewDemoWidgets().Root)
	step, err := api.NewStep("helpButton", "Help", "Help", api.WithPlacement(api.PlacementRightTop))
	require.NoError(t, err)

	req := api.CalloutRequest{Step: step, Target: &Widget{}, Bounds: api.Rect{X: 64, Y: 2, W: 10, H: 1}}
	x, y := s.calloutOrigin(req, renderCallout(req))
	require.Equal(t, DemoWidth-CalloutWidth, x)
	require.Equal(t, 2, y)
}

func TestScreen_Overlay(t *testing.T) {
	s := NewScreen(DemoWidth, DemoHeight, NewDemoWidgets().Root)
	ctx := context.Background()
	h := &keyLog{}

	require.NoError(t, s.PointerDown(ctx, api.Point{X: 1, Y: 1}), "no overlay is a no-op")

	o, err := s.InstallOverlay("REC", h)
	require.NoError(t, err)
	_, err = s.InstallOverlay("again", h)
	require.Error(t, err)

	banner, ok := s.Banner()
	require.True(t, ok)
	require.Equal(t, "REC", banner)

	require.NoError(t, s.PointerDown(ctx, api.Point{X: 3, Y: 2}))
	require.NoError(t, s.Key(ctx, "a"))

	o.Hide()
	_, ok = s.Banner()
	require.False(t, ok)
	require.NoError(t, s.Key(ctx, "b"))
	require.True(t, s.Capturing())

	o.Show()
	o.Remove()
	require.False(t, s.Capturing())
	require.NoError(t, s.Key(ctx, "c"))

	require.Equal(t, []api.Point{{X: 3, Y: 2}}, h.points)
	require.Equal(t, []string{"a"}, h.keys)
}

func TestWidget_PreferredPlacement(t *testing.T) {
	w := NewDemoWidgets()
	require.False(t, w.Name.PreferredPlacement().Valid())

	var help *Widget
	w.Root.walk(func(x *Widget) {
		if x.Automation == "helpButton" {
			help = x
		}
	})
	require.NotNil(t, help)
	require.Equal(t, api.PlacementBottomRight, help.PreferredPlacement())
}
