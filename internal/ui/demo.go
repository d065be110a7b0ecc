package ui

import (
	"context"
	"fmt"

	"github.com/petrijr/featuretour"
	"github.com/petrijr/featuretour/pkg/api"
)

const (
	DemoWidth  = 80
	DemoHeight = 22
)

// DemoWidgets is the widget tree of the demo screen, with the widgets the
// demo actions touch.
type DemoWidgets struct {
	Root   *Widget
	Name   *Widget
	Color  *Widget
	Status *Widget
}

func hint(p api.Placement) *api.Placement { return &p }

// NewDemoWidgets builds the demo screen.
func NewDemoWidgets() *DemoWidgets {
	name := &Widget{ID: "nameField", Label: "Name", Kind: KindTextBox, Box: api.Rect{X: 4, Y: 6, W: 34, H: 1}}
	color := &Widget{ID: "colorField", Label: "Color", Kind: KindTextBox, Box: api.Rect{X: 4, Y: 8, W: 34, H: 1}}
	status := &Widget{Automation: "statusLabel", Label: "Ready", Kind: KindLabel, Box: api.Rect{X: 2, Y: 20, W: 40, H: 1}}

	root := &Widget{Kind: KindPanel, Label: "FeatureTour Demo", Box: api.Rect{W: DemoWidth, H: DemoHeight}, Kids: []*Widget{
		{ID: "openButton", Label: "Open", Kind: KindButton, Box: api.Rect{X: 2, Y: 2, W: 10, H: 1}},
		{ID: "saveButton", Label: "Save", Kind: KindButton, Box: api.Rect{X: 14, Y: 2, W: 10, H: 1}},
		{Label: "About", Kind: KindButton, Box: api.Rect{X: 50, Y: 2, W: 11, H: 1}},
		{Automation: "helpButton", Label: "Help", Kind: KindButton, Box: api.Rect{X: 64, Y: 2, W: 10, H: 1}, Hint: hint(api.PlacementBottomRight)},
		{ID: "settingsPanel", Label: "Settings", Kind: KindPanel, Box: api.Rect{X: 2, Y: 4, W: 40, H: 9}, Kids: []*Widget{
			name,
			color,
			{ID: "clearButton", Label: "Clear", Kind: KindButton, Box: api.Rect{X: 4, Y: 10, W: 11, H: 1}},
		}},
		{ID: "placementTarget", Label: "Target", Kind: KindPanel, Box: api.Rect{X: 56, Y: 10, W: 12, H: 3}},
		status,
	}}
	return &DemoWidgets{Root: root, Name: name, Color: color, Status: status}
}

// IntroductionTour is the first demo tour.
type IntroductionTour struct{}

func (IntroductionTour) TourID() string      { return "introduction" }
func (IntroductionTour) TourName() string    { return "Introduction" }
func (IntroductionTour) Description() string { return "A walk over the main controls" }
func (IntroductionTour) DisplayOrder() int   { return 1 }

func (IntroductionTour) CreateTour() (*featuretour.Tour, error) {
	return featuretour.New("Introduction").
		Step("openButton", "Open", "Opens a document.", featuretour.WithPlacement(featuretour.PlacementBottomLeft)).
		Step("saveButton", "Save", "Saves your work.", featuretour.WithPlacement(featuretour.PlacementBottomCenter)).
		Step("settingsPanel", "Settings", "Everything you can configure lives here.", featuretour.WithPlacement(featuretour.PlacementRightCenter)).
		Step("helpButton", "Help", "Found by its automation id.", featuretour.WithPlacement(featuretour.PlacementBottomRight)).
		Step("statusLabel", "Status", "Messages show up here.", featuretour.WithPlacement(featuretour.PlacementTopLeft)).
		Step("wizardButton", "Missing", "This element does not exist, so the callout is centered.").
		Build()
}

// PositioningTour shows every placement against the same target.
type PositioningTour struct{}

func (PositioningTour) TourID() string      { return "positioning" }
func (PositioningTour) TourName() string    { return "Positioning" }
func (PositioningTour) Description() string { return "All thirteen callout placements" }
func (PositioningTour) DisplayOrder() int   { return 2 }

func (PositioningTour) CreateTour() (*featuretour.Tour, error) {
	b := featuretour.New("Positioning")
	for _, p := range featuretour.Placements() {
		b.Step("placementTarget", p.String(), fmt.Sprintf("Placement %s grows %s.", p, p.Direction()), featuretour.WithPlacement(p))
	}
	return b.Build()
}

// ActiveTour drives the screen: actions fill in fields, and the host's
// Clear button ends the tour on its last step.
type ActiveTour struct{}

func (ActiveTour) TourID() string      { return "active-tour" }
func (ActiveTour) TourName() string    { return "Active Tour" }
func (ActiveTour) Description() string { return "Actions that change the screen" }
func (ActiveTour) DisplayOrder() int   { return 3 }

func (ActiveTour) CreateTour() (*featuretour.Tour, error) {
	return featuretour.New("Active Tour").
		Step("nameField", "Name", "The tour typed a name for you.", featuretour.WithPlacement(featuretour.PlacementRightCenter)).
		Step("colorField", "Color", "And picked a color.", featuretour.WithPlacement(featuretour.PlacementRightCenter)).
		Step("clearButton", "Clear", "Press c to clear the form. That ends the tour.",
			featuretour.WithPlacement(featuretour.PlacementBottomLeft), featuretour.WithNextButton(false)).
		Build()
}

// DemoTours returns the demo tour definitions.
func DemoTours() []featuretour.TourDefinition {
	return []featuretour.TourDefinition{IntroductionTour{}, PositioningTour{}, ActiveTour{}}
}

// SetupDemo registers the demo widgets and tours with s and attaches the
// Active Tour actions.
func SetupDemo(s *featuretour.Session, w *DemoWidgets) error {
	s.SyncTree(w.Root)
	for _, def := range DemoTours() {
		if err := s.Catalog.Register(def); err != nil {
			return err
		}
	}

	active := s.Navigator.ForTour(ActiveTour{}.TourName())
	active.ForStep("nameField").AttachDoable(func(ctx context.Context, step featuretour.Step) {
		w.Name.Value = "Gopher"
	})
	active.ForStep("colorField").AttachDoable(func(ctx context.Context, step featuretour.Step) {
		w.Color.Value = "Blue"
	}, featuretour.When(func() bool { return w.Color.Value == "" }))
	return nil
}

// Clear empties the form. While the Active Tour shows its Clear step, it
// also ends the tour.
func Clear(ctx context.Context, s *featuretour.Session, w *DemoWidgets) error {
	w.Name.Value = ""
	w.Color.Value = ""
	return s.Navigator.IfCurrentStepEquals("clearButton").Close(ctx)
}
