package recorder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/petrijr/featuretour/internal/testutil"
	"github.com/petrijr/featuretour/pkg/api"
)

type hintedElement struct {
	testutil.FakeElement
	placement api.Placement
}

func (h *hintedElement) PreferredPlacement() api.Placement { return h.placement }

func threeButtons() (*testutil.FakeSurface, []*testutil.FakeElement) {
	a := &testutil.FakeElement{ID: "A", Type: "Button", Box: api.Rect{X: 0, Y: 0, W: 50, H: 20}}
	b := &testutil.FakeElement{ID: "B", Type: "Button", Box: api.Rect{X: 100, Y: 0, W: 50, H: 20}}
	c := &testutil.FakeElement{ID: "C", Type: "TextBox", Box: api.Rect{X: 200, Y: 0, W: 50, H: 20}}
	return testutil.NewFakeSurface(a, b, c), []*testutil.FakeElement{a, b, c}
}

func centerOf(el *testutil.FakeElement) api.Point { return el.Box.Center() }

func TestRecorder_ClicksBecomeStepsInOrder(t *testing.T) {
	ctx := context.Background()
	surface, els := threeButtons()
	prompter := &testutil.ScriptedPrompter{Answers: []testutil.PromptAnswer{
		{Header: "First", Content: "The A button"},
		{Header: "Second", Content: "The B button"},
		{Header: "Third", Content: "The C box"},
	}}
	rec := New(Config{Prompter: prompter})

	require.NoError(t, rec.StartRecording(ctx, surface))
	require.True(t, rec.IsRecording())
	require.Equal(t, DefaultBanner, surface.Banner)

	for _, el := range els {
		require.NoError(t, surface.Click(ctx, centerOf(el)))
	}

	steps, err := rec.StopRecording(ctx)
	require.NoError(t, err)
	require.Len(t, steps, 3)
	require.Equal(t, []string{"A", "B", "C"}, []string{steps[0].ElementID, steps[1].ElementID, steps[2].ElementID})
	require.Equal(t, "Second", steps[1].Header)
	require.Equal(t, "TextBox", steps[2].ElementType)
	require.Equal(t, api.PlacementTopLeft, steps[0].Placement)
	require.True(t, surface.Overlay.Removed)
	require.False(t, rec.IsRecording())

	tour, err := NewScript(steps).ToTour("Recorded")
	require.NoError(t, err)
	require.Equal(t, 3, tour.Len())
	require.True(t, tour.ShowNextButtonDefault())
	require.Equal(t, "The C box", tour.Step(2).Content.String())
}

func TestRecorder_StartTwiceFails(t *testing.T) {
	ctx := context.Background()
	surface, _ := threeButtons()
	rec := New(Config{})

	require.NoError(t, rec.StartRecording(ctx, surface))
	err := rec.StartRecording(ctx, surface)
	require.ErrorIs(t, err, api.ErrAlreadyRecording)
	require.ErrorIs(t, err, api.ErrInvalidState)
	require.Equal(t, 1, surface.Installations)
}

func TestRecorder_StopWhenIdleFails(t *testing.T) {
	rec := New(Config{})
	_, err := rec.StopRecording(context.Background())
	require.ErrorIs(t, err, api.ErrNotRecording)
}

func TestRecorder_OverlayInstallFailureRevertsToIdle(t *testing.T) {
	surface, _ := threeButtons()
	surface.InstallErr = errors.New("no window")
	rec := New(Config{})

	err := rec.StartRecording(context.Background(), surface)
	require.Error(t, err)
	require.Equal(t, StateIdle, rec.State())
}

func TestRecorder_StartClearsPreviousSteps(t *testing.T) {
	ctx := context.Background()
	surface, els := threeButtons()
	prompter := &testutil.ScriptedPrompter{Answers: []testutil.PromptAnswer{{Header: "h", Content: "c"}}}
	rec := New(Config{Prompter: prompter})

	require.NoError(t, rec.StartRecording(ctx, surface))
	require.NoError(t, surface.Click(ctx, centerOf(els[0])))
	_, err := rec.StopRecording(ctx)
	require.NoError(t, err)
	require.Len(t, rec.Steps(), 1)

	require.NoError(t, rec.StartRecording(ctx, surface))
	require.Empty(t, rec.Steps())
}

func TestRecorder_EmptyAnswerIsRepromptedWithError(t *testing.T) {
	ctx := context.Background()
	surface, els := threeButtons()
	prompter := &testutil.ScriptedPrompter{Answers: []testutil.PromptAnswer{
		{Header: "", Content: "body"},
		{Header: "Header", Content: "body"},
	}}
	rec := New(Config{Prompter: prompter})

	require.NoError(t, rec.StartRecording(ctx, surface))
	require.NoError(t, surface.Click(ctx, centerOf(els[0])))

	require.Len(t, prompter.Drafts, 2)
	require.NoError(t, prompter.Drafts[0].Err)
	require.ErrorIs(t, prompter.Drafts[1].Err, api.ErrValidation)
	require.Equal(t, "body", prompter.Drafts[1].Content)

	steps := rec.Steps()
	require.Len(t, steps, 1)
	require.Equal(t, "Header", steps[0].Header)
}

func TestRecorder_SkipAddsNothingAndResumes(t *testing.T) {
	ctx := context.Background()
	surface, els := threeButtons()
	prompter := &testutil.ScriptedPrompter{Answers: []testutil.PromptAnswer{
		{Skip: true},
		{Header: "B", Content: "b"},
	}}
	rec := New(Config{Prompter: prompter})

	require.NoError(t, rec.StartRecording(ctx, surface))
	require.NoError(t, surface.Click(ctx, centerOf(els[0])))
	require.True(t, surface.Overlay.Visible)
	require.NoError(t, surface.Click(ctx, centerOf(els[1])))

	steps := rec.Steps()
	require.Len(t, steps, 1)
	require.Equal(t, "B", steps[0].ElementID)
}

func TestRecorder_PrompterErrorDiscardsCapture(t *testing.T) {
	ctx := context.Background()
	surface, els := threeButtons()
	boom := errors.New("dialog crashed")
	prompter := &testutil.ScriptedPrompter{Answers: []testutil.PromptAnswer{{Err: boom}}}
	rec := New(Config{Prompter: prompter})

	require.NoError(t, rec.StartRecording(ctx, surface))
	err := surface.Click(ctx, centerOf(els[0]))
	require.ErrorIs(t, err, boom)

	_, pending := rec.Pending()
	require.False(t, pending)
	require.True(t, rec.IsRecording())
}

func TestRecorder_ClickOnEmptySpaceIsIgnored(t *testing.T) {
	ctx := context.Background()
	surface, _ := threeButtons()
	rec := New(Config{})

	require.NoError(t, rec.StartRecording(ctx, surface))
	require.NoError(t, surface.Click(ctx, api.Point{X: 500, Y: 500}))

	_, pending := rec.Pending()
	require.False(t, pending)
	require.Equal(t, 0, surface.Overlay.Hides)
}

func TestRecorder_PendingCaptureSuspendsInput(t *testing.T) {
	ctx := context.Background()
	surface, els := threeButtons()
	rec := New(Config{})

	require.NoError(t, rec.StartRecording(ctx, surface))
	require.NoError(t, surface.Click(ctx, centerOf(els[0])))

	p, ok := rec.Pending()
	require.True(t, ok)
	require.Equal(t, "A", p.Draft().ElementID)
	require.Equal(t, "Button", p.Draft().ElementType)
	require.Same(t, els[0], p.Element())
	require.False(t, surface.Overlay.Visible)

	// Ignored while the capture waits for input.
	require.NoError(t, surface.Click(ctx, centerOf(els[1])))
	require.NoError(t, surface.Press(ctx, "esc"))
	require.True(t, rec.IsRecording())
	again, _ := rec.Pending()
	require.Same(t, p, again)

	err := p.Confirm(ctx, api.StepInput{Header: "  ", Content: "c"})
	require.ErrorIs(t, err, api.ErrValidation)
	require.ErrorIs(t, p.Draft().Err, api.ErrValidation)
	_, still := rec.Pending()
	require.True(t, still)

	require.NoError(t, p.Confirm(ctx, api.StepInput{ElementID: "saveButton", Header: "Save", Content: "Saves"}))
	require.True(t, surface.Overlay.Visible)
	require.ErrorIs(t, p.Confirm(ctx, api.StepInput{Header: "x", Content: "y"}), api.ErrNotRecording)

	steps := rec.Steps()
	require.Len(t, steps, 1)
	require.Equal(t, "saveButton", steps[0].ElementID)
}

func TestRecorder_StopDiscardsPendingCapture(t *testing.T) {
	ctx := context.Background()
	surface, els := threeButtons()
	rec := New(Config{})

	require.NoError(t, rec.StartRecording(ctx, surface))
	require.NoError(t, surface.Click(ctx, centerOf(els[0])))
	p, _ := rec.Pending()

	steps, err := rec.StopRecording(ctx)
	require.NoError(t, err)
	require.Empty(t, steps)
	require.ErrorIs(t, p.Confirm(ctx, api.StepInput{Header: "h", Content: "c"}), api.ErrNotRecording)
}

func TestRecorder_EscapeKeyStops(t *testing.T) {
	ctx := context.Background()
	surface, _ := threeButtons()
	rec := New(Config{EscapeKey: "q"})

	require.NoError(t, rec.StartRecording(ctx, surface))
	require.NoError(t, surface.Press(ctx, "x"))
	require.True(t, rec.IsRecording())

	require.NoError(t, surface.Press(ctx, "Q"))
	require.False(t, rec.IsRecording())
	require.True(t, surface.Overlay.Removed)
}

func TestRecorder_SynthesizedIDsAndHints(t *testing.T) {
	ctx := context.Background()
	anon1 := &testutil.FakeElement{Type: "Button", Box: api.Rect{W: 10, H: 10}}
	anon2 := &testutil.FakeElement{Type: "Button", Box: api.Rect{X: 20, W: 10, H: 10}}
	hinted := &hintedElement{
		FakeElement: testutil.FakeElement{Automation: "search", Type: "TextBox"},
		placement:   api.PlacementBottomCenter,
	}
	surface := testutil.NewFakeSurface(anon1, anon2)
	prompter := &testutil.ScriptedPrompter{Answers: []testutil.PromptAnswer{
		{Header: "1", Content: "1"}, {Header: "2", Content: "2"}, {Header: "3", Content: "3"},
	}}
	rec := New(Config{Prompter: prompter, DefaultPlacement: api.PlacementRightCenter})

	require.NoError(t, rec.StartRecording(ctx, surface))
	require.NoError(t, surface.Click(ctx, api.Point{X: 5, Y: 5}))
	require.NoError(t, surface.Click(ctx, api.Point{X: 25, Y: 5}))
	require.NoError(t, surface.Click(ctx, api.Point{X: 5, Y: 5}))

	steps := rec.Steps()
	require.Equal(t, "Button_1", steps[0].ElementID)
	require.Equal(t, "Button_2", steps[1].ElementID)
	require.Equal(t, "Button_1", steps[2].ElementID)
	require.Equal(t, api.PlacementRightCenter, steps[0].Placement)

	require.Equal(t, api.PlacementBottomCenter, rec.placementFor(hinted))
	require.Equal(t, "search", rec.resolver.Resolve(hinted))
}

func TestRecorder_ManualStep(t *testing.T) {
	ctx := context.Background()
	rec := New(Config{})

	step, err := rec.AddManualStep(ctx, api.StepInput{Header: "Welcome", Content: "Hello"})
	require.NoError(t, err)
	require.Equal(t, "Element1", step.ElementID)
	require.Equal(t, "Manual", step.ElementType)
	require.Equal(t, api.PlacementTopCenter, step.Placement)

	step, err = rec.AddManualStep(ctx, api.StepInput{ElementID: "menu", Header: "Menu", Content: "Open it"})
	require.NoError(t, err)
	require.Equal(t, "menu", step.ElementID)

	_, err = rec.AddManualStep(ctx, api.StepInput{Header: "", Content: "x"})
	require.ErrorIs(t, err, api.ErrValidation)
	require.Len(t, rec.Steps(), 2)
}

func TestRecorder_ClearOnlyWhenIdle(t *testing.T) {
	ctx := context.Background()
	surface, _ := threeButtons()
	rec := New(Config{})
	_, err := rec.AddManualStep(ctx, api.StepInput{Header: "h", Content: "c"})
	require.NoError(t, err)

	require.NoError(t, rec.StartRecording(ctx, surface))
	require.ErrorIs(t, rec.Clear(), api.ErrInvalidState)
	_, err = rec.StopRecording(ctx)
	require.NoError(t, err)

	_, err = rec.AddManualStep(ctx, api.StepInput{Header: "h", Content: "c"})
	require.NoError(t, err)
	require.NoError(t, rec.Clear())
	require.Empty(t, rec.Steps())
}

func TestRecorder_ObserversSeeLifecycleInOrder(t *testing.T) {
	ctx := context.Background()
	surface, els := threeButtons()
	queue := NewEventQueue(0)
	prompter := &testutil.ScriptedPrompter{Answers: []testutil.PromptAnswer{
		{Header: "a", Content: "a"}, {Header: "b", Content: "b"},
	}}
	rec := New(Config{
		Prompter: prompter,
		Observer: NewCompositeObserver(queue, NewLoggingObserver(nil), nil),
	})

	require.NoError(t, rec.StartRecording(ctx, surface))
	require.NoError(t, surface.Click(ctx, centerOf(els[0])))
	require.NoError(t, surface.Click(ctx, centerOf(els[1])))
	_, err := rec.StopRecording(ctx)
	require.NoError(t, err)

	events := queue.Drain()
	require.Len(t, events, 4)
	require.Equal(t, EventRecordingStarted, events[0].Type)
	require.Equal(t, EventStepRecorded, events[1].Type)
	require.Equal(t, 0, events[1].Index)
	require.Equal(t, "B", events[2].Step.ElementID)
	require.Equal(t, 1, events[2].Index)
	require.Equal(t, EventRecordingStopped, events[3].Type)
	require.Len(t, events[3].Steps, 2)
	require.Zero(t, queue.Len())
}

func TestEventQueue_DropsWhenFull(t *testing.T) {
	ctx := context.Background()
	q := NewEventQueue(1)
	q.OnRecordingStarted(ctx)
	q.OnRecordingStopped(ctx, nil)

	require.Equal(t, int64(1), q.Dropped())
	ev, err := q.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, EventRecordingStarted, ev.Type)
	require.False(t, ev.At.IsZero())

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = q.Next(cctx)
	require.ErrorIs(t, err, context.Canceled)
}
