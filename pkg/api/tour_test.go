package api

import (
	"errors"
	"fmt"
	"testing"

	"go.uber.org/multierr"
)

type card struct{ title string }

func (c card) String() string { return "card:" + c.title }

func TestContentOf(t *testing.T) {
	if c := ContentOf("hello"); c.Kind() != ContentText || c.String() != "hello" {
		t.Fatalf("string should become text, got %v %q", c.Kind(), c.String())
	}
	if c := ContentOf(nil); !c.IsZero() {
		t.Fatalf("nil should be empty, got %v", c.Kind())
	}

	vm := ContentOf(card{title: "x"})
	if vm.Kind() != ContentViewModel {
		t.Fatalf("struct should be a view model, got %v", vm.Kind())
	}
	if vm.String() != "card:x" {
		t.Fatalf("view model String should use fmt.Stringer, got %q", vm.String())
	}
	if _, ok := vm.AsText(); ok {
		t.Fatalf("view model is not text")
	}
	if m, ok := vm.AsViewModel(); !ok || m.(card).title != "x" {
		t.Fatalf("AsViewModel lost the model: %v", m)
	}

	if c := ContentOf(Text("kept")); c.String() != "kept" {
		t.Fatalf("Content values are kept as is")
	}
	if c := ViewModel(nil); !c.IsZero() {
		t.Fatalf("nil view model should be empty")
	}
}

func TestNewStep_Validation(t *testing.T) {
	s, err := NewStep("openButton", "Open", "Opens", WithPlacement(PlacementBottomCenter), WithTag(7))
	if err != nil {
		t.Fatalf("NewStep: %v", err)
	}
	if s.Placement != PlacementBottomCenter || s.Tag != 7 {
		t.Fatalf("options not applied: %+v", s)
	}
	if def, err := NewStep("x", "X", ""); err != nil || def.Placement != PlacementTopLeft {
		t.Fatalf("default placement should be TopLeft, got %v, %v", def.Placement, err)
	}

	if _, err := NewStep(" ", "H", "C"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty id, got %v", err)
	}
	if _, err := NewStep("x", "H", "C", WithPlacement(Placement(99))); !errors.Is(err, ErrInvalidPlacement) {
		t.Fatalf("expected ErrInvalidPlacement, got %v", err)
	}
}

func TestStep_NextButtonVisible(t *testing.T) {
	plain := MustStep("a", "A", "a")
	if !plain.NextButtonVisible(true) || plain.NextButtonVisible(false) {
		t.Fatalf("without override the tour default applies")
	}
	hidden := MustStep("a", "A", "a", WithNextButton(false))
	if hidden.NextButtonVisible(true) {
		t.Fatalf("override should win over the tour default")
	}
}

func TestNewTour_ReportsAllProblems(t *testing.T) {
	_, err := NewTour("", []Step{
		{ElementID: "", Placement: PlacementTopLeft},
		{ElementID: "b", Placement: Placement(77)},
	})
	if err == nil {
		t.Fatalf("expected an error")
	}
	if n := len(multierr.Errors(err)); n != 3 {
		t.Fatalf("expected 3 aggregated errors, got %d: %v", n, err)
	}
	if !errors.Is(err, ErrValidation) || !errors.Is(err, ErrInvalidPlacement) {
		t.Fatalf("aggregated error should match both sentinels: %v", err)
	}

	if _, err := NewTour("empty", nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for a tour without steps, got %v", err)
	}
}

func TestTour_IsImmutable(t *testing.T) {
	steps := []Step{MustStep("a", "A", "a", WithNextButton(true))}
	tour, err := NewTour("T", steps, WithShowNextButtonDefault(false))
	if err != nil {
		t.Fatalf("NewTour: %v", err)
	}
	steps[0].ElementID = "changed"
	*steps[0].ShowNextButton = false

	got := tour.Step(0)
	if got.ElementID != "a" || !*got.ShowNextButton {
		t.Fatalf("tour should hold its own copy, got %+v", got)
	}
	*got.ShowNextButton = false
	if !*tour.Steps()[0].ShowNextButton {
		t.Fatalf("returned steps should be copies")
	}
	if tour.ShowNextButtonDefault() {
		t.Fatalf("WithShowNextButtonDefault(false) not applied")
	}
}

func TestDocument_RoundTrip(t *testing.T) {
	tour, err := NewTour("Docs", []Step{
		MustStep("a", "A", "first", WithPlacement(PlacementLeftTop), WithNextButton(false)),
		MustStep("b", "B", "second", WithContentTemplate("wide")),
	})
	if err != nil {
		t.Fatalf("NewTour: %v", err)
	}

	doc, err := DocumentFromTour("docs", tour)
	if err != nil {
		t.Fatalf("DocumentFromTour: %v", err)
	}
	if doc.TourID != "docs" || len(doc.Steps) != 2 || doc.Steps[1].ContentTemplateKey != "wide" {
		t.Fatalf("unexpected document: %+v", doc)
	}

	back, err := doc.ToTour()
	if err != nil {
		t.Fatalf("ToTour: %v", err)
	}
	first := back.Step(0)
	if first.Placement != PlacementLeftTop || first.NextButtonVisible(true) {
		t.Fatalf("step options lost: %+v", first)
	}
	if back.Step(1).Content.String() != "second" {
		t.Fatalf("content lost: %q", back.Step(1).Content.String())
	}
}

func TestDocumentFromTour_RejectsViewModels(t *testing.T) {
	tour, err := NewTour("VM", []Step{MustStep("a", card{title: "x"}, "body")})
	if err != nil {
		t.Fatalf("NewTour: %v", err)
	}
	if _, err := DocumentFromTour("vm", tour); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestTourDocument_Validate(t *testing.T) {
	doc := TourDocument{Steps: []StepDocument{{ElementID: "", Placement: Placement(20)}}}
	err := doc.Validate()
	if n := len(multierr.Errors(err)); n != 4 {
		t.Fatalf("expected 4 problems, got %d: %v", n, err)
	}
}

func TestRecordedStep(t *testing.T) {
	ok := RecordedStep{ElementID: "a", Header: "H", Content: "C", Placement: PlacementCenter}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	for _, bad := range []RecordedStep{
		{ElementID: "", Header: "H", Content: "C"},
		{ElementID: "a", Header: " ", Content: "C"},
		{ElementID: "a", Header: "H", Content: ""},
	} {
		if err := bad.Validate(); !errors.Is(err, ErrValidation) {
			t.Fatalf("%+v: expected ErrValidation, got %v", bad, err)
		}
	}

	tour, err := TourFromRecorded("Rec", []RecordedStep{ok})
	if err != nil {
		t.Fatalf("TourFromRecorded: %v", err)
	}
	if !tour.ShowNextButtonDefault() || tour.Step(0).Placement != PlacementCenter {
		t.Fatalf("unexpected tour: %+v", tour.Step(0))
	}
}

func TestErrors(t *testing.T) {
	if !errors.Is(ErrAlreadyRecording, ErrInvalidState) || !errors.Is(ErrNotRecording, ErrInvalidState) {
		t.Fatalf("recording errors should wrap ErrInvalidState")
	}

	wrapped := fmt.Errorf("step 2: %w", &UnresolvedTargetError{ElementID: "gone"})
	id, ok := IsUnresolvedTarget(wrapped)
	if !ok || id != "gone" || !errors.Is(wrapped, ErrUnresolvedTarget) {
		t.Fatalf("IsUnresolvedTarget(%v) = %q, %v", wrapped, id, ok)
	}
	if _, ok := IsUnresolvedTarget(errors.New("other")); ok {
		t.Fatalf("unrelated errors are not unresolved targets")
	}

	fe := &FeatureUnavailableError{Feature: "fancy", Remediation: "build with -tags fancy"}
	if !errors.Is(fe, ErrFeatureUnavailable) {
		t.Fatalf("FeatureUnavailableError should match ErrFeatureUnavailable")
	}

	var ve *ValidationError
	if !errors.As(NewValidationError("header", "must not be empty"), &ve) || ve.Field != "header" {
		t.Fatalf("NewValidationError should produce *ValidationError")
	}
}
