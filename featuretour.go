package featuretour

import (
	"github.com/petrijr/featuretour/pkg/api"
	"github.com/petrijr/featuretour/pkg/callout"
	"github.com/petrijr/featuretour/pkg/recorder"
)

// Re-export key types so users don't need to dig into pkg/api.

type (
	Tour                 = api.Tour
	TourOption           = api.TourOption
	Step                 = api.Step
	StepOption           = api.StepOption
	Content              = api.Content
	Placement            = api.Placement
	Rect                 = api.Rect
	Point                = api.Point
	Size                 = api.Size
	Navigator            = api.Navigator
	StepControl          = api.StepControl
	StepExecution        = api.StepExecution
	Action               = api.Action
	Guard                = api.Guard
	TourRun              = api.TourRun
	RunStatus            = api.RunStatus
	TourDefinition       = api.TourDefinition
	TourDocument         = api.TourDocument
	RecordedStep         = api.RecordedStep
	Element              = api.Element
	Node                 = api.Node
	Surface              = api.Surface
	CaptureTarget        = api.CaptureTarget
	Prompter             = api.Prompter
	Observer             = api.Observer
	LoggingObserver      = api.LoggingObserver
	BasicMetrics         = api.BasicMetrics
	BasicMetricsSnapshot = api.BasicMetricsSnapshot
	CompositeObserver    = api.CompositeObserver
	NoopObserver         = api.NoopObserver
	CalloutFactory       = callout.Factory
	Recorder             = recorder.Recorder
)

// Re-export common constructors and helpers.

var (
	NewTour                   = api.NewTour
	NewStep                   = api.NewStep
	MustStep                  = api.MustStep
	Text                      = api.Text
	ViewModel                 = api.ViewModel
	WithPlacement             = api.WithPlacement
	WithNextButton            = api.WithNextButton
	WithTag                   = api.WithTag
	WithHeaderTemplate        = api.WithHeaderTemplate
	WithContentTemplate       = api.WithContentTemplate
	WithShowNextButtonDefault = api.WithShowNextButtonDefault
	ParsePlacement            = api.ParsePlacement
	Placements                = api.Placements
	NewLoggingObserver        = api.NewLoggingObserver
	NewCompositeObserver      = api.NewCompositeObserver
	IsUnresolvedTarget        = api.IsUnresolvedTarget
)

// Re-export placement values. Generated tour code refers to these.

const (
	PlacementTopLeft      = api.PlacementTopLeft
	PlacementTopCenter    = api.PlacementTopCenter
	PlacementTopRight     = api.PlacementTopRight
	PlacementRightTop     = api.PlacementRightTop
	PlacementRightCenter  = api.PlacementRightCenter
	PlacementRightBottom  = api.PlacementRightBottom
	PlacementBottomRight  = api.PlacementBottomRight
	PlacementBottomCenter = api.PlacementBottomCenter
	PlacementBottomLeft   = api.PlacementBottomLeft
	PlacementLeftBottom   = api.PlacementLeftBottom
	PlacementLeftCenter   = api.PlacementLeftCenter
	PlacementLeftTop      = api.PlacementLeftTop
	PlacementCenter       = api.PlacementCenter
)

// Re-export run status values for convenience.

const (
	StatusIdle      = api.StatusIdle
	StatusRunning   = api.StatusRunning
	StatusCompleted = api.StatusCompleted
	StatusCancelled = api.StatusCancelled
)

// Re-export error sentinels for errors.Is checks.

var (
	ErrInvalidState       = api.ErrInvalidState
	ErrAlreadyRecording   = api.ErrAlreadyRecording
	ErrNotRecording       = api.ErrNotRecording
	ErrUnresolvedTarget   = api.ErrUnresolvedTarget
	ErrFeatureUnavailable = api.ErrFeatureUnavailable
	ErrValidation         = api.ErrValidation
	ErrInvalidPlacement   = api.ErrInvalidPlacement
)
