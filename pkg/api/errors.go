package api

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState is returned when an operation is attempted in a state
	// that forbids it (start while running, next after completion, ...).
	ErrInvalidState = errors.New("invalid state")

	// ErrAlreadyRecording is returned when a recording is started while one
	// is already in progress.
	ErrAlreadyRecording = fmt.Errorf("%w: already recording", ErrInvalidState)

	// ErrNotRecording is returned when a recording operation requires an
	// active capture session but none is running.
	ErrNotRecording = fmt.Errorf("%w: not currently recording", ErrInvalidState)

	// ErrUnresolvedTarget marks a step whose element id has no live match.
	ErrUnresolvedTarget = errors.New("unresolved target")

	// ErrFeatureUnavailable marks a capability that is not present in the
	// current build or configuration.
	ErrFeatureUnavailable = errors.New("feature unavailable")

	// ErrValidation marks rejected input (empty header, invalid step, ...).
	ErrValidation = errors.New("validation failure")

	// ErrInvalidPlacement is returned for values outside the placement set.
	ErrInvalidPlacement = errors.New("invalid placement")
)

// UnresolvedTargetError reports a step target that could not be bound to a
// live element. It is recoverable: the tour keeps running.
type UnresolvedTargetError struct {
	ElementID string
}

func (e *UnresolvedTargetError) Error() string {
	return fmt.Sprintf("unresolved target: no element registered for %q", e.ElementID)
}

func (e *UnresolvedTargetError) Unwrap() error { return ErrUnresolvedTarget }

// FeatureUnavailableError reports an optional capability that cannot be used,
// together with a human readable remediation hint.
type FeatureUnavailableError struct {
	Feature     string
	Remediation string
}

func (e *FeatureUnavailableError) Error() string {
	if e.Remediation == "" {
		return fmt.Sprintf("%s is not available", e.Feature)
	}
	return fmt.Sprintf("%s is not available: %s", e.Feature, e.Remediation)
}

func (e *FeatureUnavailableError) Unwrap() error { return ErrFeatureUnavailable }

// ValidationError reports a rejected field value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failure: " + e.Message
	}
	return fmt.Sprintf("validation failure: %s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError is a small helper used by constructors across the module.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsUnresolvedTarget returns (elementID, true) if err reports an unresolved
// step target.
func IsUnresolvedTarget(err error) (string, bool) {
	var u *UnresolvedTargetError
	if errors.As(err, &u) {
		return u.ElementID, true
	}
	return "", false
}
