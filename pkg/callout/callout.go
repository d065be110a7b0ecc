// Package callout holds the pluggable strategies that produce popup views
// for tour steps, and a runtime registry to switch between them.
package callout

import (
	"fmt"
	"strings"

	"github.com/petrijr/featuretour/pkg/api"
)

// Factory produces the visual for one callout.
type Factory interface {
	// ImplementationName identifies the factory in the registry.
	ImplementationName() string

	// CreateCallout returns an opaque view for req. The navigator stores it
	// in CalloutRequest.View before handing the request to the surface.
	CreateCallout(req api.CalloutRequest) (any, error)
}

// Availability is an optional capability a Factory may implement to report
// that it cannot be used in this build or configuration.
type Availability interface {
	Available() error
}

// TextView is the view produced by TextFactory.
type TextView struct {
	Header   string
	Body     string
	Progress string
	Buttons  []string
}

func (v TextView) String() string {
	var b strings.Builder
	if v.Header != "" {
		b.WriteString(v.Header)
		b.WriteString("\n")
	}
	if v.Body != "" {
		b.WriteString(v.Body)
		b.WriteString("\n")
	}
	if v.Progress != "" {
		b.WriteString(v.Progress)
	}
	if len(v.Buttons) > 0 {
		if v.Progress != "" {
			b.WriteString("  ")
		}
		b.WriteString("[" + strings.Join(v.Buttons, "] [") + "]")
	}
	return strings.TrimRight(b.String(), "\n")
}

// DefaultName is the name of the built-in text factory.
const DefaultName = "text"

// TextFactory renders steps as plain text. It is always available.
type TextFactory struct{}

func (TextFactory) ImplementationName() string { return DefaultName }

func (TextFactory) CreateCallout(req api.CalloutRequest) (any, error) {
	v := TextView{
		Header: req.Step.Header.String(),
		Body:   req.Step.Content.String(),
	}
	if req.StepCount > 0 {
		v.Progress = fmt.Sprintf("%d/%d", req.Index+1, req.StepCount)
	}
	if req.CanGoBack {
		v.Buttons = append(v.Buttons, "Back")
	}
	if req.ShowNextButton {
		if req.Index == req.StepCount-1 {
			v.Buttons = append(v.Buttons, "Done")
		} else {
			v.Buttons = append(v.Buttons, "Next")
		}
	}
	v.Buttons = append(v.Buttons, "Close")
	return v, nil
}

// Unavailable is a placeholder for an optional implementation that was not
// built in. Selecting it always fails with a FeatureUnavailableError.
type Unavailable struct {
	Name        string
	Remediation string
}

func (u Unavailable) ImplementationName() string { return u.Name }

func (u Unavailable) Available() error {
	return &api.FeatureUnavailableError{
		Feature:     fmt.Sprintf("callout implementation %q", u.Name),
		Remediation: u.Remediation,
	}
}

func (u Unavailable) CreateCallout(api.CalloutRequest) (any, error) {
	return nil, u.Available()
}

// FactoryFunc adapts a function into a Factory.
type FactoryFunc struct {
	Name string
	Fn   func(req api.CalloutRequest) (any, error)
}

func (f FactoryFunc) ImplementationName() string { return f.Name }

func (f FactoryFunc) CreateCallout(req api.CalloutRequest) (any, error) {
	return f.Fn(req)
}
