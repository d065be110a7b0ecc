package navigator

import (
	"context"

	"github.com/petrijr/featuretour/internal/actions"
	"github.com/petrijr/featuretour/pkg/api"
)

// liveControl forwards to the navigator while it is still on elementID.
// Once the run has moved on, it behaves like noopControl.
type liveControl struct {
	nav       *Navigator
	elementID string
}

func (c *liveControl) Active() bool { return c.nav.onStep(c.elementID) }

func (c *liveControl) MoveNext(ctx context.Context) error {
	if !c.Active() {
		return nil
	}
	return c.nav.MoveNext(ctx)
}

func (c *liveControl) MovePrevious(ctx context.Context) error {
	if !c.Active() {
		return nil
	}
	return c.nav.MovePrevious(ctx)
}

func (c *liveControl) Close(ctx context.Context) error {
	if !c.Active() {
		return nil
	}
	return c.nav.Close(ctx)
}

type noopControl struct{}

func (noopControl) Active() bool                       { return false }
func (noopControl) MoveNext(context.Context) error     { return nil }
func (noopControl) MovePrevious(context.Context) error { return nil }
func (noopControl) Close(context.Context) error        { return nil }

type stepExecution struct {
	repo      *actions.Repository
	tourName  string
	elementID string
}

func (s *stepExecution) AttachDoable(action api.Action, guards ...api.Guard) api.StepExecution {
	s.repo.Add(s.tourName, s.elementID, action, guards...)
	return s
}

type tourScope struct {
	repo     *actions.Repository
	tourName string
}

func (t tourScope) ForStep(elementID string) api.StepExecution {
	return &stepExecution{repo: t.repo, tourName: t.tourName, elementID: elementID}
}
