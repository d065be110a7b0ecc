package featuretour

import (
	"sync"

	"github.com/petrijr/featuretour/pkg/api"
)

// Always is a guard that always allows the action.
func Always() Guard {
	return func(api.Step) bool { return true }
}

// Never is a guard that never allows the action.
func Never() Guard {
	return func(api.Step) bool { return false }
}

// Not inverts g.
func Not(g Guard) Guard {
	return func(s api.Step) bool { return !g(s) }
}

// And allows the action only when every guard does.
func And(guards ...Guard) Guard {
	return func(s api.Step) bool {
		for _, g := range guards {
			if g != nil && !g(s) {
				return false
			}
		}
		return true
	}
}

// Or allows the action when any guard does.
func Or(guards ...Guard) Guard {
	return func(s api.Step) bool {
		for _, g := range guards {
			if g != nil && g(s) {
				return true
			}
		}
		return false
	}
}

// Once allows the action the first time it is evaluated only.
func Once() Guard {
	var (
		mu   sync.Mutex
		done bool
	)
	return func(api.Step) bool {
		mu.Lock()
		defer mu.Unlock()
		if done {
			return false
		}
		done = true
		return true
	}
}

// When adapts a plain predicate, typically over host state, into a guard.
func When(pred func() bool) Guard {
	return func(api.Step) bool { return pred() }
}

// HasTag allows the action when the step's Tag equals tag.
func HasTag(tag any) Guard {
	return func(s api.Step) bool { return s.Tag == tag }
}
