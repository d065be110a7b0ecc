package actions

import (
	"sync"

	"github.com/petrijr/featuretour/pkg/api"
)

// AnyTour is the scope used for attachments that apply to every tour.
const AnyTour = ""

// Entry is one attached action with its guard.
type Entry struct {
	Tour      string
	ElementID string
	Guard     api.Guard
	Action    api.Action

	seq uint64
}

// Allowed evaluates the guard for step. A nil guard always allows.
func (e Entry) Allowed(step api.Step) bool {
	return e.Guard == nil || e.Guard(step)
}

type key struct {
	tour      string
	elementID string
}

// Repository maps (tour name, element id) to an ordered list of actions.
// Entries are append-only and live as long as the repository.
type Repository struct {
	mu      sync.RWMutex
	entries map[key][]Entry
	nextSeq uint64
}

// NewRepository returns an empty repository.
func NewRepository() *Repository {
	return &Repository{
		entries: make(map[key][]Entry),
	}
}

// Add appends action for (tourName, elementID). Multiple guards are
// combined with logical AND; none means always.
func (r *Repository) Add(tourName, elementID string, action api.Action, guards ...api.Guard) {
	if action == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextSeq++
	k := key{tour: tourName, elementID: elementID}
	r.entries[k] = append(r.entries[k], Entry{
		Tour:      tourName,
		ElementID: elementID,
		Guard:     combine(guards),
		Action:    action,
		seq:       r.nextSeq,
	})
}

// Get returns the actions registered for (tourName, elementID) together
// with the AnyTour attachments for elementID, in registration order.
func (r *Repository) Get(tourName, elementID string) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scoped := r.entries[key{tour: tourName, elementID: elementID}]
	if tourName == AnyTour {
		return append([]Entry(nil), scoped...)
	}
	global := r.entries[key{tour: AnyTour, elementID: elementID}]

	out := make([]Entry, 0, len(scoped)+len(global))
	i, j := 0, 0
	for i < len(scoped) && j < len(global) {
		if scoped[i].seq < global[j].seq {
			out = append(out, scoped[i])
			i++
		} else {
			out = append(out, global[j])
			j++
		}
	}
	out = append(out, scoped[i:]...)
	out = append(out, global[j:]...)
	return out
}

// Len returns the total number of attachments.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, list := range r.entries {
		n += len(list)
	}
	return n
}

func combine(guards []api.Guard) api.Guard {
	filtered := make([]api.Guard, 0, len(guards))
	for _, g := range guards {
		if g != nil {
			filtered = append(filtered, g)
		}
	}
	switch len(filtered) {
	case 0:
		return nil
	case 1:
		return filtered[0]
	}
	return func(step api.Step) bool {
		for _, g := range filtered {
			if !g(step) {
				return false
			}
		}
		return true
	}
}
