package elementid

import (
	"sync"

	"github.com/petrijr/featuretour/pkg/api"
)

// Registry maps logical ids to live element handles. Elements are indexed
// under every id they declare (explicit, automation, name), so a step may
// address an element by any of them. Only comparable handles are tracked for
// Detach; others are indexed and removed by their declared ids.
type Registry struct {
	mu   sync.RWMutex
	byID map[string]api.Element
	ids  map[api.Element][]string
}

// Ensure Registry implements ElementLookup.
var _ api.ElementLookup = (*Registry)(nil)

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]api.Element),
		ids:  make(map[api.Element][]string),
	}
}

// Attach indexes el under its declared ids and returns the primary one
// (first link of the chain). Elements without any declared id are not
// indexed and "" is returned. Later attachments win on id collisions.
func (r *Registry) Attach(el api.Element) string {
	ids := declaredIDs(el)
	if len(ids) == 0 {
		return ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.detachLocked(el)
	for _, id := range ids {
		r.byID[id] = el
	}
	if Comparable(el) {
		r.ids[el] = ids
	}
	return ids[0]
}

// AttachAs indexes el under an explicit id regardless of what it declares.
func (r *Registry) AttachAs(id string, el api.Element) {
	if id == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[id] = el
	if Comparable(el) && !contains(r.ids[el], id) {
		r.ids[el] = append(r.ids[el], id)
	}
}

// Detach removes every id indexed for el.
func (r *Registry) Detach(el api.Element) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detachLocked(el)
}

func (r *Registry) detachLocked(el api.Element) {
	if !Comparable(el) {
		for _, id := range declaredIDs(el) {
			delete(r.byID, id)
		}
		return
	}
	for _, id := range r.ids[el] {
		if r.byID[id] == el {
			delete(r.byID, id)
		}
	}
	delete(r.ids, el)
}

// Lookup resolves id to a live element.
func (r *Registry) Lookup(id string) (api.Element, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	el, ok := r.byID[id]
	return el, ok
}

// Len returns the number of indexed ids.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func declaredIDs(el api.Element) []string {
	var ids []string
	for _, id := range []string{el.ElementID(), el.AutomationID(), el.Name()} {
		if id != "" && !contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
