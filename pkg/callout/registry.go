package callout

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/petrijr/featuretour/pkg/api"
)

// Registry holds named factories and the one currently active. A failed
// switch keeps the previously active factory, so a callout implementation
// is always configured.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	active    Factory
	fallback  Factory
}

// NewRegistry returns a registry with TextFactory registered and active.
func NewRegistry() *Registry {
	def := TextFactory{}
	return &Registry{
		factories: map[string]Factory{def.ImplementationName(): def},
		active:    def,
		fallback:  def,
	}
}

// Register adds or replaces a named factory. Registering does not activate it.
func (r *Registry) Register(f Factory) error {
	if f == nil {
		return errors.New("callout factory is nil")
	}
	name := f.ImplementationName()
	if name == "" {
		return api.NewValidationError("implementationName", "must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
	return nil
}

// Use activates the named factory. Unknown or unavailable factories yield a
// *api.FeatureUnavailableError and leave the active factory unchanged.
func (r *Registry) Use(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.factories[name]
	if !ok {
		return &api.FeatureUnavailableError{
			Feature:     fmt.Sprintf("callout implementation %q", name),
			Remediation: fmt.Sprintf("register it first; known implementations: %v", r.namesLocked()),
		}
	}
	if av, ok := f.(Availability); ok {
		if err := av.Available(); err != nil {
			return err
		}
	}
	r.active = f
	return nil
}

// UseDefault switches back to the built-in text factory.
func (r *Registry) UseDefault() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = r.fallback
}

// Reset drops every registered factory except the default and activates it.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories = map[string]Factory{r.fallback.ImplementationName(): r.fallback}
	r.active = r.fallback
}

// Active returns the current factory.
func (r *Registry) Active() Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// ActiveName returns the implementation name of the current factory.
func (r *Registry) ActiveName() string {
	return r.Active().ImplementationName()
}

// Names lists registered implementations in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Create builds a view with the active factory. When it fails, the default
// factory is tried before giving up.
func (r *Registry) Create(req api.CalloutRequest) (any, error) {
	f := r.Active()
	view, err := f.CreateCallout(req)
	if err == nil {
		return view, nil
	}
	if f.ImplementationName() == r.fallback.ImplementationName() {
		return nil, err
	}
	view, ferr := r.fallback.CreateCallout(req)
	if ferr != nil {
		return nil, errors.Join(err, ferr)
	}
	return view, nil
}
