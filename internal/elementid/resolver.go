package elementid

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/petrijr/featuretour/pkg/api"
)

// Source tells which link of the fallback chain produced an id.
type Source string

const (
	SourceExplicit    Source = "explicit"
	SourceAutomation  Source = "automation"
	SourceName        Source = "name"
	SourceSynthesized Source = "synthesized"
)

// Resolver names elements using the fallback chain
// explicit id -> automation id -> control name -> "{TypeName}_{n}".
//
// Synthesized ids are cached per element handle, so the same element always
// gets the same id. Handles should be pointers: an element whose dynamic
// value is not comparable has no identity and gets a fresh id on every call.
// Ordinals are counted per type name, start at 1 and are never reused.
type Resolver struct {
	mu          sync.Mutex
	ordinals    map[string]int
	synthesized map[api.Element]string
}

// NewResolver returns a Resolver with fresh ordinal counters.
func NewResolver() *Resolver {
	return &Resolver{
		ordinals:    make(map[string]int),
		synthesized: make(map[api.Element]string),
	}
}

// Resolve returns the logical id for el.
func (r *Resolver) Resolve(el api.Element) string {
	id, _ := r.ResolveWithSource(el)
	return id
}

// ResolveWithSource returns the logical id for el and the chain link that
// produced it.
func (r *Resolver) ResolveWithSource(el api.Element) (string, Source) {
	if id, src, ok := Declared(el); ok {
		return id, src
	}

	cacheable := Comparable(el)

	r.mu.Lock()
	defer r.mu.Unlock()

	if cacheable {
		if id, ok := r.synthesized[el]; ok {
			return id, SourceSynthesized
		}
	}

	typeName := strings.TrimSpace(el.TypeName())
	if typeName == "" {
		typeName = "Element"
	}
	r.ordinals[typeName]++
	id := fmt.Sprintf("%s_%d", typeName, r.ordinals[typeName])
	if cacheable {
		r.synthesized[el] = id
	}
	return id, SourceSynthesized
}

// Comparable reports whether el can be used as a map key or compared with
// ==. Elements backed by values holding slices, maps or funcs cannot.
func Comparable(el api.Element) bool {
	return el != nil && reflect.ValueOf(el).Comparable()
}

// Same reports whether a and b are the same comparable element handle.
func Same(a, b api.Element) bool {
	return Comparable(a) && Comparable(b) && a == b
}

// Declared returns the first non-empty id the element declares itself
// (explicit, automation or name), without synthesizing one.
func Declared(el api.Element) (string, Source, bool) {
	if id := strings.TrimSpace(el.ElementID()); id != "" {
		return id, SourceExplicit, true
	}
	if id := strings.TrimSpace(el.AutomationID()); id != "" {
		return id, SourceAutomation, true
	}
	if id := strings.TrimSpace(el.Name()); id != "" {
		return id, SourceName, true
	}
	return "", "", false
}
