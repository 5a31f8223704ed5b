package sources

import (
	"errors"
	"sync"
)

// Registry is an append-only, ordered set of providers.
// Registration order is the display order of results.
type Registry struct {
	mu      sync.RWMutex
	entries []entry
	names   map[string]struct{}
}

// entry pairs a provider with the name it registered under.
type entry struct {
	name     string
	provider Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// Register appends a provider. It fails with *DuplicateNameError if a
// provider with the same name is already registered.
func (r *Registry) Register(p Provider) error {
	if p == nil {
		return errors.New("nil provider")
	}
	name := p.Name()
	if name == "" {
		return errors.New("provider name is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.names[name]; exists {
		return &DuplicateNameError{Name: name}
	}
	r.names[name] = struct{}{}
	r.entries = append(r.entries, entry{name: name, provider: p})
	return nil
}

// All returns a snapshot of the registered providers in registration order.
func (r *Registry) All() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Provider, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.provider
	}
	return out
}

// snapshot returns the registered entries in registration order.
func (r *Registry) snapshot() []entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Names returns provider names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.name
	}
	return names
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
