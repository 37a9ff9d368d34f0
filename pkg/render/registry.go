package render

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores renderer backends by name so wiring code can assemble
// fallback chains from configured name lists. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]Renderer)}
}

// Register adds a backend under its Name(). Registering a duplicate name or
// a nil backend returns an error.
func (r *Registry) Register(backend Renderer) error {
	if backend == nil {
		return fmt.Errorf("render: backend is required")
	}
	name := backend.Name()
	if name == "" {
		return fmt.Errorf("render: backend name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.backends[name]; exists {
		return fmt.Errorf("render: backend %q already registered", name)
	}
	r.backends[name] = backend
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(backend Renderer) {
	if err := r.Register(backend); err != nil {
		panic(err)
	}
}

// Get retrieves a backend by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	backend, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("render: backend %q not found", name)
	}
	return backend, nil
}

// Has reports whether a backend is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.backends[name]
	return ok
}

// List returns the registered backend names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
