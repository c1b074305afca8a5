package render

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Registry maps renderer names to renderers. The HTTP adapter resolves the
// negotiated response kind ("html", "json") against it, so a registry needs
// at least those two entries to serve mixed traffic.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Renderer)}
}

// Register adds renderer under its Name(). Registering a name twice is an
// error; build a fresh registry to swap renderers out.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.byName[name] = renderer
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get retrieves a renderer by name. The error lists the registered names so
// a miswired registry is obvious from the message.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.byName[name]
	if !ok {
		if len(r.byName) == 0 {
			return nil, fmt.Errorf("render: renderer %q not found (registry is empty)", name)
		}
		names := slices.Sorted(maps.Keys(r.byName))
		return nil, fmt.Errorf("render: renderer %q not found (have %s)", name, strings.Join(names, ", "))
	}
	return renderer, nil
}

// Has reports whether a renderer is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byName[name]
	return ok
}

// List returns the registered renderer names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.byName))
}
