package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores output renderers by name so hosts can pick one from
// configuration.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates a registry seeded with the supplied renderers.
func NewRegistry(renderers ...Renderer) (*Registry, error) {
	reg := &Registry{renderers: make(map[string]Renderer)}
	for _, renderer := range renderers {
		if err := reg.Register(renderer); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Register adds a renderer by its Name(). Duplicate names return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := strings.TrimSpace(renderer.Name())
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.renderers == nil {
		r.renderers = make(map[string]Renderer)
	}
	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	return nil
}

// Get retrieves a renderer by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found (available: %s)", name, strings.Join(r.namesLocked(), ", "))
	}
	return renderer, nil
}

// List returns the registered renderer names sorted alphabetically.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
