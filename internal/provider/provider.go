// Package provider defines the base interface and registry shared by the
// external-service backends (speech-to-text, language model).
package provider

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Provider is the base interface all backends must implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// Registry manages named provider instances.
type Registry[T Provider] struct {
	mu        sync.RWMutex
	instances map[string]T
}

// NewRegistry creates a new empty Registry.
func NewRegistry[T Provider]() *Registry[T] {
	return &Registry[T]{
		instances: make(map[string]T),
	}
}

// Register stores a provider instance under its name.
func (r *Registry[T]) Register(p T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances[p.Name()] = p
}

// Get returns a registered provider by name.
func (r *Registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.instances[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("provider %q not registered (registered: %v)", name, r.names())
	}
	return inst, nil
}

// List returns sorted names of all registered providers.
func (r *Registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.names()
}

func (r *Registry[T]) names() []string {
	names := make([]string, 0, len(r.instances))
	for name := range r.instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
