package engine

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jonwraymond/snipcheck/check"
)

// Errors returned by the registry.
var (
	// ErrKindExists is returned when registering a duplicate kind.
	ErrKindExists = errors.New("engine kind already registered")

	// ErrUnknownKind is returned when no factory matches the kind.
	ErrUnknownKind = errors.New("unknown engine kind")
)

// Factory creates engine instances.
type Factory func() (check.Engine, error)

// Registry manages engine factories by kind.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty engine registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for a kind.
func (r *Registry) Register(kind string, factory Factory) error {
	if kind == "" {
		return fmt.Errorf("engine kind is required")
	}
	if factory == nil {
		return fmt.Errorf("engine factory is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("%w: %s", ErrKindExists, kind)
	}
	r.factories[kind] = factory
	return nil
}

// New constructs an engine of the given kind.
func (r *Registry) New(kind string) (check.Engine, error) {
	r.mu.RLock()
	factory, ok := r.factories[kind]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return factory()
}

// Kinds returns registered kinds sorted for deterministic output.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		out = append(out, kind)
	}
	sort.Strings(out)
	return out
}
