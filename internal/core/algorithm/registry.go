package algorithm

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps algorithm names to executors. It is explicitly constructed
// and injected by the composing application rather than held as package
// state, so tests can run isolated registries in parallel.
type Registry struct {
	executors map[string]Executor
	mu        sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		executors: make(map[string]Executor),
	}
}

// NewDefaultRegistry creates a registry pre-loaded with the built-in search
// algorithms.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	// Built-ins cannot collide on an empty registry.
	_ = r.Register(NewBinarySearch())
	_ = r.Register(NewLinearSearch())
	return r
}

// Register adds an executor under its own name.
func (r *Registry) Register(e Executor) error {
	if e == nil {
		return ErrNilExecutor
	}
	name := e.Name()
	if name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.executors[name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}
	r.executors[name] = e
	return nil
}

// Get returns the executor registered under name.
func (r *Registry) Get(name string) (Executor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.executors[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return e, nil
}

// List returns the registered algorithm names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.executors))
	for name := range r.executors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Info returns the static descriptors of the named algorithm.
func (r *Registry) Info(name string) (Info, error) {
	e, err := r.Get(name)
	if err != nil {
		return Info{}, err
	}
	return e.Describe(), nil
}
