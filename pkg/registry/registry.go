package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrHandlerNotFound is returned by Execute for unregistered names.
var ErrHandlerNotFound = errors.New("handler not found")

// Handler defines the signature for an action implementation.
// It receives a context and the default-filled parameters, and returns
// human-readable text or an error.
type Handler func(ctx context.Context, params map[string]any) (string, error)

// Registry manages the available action handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// Register adds a handler to the registry.
// If a handler with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = fn
}

// Lookup returns the handler registered under name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.handlers[name]
	return fn, ok && fn != nil
}

// Names returns the registered handler names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute looks up a handler by name and executes it.
// Returns an error wrapping ErrHandlerNotFound if the handler is not found.
func (r *Registry) Execute(ctx context.Context, name string, params map[string]any) (string, error) {
	fn, ok := r.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrHandlerNotFound, name)
	}
	return fn(ctx, params)
}
