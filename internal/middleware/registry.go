package middleware

import (
	"errors"
	"fmt"
	"slices"
)

// Sentinel errors for middleware resolution.
var (
	// ErrUnknown indicates a middleware name that is not registered.
	ErrUnknown = errors.New("middleware: unknown middleware")

	// ErrDuplicate indicates a middleware name registered twice.
	ErrDuplicate = errors.New("middleware: duplicate registration")
)

// Registry holds the available middleware in registration order.
type Registry struct {
	order []string
	byKey map[string]Middleware
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]Middleware)}
}

// DefaultRegistry returns a Registry with the built-in middleware set:
// auth_token, input_check, permissions_token.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	// Registration of built-ins cannot collide.
	_ = r.Register(NewAuthToken())
	_ = r.Register(NewInputCheck())
	_ = r.Register(NewPermissionsToken())
	return r
}

// Register adds a middleware under its name.
func (r *Registry) Register(m Middleware) error {
	name := m.Name()
	if _, ok := r.byKey[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	r.byKey[name] = m
	r.order = append(r.order, name)
	return nil
}

// Get resolves a middleware by name.
func (r *Registry) Get(name string) (Middleware, error) {
	m, ok := r.byKey[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	return m, nil
}

// Has reports whether the name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.byKey[name]
	return ok
}

// All returns the registered middleware in registration order.
func (r *Registry) All() []Middleware {
	all := make([]Middleware, 0, len(r.order))
	for _, name := range r.order {
		all = append(all, r.byKey[name])
	}
	return all
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}
