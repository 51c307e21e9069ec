// Package mockserver serves the configured mock API over HTTP. Routes
// are bound from the project configuration onto a chi router; handlers
// operate on the shared dataset store and honor one-shot simulated
// failures armed from the control panel.
package mockserver

import (
	"maps"
	"slices"
	"sync"
)

// Flag key prefixes. Route flags use the route key directly
// ("GET /hello/{id}"); middleware flags are prefixed.
const middlewareKeyPrefix = "middleware:"

// MiddlewareKey returns the flag key for a middleware name.
func MiddlewareKey(name string) string {
	return middlewareKeyPrefix + name
}

// FlagSet holds the armed one-shot failure flags shared between the
// server and the control panel. Consuming a flag clears it, so each
// armed failure fires exactly once.
type FlagSet struct {
	mu    sync.Mutex
	armed map[string]bool
}

// NewFlagSet creates an empty FlagSet.
func NewFlagSet() *FlagSet {
	return &FlagSet{armed: make(map[string]bool)}
}

// Arm marks the key to fail on its next use.
func (f *FlagSet) Arm(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.armed[key] = true
}

// Consume reports whether the key was armed and clears it.
func (f *FlagSet) Consume(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.armed[key] {
		return false
	}
	delete(f.armed, key)
	return true
}

// Disarm clears the key without it having fired.
func (f *FlagSet) Disarm(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.armed, key)
}

// Armed reports whether the key is currently armed, without clearing it.
func (f *FlagSet) Armed(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.armed[key]
}

// Keys returns the currently armed keys in sorted order.
func (f *FlagSet) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := slices.Collect(maps.Keys(f.armed))
	slices.Sort(keys)
	return keys
}
