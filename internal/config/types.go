package config

import (
	"github.com/schism-dev/schism/internal/middleware"
)

// Project is the mock server configuration stored in config.json.
type Project struct {
	Middleware map[string]middleware.Settings `json:"middleware"`
	Routes     []Route                        `json:"routes"`
}

// Route describes one mock endpoint.
type Route struct {
	Method     string        `json:"method"`
	Endpoint   string        `json:"endpoint"`
	DataSet    string        `json:"data_set"`
	Middleware []string      `json:"middleware"`
	Metadata   RouteMetadata `json:"metadata,omitempty"`
}

// RouteMetadata is the free-form per-route metadata map. Route behavior
// flags and middleware metadata share the one flat map.
type RouteMetadata map[string]any

// Key returns the stable identity of a route used by the failure-flag
// registry and the control panel listing.
func (r Route) Key() string {
	return r.Method + " " + r.Endpoint
}

// flag reads a boolean metadata value, tolerating absence.
func (m RouteMetadata) flag(key string) bool {
	v, ok := m[key].(bool)
	return ok && v
}

// Singular reports whether the route expects exactly one matching entry.
func (m RouteMetadata) Singular() bool { return m.flag("singular_response") }

// CreatesEntry reports whether a POST route appends its body to the dataset.
func (m RouteMetadata) CreatesEntry() bool { return m.flag("creates_entry") }

// CreatesUUID reports whether a POST route assigns a generated uuid field.
func (m RouteMetadata) CreatesUUID() bool { return m.flag("creates_uuid") }

// CreatesCreatedAt reports whether a POST route stamps created_at.
func (m RouteMetadata) CreatesCreatedAt() bool { return m.flag("creates_created_at") }

// CreatesUpdatedAt reports whether a POST route initializes updated_at to null.
func (m RouteMetadata) CreatesUpdatedAt() bool { return m.flag("creates_updated_at") }

// DataSets returns the distinct dataset names referenced by routes, in
// first-reference order.
func (p *Project) DataSets() []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range p.Routes {
		if r.DataSet != "" && !seen[r.DataSet] {
			seen[r.DataSet] = true
			names = append(names, r.DataSet)
		}
	}
	return names
}
