// Package middleware implements the request middleware run by the mock
// server before a route handler. Each middleware inspects the request
// against its configured settings and either passes (nil verdict) or
// short-circuits the route with an error response.
package middleware

import "net/http"

// Settings is the per-middleware configuration section from config.json.
type Settings map[string]any

// Metadata is the per-route metadata passed through to middleware
// (e.g. accepted_roles for the permissions middleware).
type Metadata map[string]any

// Verdict is a short-circuit response produced by a middleware.
type Verdict struct {
	Status int
	Body   map[string]any
}

// ErrorVerdict builds a Verdict carrying a single "error" message, the
// response shape every middleware failure uses.
func ErrorVerdict(status int, message string) *Verdict {
	return &Verdict{Status: status, Body: map[string]any{"error": message}}
}

// RequirementKind enumerates the field kinds a requirement can prompt for.
type RequirementKind string

const (
	KindText RequirementKind = "text"
	KindBool RequirementKind = "bool"
	KindList RequirementKind = "list"
	KindMap  RequirementKind = "map"
)

// Requirement describes one configuration or metadata field a middleware
// needs. The config wizard prompts from these descriptors.
type Requirement struct {
	Key         string
	Description string
	Kind        RequirementKind
	Mandatory   bool
	Default     any
}

// Middleware is a named request check with declared requirements.
type Middleware interface {
	// Name returns the registry key, also used in config.json.
	Name() string

	// Handle runs the check. A nil verdict passes the request on.
	Handle(r *http.Request, cfg Settings, meta Metadata) *Verdict

	// FailVerdict returns the response used when a one-shot simulated
	// failure is armed for this middleware.
	FailVerdict() *Verdict

	// ConfigRequirements describes the middleware settings fields.
	ConfigRequirements() []Requirement

	// MetadataRequirements describes per-route metadata fields.
	MetadataRequirements() []Requirement
}

// FlagDriven reports whether simulated failures are enabled for the
// given settings. Middleware with flag_driven false ignore armed flags.
func FlagDriven(cfg Settings) bool {
	v, ok := cfg["flag_driven"].(bool)
	return ok && v
}
