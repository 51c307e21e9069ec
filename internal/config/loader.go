package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/schism-dev/schism/internal/defs"
	"github.com/schism-dev/schism/internal/middleware"
)

// postOnlyMetadata are the behavior flags only POST handlers honor.
var postOnlyMetadata = []string{
	"creates_entry",
	"creates_uuid",
	"creates_created_at",
	"creates_updated_at",
}

// validMethods are the HTTP methods a route may declare.
var validMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
}

// LoadProject reads and validates config.json from dir. The registry
// supplies the set of known middleware names for validation.
func LoadProject(dir string, reg *middleware.Registry) (*Project, error) {
	path := filepath.Join(dir, defs.ProjectConfigJSON)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("config read: %w", err)
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if err := p.Validate(reg); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProject writes config.json to dir with indentation.
func SaveProject(dir string, p *Project) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("config marshal: %w", err)
	}
	path := filepath.Join(dir, defs.ProjectConfigJSON)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config write: %w", err)
	}
	return nil
}

// Validate checks the project configuration for structural problems and
// returns a ValidationErrors aggregate when any are found.
func (p *Project) Validate(reg *middleware.Registry) error {
	verrs := &ValidationErrors{}

	for name := range p.Middleware {
		if reg != nil && !reg.Has(name) {
			verrs.add("middleware", "settings for unknown middleware", name)
		}
	}

	for i, r := range p.Routes {
		field := fmt.Sprintf("routes[%d]", i)

		if !slices.Contains(validMethods, r.Method) {
			verrs.add(field+".method", "must be one of: GET, POST, PUT, DELETE", r.Method)
		}
		if r.Endpoint == "" {
			verrs.add(field+".endpoint", "must not be empty", nil)
		} else if !strings.HasPrefix(r.Endpoint, "/") {
			verrs.add(field+".endpoint", "must start with /", r.Endpoint)
		}
		if r.DataSet == "" {
			verrs.add(field+".data_set", "must not be empty", nil)
		}
		for _, name := range r.Middleware {
			if reg != nil && !reg.Has(name) {
				verrs.add(field+".middleware", "unknown middleware", name)
			}
			if _, ok := p.Middleware[name]; !ok {
				verrs.add(field+".middleware", "middleware has no settings section", name)
			}
		}
		if r.Method == http.MethodPost {
			if r.Metadata.Singular() {
				verrs.add(field+".metadata", "singular_response does not apply to POST routes", r.Method)
			}
		} else {
			for _, key := range postOnlyMetadata {
				if r.Metadata.flag(key) {
					verrs.add(field+".metadata", key+" only applies to POST routes", r.Method)
				}
			}
		}
	}

	if len(verrs.Errors) > 0 {
		return verrs
	}
	return nil
}
