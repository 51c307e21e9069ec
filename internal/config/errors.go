// Package config loads and validates the two configuration surfaces of
// the toolkit: the project route configuration (config.json, the
// interchange format the wizard writes and the server consumes) and the
// tool settings (schism.yaml).
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for configuration operations.
var (
	// ErrNotFound indicates the project configuration file was not found.
	ErrNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfig indicates the configuration is invalid.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrInvalidJSON indicates invalid JSON syntax in config.json.
	ErrInvalidJSON = errors.New("config: invalid JSON syntax")

	// ErrInvalidYAML indicates invalid YAML syntax in schism.yaml.
	ErrInvalidYAML = errors.New("config: invalid YAML syntax")
)

// ValidationError represents a single validation error with field context.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation error: field %q: %s (got: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation error: field %q: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation: no errors"
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("validation failed with %d error(s): %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Is supports errors.Is(err, ErrInvalidConfig).
func (e *ValidationErrors) Is(target error) bool {
	return target == ErrInvalidConfig
}

func (e *ValidationErrors) add(field, message string, value any) {
	e.Errors = append(e.Errors, ValidationError{Field: field, Message: message, Value: value})
}
