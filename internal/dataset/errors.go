// Package dataset provides the in-memory dataset store backing the mock
// server. Datasets are loaded from <name>.json files in the project
// directory and filtered by request parameters.
package dataset

import (
	"errors"
	"fmt"
)

// Sentinel errors for dataset operations.
var (
	// ErrNotFound indicates the named dataset has not been loaded.
	ErrNotFound = errors.New("dataset: dataset not found")

	// ErrNoMatch indicates no entries matched the given parameters.
	ErrNoMatch = errors.New("dataset: no matching entries")

	// ErrMultipleMatches indicates more than one entry matched where
	// exactly one was required.
	ErrMultipleMatches = errors.New("dataset: multiple matching entries")

	// ErrNoSelector indicates an operation that requires locating
	// parameters was called without any.
	ErrNoSelector = errors.New("dataset: no locating parameters provided")

	// ErrInvalidFile indicates a dataset file could not be parsed.
	ErrInvalidFile = errors.New("dataset: invalid dataset file")
)

// MultipleMatchesError carries the match count for operations that
// require exactly one matching entry. errors.Is(err, ErrMultipleMatches)
// holds for it.
type MultipleMatchesError struct {
	Count int
}

// Error implements the error interface.
func (e *MultipleMatchesError) Error() string {
	return fmt.Sprintf("dataset: %d matching entries where one was expected", e.Count)
}

// Is supports errors.Is against ErrMultipleMatches.
func (e *MultipleMatchesError) Is(target error) bool {
	return target == ErrMultipleMatches
}
