package generator

import "errors"

// Sentinel errors for data generation failures.
var (
	// ErrUnknownKind indicates a schema references a field kind that is
	// not registered.
	ErrUnknownKind = errors.New("generator: unknown field kind")

	// ErrInvalidOptions indicates a field's options cannot produce a
	// value (empty range, missing dataset reference).
	ErrInvalidOptions = errors.New("generator: invalid field options")

	// ErrEmptyReference indicates a foreign key points at a dataset with
	// no entries to reference.
	ErrEmptyReference = errors.New("generator: referenced dataset has no entries")
)
