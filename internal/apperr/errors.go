// Package apperr defines the sentinel errors shared by the service,
// store, bridge, and API layers.
package apperr

import "errors"

var (
	// ErrNotFound: an operation referenced an id absent from the target
	// collection (project, node, card, question, task).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists: explicit id collision on create.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation: missing or malformed required field.
	ErrValidation = errors.New("validation failed")
	// ErrUnreachable: the remote backend could not be reached.
	ErrUnreachable = errors.New("backend unreachable")
)
