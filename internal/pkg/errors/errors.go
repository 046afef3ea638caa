package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate signals that a row with the same unique pair or key already exists.
	ErrDuplicate = errors.New("already exists")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConnection signals that the storage engine is unreachable or not initialized.
	ErrConnection = errors.New("storage unavailable")
)
