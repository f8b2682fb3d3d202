package mobymcp

import "errors"

var (
	// ErrNotFound is returned when a file or directory does not exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a create operation hits an existing target
	ErrAlreadyExists = errors.New("already exists")
	// ErrUnauthorized is returned when credential verification fails
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
	// ErrPathTraversal is returned when a path resolves outside the root directory
	ErrPathTraversal = errors.New("path escapes root directory")
	// ErrDisallowedType is returned when a file extension is not in the allow-list
	ErrDisallowedType = errors.New("file type not allowed")
	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
)
