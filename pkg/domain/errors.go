package domain

import "errors"

// Common domain errors shared across entities and services.
var (
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when creating a resource that already exists.
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails.
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when credentials are missing or wrong.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the caller may not perform an action.
	ErrForbidden = errors.New("forbidden")
)
