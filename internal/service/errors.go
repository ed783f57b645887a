package service

import "errors"

// Error kinds surfaced to callers. Services wrap these with a user-facing
// message; the HTTP layer maps each kind to a status code. Raw storage errors
// are never exposed, they are logged and reported as ErrDependency.
var (
	ErrValidation     = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrAuthentication = errors.New("authentication failed")
	ErrAuthorization  = errors.New("not authorized")
	ErrExpiredToken   = errors.New("token expired")
	ErrDependency     = errors.New("dependency unavailable")
)
