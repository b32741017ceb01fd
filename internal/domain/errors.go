package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Infrastructure wraps these so callers can branch without importing SDK error types.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
)
