package apperrors

import "errors"

var (
	// ErrNotConfigured indicates an adapter is missing its credentials and
	// has been soft-disabled. Callers degrade to a deterministic fallback.
	ErrNotConfigured = errors.New("not configured")

	// ErrNoResults indicates an external lookup completed but found nothing.
	// This is expected absence, not a failure.
	ErrNoResults = errors.New("no results")

	ErrNotFound = errors.New("not found")
)
