package domain

import "errors"

// Sentinel errors. Handlers map these to HTTP statuses; everything else is a
// generic server error.
var (
	// ErrInvalidInput marks a malformed request, rejected before any I/O.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden marks a session/owner mismatch.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound marks a reference to a session that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks an attempt to reuse an existing session id.
	ErrConflict = errors.New("conflict")

	// ErrStoreUnavailable marks a persistence failure that survived retries.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrModelTimeout marks a model invocation that exceeded its deadline.
	ErrModelTimeout = errors.New("model timeout")

	// ErrModelError marks any other upstream model failure.
	ErrModelError = errors.New("model error")
)
