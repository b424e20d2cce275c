package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrAlreadyExists   = errors.New("entity already exists")
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPersistenceUnavailable means the storage backend cannot be reached.
	// Fatal for the current cycle, never for the process.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")

	// ErrInvalidInput marks malformed agent/provider input (e.g. empty text).
	// Skips the offending task only.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRetryCeilingExceeded marks a task that exhausted its in-cycle retries.
	// Surfaced in the cycle report, never raised past the orchestrator.
	ErrRetryCeilingExceeded = errors.New("retry ceiling exceeded")

	// ErrNotImplemented reports a task kind no agent can serve. Kept explicit
	// so missing behavior shows up in reports instead of passing silently.
	ErrNotImplemented = errors.New("not implemented")
)
