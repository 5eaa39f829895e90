package domain

import "errors"

// Workflow-visible error taxonomy. Gateway adapters map their backend
// failures onto these values (or wrap them) so the HTTP layer can pick a
// status code without inspecting driver errors.
var (
	// ErrInvalidInput marks a request that failed shape validation.
	// No side effects have been performed when it is returned.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateSubmission means the same national ID was already
	// submitted: the record store's uniqueness constraint fired.
	ErrDuplicateSubmission = errors.New("already submitted")

	// ErrNotFound means no record exists for the given hashed ID.
	ErrNotFound = errors.New("user not found")
)
