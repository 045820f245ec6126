package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyBody indicates a comment was committed with no text.
	// Rejected locally before any network call.
	ErrEmptyBody = errors.New("empty comment body")

	// ErrNoCandidate indicates a commit was attempted while no selection
	// candidate exists. Treated as a no-op by callers, never a crash.
	ErrNoCandidate = errors.New("no selection candidate")

	// ErrAuthoringLocked indicates a selection event was suppressed
	// because the authoring surface holds the lock.
	ErrAuthoringLocked = errors.New("authoring surface is locked")

	// ErrNoiseSelection indicates the validator classified a selection
	// as incidental rather than an intentional annotation target.
	ErrNoiseSelection = errors.New("selection rejected as noise")

	// ErrServiceUnavailable indicates the remote annotation service
	// could not be reached. Always recoverable: the document stays
	// readable and navigable.
	ErrServiceUnavailable = errors.New("annotation service unavailable")

	// ErrStaleResponse indicates a response arrived for a query that is
	// no longer current and must be discarded.
	ErrStaleResponse = errors.New("stale response")
)
