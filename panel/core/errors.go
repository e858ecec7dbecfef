package core

import "errors"

var (
	// ErrValidation marks input rejected before any network interaction.
	ErrValidation = errors.New("validation failed")

	// ErrUnsupportedIntervalType marks an interval unit outside the closed
	// set. It signals corrupt data or a programming error, never user input.
	ErrUnsupportedIntervalType = errors.New("unsupported interval type")

	// ErrMutationFailed wraps any create/complete/update/remove intent the
	// authority rejected or the transport lost. Local state is untouched.
	ErrMutationFailed = errors.New("mutation failed")

	// ErrFetchFailed wraps a failed reload or single-task fetch. The prior
	// snapshot and any edit session survive it.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrNoSession marks a save attempted with no task being edited.
	ErrNoSession = errors.New("no active edit session")

	// Transport-level sentinels produced by the authority adapter.
	ErrNotFound    = errors.New("not found")
	ErrBadRequest  = errors.New("bad request")
	ErrUnavailable = errors.New("authority unavailable")
)
