package services

import (
	"errors"
)

// Failure taxonomy for workflow operations. Handlers translate these into
// HTTP status codes; services wrap them with context via fmt.Errorf and %w.
var (
	// ErrAuthentication indicates bad credentials.
	ErrAuthentication = errors.New("invalid credentials")
	// ErrAuthorization indicates a wrong role or a principal acting on a
	// resource it does not own.
	ErrAuthorization = errors.New("not authorized")
	// ErrConflict indicates a uniqueness violation: duplicate username,
	// occupied appointment slot, or an invalid status transition.
	ErrConflict = errors.New("conflict")
	// ErrNotFound indicates a missing entity id.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates unparseable or out-of-range input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStorage indicates a transaction or commit failure.
	ErrStorage = errors.New("storage failure")
)
