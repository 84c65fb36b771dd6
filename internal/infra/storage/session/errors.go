package session

import "errors"

var (
	// ErrSessionNotFound returned when no session matches the id
	ErrSessionNotFound = errors.New("session.repository: session not found")

	// ErrDuplicateSession returned when the (mentor_id, scheduled_start)
	// uniqueness constraint rejects an insert. This is the storage-level
	// guard against two concurrent bookings of the same instant.
	ErrDuplicateSession = errors.New("session.repository: session already exists for this mentor and start time")

	// ErrBuildQuery returned when building a SQL statement fails
	ErrBuildQuery = errors.New("session.repository: failed to build query")

	// ErrExecQuery returned when executing a SQL statement fails
	ErrExecQuery = errors.New("session.repository: failed to execute query")

	// ErrScanRow returned when scanning a result row fails
	ErrScanRow = errors.New("session.repository: failed to scan row")
)
