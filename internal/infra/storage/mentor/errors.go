package mentor

import "errors"

var (
	// ErrMentorNotFound returned when no mentor profile matches the id
	ErrMentorNotFound = errors.New("mentor.repository: mentor not found")

	// ErrBuildQuery returned when building a SQL statement fails
	ErrBuildQuery = errors.New("mentor.repository: failed to build query")

	// ErrExecQuery returned when executing a SQL statement fails
	ErrExecQuery = errors.New("mentor.repository: failed to execute query")

	// ErrScanRow returned when scanning a result row fails
	ErrScanRow = errors.New("mentor.repository: failed to scan row")
)
