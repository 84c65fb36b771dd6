package resolve_availability

import "errors"

var (
	// ErrMentorNotFound returned when the mentor does not exist
	ErrMentorNotFound = errors.New("resolve_availability: mentor not found")

	// ErrInvalidDateRange returned when the requested range is malformed
	// (end before start) or exceeds the resolution cap
	ErrInvalidDateRange = errors.New("resolve_availability: invalid date range")

	// ErrInvalidInput returned on malformed input data
	ErrInvalidInput = errors.New("resolve_availability: invalid input data")

	// ErrInternal returned on internal use case failures
	ErrInternal = errors.New("resolve_availability: internal error")
)
