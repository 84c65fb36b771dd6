package book_session

import "errors"

var (
	// ErrMentorNotFound returned when the mentor does not exist
	ErrMentorNotFound = errors.New("book_session: mentor not found")

	// ErrMentorUnavailable returned when the mentor exists but is not
	// accepting sessions
	ErrMentorUnavailable = errors.New("book_session: mentor not available for mentoring")

	// ErrSlotNotAvailable returned when no resolved slot contains the
	// requested interval
	ErrSlotNotAvailable = errors.New("book_session: slot not available")

	// ErrTimeConflict returned when an active session already occupies the
	// requested interval
	ErrTimeConflict = errors.New("book_session: time conflict with an existing session")

	// ErrDateInPast returned when the requested start is not in the future
	ErrDateInPast = errors.New("book_session: requested time is in the past")

	// ErrInvalidInput returned on malformed input data
	ErrInvalidInput = errors.New("book_session: invalid input data")

	// ErrInternal returned on internal use case failures
	ErrInternal = errors.New("book_session: internal error")
)
