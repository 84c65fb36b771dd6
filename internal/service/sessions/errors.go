package sessions

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound returned when the session does not exist
	ErrSessionNotFound = errors.New("session not found")

	// ErrMentorNotFound returned when the mentor profile does not exist
	ErrMentorNotFound = errors.New("mentor not found")

	// ErrAccessDenied returned when the caller is neither side of the session
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition returned when the lifecycle action is not legal
	// in the session's current status
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrSessionInPast returned when a reschedule or cancel targets a
	// session that already started
	ErrSessionInPast = errors.New("session already started")

	// ErrTooEarlyToStart is the sentinel TooEarlyError unwraps to
	ErrTooEarlyToStart = errors.New("too early to start session")

	// ErrSlotNotAvailable returned when the reschedule target does not fit
	// a resolved slot
	ErrSlotNotAvailable = errors.New("slot not available")

	// ErrTimeConflict returned when an active session occupies the
	// reschedule target
	ErrTimeConflict = errors.New("time conflict with an existing session")

	// ErrInvalidInput returned on malformed input data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal returned on internal service failures
	ErrInternal = errors.New("service: internal error")
)

// TooEarlyError carries how long the caller has to wait before the start
// grace window opens.
type TooEarlyError struct {
	MinutesRemaining int
}

func (e *TooEarlyError) Error() string {
	return fmt.Sprintf("session can be started in %d minutes", e.MinutesRemaining)
}

func (e *TooEarlyError) Unwrap() error {
	return ErrTooEarlyToStart
}
