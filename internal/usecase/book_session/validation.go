package book_session

import (
	"fmt"
	"time"

	"github.com/talentbridge/MentorBookingService/internal/domain"
)

// validateRequest rejects malformed input before any store access
func validateRequest(req *Request) error {
	if req.MentorID <= 0 {
		return fmt.Errorf("%w: mentorID must be positive", ErrInvalidInput)
	}

	if req.MenteeID <= 0 {
		return fmt.Errorf("%w: menteeID must be positive", ErrInvalidInput)
	}

	if !domain.ValidSessionType(req.SessionType) {
		return fmt.Errorf("%w: unknown session type %q", ErrInvalidInput, req.SessionType)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes != 0 &&
		(req.DurationMinutes < domain.MinSessionDurationMinutes || req.DurationMinutes > domain.MaxSessionDurationMinutes) {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
	}

	if len(req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if len(req.Agenda) > domain.MaxNotesLength {
		return fmt.Errorf("%w: agenda exceeds %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateNotPast rejects a start that is not strictly in the future
func validateNotPast(start, now time.Time) error {
	if !start.After(now) {
		return ErrDateInPast
	}
	return nil
}
