package availability

import "errors"

var (
	// ErrMentorNotFound returned when the mentor profile does not exist
	ErrMentorNotFound = errors.New("mentor not found")

	// ErrRuleNotFound returned when the weekly rule does not exist
	ErrRuleNotFound = errors.New("weekly rule not found")

	// ErrOverrideNotFound returned when the date override does not exist
	ErrOverrideNotFound = errors.New("date override not found")

	// ErrDuplicateRule returned when an identical weekly rule already exists
	ErrDuplicateRule = errors.New("weekly rule already exists")

	// ErrDuplicateOverride returned when an identical override already exists
	ErrDuplicateOverride = errors.New("date override already exists")

	// ErrAccessDenied returned when the caller does not own the calendar
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput returned on malformed input data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal returned on internal service failures
	ErrInternal = errors.New("service: internal error")
)
