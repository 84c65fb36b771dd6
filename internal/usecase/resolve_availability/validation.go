package resolve_availability

import (
	"fmt"

	"github.com/talentbridge/MentorBookingService/internal/domain"
)

// validateRequest rejects malformed input before any store access,
// so an invalid range never reaches the repositories.
func validateRequest(req *Request) error {
	if req.MentorID <= 0 {
		return fmt.Errorf("%w: mentorID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}

	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: end date is before start date", ErrInvalidDateRange)
	}

	days := int(req.EndDate.Sub(req.StartDate).Hours()/24) + 1
	if days > domain.MaxResolveRangeDays {
		return fmt.Errorf("%w: range of %d days exceeds the %d day limit",
			ErrInvalidDateRange, days, domain.MaxResolveRangeDays)
	}

	return nil
}
