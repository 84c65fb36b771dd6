package resolve_availability

import (
	"time"

	"github.com/talentbridge/MentorBookingService/internal/domain"
)

// Request asks for the bookable slots of one mentor over a date range
type Request struct {
	MentorID  int64
	StartDate time.Time // inclusive, date only
	EndDate   time.Time // inclusive, date only
}

// Response carries the resolved slots, date ascending then start ascending
type Response struct {
	MentorID  int64
	StartDate time.Time
	EndDate   time.Time
	Slots     []domain.Slot
}
