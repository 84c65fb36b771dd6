package book_session

import (
	"time"

	"github.com/talentbridge/MentorBookingService/internal/domain"
	"github.com/talentbridge/MentorBookingService/pkg/types"
)

// Request books one session with a mentor. Times are wall-clock values in
// the mentor's timezone; DurationMinutes of 0 takes the default.
type Request struct {
	MentorID int64
	MenteeID int64

	SessionType     domain.SessionType
	Date            time.Time // date only
	StartTime       types.TimeString
	DurationMinutes int

	Location string
	Agenda   string
	Notes    string
}

// Response echoes the created session
type Response struct {
	ID       int64
	MentorID int64
	MenteeID int64

	SessionType    string
	ScheduledStart time.Time
	ScheduledEnd   time.Time

	Location string
	Agenda   string
	Notes    string

	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
