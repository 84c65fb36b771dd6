package resolve_availability

import (
	"context"

	"github.com/talentbridge/MentorBookingService/internal/domain"
)

// MentorRepository gives access to mentor profiles
type MentorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.MentorProfile, error)
}

// AvailabilityRepository is the read side of the availability store
type AvailabilityRepository interface {
	ListWeeklyRulesForDay(ctx context.Context, mentorID int64, dayOfWeek int) ([]*domain.WeeklyRule, error)
	ListOverridesForDate(ctx context.Context, mentorID int64, date string) ([]*domain.DateOverride, error)
}

// Logger is the minimal logging surface this package needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
