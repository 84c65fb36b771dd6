package availability

import (
	"context"

	"github.com/talentbridge/MentorBookingService/internal/domain"
)

// AvailabilityRepository is the calendar store surface the editing
// service needs.
type AvailabilityRepository interface {
	CreateWeeklyRule(ctx context.Context, rule *domain.WeeklyRule) (*domain.WeeklyRule, error)
	GetWeeklyRuleByID(ctx context.Context, id int64) (*domain.WeeklyRule, error)
	ListWeeklyRulesByMentor(ctx context.Context, mentorID int64) ([]*domain.WeeklyRule, error)
	DeleteWeeklyRule(ctx context.Context, id int64) error
	CreateOverride(ctx context.Context, override *domain.DateOverride) (*domain.DateOverride, error)
	GetOverrideByID(ctx context.Context, id int64) (*domain.DateOverride, error)
	ListOverridesInRange(ctx context.Context, mentorID int64, startDate, endDate string) ([]*domain.DateOverride, error)
	DeleteOverride(ctx context.Context, id int64) error
}

// MentorRepository resolves mentor profiles for ownership checks
type MentorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.MentorProfile, error)
}

// Logger is the minimal logging surface this package needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
