package sessions

import (
	"context"
	"time"

	"github.com/talentbridge/MentorBookingService/internal/domain"
)

// SessionRepository is the session store surface the lifecycle service needs
type SessionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
	Update(ctx context.Context, s *domain.Session) (*domain.Session, error)
	ListActiveOverlapping(ctx context.Context, mentorID int64, start, end time.Time) ([]*domain.Session, error)
	ListByMentor(ctx context.Context, filter domain.MentorSessionsFilter) ([]*domain.Session, error)
	ListByMentee(ctx context.Context, filter domain.MenteeSessionsFilter) ([]*domain.Session, error)
	GetMenteeStatistics(ctx context.Context, menteeID int64, now time.Time) (*domain.SessionStatistics, error)
}

// MentorRepository resolves mentor profiles for access checks and keeps
// the completed-session counter.
type MentorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.MentorProfile, error)
	IncrementTotalSessions(ctx context.Context, id int64) error
}

// SlotResolver resolves the bookable slots of one date. Rescheduling uses
// it the same way booking does.
type SlotResolver interface {
	ResolveForDate(ctx context.Context, mentorID int64, date time.Time) ([]domain.Slot, error)
}

// TransactionManager runs a function inside a serializable transaction
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time (swappable in tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger is the minimal logging surface this package needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
