package book_session

import (
	"context"
	"time"

	"github.com/talentbridge/MentorBookingService/internal/domain"
)

// MentorRepository gives access to mentor profiles
type MentorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.MentorProfile, error)
}

// SessionRepository is the write side of the session store used by booking
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) (*domain.Session, error)
	ListActiveOverlapping(ctx context.Context, mentorID int64, start, end time.Time) ([]*domain.Session, error)
}

// AvailabilityWriter records slot consumption after a successful booking
type AvailabilityWriter interface {
	CreateOverride(ctx context.Context, override *domain.DateOverride) (*domain.DateOverride, error)
}

// SlotResolver resolves the bookable slots of one date. The booking
// workflow re-resolves inside its transaction so the containment check
// sees the same calendar the insert will modify.
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
