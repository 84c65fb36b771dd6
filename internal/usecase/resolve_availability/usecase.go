package resolve_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	mentorRepo "github.com/talentbridge/MentorBookingService/internal/infra/storage/mentor"

	"github.com/talentbridge/MentorBookingService/internal/domain"
)

// UseCase resolves the effective bookable slots of a mentor over a date
// range. It is a pure read: no call path through this package writes to
// the store, so resolution is idempotent and restartable.
type UseCase struct {
	mentorRepo       MentorRepository
	availabilityRepo AvailabilityRepository
	logger           Logger
}

// NewUseCase creates the availability resolver
func NewUseCase(
	mentorRepository MentorRepository,
	availabilityRepository AvailabilityRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		mentorRepo:       mentorRepository,
		availabilityRepo: availabilityRepository,
		logger:           logger,
	}
}

// Execute resolves slots for the requested range
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResolveAvailability: mentor=%d, range=%s..%s",
		req.MentorID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Validate input before touching the store
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResolveAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Resolve mentor existence
	if _, err := uc.mentorRepo.GetByID(ctx, req.MentorID); err != nil {
		if errors.Is(err, mentorRepo.ErrMentorNotFound) {
			uc.logger.Warn("ResolveAvailability: mentor id=%d not found", req.MentorID)
			return nil, ErrMentorNotFound
		}
		uc.logger.Error("ResolveAvailability: failed to get mentor id=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: failed to get mentor: %v", ErrInternal, err)
	}

	// 3. Walk the range one date at a time, ascending
	var slots []domain.Slot
	for d := req.StartDate; !d.After(req.EndDate); d = d.AddDate(0, 0, 1) {
		daySlots, err := uc.resolveDate(ctx, req.MentorID, d)
		if err != nil {
			uc.logger.Error("ResolveAvailability: failed to resolve date %s: %v",
				d.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to resolve date: %v", ErrInternal, err)
		}
		slots = append(slots, daySlots...)
	}

	uc.logger.Info("ResolveAvailability: mentor=%d, resolved %d slots", req.MentorID, len(slots))

	return &Response{
		MentorID:  req.MentorID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Slots:     slots,
	}, nil
}

// ResolveForDate resolves the slots of a single date. It is the entry point
// used by the booking workflow and the reschedule check; the caller is
// expected to have verified the mentor already.
func (uc *UseCase) ResolveForDate(ctx context.Context, mentorID int64, date time.Time) ([]domain.Slot, error) {
	return uc.resolveDate(ctx, mentorID, date)
}
