package book_session

import (
	"context"
	"errors"
	"fmt"

	"github.com/talentbridge/MentorBookingService/internal/domain"
	mentorRepo "github.com/talentbridge/MentorBookingService/internal/infra/storage/mentor"
	sessionRepo "github.com/talentbridge/MentorBookingService/internal/infra/storage/session"
)

// Config carries the booking knobs read from the service configuration
type Config struct {
	// SplitOnBooking keeps the unbooked remainder of a weekly slot open:
	// instead of consuming the whole slot, booking writes availability
	// overrides for the leftover intervals around the booked one.
	SplitOnBooking bool
}

// UseCase books a session against a mentor's resolved availability.
// The slot containment check, the overlap check and the insert run in one
// serializable transaction so two mentees racing for the same slot cannot
// both succeed.
type UseCase struct {
	mentorRepo       MentorRepository
	sessionRepo      SessionRepository
	availabilityRepo AvailabilityWriter
	slotResolver     SlotResolver
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
	cfg              Config
}

// NewUseCase creates the booking use case
func NewUseCase(
	mentorRepository MentorRepository,
	sessionRepository SessionRepository,
	availabilityRepository AvailabilityWriter,
	slotResolver SlotResolver,
	txManager TransactionManager,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		mentorRepo:       mentorRepository,
		sessionRepo:      sessionRepository,
		availabilityRepo: availabilityRepository,
		slotResolver:     slotResolver,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
		cfg:              cfg,
	}
}

// Execute books the session
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSession: mentor=%d, mentee=%d, date=%s, time=%s",
		req.MentorID, req.MenteeID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookSession: validation failed: %v", err)
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultSessionDurationMinutes
	}

	endTime, err := req.StartTime.AddMinutes(duration)
	if err != nil {
		uc.logger.Warn("BookSession: interval crosses the day boundary: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Resolve the mentor and check they accept sessions
	mentor, err := uc.mentorRepo.GetByID(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, mentorRepo.ErrMentorNotFound) {
			uc.logger.Warn("BookSession: mentor id=%d not found", req.MentorID)
			return nil, ErrMentorNotFound
		}
		uc.logger.Error("BookSession: failed to get mentor id=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: failed to get mentor: %v", ErrInternal, err)
	}
	if !mentor.Active || !mentor.AvailableForMentoring {
		uc.logger.Warn("BookSession: mentor id=%d not accepting sessions", req.MentorID)
		return nil, ErrMentorUnavailable
	}

	// 3. Anchor the wall-clock interval in the mentor's timezone
	loc := mentor.Location()
	scheduledStart, err := req.StartTime.ToTime(req.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	scheduledEnd, err := endTime.ToTime(req.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Only future sessions can be booked
	now := uc.timeProvider.Now()
	if err := validateNotPast(scheduledStart, now); err != nil {
		uc.logger.Warn("BookSession: requested start %s is in the past", scheduledStart)
		return nil, err
	}

	var result *domain.Session

	// 5. Containment check, overlap check, insert and slot consumption
	// under one serializable transaction
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Re-resolve the date inside the transaction
		slots, err := uc.slotResolver.ResolveForDate(txCtx, req.MentorID, req.Date)
		if err != nil {
			uc.logger.Error("BookSession: failed to resolve slots: %v", err)
			return fmt.Errorf("%w: failed to resolve slots: %w", ErrInternal, err)
		}

		// 5.2. The requested interval must fit inside one resolved slot
		matched := findContainingSlot(slots, req.StartTime, endTime)
		if matched == nil {
			uc.logger.Warn("BookSession: no slot contains %s-%s on %s",
				req.StartTime, endTime, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 5.3. No active session may overlap the interval
		overlapping, err := uc.sessionRepo.ListActiveOverlapping(txCtx, req.MentorID, scheduledStart, scheduledEnd)
		if err != nil {
			uc.logger.Error("BookSession: failed to check overlapping sessions: %v", err)
			return fmt.Errorf("%w: failed to check overlapping sessions: %w", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("BookSession: %d active sessions overlap %s-%s",
				len(overlapping), req.StartTime, endTime)
			return ErrTimeConflict
		}

		// 5.4. Insert the session
		session := &domain.Session{
			MentorID:       req.MentorID,
			MenteeID:       req.MenteeID,
			SessionType:    req.SessionType,
			ScheduledStart: scheduledStart,
			ScheduledEnd:   scheduledEnd,
			Location:       req.Location,
			Agenda:         req.Agenda,
			Notes:          req.Notes,
			Status:         domain.StatusScheduled,
		}

		created, err := uc.sessionRepo.Create(txCtx, session)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrDuplicateSession) {
				uc.logger.Warn("BookSession: duplicate start %s for mentor id=%d", scheduledStart, req.MentorID)
				return ErrTimeConflict
			}
			uc.logger.Error("BookSession: failed to create session: %v", err)
			return fmt.Errorf("%w: failed to create session: %w", ErrInternal, err)
		}

		// 5.5. Weekly slots are consumed by overrides; specific overrides
		// already represent a one-off grant and need no bookkeeping
		if matched.Source == domain.SlotSourceWeekly {
			if err := uc.consumeSlot(txCtx, req.MentorID, matched, req.StartTime, endTime); err != nil {
				uc.logger.Error("BookSession: failed to consume slot: %v", err)
				return fmt.Errorf("%w: failed to consume slot: %w", ErrInternal, err)
			}
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookSession: successfully created session id=%d", result.ID)

	return &Response{
		ID:             result.ID,
		MentorID:       result.MentorID,
		MenteeID:       result.MenteeID,
		SessionType:    string(result.SessionType),
		ScheduledStart: result.ScheduledStart,
		ScheduledEnd:   result.ScheduledEnd,
		Location:       result.Location,
		Agenda:         result.Agenda,
		Notes:          result.Notes,
		Status:         string(result.Status),
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
	}, nil
}
