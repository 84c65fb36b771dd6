package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/talentbridge/MentorBookingService/internal/domain"
	sessionRepo "github.com/talentbridge/MentorBookingService/internal/infra/storage/session"
	"github.com/talentbridge/MentorBookingService/internal/service/sessions/models"
	"github.com/talentbridge/MentorBookingService/pkg/types"
)

// Reschedule moves a future session to a new interval. Mentee side only;
// the new interval must fit a resolved slot and be free of active
// sessions, checked under the same serializable transaction that writes
// the move.
func (s *Service) Reschedule(ctx context.Context, sessionID int64, req *models.RescheduleSessionRequest) (*models.SessionResponse, error) {
	s.logger.Info("Reschedule: session id=%d by user=%d to %s %s",
		sessionID, req.UserID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Validate the target interval
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	if req.DurationMinutes != 0 &&
		(req.DurationMinutes < domain.MinSessionDurationMinutes || req.DurationMinutes > domain.MaxSessionDurationMinutes) {
		return nil, fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
	}

	// 2. Fetch the session and check the caller is its mentee
	session, err := s.getSessionAs(ctx, "Reschedule", sessionID, req.UserID, domain.RoleMentee)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	if session.HasStarted(now) {
		s.logger.Warn("Reschedule: session id=%d already started", sessionID)
		return nil, ErrSessionInPast
	}

	// 3. Keep the current duration unless the caller changed it
	duration := req.DurationMinutes
	if duration == 0 {
		duration = int(session.ScheduledEnd.Sub(session.ScheduledStart).Minutes())
	}
	endTime, err := req.StartTime.AddMinutes(duration)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Anchor the new interval in the mentor's timezone
	mentor, err := s.getMentor(ctx, "Reschedule", session.MentorID)
	if err != nil {
		return nil, err
	}
	loc := mentor.Location()
	newStart, err := req.StartTime.ToTime(req.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	newEnd, err := endTime.ToTime(req.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !newStart.After(now) {
		s.logger.Warn("Reschedule: target start %s is in the past", newStart)
		return nil, ErrSessionInPast
	}

	// 5. Status must allow rescheduling before we touch the calendar
	next, err := domain.NextStatus(session.Status, domain.ActionReschedule)
	if err != nil {
		s.logger.Warn("Reschedule: session id=%d in status=%s: %v", sessionID, session.Status, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	var updated *domain.Session

	// 6. Containment check, overlap check and the move under one
	// serializable transaction
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slots, err := s.slotResolver.ResolveForDate(txCtx, session.MentorID, req.Date)
		if err != nil {
			s.logger.Error("Reschedule: failed to resolve slots: %v", err)
			return fmt.Errorf("%w: failed to resolve slots: %w", ErrInternal, err)
		}

		if !intervalFitsSlots(slots, req.StartTime, endTime) {
			s.logger.Warn("Reschedule: no slot contains %s-%s on %s",
				req.StartTime, endTime, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		overlapping, err := s.sessionRepo.ListActiveOverlapping(txCtx, session.MentorID, newStart, newEnd)
		if err != nil {
			s.logger.Error("Reschedule: failed to check overlapping sessions: %v", err)
			return fmt.Errorf("%w: failed to check overlapping sessions: %w", ErrInternal, err)
		}
		for _, other := range overlapping {
			if other.ID != session.ID {
				s.logger.Warn("Reschedule: session id=%d overlaps target interval", other.ID)
				return ErrTimeConflict
			}
		}

		session.ScheduledStart = newStart
		session.ScheduledEnd = newEnd
		session.Status = next

		updated, err = s.sessionRepo.Update(txCtx, session)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrDuplicateSession) {
				return ErrTimeConflict
			}
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				return ErrSessionNotFound
			}
			s.logger.Error("Reschedule: repository error for session id=%d: %v", sessionID, err)
			return fmt.Errorf("%w: Reschedule - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reschedule: session id=%d moved to %s %s", sessionID,
		req.Date.Format(domain.DateFormat), req.StartTime)
	return models.FromDomainSession(updated), nil
}

// intervalFitsSlots reports whether some slot contains [start, end]
func intervalFitsSlots(slots []domain.Slot, start, end types.TimeString) bool {
	for i := range slots {
		if slots[i].ContainsInterval(start, end) {
			return true
		}
	}
	return false
}
