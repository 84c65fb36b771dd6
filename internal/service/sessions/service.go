package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/talentbridge/MentorBookingService/internal/domain"
	mentorRepo "github.com/talentbridge/MentorBookingService/internal/infra/storage/mentor"
	sessionRepo "github.com/talentbridge/MentorBookingService/internal/infra/storage/session"
	"github.com/talentbridge/MentorBookingService/internal/service/sessions/models"
)

// meetingIDLength is the number of uuid characters kept for the short
// meeting identifier handed to both participants.
const meetingIDLength = 8

// Config carries the lifecycle knobs read from the service configuration
type Config struct {
	// StartGraceMinutes is how long before the scheduled start a session
	// may already be started.
	StartGraceMinutes int
}

// Service drives the session lifecycle: confirm, reject, start, end,
// cancel, reschedule and the read views over sessions.
type Service struct {
	sessionRepo  SessionRepository
	mentorRepo   MentorRepository
	slotResolver SlotResolver
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
	cfg          Config
}

// NewService creates the sessions service
func NewService(
	sessionRepository SessionRepository,
	mentorRepository MentorRepository,
	slotResolver SlotResolver,
	txManager TransactionManager,
	cfg Config,
	logger Logger,
) *Service {
	if cfg.StartGraceMinutes <= 0 {
		cfg.StartGraceMinutes = domain.DefaultStartGraceMinutes
	}
	return &Service{
		sessionRepo:  sessionRepository,
		mentorRepo:   mentorRepository,
		slotResolver: slotResolver,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		cfg:          cfg,
	}
}

// GetByID fetches a session. Only the mentor or the mentee of the session
// may read it.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.SessionResponse, error) {
	s.logger.Info("GetByID: fetching session id=%d for user=%d", id, userID)

	session, err := s.getSession(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if _, err := s.resolveRole(ctx, session, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to session id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainSession(session), nil
}

// GetUserSessions lists the mentee's own sessions, optionally narrowed by
// status and scope (upcoming/past).
func (s *Service) GetUserSessions(ctx context.Context, req *models.GetUserSessionsRequest) (*models.SessionListResponse, error) {
	s.logger.Info("GetUserSessions: fetching sessions for mentee=%d, status=%v, scope=%q",
		req.MenteeID, req.Status, req.Scope)

	if req.MenteeID != req.UserID {
		s.logger.Warn("GetUserSessions: user=%d requested sessions of mentee=%d", req.UserID, req.MenteeID)
		return nil, ErrAccessDenied
	}

	filter := domain.MenteeSessionsFilter{
		MenteeID: req.MenteeID,
		Now:      s.timeProvider.Now(),
	}

	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserSessions: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	scope, err := models.ToDomainScope(req.Scope)
	if err != nil {
		s.logger.Warn("GetUserSessions: invalid scope=%s", req.Scope)
		return nil, fmt.Errorf("%w: invalid scope", ErrInvalidInput)
	}
	filter.Scope = scope

	sessions, err := s.sessionRepo.ListByMentee(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserSessions: repository error for mentee=%d: %v", req.MenteeID, err)
		return nil, fmt.Errorf("%w: GetUserSessions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserSessions: fetched %d sessions for mentee=%d", len(sessions), req.MenteeID)
	return models.FromDomainSessionList(sessions), nil
}

// GetUserStatistics aggregates the mentee's booking history
func (s *Service) GetUserStatistics(ctx context.Context, menteeID, userID int64) (*models.StatisticsResponse, error) {
	s.logger.Info("GetUserStatistics: fetching statistics for mentee=%d", menteeID)

	if menteeID != userID {
		s.logger.Warn("GetUserStatistics: user=%d requested statistics of mentee=%d", userID, menteeID)
		return nil, ErrAccessDenied
	}

	stats, err := s.sessionRepo.GetMenteeStatistics(ctx, menteeID, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("GetUserStatistics: repository error for mentee=%d: %v", menteeID, err)
		return nil, fmt.Errorf("%w: GetUserStatistics - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStatistics(stats), nil
}

// GetMentorSessions lists the sessions of a mentor profile. Only the user
// behind the profile may read the list.
func (s *Service) GetMentorSessions(ctx context.Context, req *models.GetMentorSessionsRequest) (*models.SessionListResponse, error) {
	s.logger.Info("GetMentorSessions: fetching sessions for mentor=%d, status=%v, type=%v",
		req.MentorID, req.Status, req.SessionType)

	mentor, err := s.getMentor(ctx, "GetMentorSessions", req.MentorID)
	if err != nil {
		return nil, err
	}
	if mentor.UserID != req.UserID {
		s.logger.Warn("GetMentorSessions: user=%d is not mentor=%d", req.UserID, req.MentorID)
		return nil, ErrAccessDenied
	}

	filter := domain.MentorSessionsFilter{MentorID: req.MentorID}

	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetMentorSessions: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}
	if req.SessionType != nil {
		sessionType, err := models.ToDomainSessionType(*req.SessionType)
		if err != nil {
			s.logger.Warn("GetMentorSessions: invalid session type=%s", *req.SessionType)
			return nil, fmt.Errorf("%w: invalid session type", ErrInvalidInput)
		}
		filter.SessionType = &sessionType
	}

	sessions, err := s.sessionRepo.ListByMentor(ctx, filter)
	if err != nil {
		s.logger.Error("GetMentorSessions: repository error for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: GetMentorSessions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMentorSessions: fetched %d sessions for mentor=%d", len(sessions), req.MentorID)
	return models.FromDomainSessionList(sessions), nil
}

// Confirm accepts a requested session, optionally attaching a meeting
// link. Mentor side only.
func (s *Service) Confirm(ctx context.Context, sessionID int64, req *models.ConfirmSessionRequest) (*models.SessionResponse, error) {
	s.logger.Info("Confirm: session id=%d by user=%d", sessionID, req.UserID)

	session, err := s.getSessionAs(ctx, "Confirm", sessionID, req.UserID, domain.RoleMentor)
	if err != nil {
		return nil, err
	}

	if err := s.applyTransition(session, domain.ActionConfirm); err != nil {
		s.logger.Warn("Confirm: session id=%d in status=%s: %v", sessionID, session.Status, err)
		return nil, err
	}
	if req.MeetingLink != "" {
		session.MeetingLink = req.MeetingLink
	}

	return s.saveSession(ctx, "Confirm", session)
}

// Reject declines a requested session. Mentor side only.
func (s *Service) Reject(ctx context.Context, sessionID int64, req *models.RejectSessionRequest) (*models.SessionResponse, error) {
	s.logger.Info("Reject: session id=%d by user=%d", sessionID, req.UserID)

	if len(req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	session, err := s.getSessionAs(ctx, "Reject", sessionID, req.UserID, domain.RoleMentor)
	if err != nil {
		return nil, err
	}

	if err := s.applyTransition(session, domain.ActionReject); err != nil {
		s.logger.Warn("Reject: session id=%d in status=%s: %v", sessionID, session.Status, err)
		return nil, err
	}
	if req.Reason != "" {
		session.CancellationReason = &req.Reason
	}

	return s.saveSession(ctx, "Reject", session)
}

// Start moves a session into progress. Mentor side only, at most
// StartGraceMinutes before the scheduled start.
func (s *Service) Start(ctx context.Context, sessionID, userID int64) (*models.SessionResponse, error) {
	s.logger.Info("Start: session id=%d by user=%d", sessionID, userID)

	session, err := s.getSessionAs(ctx, "Start", sessionID, userID, domain.RoleMentor)
	if err != nil {
		return nil, err
	}

	if err := s.applyTransition(session, domain.ActionStart); err != nil {
		s.logger.Warn("Start: session id=%d in status=%s: %v", sessionID, session.Status, err)
		return nil, err
	}

	now := s.timeProvider.Now()
	opensAt := session.ScheduledStart.Add(-time.Duration(s.cfg.StartGraceMinutes) * time.Minute)
	if now.Before(opensAt) {
		remaining := int(session.ScheduledStart.Sub(now).Minutes())
		s.logger.Warn("Start: session id=%d starts in %d minutes", sessionID, remaining)
		return nil, &TooEarlyError{MinutesRemaining: remaining}
	}

	session.ActualStart = &now
	if session.MeetingID == "" {
		session.MeetingID = uuid.NewString()[:meetingIDLength]
	}

	return s.saveSession(ctx, "Start", session)
}

// End completes an in-progress session, records the actual end and bumps
// the mentor's completed-session counter. Mentor side only.
func (s *Service) End(ctx context.Context, sessionID int64, req *models.EndSessionRequest) (*models.SessionResponse, error) {
	s.logger.Info("End: session id=%d by user=%d", sessionID, req.UserID)

	if len(req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	session, err := s.getSessionAs(ctx, "End", sessionID, req.UserID, domain.RoleMentor)
	if err != nil {
		return nil, err
	}

	if err := s.applyTransition(session, domain.ActionEnd); err != nil {
		s.logger.Warn("End: session id=%d in status=%s: %v", sessionID, session.Status, err)
		return nil, err
	}

	now := s.timeProvider.Now()
	session.ActualEnd = &now
	if req.Notes != "" {
		session.MentorNotes = req.Notes
	}

	resp, err := s.saveSession(ctx, "End", session)
	if err != nil {
		return nil, err
	}

	if err := s.mentorRepo.IncrementTotalSessions(ctx, session.MentorID); err != nil {
		// The session is already completed; the counter is advisory
		s.logger.Error("End: failed to increment total sessions for mentor=%d: %v", session.MentorID, err)
	}

	return resp, nil
}

// Cancel cancels a future session. Either participant may cancel.
func (s *Service) Cancel(ctx context.Context, sessionID int64, req *models.CancelSessionRequest) (*models.SessionResponse, error) {
	s.logger.Info("Cancel: session id=%d by user=%d", sessionID, req.UserID)

	if len(req.CancellationReason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	session, err := s.getSession(ctx, "Cancel", sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.resolveRole(ctx, session, req.UserID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to session id=%d", req.UserID, sessionID)
		return nil, err
	}

	if session.HasStarted(s.timeProvider.Now()) {
		s.logger.Warn("Cancel: session id=%d already started", sessionID)
		return nil, ErrSessionInPast
	}

	if err := s.applyTransition(session, domain.ActionCancel); err != nil {
		s.logger.Warn("Cancel: session id=%d in status=%s: %v", sessionID, session.Status, err)
		return nil, err
	}
	if req.CancellationReason != "" {
		session.CancellationReason = &req.CancellationReason
	}

	return s.saveSession(ctx, "Cancel", session)
}

// MarkNoShow marks a session the mentee never joined. Mentor side only.
func (s *Service) MarkNoShow(ctx context.Context, sessionID, userID int64) (*models.SessionResponse, error) {
	s.logger.Info("MarkNoShow: session id=%d by user=%d", sessionID, userID)

	session, err := s.getSessionAs(ctx, "MarkNoShow", sessionID, userID, domain.RoleMentor)
	if err != nil {
		return nil, err
	}

	if !session.HasStarted(s.timeProvider.Now()) {
		s.logger.Warn("MarkNoShow: session id=%d has not started yet", sessionID)
		return nil, fmt.Errorf("%w: session has not started yet", ErrInvalidInput)
	}

	if err := s.applyTransition(session, domain.ActionMarkNoShow); err != nil {
		s.logger.Warn("MarkNoShow: session id=%d in status=%s: %v", sessionID, session.Status, err)
		return nil, err
	}

	return s.saveSession(ctx, "MarkNoShow", session)
}

// Helpers

func (s *Service) getSession(ctx context.Context, op string, id int64) (*domain.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("%s: session id=%d not found", op, id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("%s: repository error for session id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return session, nil
}

func (s *Service) getMentor(ctx context.Context, op string, id int64) (*domain.MentorProfile, error) {
	mentor, err := s.mentorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mentorRepo.ErrMentorNotFound) {
			s.logger.Warn("%s: mentor id=%d not found", op, id)
			return nil, ErrMentorNotFound
		}
		s.logger.Error("%s: failed to get mentor id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - failed to get mentor: %v", ErrInternal, op, err)
	}
	return mentor, nil
}

// getSessionAs fetches a session and requires the caller to hold the
// given role on it.
func (s *Service) getSessionAs(ctx context.Context, op string, sessionID, userID int64, required domain.ActorRole) (*domain.Session, error) {
	session, err := s.getSession(ctx, op, sessionID)
	if err != nil {
		return nil, err
	}
	role, err := s.resolveRole(ctx, session, userID)
	if err != nil {
		s.logger.Warn("%s: access denied for user=%d to session id=%d", op, userID, sessionID)
		return nil, err
	}
	if role != required {
		s.logger.Warn("%s: user=%d is not the %s of session id=%d", op, userID, required, sessionID)
		return nil, ErrAccessDenied
	}
	return session, nil
}

// resolveRole determines which side of the session the user is on
func (s *Service) resolveRole(ctx context.Context, session *domain.Session, userID int64) (domain.ActorRole, error) {
	if session.MenteeID == userID {
		return domain.RoleMentee, nil
	}

	mentor, err := s.getMentor(ctx, "resolveRole", session.MentorID)
	if err != nil {
		if errors.Is(err, ErrMentorNotFound) {
			return "", ErrAccessDenied
		}
		return "", err
	}
	if mentor.UserID == userID {
		return domain.RoleMentor, nil
	}

	return "", ErrAccessDenied
}

// applyTransition advances the session status through the lifecycle table
func (s *Service) applyTransition(session *domain.Session, action domain.SessionAction) error {
	next, err := domain.NextStatus(session.Status, action)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}
	session.Status = next
	return nil
}

func (s *Service) saveSession(ctx context.Context, op string, session *domain.Session) (*models.SessionResponse, error) {
	updated, err := s.sessionRepo.Update(ctx, session)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("%s: session id=%d not found during update", op, session.ID)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("%s: repository error for session id=%d: %v", op, session.ID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: session id=%d moved to status=%s", op, updated.ID, updated.Status)
	return models.FromDomainSession(updated), nil
}
