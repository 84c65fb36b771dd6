package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/talentbridge/MentorBookingService/internal/domain"
	availabilityRepo "github.com/talentbridge/MentorBookingService/internal/infra/storage/availability"
	mentorRepo "github.com/talentbridge/MentorBookingService/internal/infra/storage/mentor"
	"github.com/talentbridge/MentorBookingService/internal/service/availability/models"
	"github.com/talentbridge/MentorBookingService/pkg/types"
)

// Service manages a mentor's declared calendar: the recurring weekly rules
// and the date-specific overrides the resolver reads.
type Service struct {
	availabilityRepo AvailabilityRepository
	mentorRepo       MentorRepository
	logger           Logger
}

// NewService creates the availability service
func NewService(
	availabilityRepository AvailabilityRepository,
	mentorRepository MentorRepository,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepository,
		mentorRepo:       mentorRepository,
		logger:           logger,
	}
}

// GetCalendar returns a mentor's declared calendar: all weekly rules and
// the overrides within [StartDate, EndDate]. This is the editing view, not
// the resolved slot list.
func (s *Service) GetCalendar(ctx context.Context, req *models.GetAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("GetCalendar: mentor=%d, range=%s..%s", req.MentorID,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	if _, err := s.getMentor(ctx, "GetCalendar", req.MentorID); err != nil {
		return nil, err
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	rules, err := s.availabilityRepo.ListWeeklyRulesByMentor(ctx, req.MentorID)
	if err != nil {
		s.logger.Error("GetCalendar: failed to list rules for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: GetCalendar - repository error: %v", ErrInternal, err)
	}

	overrides, err := s.availabilityRepo.ListOverridesInRange(ctx, req.MentorID,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	if err != nil {
		s.logger.Error("GetCalendar: failed to list overrides for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: GetCalendar - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCalendar(req.MentorID, rules, overrides), nil
}

// CreateWeeklyRule adds a recurring availability window. Only the user
// behind the mentor profile may edit the calendar.
func (s *Service) CreateWeeklyRule(ctx context.Context, req *models.CreateWeeklyRuleRequest) (*models.WeeklyRuleResponse, error) {
	s.logger.Info("CreateWeeklyRule: mentor=%d, day=%d, %s-%s",
		req.MentorID, req.DayOfWeek, req.StartTime, req.EndTime)

	mentor, err := s.checkOwnership(ctx, "CreateWeeklyRule", req.MentorID, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.DayOfWeek < domain.DayMonday || req.DayOfWeek > domain.DaySunday {
		return nil, fmt.Errorf("%w: dayOfWeek must be between 0 and 6", ErrInvalidInput)
	}
	timezone, err := resolveTimezone(req.Timezone, mentor)
	if err != nil {
		return nil, err
	}
	if err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	rule := &domain.WeeklyRule{
		MentorID:  req.MentorID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Timezone:  timezone,
		IsActive:  true,
	}

	created, err := s.availabilityRepo.CreateWeeklyRule(ctx, rule)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrDuplicateRule) {
			s.logger.Warn("CreateWeeklyRule: duplicate rule for mentor=%d", req.MentorID)
			return nil, ErrDuplicateRule
		}
		s.logger.Error("CreateWeeklyRule: repository error for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: CreateWeeklyRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateWeeklyRule: created rule id=%d for mentor=%d", created.ID, req.MentorID)
	return models.FromDomainWeeklyRule(created), nil
}

// DeleteWeeklyRule removes a recurring availability window
func (s *Service) DeleteWeeklyRule(ctx context.Context, ruleID, userID int64) error {
	s.logger.Info("DeleteWeeklyRule: rule id=%d by user=%d", ruleID, userID)

	rule, err := s.availabilityRepo.GetWeeklyRuleByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrRuleNotFound) {
			s.logger.Warn("DeleteWeeklyRule: rule id=%d not found", ruleID)
			return ErrRuleNotFound
		}
		s.logger.Error("DeleteWeeklyRule: repository error for rule id=%d: %v", ruleID, err)
		return fmt.Errorf("%w: DeleteWeeklyRule - repository error: %v", ErrInternal, err)
	}

	if _, err := s.checkOwnership(ctx, "DeleteWeeklyRule", rule.MentorID, userID); err != nil {
		return err
	}

	if err := s.availabilityRepo.DeleteWeeklyRule(ctx, ruleID); err != nil {
		if errors.Is(err, availabilityRepo.ErrRuleNotFound) {
			return ErrRuleNotFound
		}
		s.logger.Error("DeleteWeeklyRule: repository error for rule id=%d: %v", ruleID, err)
		return fmt.Errorf("%w: DeleteWeeklyRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteWeeklyRule: deleted rule id=%d", ruleID)
	return nil
}

// CreateOverride adds a date-specific availability fact. An override
// without a time range applies to the whole day.
func (s *Service) CreateOverride(ctx context.Context, req *models.CreateOverrideRequest) (*models.OverrideResponse, error) {
	s.logger.Info("CreateOverride: mentor=%d, date=%s, available=%v",
		req.MentorID, req.Date.Format(domain.DateFormat), req.IsAvailable)

	mentor, err := s.checkOwnership(ctx, "CreateOverride", req.MentorID, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	timezone, err := resolveTimezone(req.Timezone, mentor)
	if err != nil {
		return nil, err
	}
	if len(req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	// An omitted time range means the whole day
	startTime, endTime := req.StartTime, req.EndTime
	if startTime.IsZero() && endTime.IsZero() {
		startTime, endTime = "00:00", "23:59"
	}
	if err := validateTimeRange(startTime, endTime); err != nil {
		return nil, err
	}

	override := &domain.DateOverride{
		MentorID:    req.MentorID,
		Date:        req.Date,
		StartTime:   startTime,
		EndTime:     endTime,
		Timezone:    timezone,
		IsAvailable: req.IsAvailable,
		Reason:      req.Reason,
	}

	created, err := s.availabilityRepo.CreateOverride(ctx, override)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrDuplicateOverride) {
			s.logger.Warn("CreateOverride: duplicate override for mentor=%d", req.MentorID)
			return nil, ErrDuplicateOverride
		}
		s.logger.Error("CreateOverride: repository error for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: CreateOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateOverride: created override id=%d for mentor=%d", created.ID, req.MentorID)
	return models.FromDomainOverride(created), nil
}

// DeleteOverride removes a date-specific availability fact
func (s *Service) DeleteOverride(ctx context.Context, overrideID, userID int64) error {
	s.logger.Info("DeleteOverride: override id=%d by user=%d", overrideID, userID)

	override, err := s.availabilityRepo.GetOverrideByID(ctx, overrideID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrOverrideNotFound) {
			s.logger.Warn("DeleteOverride: override id=%d not found", overrideID)
			return ErrOverrideNotFound
		}
		s.logger.Error("DeleteOverride: repository error for override id=%d: %v", overrideID, err)
		return fmt.Errorf("%w: DeleteOverride - repository error: %v", ErrInternal, err)
	}

	if _, err := s.checkOwnership(ctx, "DeleteOverride", override.MentorID, userID); err != nil {
		return err
	}

	if err := s.availabilityRepo.DeleteOverride(ctx, overrideID); err != nil {
		if errors.Is(err, availabilityRepo.ErrOverrideNotFound) {
			return ErrOverrideNotFound
		}
		s.logger.Error("DeleteOverride: repository error for override id=%d: %v", overrideID, err)
		return fmt.Errorf("%w: DeleteOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteOverride: deleted override id=%d", overrideID)
	return nil
}

// Helpers

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

// checkOwnership requires the caller to be the user behind the profile
func (s *Service) checkOwnership(ctx context.Context, op string, mentorID, userID int64) (*domain.MentorProfile, error) {
	mentor, err := s.getMentor(ctx, op, mentorID)
	if err != nil {
		return nil, err
	}
	if mentor.UserID != userID {
		s.logger.Warn("%s: user=%d does not own mentor=%d", op, userID, mentorID)
		return nil, ErrAccessDenied
	}
	return mentor, nil
}

// resolveTimezone validates an explicit timezone or falls back to the
// mentor profile's one.
func resolveTimezone(timezone string, mentor *domain.MentorProfile) (string, error) {
	if timezone == "" {
		return mentor.Timezone, nil
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return "", fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, timezone)
	}
	return timezone, nil
}

func validateTimeRange(start, end types.TimeString) error {
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}
	return nil
}
