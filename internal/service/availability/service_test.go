package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/MentorBookingService/internal/domain"
	availabilityRepo "github.com/talentbridge/MentorBookingService/internal/infra/storage/availability"
	mentorRepo "github.com/talentbridge/MentorBookingService/internal/infra/storage/mentor"
	"github.com/talentbridge/MentorBookingService/internal/service/availability/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubMentorRepo struct {
	mentor *domain.MentorProfile
	err    error
}

func (s *stubMentorRepo) GetByID(_ context.Context, _ int64) (*domain.MentorProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.mentor, nil
}

type stubAvailabilityRepo struct {
	rules     []*domain.WeeklyRule
	overrides []*domain.DateOverride

	rule     *domain.WeeklyRule
	override *domain.DateOverride

	createRuleErr     error
	createOverrideErr error
	getRuleErr        error
	getOverrideErr    error

	deletedRuleID     int64
	deletedOverrideID int64
}

func (s *stubAvailabilityRepo) CreateWeeklyRule(_ context.Context, rule *domain.WeeklyRule) (*domain.WeeklyRule, error) {
	if s.createRuleErr != nil {
		return nil, s.createRuleErr
	}
	rule.ID = 11
	return rule, nil
}

func (s *stubAvailabilityRepo) GetWeeklyRuleByID(_ context.Context, _ int64) (*domain.WeeklyRule, error) {
	if s.getRuleErr != nil {
		return nil, s.getRuleErr
	}
	return s.rule, nil
}

func (s *stubAvailabilityRepo) ListWeeklyRulesByMentor(_ context.Context, _ int64) ([]*domain.WeeklyRule, error) {
	return s.rules, nil
}

func (s *stubAvailabilityRepo) DeleteWeeklyRule(_ context.Context, id int64) error {
	s.deletedRuleID = id
	return nil
}

func (s *stubAvailabilityRepo) CreateOverride(_ context.Context, override *domain.DateOverride) (*domain.DateOverride, error) {
	if s.createOverrideErr != nil {
		return nil, s.createOverrideErr
	}
	override.ID = 21
	return override, nil
}

func (s *stubAvailabilityRepo) GetOverrideByID(_ context.Context, _ int64) (*domain.DateOverride, error) {
	if s.getOverrideErr != nil {
		return nil, s.getOverrideErr
	}
	return s.override, nil
}

func (s *stubAvailabilityRepo) ListOverridesInRange(_ context.Context, _ int64, _, _ string) ([]*domain.DateOverride, error) {
	return s.overrides, nil
}

func (s *stubAvailabilityRepo) DeleteOverride(_ context.Context, id int64) error {
	s.deletedOverrideID = id
	return nil
}

const (
	ownerUserID = int64(10)
	otherUserID = int64(99)
)

var overrideDate = time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	svc  *Service
	repo *stubAvailabilityRepo
}

func newFixture() *fixture {
	repo := &stubAvailabilityRepo{}
	svc := NewService(
		repo,
		&stubMentorRepo{mentor: &domain.MentorProfile{ID: 1, UserID: ownerUserID, Timezone: "Europe/Berlin", Active: true}},
		nopLogger{},
	)
	return &fixture{svc: svc, repo: repo}
}

func TestCreateWeeklyRule(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreateWeeklyRule(context.Background(), &models.CreateWeeklyRuleRequest{
		MentorID:  1,
		UserID:    ownerUserID,
		DayOfWeek: domain.DayWednesday,
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(11), resp.ID)
	// Omitted timezone falls back to the profile's one
	assert.Equal(t, "Europe/Berlin", resp.Timezone)
}

func TestCreateWeeklyRuleOwnership(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateWeeklyRule(context.Background(), &models.CreateWeeklyRuleRequest{
		MentorID:  1,
		UserID:    otherUserID,
		DayOfWeek: domain.DayMonday,
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreateWeeklyRuleValidation(t *testing.T) {
	f := newFixture()

	base := func() *models.CreateWeeklyRuleRequest {
		return &models.CreateWeeklyRuleRequest{
			MentorID:  1,
			UserID:    ownerUserID,
			DayOfWeek: domain.DayMonday,
			StartTime: "09:00",
			EndTime:   "12:00",
		}
	}

	req := base()
	req.DayOfWeek = 7
	_, err := f.svc.CreateWeeklyRule(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = base()
	req.StartTime, req.EndTime = "12:00", "09:00"
	_, err = f.svc.CreateWeeklyRule(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = base()
	req.Timezone = "Mars/Olympus_Mons"
	_, err = f.svc.CreateWeeklyRule(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateWeeklyRuleDuplicate(t *testing.T) {
	f := newFixture()
	f.repo.createRuleErr = availabilityRepo.ErrDuplicateRule

	_, err := f.svc.CreateWeeklyRule(context.Background(), &models.CreateWeeklyRuleRequest{
		MentorID:  1,
		UserID:    ownerUserID,
		DayOfWeek: domain.DayMonday,
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	assert.ErrorIs(t, err, ErrDuplicateRule)
}

func TestDeleteWeeklyRule(t *testing.T) {
	f := newFixture()
	f.repo.rule = &domain.WeeklyRule{ID: 11, MentorID: 1}

	require.NoError(t, f.svc.DeleteWeeklyRule(context.Background(), 11, ownerUserID))
	assert.Equal(t, int64(11), f.repo.deletedRuleID)

	assert.ErrorIs(t, f.svc.DeleteWeeklyRule(context.Background(), 11, otherUserID), ErrAccessDenied)
}

func TestDeleteWeeklyRuleNotFound(t *testing.T) {
	f := newFixture()
	f.repo.getRuleErr = availabilityRepo.ErrRuleNotFound

	assert.ErrorIs(t, f.svc.DeleteWeeklyRule(context.Background(), 11, ownerUserID), ErrRuleNotFound)
}

func TestCreateOverrideDefaultsToWholeDay(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreateOverride(context.Background(), &models.CreateOverrideRequest{
		MentorID:    1,
		UserID:      ownerUserID,
		Date:        overrideDate,
		IsAvailable: false,
		Reason:      "vacation",
	})
	require.NoError(t, err)

	assert.Equal(t, "00:00", resp.StartTime)
	assert.Equal(t, "23:59", resp.EndTime)
	assert.False(t, resp.IsAvailable)
}

func TestCreateOverrideWithRange(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreateOverride(context.Background(), &models.CreateOverrideRequest{
		MentorID:    1,
		UserID:      ownerUserID,
		Date:        overrideDate,
		StartTime:   "15:00",
		EndTime:     "17:00",
		IsAvailable: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "15:00", resp.StartTime)
	assert.True(t, resp.IsAvailable)
}

func TestCreateOverrideDuplicate(t *testing.T) {
	f := newFixture()
	f.repo.createOverrideErr = availabilityRepo.ErrDuplicateOverride

	_, err := f.svc.CreateOverride(context.Background(), &models.CreateOverrideRequest{
		MentorID: 1,
		UserID:   ownerUserID,
		Date:     overrideDate,
	})
	assert.ErrorIs(t, err, ErrDuplicateOverride)
}

func TestCreateOverrideMentorNotFound(t *testing.T) {
	repo := &stubAvailabilityRepo{}
	svc := NewService(repo, &stubMentorRepo{err: mentorRepo.ErrMentorNotFound}, nopLogger{})

	_, err := svc.CreateOverride(context.Background(), &models.CreateOverrideRequest{
		MentorID: 42,
		UserID:   ownerUserID,
		Date:     overrideDate,
	})
	assert.ErrorIs(t, err, ErrMentorNotFound)
}

func TestDeleteOverride(t *testing.T) {
	f := newFixture()
	f.repo.override = &domain.DateOverride{ID: 21, MentorID: 1}

	require.NoError(t, f.svc.DeleteOverride(context.Background(), 21, ownerUserID))
	assert.Equal(t, int64(21), f.repo.deletedOverrideID)

	assert.ErrorIs(t, f.svc.DeleteOverride(context.Background(), 21, otherUserID), ErrAccessDenied)
}

func TestGetCalendar(t *testing.T) {
	f := newFixture()
	f.repo.rules = []*domain.WeeklyRule{{ID: 11, MentorID: 1, DayOfWeek: domain.DayMonday, StartTime: "09:00", EndTime: "12:00"}}
	f.repo.overrides = []*domain.DateOverride{{ID: 21, MentorID: 1, Date: overrideDate, StartTime: "00:00", EndTime: "23:59"}}

	resp, err := f.svc.GetCalendar(context.Background(), &models.GetAvailabilityRequest{
		MentorID:  1,
		StartDate: overrideDate,
		EndDate:   overrideDate.AddDate(0, 0, 30),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.MentorID)
	assert.Len(t, resp.WeeklyRules, 1)
	assert.Len(t, resp.Overrides, 1)
}

func TestGetCalendarInvalidRange(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetCalendar(context.Background(), &models.GetAvailabilityRequest{
		MentorID:  1,
		StartDate: overrideDate,
		EndDate:   overrideDate.AddDate(0, 0, -1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
