package resolve_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/MentorBookingService/internal/domain"
	mentorRepo "github.com/talentbridge/MentorBookingService/internal/infra/storage/mentor"
	"github.com/talentbridge/MentorBookingService/pkg/types"
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
	rulesByDay      map[int][]*domain.WeeklyRule
	overridesByDate map[string][]*domain.DateOverride
}

func (s *stubAvailabilityRepo) ListWeeklyRulesForDay(_ context.Context, _ int64, dayOfWeek int) ([]*domain.WeeklyRule, error) {
	return s.rulesByDay[dayOfWeek], nil
}

func (s *stubAvailabilityRepo) ListOverridesForDate(_ context.Context, _ int64, date string) ([]*domain.DateOverride, error) {
	return s.overridesByDate[date], nil
}

func newTestUseCase(availability *stubAvailabilityRepo) *UseCase {
	return NewUseCase(
		&stubMentorRepo{mentor: &domain.MentorProfile{ID: 1, UserID: 10, Timezone: "UTC", Active: true}},
		availability,
		nopLogger{},
	)
}

// 2026-03-09 is a Monday
var monday = time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

func weeklyRule(day int, start, end types.TimeString) *domain.WeeklyRule {
	return &domain.WeeklyRule{
		MentorID:  1,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		Timezone:  "UTC",
		IsActive:  true,
	}
}

func TestExecuteEmitsWeeklyRules(t *testing.T) {
	uc := newTestUseCase(&stubAvailabilityRepo{
		rulesByDay: map[int][]*domain.WeeklyRule{
			domain.DayMonday: {weeklyRule(domain.DayMonday, "09:00", "12:00")},
		},
	})

	resp, err := uc.Execute(context.Background(), &Request{
		MentorID:  1,
		StartDate: monday,
		EndDate:   monday,
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)

	slot := resp.Slots[0]
	assert.Equal(t, monday, slot.Date)
	assert.Equal(t, types.TimeString("09:00"), slot.StartTime)
	assert.Equal(t, types.TimeString("12:00"), slot.EndTime)
	assert.Equal(t, domain.SlotSourceWeekly, slot.Source)
}

func TestExecuteSpecificOverridesReplaceWeeklyRules(t *testing.T) {
	uc := newTestUseCase(&stubAvailabilityRepo{
		rulesByDay: map[int][]*domain.WeeklyRule{
			domain.DayMonday: {weeklyRule(domain.DayMonday, "09:00", "12:00")},
		},
		overridesByDate: map[string][]*domain.DateOverride{
			"2026-03-09": {
				{MentorID: 1, Date: monday, StartTime: "15:00", EndTime: "17:00", Timezone: "UTC", IsAvailable: true},
			},
		},
	})

	resp, err := uc.Execute(context.Background(), &Request{MentorID: 1, StartDate: monday, EndDate: monday})
	require.NoError(t, err)

	// The weekly rule must not appear: the specific grant replaces the day
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, domain.SlotSourceSpecific, resp.Slots[0].Source)
	assert.Equal(t, types.TimeString("15:00"), resp.Slots[0].StartTime)
}

func TestExecuteFullDayBlockRemovesDate(t *testing.T) {
	uc := newTestUseCase(&stubAvailabilityRepo{
		rulesByDay: map[int][]*domain.WeeklyRule{
			domain.DayMonday: {weeklyRule(domain.DayMonday, "09:00", "12:00")},
		},
		overridesByDate: map[string][]*domain.DateOverride{
			"2026-03-09": {
				{MentorID: 1, Date: monday, StartTime: "00:00", EndTime: "23:59", IsAvailable: false},
			},
		},
	})

	resp, err := uc.Execute(context.Background(), &Request{MentorID: 1, StartDate: monday, EndDate: monday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecutePartialBlockDoesNotSuppress(t *testing.T) {
	uc := newTestUseCase(&stubAvailabilityRepo{
		rulesByDay: map[int][]*domain.WeeklyRule{
			domain.DayMonday: {weeklyRule(domain.DayMonday, "09:00", "12:00")},
		},
		overridesByDate: map[string][]*domain.DateOverride{
			"2026-03-09": {
				// Overlaps the rule but does not contain it
				{MentorID: 1, Date: monday, StartTime: "11:00", EndTime: "14:00", IsAvailable: false},
			},
		},
	})

	resp, err := uc.Execute(context.Background(), &Request{MentorID: 1, StartDate: monday, EndDate: monday})
	require.NoError(t, err)

	// Partial overlap keeps the rule; only full containment suppresses
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, domain.SlotSourceWeekly, resp.Slots[0].Source)
}

func TestExecuteContainingBlockSuppressesRule(t *testing.T) {
	uc := newTestUseCase(&stubAvailabilityRepo{
		rulesByDay: map[int][]*domain.WeeklyRule{
			domain.DayMonday: {
				weeklyRule(domain.DayMonday, "09:00", "12:00"),
				weeklyRule(domain.DayMonday, "14:00", "16:00"),
			},
		},
		overridesByDate: map[string][]*domain.DateOverride{
			"2026-03-09": {
				{MentorID: 1, Date: monday, StartTime: "08:00", EndTime: "13:00", IsAvailable: false},
			},
		},
	})

	resp, err := uc.Execute(context.Background(), &Request{MentorID: 1, StartDate: monday, EndDate: monday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, types.TimeString("14:00"), resp.Slots[0].StartTime)
}

func TestExecuteWalksRangeInDateOrder(t *testing.T) {
	uc := newTestUseCase(&stubAvailabilityRepo{
		rulesByDay: map[int][]*domain.WeeklyRule{
			domain.DayMonday:  {weeklyRule(domain.DayMonday, "09:00", "10:00")},
			domain.DayTuesday: {weeklyRule(domain.DayTuesday, "11:00", "12:00")},
		},
	})

	resp, err := uc.Execute(context.Background(), &Request{
		MentorID:  1,
		StartDate: monday,
		EndDate:   monday.AddDate(0, 0, 2),
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.True(t, resp.Slots[0].Date.Before(resp.Slots[1].Date))
}

func TestExecuteMentorNotFound(t *testing.T) {
	uc := NewUseCase(
		&stubMentorRepo{err: mentorRepo.ErrMentorNotFound},
		&stubAvailabilityRepo{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{MentorID: 42, StartDate: monday, EndDate: monday})
	assert.ErrorIs(t, err, ErrMentorNotFound)
}

func TestExecuteValidation(t *testing.T) {
	uc := newTestUseCase(&stubAvailabilityRepo{})

	_, err := uc.Execute(context.Background(), &Request{MentorID: 0, StartDate: monday, EndDate: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{MentorID: 1, StartDate: monday, EndDate: monday.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = uc.Execute(context.Background(), &Request{
		MentorID:  1,
		StartDate: monday,
		EndDate:   monday.AddDate(0, 0, domain.MaxResolveRangeDays),
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}
