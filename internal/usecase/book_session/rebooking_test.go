package book_session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/MentorBookingService/internal/domain"
	resolveAvailability "github.com/talentbridge/MentorBookingService/internal/usecase/resolve_availability"
)

// memoryCalendar backs both the resolver reads and the consumption writes,
// so overrides written by one booking are visible to the next resolution.
type memoryCalendar struct {
	rules     map[int][]*domain.WeeklyRule
	overrides map[string][]*domain.DateOverride
}

func newMemoryCalendar() *memoryCalendar {
	return &memoryCalendar{
		rules:     make(map[int][]*domain.WeeklyRule),
		overrides: make(map[string][]*domain.DateOverride),
	}
}

func (c *memoryCalendar) ListWeeklyRulesForDay(_ context.Context, _ int64, dayOfWeek int) ([]*domain.WeeklyRule, error) {
	return c.rules[dayOfWeek], nil
}

func (c *memoryCalendar) ListOverridesForDate(_ context.Context, _ int64, date string) ([]*domain.DateOverride, error) {
	return c.overrides[date], nil
}

func (c *memoryCalendar) CreateOverride(_ context.Context, o *domain.DateOverride) (*domain.DateOverride, error) {
	key := o.Date.Format(domain.DateFormat)
	o.ID = int64(len(c.overrides[key]) + 1)
	c.overrides[key] = append(c.overrides[key], o)
	return o, nil
}

// memorySessionStore keeps created sessions and answers overlap checks
type memorySessionStore struct {
	sessions []*domain.Session
}

func (s *memorySessionStore) Create(_ context.Context, sess *domain.Session) (*domain.Session, error) {
	sess.ID = int64(len(s.sessions) + 1)
	s.sessions = append(s.sessions, sess)
	return sess, nil
}

func (s *memorySessionStore) ListActiveOverlapping(_ context.Context, mentorID int64, start, end time.Time) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, sess := range s.sessions {
		if sess.MentorID == mentorID && sess.ScheduledStart.Before(end) && sess.ScheduledEnd.After(start) {
			out = append(out, sess)
		}
	}
	return out, nil
}

// A second identical booking must fail once the first one consumed the
// weekly slot: the consuming override flows from the booking write back
// into the resolver read.
func TestExecuteSequentialDoubleBooking(t *testing.T) {
	calendar := newMemoryCalendar()
	calendar.rules[domain.DayWednesday] = []*domain.WeeklyRule{{
		ID:        1,
		MentorID:  1,
		DayOfWeek: domain.DayWednesday,
		StartTime: "10:00",
		EndTime:   "11:00",
		Timezone:  "UTC",
		IsActive:  true,
	}}

	mentors := &stubMentorRepo{mentor: activeMentor()}
	resolver := resolveAvailability.NewUseCase(mentors, calendar, nopLogger{})
	store := &memorySessionStore{}

	uc := NewUseCase(mentors, store, calendar, resolver, passthroughTxManager{}, Config{}, nopLogger{})
	uc.timeProvider = &fakeClock{now: bookingDate.Add(-24 * time.Hour)}

	// The Wednesday of the booking week
	wednesday := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)
	req := &Request{
		MentorID:        1,
		MenteeID:        20,
		SessionType:     domain.SessionTypeVideo,
		Date:            wednesday,
		StartTime:       "10:00",
		DurationMinutes: 60,
	}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)

	// The consuming override removed the weekly window from resolution
	slots, err := resolver.ResolveForDate(context.Background(), 1, wednesday)
	require.NoError(t, err)
	assert.Empty(t, slots)

	second := *req
	second.MenteeID = 21
	_, err = uc.Execute(context.Background(), &second)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	require.Len(t, store.sessions, 1)
}
