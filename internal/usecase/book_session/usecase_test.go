package book_session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/MentorBookingService/internal/domain"
	mentorRepo "github.com/talentbridge/MentorBookingService/internal/infra/storage/mentor"
	sessionRepo "github.com/talentbridge/MentorBookingService/internal/infra/storage/session"
	"github.com/talentbridge/MentorBookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

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

type stubSessionRepo struct {
	overlapping []*domain.Session
	createErr   error
	created     *domain.Session
}

func (s *stubSessionRepo) Create(_ context.Context, sess *domain.Session) (*domain.Session, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	sess.ID = 101
	sess.CreatedAt = time.Now()
	sess.UpdatedAt = sess.CreatedAt
	s.created = sess
	return sess, nil
}

func (s *stubSessionRepo) ListActiveOverlapping(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Session, error) {
	return s.overlapping, nil
}

type stubAvailabilityWriter struct {
	overrides []*domain.DateOverride
}

func (s *stubAvailabilityWriter) CreateOverride(_ context.Context, o *domain.DateOverride) (*domain.DateOverride, error) {
	s.overrides = append(s.overrides, o)
	return o, nil
}

type stubSlotResolver struct {
	slots []domain.Slot
}

func (s *stubSlotResolver) ResolveForDate(_ context.Context, _ int64, _ time.Time) ([]domain.Slot, error) {
	return s.slots, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// 2026-03-09 is a Monday
var bookingDate = time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

func activeMentor() *domain.MentorProfile {
	return &domain.MentorProfile{
		ID:                    1,
		UserID:                10,
		Timezone:              "UTC",
		AvailableForMentoring: true,
		Active:                true,
	}
}

func weeklySlot(start, end types.TimeString) domain.Slot {
	return domain.Slot{
		Date:      bookingDate,
		StartTime: start,
		EndTime:   end,
		Timezone:  "UTC",
		Source:    domain.SlotSourceWeekly,
	}
}

type fixture struct {
	uc       *UseCase
	sessions *stubSessionRepo
	writer   *stubAvailabilityWriter
}

func newFixture(cfg Config, slots []domain.Slot) *fixture {
	sessions := &stubSessionRepo{}
	writer := &stubAvailabilityWriter{}
	uc := NewUseCase(
		&stubMentorRepo{mentor: activeMentor()},
		sessions,
		writer,
		&stubSlotResolver{slots: slots},
		passthroughTxManager{},
		cfg,
		nopLogger{},
	)
	uc.timeProvider = &fakeClock{now: bookingDate.Add(-24 * time.Hour)}
	return &fixture{uc: uc, sessions: sessions, writer: writer}
}

func validRequest() *Request {
	return &Request{
		MentorID:        1,
		MenteeID:        20,
		SessionType:     domain.SessionTypeVideo,
		Date:            bookingDate,
		StartTime:       "10:00",
		DurationMinutes: 60,
	}
}

func TestExecuteBooksInsideWeeklySlot(t *testing.T) {
	f := newFixture(Config{}, []domain.Slot{weeklySlot("09:00", "12:00")})

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, 10, resp.ScheduledStart.Hour())
	assert.Equal(t, 11, resp.ScheduledEnd.Hour())

	// Whole-slot consumption: one block override covering the full slot
	require.Len(t, f.writer.overrides, 1)
	block := f.writer.overrides[0]
	assert.False(t, block.IsAvailable)
	assert.Equal(t, types.TimeString("09:00"), block.StartTime)
	assert.Equal(t, types.TimeString("12:00"), block.EndTime)
	assert.Equal(t, bookingDate, block.Date)
}

func TestExecuteSplitOnBookingKeepsRemainders(t *testing.T) {
	f := newFixture(Config{SplitOnBooking: true}, []domain.Slot{weeklySlot("09:00", "12:00")})

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Leading remainder, trailing remainder, booked block
	require.Len(t, f.writer.overrides, 3)

	lead := f.writer.overrides[0]
	assert.True(t, lead.IsAvailable)
	assert.Equal(t, types.TimeString("09:00"), lead.StartTime)
	assert.Equal(t, types.TimeString("10:00"), lead.EndTime)

	tail := f.writer.overrides[1]
	assert.True(t, tail.IsAvailable)
	assert.Equal(t, types.TimeString("11:00"), tail.StartTime)
	assert.Equal(t, types.TimeString("12:00"), tail.EndTime)

	block := f.writer.overrides[2]
	assert.False(t, block.IsAvailable)
	assert.Equal(t, types.TimeString("10:00"), block.StartTime)
	assert.Equal(t, types.TimeString("11:00"), block.EndTime)
}

func TestExecuteSplitOnBookingExactSlotWritesOnlyBlock(t *testing.T) {
	f := newFixture(Config{SplitOnBooking: true}, []domain.Slot{weeklySlot("10:00", "11:00")})

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Booking the whole slot leaves no remainders
	require.Len(t, f.writer.overrides, 1)
	assert.False(t, f.writer.overrides[0].IsAvailable)
}

func TestExecuteSpecificSlotNotConsumed(t *testing.T) {
	slot := weeklySlot("09:00", "12:00")
	slot.Source = domain.SlotSourceSpecific
	f := newFixture(Config{}, []domain.Slot{slot})

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Empty(t, f.writer.overrides)
}

func TestExecuteNoContainingSlot(t *testing.T) {
	f := newFixture(Config{}, []domain.Slot{weeklySlot("09:00", "10:30")})

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, f.sessions.created)
}

func TestExecuteOverlapConflict(t *testing.T) {
	f := newFixture(Config{}, []domain.Slot{weeklySlot("09:00", "12:00")})
	f.sessions.overlapping = []*domain.Session{{ID: 7, Status: domain.StatusConfirmed}}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTimeConflict)
}

func TestExecuteDuplicateStartMapsToConflict(t *testing.T) {
	f := newFixture(Config{}, []domain.Slot{weeklySlot("09:00", "12:00")})
	f.sessions.createErr = sessionRepo.ErrDuplicateSession

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTimeConflict)
}

func TestExecuteRejectsPastStart(t *testing.T) {
	f := newFixture(Config{}, []domain.Slot{weeklySlot("09:00", "12:00")})
	f.uc.timeProvider = &fakeClock{now: bookingDate.Add(11 * time.Hour)}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecuteMentorUnavailable(t *testing.T) {
	mentor := activeMentor()
	mentor.AvailableForMentoring = false

	uc := NewUseCase(
		&stubMentorRepo{mentor: mentor},
		&stubSessionRepo{},
		&stubAvailabilityWriter{},
		&stubSlotResolver{},
		passthroughTxManager{},
		Config{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrMentorUnavailable)
}

func TestExecuteMentorNotFound(t *testing.T) {
	uc := NewUseCase(
		&stubMentorRepo{err: mentorRepo.ErrMentorNotFound},
		&stubSessionRepo{},
		&stubAvailabilityWriter{},
		&stubSlotResolver{},
		passthroughTxManager{},
		Config{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrMentorNotFound)
}

func TestExecuteDefaultDuration(t *testing.T) {
	f := newFixture(Config{}, []domain.Slot{weeklySlot("09:00", "12:00")})

	req := validRequest()
	req.DurationMinutes = 0

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(domain.DefaultSessionDurationMinutes)*time.Minute,
		resp.ScheduledEnd.Sub(resp.ScheduledStart))
}

func TestValidateRequest(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero mentor", func(r *Request) { r.MentorID = 0 }},
		{"zero mentee", func(r *Request) { r.MenteeID = 0 }},
		{"bad type", func(r *Request) { r.SessionType = "carrier_pigeon" }},
		{"missing date", func(r *Request) { r.Date = time.Time{} }},
		{"bad time", func(r *Request) { r.StartTime = "25:00" }},
		{"too short", func(r *Request) { r.DurationMinutes = domain.MinSessionDurationMinutes - 1 }},
		{"too long", func(r *Request) { r.DurationMinutes = domain.MaxSessionDurationMinutes + 1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)
			assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
		})
	}
}
