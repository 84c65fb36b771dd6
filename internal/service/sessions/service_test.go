package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/MentorBookingService/internal/domain"
	sessionRepo "github.com/talentbridge/MentorBookingService/internal/infra/storage/session"
	"github.com/talentbridge/MentorBookingService/internal/service/sessions/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type stubSessionRepo struct {
	session     *domain.Session
	getErr      error
	updateErr   error
	overlapping []*domain.Session
	updated     *domain.Session
}

func (s *stubSessionRepo) GetByID(_ context.Context, _ int64) (*domain.Session, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.session, nil
}

func (s *stubSessionRepo) Update(_ context.Context, sess *domain.Session) (*domain.Session, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	s.updated = sess
	return sess, nil
}

func (s *stubSessionRepo) ListActiveOverlapping(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Session, error) {
	return s.overlapping, nil
}

func (s *stubSessionRepo) ListByMentor(_ context.Context, _ domain.MentorSessionsFilter) ([]*domain.Session, error) {
	return []*domain.Session{s.session}, nil
}

func (s *stubSessionRepo) ListByMentee(_ context.Context, _ domain.MenteeSessionsFilter) ([]*domain.Session, error) {
	return []*domain.Session{s.session}, nil
}

func (s *stubSessionRepo) GetMenteeStatistics(_ context.Context, _ int64, _ time.Time) (*domain.SessionStatistics, error) {
	return &domain.SessionStatistics{TotalSessions: 3, CompletedSessions: 2}, nil
}

type stubMentorRepo struct {
	mentor       *domain.MentorProfile
	incremented  int
	incrementErr error
}

func (s *stubMentorRepo) GetByID(_ context.Context, _ int64) (*domain.MentorProfile, error) {
	return s.mentor, nil
}

func (s *stubMentorRepo) IncrementTotalSessions(_ context.Context, _ int64) error {
	if s.incrementErr != nil {
		return s.incrementErr
	}
	s.incremented++
	return nil
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

const (
	mentorUserID = int64(10)
	menteeUserID = int64(20)
	strangerID   = int64(99)
)

var sessionStart = time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC)

func testSession(status domain.SessionStatus) *domain.Session {
	return &domain.Session{
		ID:             5,
		MentorID:       1,
		MenteeID:       menteeUserID,
		SessionType:    domain.SessionTypeVideo,
		ScheduledStart: sessionStart,
		ScheduledEnd:   sessionStart.Add(time.Hour),
		Status:         status,
	}
}

type fixture struct {
	svc      *Service
	sessions *stubSessionRepo
	mentors  *stubMentorRepo
	clock    *fakeClock
}

func newFixture(session *domain.Session) *fixture {
	sessions := &stubSessionRepo{session: session}
	mentors := &stubMentorRepo{
		mentor: &domain.MentorProfile{ID: 1, UserID: mentorUserID, Timezone: "UTC", Active: true},
	}
	clock := &fakeClock{now: sessionStart.Add(-time.Hour)}

	svc := NewService(
		sessions,
		mentors,
		&stubSlotResolver{},
		passthroughTxManager{},
		Config{StartGraceMinutes: 10},
		nopLogger{},
	)
	svc.timeProvider = clock

	return &fixture{svc: svc, sessions: sessions, mentors: mentors, clock: clock}
}

func TestGetByIDAccess(t *testing.T) {
	f := newFixture(testSession(domain.StatusScheduled))

	resp, err := f.svc.GetByID(context.Background(), 5, menteeUserID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)

	_, err = f.svc.GetByID(context.Background(), 5, mentorUserID)
	require.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), 5, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByIDNotFound(t *testing.T) {
	f := newFixture(nil)
	f.sessions.getErr = sessionRepo.ErrSessionNotFound

	_, err := f.svc.GetByID(context.Background(), 5, menteeUserID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetUserSessionsRequiresOwnList(t *testing.T) {
	f := newFixture(testSession(domain.StatusScheduled))

	_, err := f.svc.GetUserSessions(context.Background(), &models.GetUserSessionsRequest{
		MenteeID: menteeUserID,
		UserID:   strangerID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := f.svc.GetUserSessions(context.Background(), &models.GetUserSessionsRequest{
		MenteeID: menteeUserID,
		UserID:   menteeUserID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Sessions, 1)
}

func TestGetMentorSessionsRequiresProfileOwner(t *testing.T) {
	f := newFixture(testSession(domain.StatusScheduled))

	_, err := f.svc.GetMentorSessions(context.Background(), &models.GetMentorSessionsRequest{
		MentorID: 1,
		UserID:   menteeUserID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := f.svc.GetMentorSessions(context.Background(), &models.GetMentorSessionsRequest{
		MentorID: 1,
		UserID:   mentorUserID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Sessions, 1)
}

func TestConfirmMentorOnly(t *testing.T) {
	f := newFixture(testSession(domain.StatusRequested))

	_, err := f.svc.Confirm(context.Background(), 5, &models.ConfirmSessionRequest{UserID: menteeUserID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := f.svc.Confirm(context.Background(), 5, &models.ConfirmSessionRequest{UserID: mentorUserID})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestConfirmAttachesMeetingLink(t *testing.T) {
	f := newFixture(testSession(domain.StatusRequested))

	resp, err := f.svc.Confirm(context.Background(), 5, &models.ConfirmSessionRequest{
		UserID:      mentorUserID,
		MeetingLink: "https://meet.example.com/abc",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://meet.example.com/abc", resp.MeetingLink)
}

func TestConfirmInvalidTransition(t *testing.T) {
	f := newFixture(testSession(domain.StatusCompleted))

	_, err := f.svc.Confirm(context.Background(), 5, &models.ConfirmSessionRequest{UserID: mentorUserID})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRejectRecordsReason(t *testing.T) {
	f := newFixture(testSession(domain.StatusRequested))

	resp, err := f.svc.Reject(context.Background(), 5, &models.RejectSessionRequest{
		UserID: mentorUserID,
		Reason: "schedule clash",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusRejected), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "schedule clash", *resp.CancellationReason)
}

func TestStartWithinGrace(t *testing.T) {
	f := newFixture(testSession(domain.StatusConfirmed))
	f.clock.now = sessionStart.Add(-10 * time.Minute)

	resp, err := f.svc.Start(context.Background(), 5, mentorUserID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusInProgress), resp.Status)
	require.NotNil(t, resp.ActualStart)
	assert.Equal(t, f.clock.now, *resp.ActualStart)
	assert.Len(t, resp.MeetingID, 8)
}

func TestStartTooEarly(t *testing.T) {
	f := newFixture(testSession(domain.StatusConfirmed))
	f.clock.now = sessionStart.Add(-25 * time.Minute)

	_, err := f.svc.Start(context.Background(), 5, mentorUserID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooEarlyToStart)

	var tooEarly *TooEarlyError
	require.True(t, errors.As(err, &tooEarly))
	assert.Equal(t, 25, tooEarly.MinutesRemaining)
}

func TestStartKeepsExistingMeetingID(t *testing.T) {
	session := testSession(domain.StatusConfirmed)
	session.MeetingID = "abc12345"
	f := newFixture(session)

	resp, err := f.svc.Start(context.Background(), 5, mentorUserID)
	require.NoError(t, err)
	assert.Equal(t, "abc12345", resp.MeetingID)
}

func TestEndCompletesAndCountsSession(t *testing.T) {
	f := newFixture(testSession(domain.StatusInProgress))
	f.clock.now = sessionStart.Add(55 * time.Minute)

	resp, err := f.svc.End(context.Background(), 5, &models.EndSessionRequest{
		UserID: mentorUserID,
		Notes:  "good progress",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	require.NotNil(t, resp.ActualEnd)
	assert.Equal(t, "good progress", resp.MentorNotes)
	assert.Equal(t, 1, f.mentors.incremented)
}

func TestStartAndEndMentorOnly(t *testing.T) {
	f := newFixture(testSession(domain.StatusConfirmed))

	_, err := f.svc.Start(context.Background(), 5, menteeUserID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	f = newFixture(testSession(domain.StatusInProgress))
	_, err = f.svc.End(context.Background(), 5, &models.EndSessionRequest{UserID: menteeUserID})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestEndSurvivesCounterFailure(t *testing.T) {
	f := newFixture(testSession(domain.StatusInProgress))
	f.mentors.incrementErr = errors.New("connection reset")

	resp, err := f.svc.End(context.Background(), 5, &models.EndSessionRequest{UserID: mentorUserID})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
}

func TestCancelFutureSession(t *testing.T) {
	f := newFixture(testSession(domain.StatusScheduled))

	resp, err := f.svc.Cancel(context.Background(), 5, &models.CancelSessionRequest{
		UserID:             menteeUserID,
		CancellationReason: "sick",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "sick", *resp.CancellationReason)
}

func TestCancelStartedSession(t *testing.T) {
	f := newFixture(testSession(domain.StatusConfirmed))
	f.clock.now = sessionStart.Add(time.Minute)

	_, err := f.svc.Cancel(context.Background(), 5, &models.CancelSessionRequest{UserID: menteeUserID})
	assert.ErrorIs(t, err, ErrSessionInPast)
}

func TestMarkNoShowRequiresStartedSession(t *testing.T) {
	f := newFixture(testSession(domain.StatusConfirmed))

	_, err := f.svc.MarkNoShow(context.Background(), 5, mentorUserID)
	assert.ErrorIs(t, err, ErrInvalidInput)

	f.clock.now = sessionStart.Add(5 * time.Minute)
	resp, err := f.svc.MarkNoShow(context.Background(), 5, mentorUserID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoShow), resp.Status)
}

func TestMarkNoShowMentorOnly(t *testing.T) {
	f := newFixture(testSession(domain.StatusConfirmed))
	f.clock.now = sessionStart.Add(5 * time.Minute)

	_, err := f.svc.MarkNoShow(context.Background(), 5, menteeUserID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
