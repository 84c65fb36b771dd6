package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/MentorBookingService/internal/domain"
	"github.com/talentbridge/MentorBookingService/internal/service/sessions/models"
)

// 2026-03-16 is the Monday after sessionStart
var rescheduleDate = time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC)

func rescheduleFixture(status domain.SessionStatus, slots []domain.Slot) *fixture {
	f := newFixture(testSession(status))
	f.svc.slotResolver = &stubSlotResolver{slots: slots}
	return f
}

func TestRescheduleMovesSession(t *testing.T) {
	f := rescheduleFixture(domain.StatusScheduled, []domain.Slot{{
		Date:      rescheduleDate,
		StartTime: "14:00",
		EndTime:   "17:00",
		Timezone:  "UTC",
		Source:    domain.SlotSourceWeekly,
	}})

	resp, err := f.svc.Reschedule(context.Background(), 5, &models.RescheduleSessionRequest{
		UserID:    menteeUserID,
		Date:      rescheduleDate,
		StartTime: "15:00",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, 15, resp.ScheduledStart.Hour())
	// The previous duration carries over when none is given
	assert.Equal(t, time.Hour, resp.ScheduledEnd.Sub(resp.ScheduledStart))
}

func TestRescheduleRequestedSessionBackToScheduled(t *testing.T) {
	f := rescheduleFixture(domain.StatusRequested, []domain.Slot{{
		Date:      rescheduleDate,
		StartTime: "14:00",
		EndTime:   "17:00",
		Source:    domain.SlotSourceWeekly,
	}})

	resp, err := f.svc.Reschedule(context.Background(), 5, &models.RescheduleSessionRequest{
		UserID:    menteeUserID,
		Date:      rescheduleDate,
		StartTime: "14:00",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
}

func TestRescheduleConfirmedSessionRejected(t *testing.T) {
	f := rescheduleFixture(domain.StatusConfirmed, nil)

	_, err := f.svc.Reschedule(context.Background(), 5, &models.RescheduleSessionRequest{
		UserID:    menteeUserID,
		Date:      rescheduleDate,
		StartTime: "15:00",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRescheduleTargetOutsideSlots(t *testing.T) {
	f := rescheduleFixture(domain.StatusScheduled, []domain.Slot{{
		Date:      rescheduleDate,
		StartTime: "14:00",
		EndTime:   "15:30",
		Source:    domain.SlotSourceWeekly,
	}})

	_, err := f.svc.Reschedule(context.Background(), 5, &models.RescheduleSessionRequest{
		UserID:    menteeUserID,
		Date:      rescheduleDate,
		StartTime: "15:00",
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestRescheduleConflictIgnoresOwnSession(t *testing.T) {
	f := rescheduleFixture(domain.StatusScheduled, []domain.Slot{{
		Date:      rescheduleDate,
		StartTime: "14:00",
		EndTime:   "17:00",
		Source:    domain.SlotSourceWeekly,
	}})
	// Only the session being moved occupies the target interval
	f.sessions.overlapping = []*domain.Session{f.sessions.session}

	_, err := f.svc.Reschedule(context.Background(), 5, &models.RescheduleSessionRequest{
		UserID:    menteeUserID,
		Date:      rescheduleDate,
		StartTime: "15:00",
	})
	require.NoError(t, err)
}

func TestRescheduleConflictWithOtherSession(t *testing.T) {
	f := rescheduleFixture(domain.StatusScheduled, []domain.Slot{{
		Date:      rescheduleDate,
		StartTime: "14:00",
		EndTime:   "17:00",
		Source:    domain.SlotSourceWeekly,
	}})
	f.sessions.overlapping = []*domain.Session{{ID: 77, Status: domain.StatusConfirmed}}

	_, err := f.svc.Reschedule(context.Background(), 5, &models.RescheduleSessionRequest{
		UserID:    menteeUserID,
		Date:      rescheduleDate,
		StartTime: "15:00",
	})
	assert.ErrorIs(t, err, ErrTimeConflict)
}

func TestRescheduleStartedSession(t *testing.T) {
	f := rescheduleFixture(domain.StatusScheduled, nil)
	f.clock.now = sessionStart.Add(time.Minute)

	_, err := f.svc.Reschedule(context.Background(), 5, &models.RescheduleSessionRequest{
		UserID:    menteeUserID,
		Date:      rescheduleDate,
		StartTime: "15:00",
	})
	assert.ErrorIs(t, err, ErrSessionInPast)
}

func TestRescheduleMenteeOnly(t *testing.T) {
	f := rescheduleFixture(domain.StatusScheduled, nil)

	_, err := f.svc.Reschedule(context.Background(), 5, &models.RescheduleSessionRequest{
		UserID:    strangerID,
		Date:      rescheduleDate,
		StartTime: "15:00",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.Reschedule(context.Background(), 5, &models.RescheduleSessionRequest{
		UserID:    mentorUserID,
		Date:      rescheduleDate,
		StartTime: "15:00",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
