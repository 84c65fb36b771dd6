package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus(t *testing.T) {
	cases := []struct {
		name    string
		current SessionStatus
		action  SessionAction
		want    SessionStatus
	}{
		{"confirm requested", StatusRequested, ActionConfirm, StatusConfirmed},
		{"confirm scheduled", StatusScheduled, ActionConfirm, StatusConfirmed},
		{"reject scheduled", StatusScheduled, ActionReject, StatusRejected},
		{"start scheduled", StatusScheduled, ActionStart, StatusInProgress},
		{"start confirmed", StatusConfirmed, ActionStart, StatusInProgress},
		{"end in progress", StatusInProgress, ActionEnd, StatusCompleted},
		{"cancel confirmed", StatusConfirmed, ActionCancel, StatusCancelled},
		{"reschedule scheduled", StatusScheduled, ActionReschedule, StatusScheduled},
		{"no-show confirmed", StatusConfirmed, ActionMarkNoShow, StatusNoShow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NextStatus(tc.current, tc.action)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNextStatusIllegalMoves(t *testing.T) {
	cases := []struct {
		name    string
		current SessionStatus
		action  SessionAction
	}{
		{"start completed", StatusCompleted, ActionStart},
		{"end scheduled", StatusScheduled, ActionEnd},
		{"cancel in progress", StatusInProgress, ActionCancel},
		{"confirm cancelled", StatusCancelled, ActionConfirm},
		{"reschedule confirmed", StatusConfirmed, ActionReschedule},
		{"no-show in progress", StatusInProgress, ActionMarkNoShow},
		{"unknown action", StatusScheduled, SessionAction("teleport")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NextStatus(tc.current, tc.action)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTransition)

			var ite *InvalidTransitionError
			require.True(t, errors.As(err, &ite))
			assert.Equal(t, tc.current, ite.Status)
			assert.Equal(t, tc.action, ite.Action)
		})
	}
}

func TestTerminalStatusesAdmitNoAction(t *testing.T) {
	actions := []SessionAction{
		ActionConfirm, ActionReject, ActionStart, ActionEnd,
		ActionCancel, ActionReschedule, ActionMarkNoShow,
	}

	for _, status := range TerminalStatuses {
		for _, action := range actions {
			_, err := NextStatus(status, action)
			assert.ErrorIs(t, err, ErrInvalidTransition,
				"status %q must not admit %q", status, action)
		}
	}
}
