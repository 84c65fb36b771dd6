package domain

import (
	"errors"
	"fmt"
)

// SessionAction is a lifecycle action applied to a session
type SessionAction string

const (
	ActionConfirm    SessionAction = "confirm"
	ActionReject     SessionAction = "reject"
	ActionStart      SessionAction = "start"
	ActionEnd        SessionAction = "end"
	ActionCancel     SessionAction = "cancel"
	ActionReschedule SessionAction = "reschedule"
	ActionMarkNoShow SessionAction = "mark_no_show"
)

// ActorRole identifies which side of the session performs an action
type ActorRole string

const (
	RoleMentor ActorRole = "mentor"
	RoleMentee ActorRole = "mentee"
)

// ErrInvalidTransition is the sentinel all illegal transitions unwrap to
var ErrInvalidTransition = errors.New("domain: invalid session transition")

// InvalidTransitionError carries the attempted action and the status the
// session was in, so callers can surface both to the user.
type InvalidTransitionError struct {
	Action SessionAction
	Status SessionStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s session in status %q", e.Action, e.Status)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// transitions is the closed table of legal lifecycle moves.
// Bookings are created as scheduled (or requested when the mentor requires
// explicit acceptance); scheduled therefore appears wherever requested does.
var transitions = map[SessionAction]map[SessionStatus]SessionStatus{
	ActionConfirm: {
		StatusRequested: StatusConfirmed,
		StatusScheduled: StatusConfirmed,
	},
	ActionReject: {
		StatusRequested: StatusRejected,
		StatusScheduled: StatusRejected,
	},
	ActionStart: {
		StatusScheduled: StatusInProgress,
		StatusConfirmed: StatusInProgress,
	},
	ActionEnd: {
		StatusInProgress: StatusCompleted,
	},
	ActionCancel: {
		StatusRequested: StatusCancelled,
		StatusScheduled: StatusCancelled,
		StatusConfirmed: StatusCancelled,
	},
	ActionReschedule: {
		StatusRequested: StatusScheduled,
		StatusScheduled: StatusScheduled,
	},
	ActionMarkNoShow: {
		StatusScheduled: StatusNoShow,
		StatusConfirmed: StatusNoShow,
	},
}

// NextStatus returns the status a session moves to when action is applied
// in the current status. Illegal moves return *InvalidTransitionError;
// time and ownership rules are enforced by the sessions service, not here.
func NextStatus(current SessionStatus, action SessionAction) (SessionStatus, error) {
	byStatus, ok := transitions[action]
	if !ok {
		return "", &InvalidTransitionError{Action: action, Status: current}
	}
	next, ok := byStatus[current]
	if !ok {
		return "", &InvalidTransitionError{Action: action, Status: current}
	}
	return next, nil
}
