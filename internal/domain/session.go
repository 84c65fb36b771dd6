package domain

import "time"

// SessionStatus represents the lifecycle status of a mentorship session
type SessionStatus string

const (
	StatusRequested  SessionStatus = "requested"
	StatusScheduled  SessionStatus = "scheduled"
	StatusConfirmed  SessionStatus = "confirmed"
	StatusRejected   SessionStatus = "rejected"
	StatusInProgress SessionStatus = "in_progress"
	StatusCompleted  SessionStatus = "completed"
	StatusCancelled  SessionStatus = "cancelled"
	StatusNoShow     SessionStatus = "no_show"
)

// ActiveStatuses are the statuses that occupy the mentor's calendar.
// Used when counting overlapping sessions during booking.
var ActiveStatuses = []SessionStatus{
	StatusRequested,
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
}

// TerminalStatuses never transition further
var TerminalStatuses = []SessionStatus{
	StatusRejected,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// ValidStatus reports whether s is a member of the closed status enum
func ValidStatus(s SessionStatus) bool {
	switch s {
	case StatusRequested, StatusScheduled, StatusConfirmed, StatusRejected,
		StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// SessionType represents how the session is held
type SessionType string

const (
	SessionTypeVideo    SessionType = "video"
	SessionTypeChat     SessionType = "chat"
	SessionTypeEmail    SessionType = "email"
	SessionTypeInPerson SessionType = "in_person"
)

// ValidSessionType reports whether t is a member of the closed type enum
func ValidSessionType(t SessionType) bool {
	switch t {
	case SessionTypeVideo, SessionTypeChat, SessionTypeEmail, SessionTypeInPerson:
		return true
	}
	return false
}

// Session is a scheduled mentor-mentee meeting record
type Session struct {
	ID       int64
	MentorID int64
	MenteeID int64

	SessionType    SessionType
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	ActualStart    *time.Time
	ActualEnd      *time.Time

	MeetingLink string
	MeetingID   string
	Location    string

	Agenda      string
	Notes       string
	MentorNotes string
	MenteeNotes string

	Status             SessionStatus
	CancellationReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the session still occupies the mentor's calendar
func (s *Session) IsActive() bool {
	for _, status := range ActiveStatuses {
		if s.Status == status {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the session reached a final status
func (s *Session) IsTerminal() bool {
	for _, status := range TerminalStatuses {
		if s.Status == status {
			return true
		}
	}
	return false
}

// HasStarted reports whether the scheduled start has passed
func (s *Session) HasStarted(now time.Time) bool {
	return !s.ScheduledStart.After(now)
}

// MentorSessionsFilter filters a mentor's session list
type MentorSessionsFilter struct {
	MentorID    int64
	Status      *SessionStatus
	SessionType *SessionType
}

// MenteeSessionsFilter filters a mentee's session list.
// Scope splits the list around Now; empty scope returns everything.
type MenteeSessionsFilter struct {
	MenteeID int64
	Status   *SessionStatus
	Scope    SessionScope
	Now      time.Time
}

// SessionScope selects upcoming or past sessions
type SessionScope string

const (
	ScopeAll      SessionScope = ""
	ScopeUpcoming SessionScope = "upcoming"
	ScopePast     SessionScope = "past"
)

// ValidScope reports whether s is a recognised scope value
func ValidScope(s SessionScope) bool {
	return s == ScopeAll || s == ScopeUpcoming || s == ScopePast
}

// SessionStatistics aggregates a mentee's booking history
type SessionStatistics struct {
	TotalSessions     int
	CompletedSessions int
	UpcomingSessions  int
	CancelledSessions int
	TotalHours        float64
	FavouriteTypes    []SessionType
}
