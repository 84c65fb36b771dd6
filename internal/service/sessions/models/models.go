package models

import (
	"errors"
	"time"

	"github.com/talentbridge/MentorBookingService/internal/domain"
	"github.com/talentbridge/MentorBookingService/pkg/types"
)

var (
	// ErrInvalidStatus returned when a status string is not a member of
	// the session status enum
	ErrInvalidStatus = errors.New("invalid session status")

	// ErrInvalidSessionType returned when a type string is not a member of
	// the session type enum
	ErrInvalidSessionType = errors.New("invalid session type")

	// ErrInvalidScope returned when a scope string is not all/upcoming/past
	ErrInvalidScope = errors.New("invalid session scope")
)

// Request models

// GetUserSessionsRequest lists a mentee's sessions
type GetUserSessionsRequest struct {
	MenteeID int64   `json:"menteeId"`
	UserID   int64   `json:"userId"`
	Status   *string `json:"status,omitempty"`
	Scope    string  `json:"scope,omitempty"` // "", "upcoming" or "past"
}

// GetMentorSessionsRequest lists a mentor's sessions
type GetMentorSessionsRequest struct {
	MentorID    int64   `json:"mentorId"`
	UserID      int64   `json:"userId"`
	Status      *string `json:"status,omitempty"`
	SessionType *string `json:"sessionType,omitempty"`
}

// ConfirmSessionRequest accepts a requested session, optionally attaching
// the meeting link handed to both participants.
type ConfirmSessionRequest struct {
	UserID      int64  `json:"userId"`
	MeetingLink string `json:"meetingLink,omitempty"`
}

// RejectSessionRequest rejects a requested session
type RejectSessionRequest struct {
	UserID int64  `json:"userId"`
	Reason string `json:"reason,omitempty"`
}

// EndSessionRequest completes an in-progress session; notes land on the
// mentor's side of the record.
type EndSessionRequest struct {
	UserID int64  `json:"userId"`
	Notes  string `json:"notes,omitempty"`
}

// CancelSessionRequest cancels a future session
type CancelSessionRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason,omitempty"`
}

// RescheduleSessionRequest moves a future session to a new interval.
// Times are wall-clock values in the mentor's timezone.
type RescheduleSessionRequest struct {
	UserID          int64            `json:"userId"`
	Date            time.Time        `json:"-"`
	StartTime       types.TimeString `json:"startTime"`
	DurationMinutes int              `json:"durationMinutes,omitempty"`
}

// Response models

// SessionResponse carries one session record
type SessionResponse struct {
	ID       int64 `json:"id"`
	MentorID int64 `json:"mentorId"`
	MenteeID int64 `json:"menteeId"`

	SessionType    string     `json:"sessionType"`
	ScheduledStart time.Time  `json:"scheduledStart"`
	ScheduledEnd   time.Time  `json:"scheduledEnd"`
	ActualStart    *time.Time `json:"actualStart,omitempty"`
	ActualEnd      *time.Time `json:"actualEnd,omitempty"`

	MeetingLink string `json:"meetingLink,omitempty"`
	MeetingID   string `json:"meetingId,omitempty"`
	Location    string `json:"location,omitempty"`

	Agenda      string `json:"agenda,omitempty"`
	Notes       string `json:"notes,omitempty"`
	MentorNotes string `json:"mentorNotes,omitempty"`
	MenteeNotes string `json:"menteeNotes,omitempty"`

	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionListResponse carries a list of sessions
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// StatisticsResponse aggregates a mentee's booking history
type StatisticsResponse struct {
	TotalSessions     int      `json:"totalSessions"`
	CompletedSessions int      `json:"completedSessions"`
	UpcomingSessions  int      `json:"upcomingSessions"`
	CancelledSessions int      `json:"cancelledSessions"`
	TotalHours        float64  `json:"totalHours"`
	FavouriteTypes    []string `json:"favouriteTypes"`
}

// Conversion helpers

// FromDomainSession converts a domain session into the DTO
func FromDomainSession(s *domain.Session) *SessionResponse {
	if s == nil {
		return nil
	}

	return &SessionResponse{
		ID:                 s.ID,
		MentorID:           s.MentorID,
		MenteeID:           s.MenteeID,
		SessionType:        string(s.SessionType),
		ScheduledStart:     s.ScheduledStart,
		ScheduledEnd:       s.ScheduledEnd,
		ActualStart:        s.ActualStart,
		ActualEnd:          s.ActualEnd,
		MeetingLink:        s.MeetingLink,
		MeetingID:          s.MeetingID,
		Location:           s.Location,
		Agenda:             s.Agenda,
		Notes:              s.Notes,
		MentorNotes:        s.MentorNotes,
		MenteeNotes:        s.MenteeNotes,
		Status:             string(s.Status),
		CancellationReason: s.CancellationReason,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// FromDomainSessionList converts a list of domain sessions into the DTO
func FromDomainSessionList(sessions []*domain.Session) *SessionListResponse {
	resp := &SessionListResponse{
		Sessions: make([]SessionResponse, 0, len(sessions)),
	}
	for _, s := range sessions {
		if dto := FromDomainSession(s); dto != nil {
			resp.Sessions = append(resp.Sessions, *dto)
		}
	}
	return resp
}

// FromDomainStatistics converts the aggregate into the DTO
func FromDomainStatistics(stats *domain.SessionStatistics) *StatisticsResponse {
	if stats == nil {
		return nil
	}

	resp := &StatisticsResponse{
		TotalSessions:     stats.TotalSessions,
		CompletedSessions: stats.CompletedSessions,
		UpcomingSessions:  stats.UpcomingSessions,
		CancelledSessions: stats.CancelledSessions,
		TotalHours:        stats.TotalHours,
		FavouriteTypes:    make([]string, 0, len(stats.FavouriteTypes)),
	}
	for _, t := range stats.FavouriteTypes {
		resp.FavouriteTypes = append(resp.FavouriteTypes, string(t))
	}
	return resp
}

// ToDomainStatus converts a status string with validation
func ToDomainStatus(status string) (domain.SessionStatus, error) {
	s := domain.SessionStatus(status)
	if !domain.ValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainSessionType converts a type string with validation
func ToDomainSessionType(sessionType string) (domain.SessionType, error) {
	t := domain.SessionType(sessionType)
	if !domain.ValidSessionType(t) {
		return "", ErrInvalidSessionType
	}
	return t, nil
}

// ToDomainScope converts a scope string with validation
func ToDomainScope(scope string) (domain.SessionScope, error) {
	s := domain.SessionScope(scope)
	if !domain.ValidScope(s) {
		return "", ErrInvalidScope
	}
	return s, nil
}
