package book_session

import (
	"time"

	"github.com/talentbridge/MentorBookingService/internal/domain"
	bookSession "github.com/talentbridge/MentorBookingService/internal/usecase/book_session"
	"github.com/talentbridge/MentorBookingService/pkg/types"
)

// BookSessionRequest HTTP request model
type BookSessionRequest struct {
	SessionType     string `json:"sessionType"`
	Date            string `json:"date"`      // "2026-01-15"
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes,omitempty"`
	Location        string `json:"location,omitempty"`
	Agenda          string `json:"agenda,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// SessionResponse HTTP response model
type SessionResponse struct {
	ID             int64  `json:"id"`
	MentorID       int64  `json:"mentorId"`
	MenteeID       int64  `json:"menteeId"`
	SessionType    string `json:"sessionType"`
	ScheduledStart string `json:"scheduledStart"` // ISO 8601
	ScheduledEnd   string `json:"scheduledEnd"`
	Location       string `json:"location,omitempty"`
	Agenda         string `json:"agenda,omitempty"`
	Notes          string `json:"notes,omitempty"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

// ToUseCaseRequest converts the HTTP request into the use case model
func (r *BookSessionRequest) ToUseCaseRequest(mentorID, menteeID int64) (*bookSession.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &bookSession.Request{
		MentorID:        mentorID,
		MenteeID:        menteeID,
		SessionType:     domain.SessionType(r.SessionType),
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		Location:        r.Location,
		Agenda:          r.Agenda,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model
func FromUseCaseResponse(resp *bookSession.Response) *SessionResponse {
	return &SessionResponse{
		ID:             resp.ID,
		MentorID:       resp.MentorID,
		MenteeID:       resp.MenteeID,
		SessionType:    resp.SessionType,
		ScheduledStart: resp.ScheduledStart.Format(time.RFC3339),
		ScheduledEnd:   resp.ScheduledEnd.Format(time.RFC3339),
		Location:       resp.Location,
		Agenda:         resp.Agenda,
		Notes:          resp.Notes,
		Status:         resp.Status,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
