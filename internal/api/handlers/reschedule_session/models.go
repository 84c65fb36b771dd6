package reschedule_session

import (
	"time"

	"github.com/talentbridge/MentorBookingService/internal/domain"
	"github.com/talentbridge/MentorBookingService/internal/service/sessions/models"
	"github.com/talentbridge/MentorBookingService/pkg/types"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	Date            string `json:"date"`      // "2026-01-15"
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes,omitempty"`
}

// ToServiceRequest converts the HTTP request into the service model
func (r *RescheduleRequest) ToServiceRequest(userID int64) (*models.RescheduleSessionRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &models.RescheduleSessionRequest{
		UserID:          userID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
	}, nil
}
