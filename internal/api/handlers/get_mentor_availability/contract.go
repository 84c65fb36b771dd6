package get_mentor_availability

import (
	"context"

	"github.com/talentbridge/MentorBookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetCalendar(ctx context.Context, req *models.GetAvailabilityRequest) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
