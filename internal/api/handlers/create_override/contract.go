package create_override

import (
	"context"

	"github.com/talentbridge/MentorBookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	CreateOverride(ctx context.Context, req *models.CreateOverrideRequest) (*models.OverrideResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
