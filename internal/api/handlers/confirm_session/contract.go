package confirm_session

import (
	"context"

	"github.com/talentbridge/MentorBookingService/internal/service/sessions/models"
)

type SessionService interface {
	Confirm(ctx context.Context, sessionID int64, req *models.ConfirmSessionRequest) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
