package create_weekly_rule

import (
	"context"

	"github.com/talentbridge/MentorBookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	CreateWeeklyRule(ctx context.Context, req *models.CreateWeeklyRuleRequest) (*models.WeeklyRuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
