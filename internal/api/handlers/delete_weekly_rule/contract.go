package delete_weekly_rule

import "context"

type AvailabilityService interface {
	DeleteWeeklyRule(ctx context.Context, ruleID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
