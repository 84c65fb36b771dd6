package delete_override

import "context"

type AvailabilityService interface {
	DeleteOverride(ctx context.Context, overrideID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
