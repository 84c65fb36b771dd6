package domain

// Default configuration values
const (
	DefaultSessionDurationMinutes = 60
	DefaultStartGraceMinutes      = 10
	DefaultResolveRangeDays       = 30
	DefaultTimezone               = "UTC"
)

// Business validation constants
const (
	MinSessionDurationMinutes = 15
	MaxSessionDurationMinutes = 240
	MaxResolveRangeDays       = 90
	MaxNotesLength            = 2000
	MaxReasonLength           = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
