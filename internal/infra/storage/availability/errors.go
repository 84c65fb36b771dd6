package availability

import "errors"

var (
	// ErrRuleNotFound returned when no weekly rule matches the id
	ErrRuleNotFound = errors.New("availability.repository: weekly rule not found")

	// ErrOverrideNotFound returned when no date override matches the id
	ErrOverrideNotFound = errors.New("availability.repository: date override not found")

	// ErrDuplicateRule returned when a rule with the same mentor, day and
	// start time already exists
	ErrDuplicateRule = errors.New("availability.repository: duplicate weekly rule")

	// ErrDuplicateOverride returned when an override with the same mentor,
	// date and start time already exists
	ErrDuplicateOverride = errors.New("availability.repository: duplicate date override")

	// ErrBuildQuery returned when building a SQL statement fails
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery returned when executing a SQL statement fails
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow returned when scanning a result row fails
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
