package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// Layout used for parsing and rendering time-of-day values
const Layout = "15:04"

// ErrInvalidTimeString returned when a value cannot be parsed as HH:MM
var ErrInvalidTimeString = errors.New("types: invalid time string format")

// TimeString is a time-of-day value in "HH:MM" form.
// It maps onto the Postgres TIME column type and is the unit of all
// intra-day interval arithmetic in the service.
type TimeString string

// NewTimeString builds a TimeString from the clock portion of t
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(Layout))
}

// NewTimeStringFromString parses s as HH:MM
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(t), nil
}

// String implements fmt.Stringer
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero returns true for the empty value
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate checks that the value parses as HH:MM
func (ts TimeString) Validate() error {
	_, err := time.Parse(Layout, string(ts))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return nil
}

// Minutes returns the value as minutes since midnight
func (ts TimeString) Minutes() (int, error) {
	t, err := time.Parse(Layout, string(ts))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// IsBefore reports whether ts is strictly earlier than other
func (ts TimeString) IsBefore(other TimeString) bool {
	return string(ts) < string(other)
}

// IsAfter reports whether ts is strictly later than other
func (ts TimeString) IsAfter(other TimeString) bool {
	return string(ts) > string(other)
}

// AddMinutes returns the value shifted forward by the given number of minutes.
// The result is clamped to the same day: shifting past midnight is an error,
// intervals in this service never cross a date boundary.
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := ts.Minutes()
	if err != nil {
		return "", err
	}
	total += minutes
	if total < 0 || total > 24*60 {
		return "", fmt.Errorf("%w: %q%+d minutes crosses the day boundary", ErrInvalidTimeString, string(ts), minutes)
	}
	if total == 24*60 {
		// 24:00 is not representable; render the end-of-day sentinel
		return TimeString("23:59"), nil
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// ToTime combines the time-of-day with a calendar date in the given location
func (ts TimeString) ToTime(date time.Time, loc *time.Location) (time.Time, error) {
	total, err := ts.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), total/60, total%60, 0, 0, loc), nil
}

// Value implements driver.Valuer for writing into TIME columns
func (ts TimeString) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts) + ":00", nil
}

// Scan implements sql.Scanner for reading TIME columns.
// lib/pq hands TIME values back as strings or raw bytes ("10:00:00");
// time.Time is accepted as well for drivers that parse the column.
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case []byte:
		return ts.scanString(string(v))
	case string:
		return ts.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeString, src)
	}
}

func (ts *TimeString) scanString(s string) error {
	if len(s) >= 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
