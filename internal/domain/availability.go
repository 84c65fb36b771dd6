package domain

import (
	"time"

	"github.com/talentbridge/MentorBookingService/pkg/types"
)

// Day-of-week numbering follows the availability tables: 0=Monday .. 6=Sunday
const (
	DayMonday = iota
	DayTuesday
	DayWednesday
	DayThursday
	DayFriday
	DaySaturday
	DaySunday
)

// DayOfWeek maps a calendar date onto the 0=Monday..6=Sunday numbering
func DayOfWeek(date time.Time) int {
	// time.Weekday has Sunday=0
	return (int(date.Weekday()) + 6) % 7
}

// WeeklyRule is a recurring availability window declared per weekday.
// Multiple rules per mentor per day are permitted; the resolver treats
// them independently.
type WeeklyRule struct {
	ID        int64
	MentorID  int64
	DayOfWeek int // 0=Monday .. 6=Sunday
	StartTime types.TimeString
	EndTime   types.TimeString
	Timezone  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DateOverride is a date-specific availability fact. IsAvailable=true adds
// bookable time on that date and fully replaces weekly rules for it;
// IsAvailable=false blocks time and takes precedence over weekly rules.
type DateOverride struct {
	ID          int64
	MentorID    int64
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Timezone    string
	IsAvailable bool
	Reason      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CoversFullDay reports whether a block spans the whole date, which removes
// the date from resolution entirely. An override written without a narrower
// time range is stored as 00:00-23:59.
func (o *DateOverride) CoversFullDay() bool {
	return !o.StartTime.IsAfter(types.TimeString("00:00")) && !o.EndTime.IsBefore(types.TimeString("23:59"))
}

// ContainsInterval reports whether the override's time range fully contains
// [start, end]. Full containment is the only suppression condition applied
// to weekly rules; a partial overlap does not suppress.
func (o *DateOverride) ContainsInterval(start, end types.TimeString) bool {
	return !o.StartTime.IsAfter(start) && !o.EndTime.IsBefore(end)
}

// SlotSource tells which kind of calendar fact produced a slot
type SlotSource string

const (
	SlotSourceWeekly   SlotSource = "weekly"
	SlotSourceSpecific SlotSource = "specific"
)

// Slot is a derived, never-persisted bookable interval produced by the
// availability resolver.
type Slot struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Timezone  string
	Source    SlotSource
}

// ContainsInterval reports whether [start, end] fits inside the slot
func (s *Slot) ContainsInterval(start, end types.TimeString) bool {
	return !start.IsBefore(s.StartTime) && !end.IsAfter(s.EndTime)
}
