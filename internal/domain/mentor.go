package domain

import "time"

// MentorProfile is the slice of the mentor record this service reads and
// writes: identity, the timezone availability is declared in, and the
// completed-session counter.
type MentorProfile struct {
	ID                    int64
	UserID                int64
	DisplayName           string
	Timezone              string // IANA name, e.g. "Europe/Berlin"
	AvailableForMentoring bool
	TotalSessions         int
	Active                bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Location resolves the mentor's timezone, falling back to UTC when the
// stored name does not parse.
func (m *MentorProfile) Location() *time.Location {
	loc, err := time.LoadLocation(m.Timezone)
	if err != nil || loc == nil {
		return time.UTC
	}
	return loc
}
