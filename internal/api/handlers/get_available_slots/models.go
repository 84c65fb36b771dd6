package get_available_slots

import (
	"time"

	"github.com/talentbridge/MentorBookingService/internal/domain"
	resolveAvailability "github.com/talentbridge/MentorBookingService/internal/usecase/resolve_availability"
)

// SlotResponse HTTP model of one bookable slot
type SlotResponse struct {
	Date      string `json:"date"`      // "2026-01-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
	Timezone  string `json:"timezone"`
	Source    string `json:"source"` // "weekly" or "specific"
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	MentorID  int64          `json:"mentorId"`
	StartDate string         `json:"startDate"`
	EndDate   string         `json:"endDate"`
	Slots     []SlotResponse `json:"slots"`
}

// ToUseCaseRequest parses the query parameters into the use case request.
// An omitted start date means today; an omitted end date means
// DefaultResolveRangeDays after the start.
func ToUseCaseRequest(mentorID int64, startDateStr, endDateStr string) (*resolveAvailability.Request, error) {
	startDate := today()
	if startDateStr != "" {
		var err error
		startDate, err = time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
	}

	endDate := startDate.AddDate(0, 0, domain.DefaultResolveRangeDays)
	if endDateStr != "" {
		var err error
		endDate, err = time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
	}

	return &resolveAvailability.Request{
		MentorID:  mentorID,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// FromUseCaseResponse converts the use case response into the HTTP model
func FromUseCaseResponse(resp *resolveAvailability.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		MentorID:  resp.MentorID,
		StartDate: resp.StartDate.Format(domain.DateFormat),
		EndDate:   resp.EndDate.Format(domain.DateFormat),
		Slots:     make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			Date:      slot.Date.Format(domain.DateFormat),
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Timezone:  slot.Timezone,
			Source:    string(slot.Source),
		})
	}
	return out
}
