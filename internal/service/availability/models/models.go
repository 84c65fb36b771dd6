package models

import (
	"time"

	"github.com/talentbridge/MentorBookingService/internal/domain"
	"github.com/talentbridge/MentorBookingService/pkg/types"
)

// Request models

// CreateWeeklyRuleRequest adds a recurring availability window
type CreateWeeklyRuleRequest struct {
	MentorID  int64            `json:"mentorId"`
	UserID    int64            `json:"userId"`
	DayOfWeek int              `json:"dayOfWeek"` // 0=Monday .. 6=Sunday
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
	Timezone  string           `json:"timezone,omitempty"`
}

// CreateOverrideRequest adds a date-specific availability fact
type CreateOverrideRequest struct {
	MentorID    int64            `json:"mentorId"`
	UserID      int64            `json:"userId"`
	Date        time.Time        `json:"-"`
	StartTime   types.TimeString `json:"startTime,omitempty"`
	EndTime     types.TimeString `json:"endTime,omitempty"`
	Timezone    string           `json:"timezone,omitempty"`
	IsAvailable bool             `json:"isAvailable"`
	Reason      string           `json:"reason,omitempty"`
}

// GetAvailabilityRequest reads a mentor's declared calendar
type GetAvailabilityRequest struct {
	MentorID  int64
	StartDate time.Time
	EndDate   time.Time
}

// Response models

// WeeklyRuleResponse carries one recurring availability window
type WeeklyRuleResponse struct {
	ID        int64  `json:"id"`
	MentorID  int64  `json:"mentorId"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Timezone  string `json:"timezone"`
	IsActive  bool   `json:"isActive"`
}

// OverrideResponse carries one date-specific availability fact
type OverrideResponse struct {
	ID          int64  `json:"id"`
	MentorID    int64  `json:"mentorId"`
	Date        string `json:"date"` // "2026-01-15"
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Timezone    string `json:"timezone"`
	IsAvailable bool   `json:"isAvailable"`
	Reason      string `json:"reason,omitempty"`
}

// AvailabilityResponse is the mentor's declared calendar: the recurring
// rules plus the overrides in the requested window.
type AvailabilityResponse struct {
	MentorID    int64                `json:"mentorId"`
	WeeklyRules []WeeklyRuleResponse `json:"weeklyRules"`
	Overrides   []OverrideResponse   `json:"overrides"`
}

// Conversion helpers

// FromDomainWeeklyRule converts a domain rule into the DTO
func FromDomainWeeklyRule(rule *domain.WeeklyRule) *WeeklyRuleResponse {
	if rule == nil {
		return nil
	}
	return &WeeklyRuleResponse{
		ID:        rule.ID,
		MentorID:  rule.MentorID,
		DayOfWeek: rule.DayOfWeek,
		StartTime: rule.StartTime.String(),
		EndTime:   rule.EndTime.String(),
		Timezone:  rule.Timezone,
		IsActive:  rule.IsActive,
	}
}

// FromDomainOverride converts a domain override into the DTO
func FromDomainOverride(o *domain.DateOverride) *OverrideResponse {
	if o == nil {
		return nil
	}
	return &OverrideResponse{
		ID:          o.ID,
		MentorID:    o.MentorID,
		Date:        o.Date.Format(domain.DateFormat),
		StartTime:   o.StartTime.String(),
		EndTime:     o.EndTime.String(),
		Timezone:    o.Timezone,
		IsAvailable: o.IsAvailable,
		Reason:      o.Reason,
	}
}

// FromDomainCalendar assembles the full calendar DTO
func FromDomainCalendar(mentorID int64, rules []*domain.WeeklyRule, overrides []*domain.DateOverride) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		MentorID:    mentorID,
		WeeklyRules: make([]WeeklyRuleResponse, 0, len(rules)),
		Overrides:   make([]OverrideResponse, 0, len(overrides)),
	}
	for _, rule := range rules {
		if dto := FromDomainWeeklyRule(rule); dto != nil {
			resp.WeeklyRules = append(resp.WeeklyRules, *dto)
		}
	}
	for _, o := range overrides {
		if dto := FromDomainOverride(o); dto != nil {
			resp.Overrides = append(resp.Overrides, *dto)
		}
	}
	return resp
}
