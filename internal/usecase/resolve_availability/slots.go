package resolve_availability

import (
	"context"
	"time"

	"github.com/talentbridge/MentorBookingService/internal/domain"
)

// resolveDate computes the effective bookable slots for a single date by
// applying override precedence over weekly rules:
//
//  1. Specific is_available=true overrides win outright: they become the
//     slots for the date and weekly rules are not evaluated at all.
//  2. A block covering the whole date removes the date.
//  3. Otherwise each active weekly rule for the weekday is emitted unless
//     some block interval fully contains the rule interval. A partial
//     overlap does not suppress; full containment is the only suppression
//     condition.
func (uc *UseCase) resolveDate(ctx context.Context, mentorID int64, date time.Time) ([]domain.Slot, error) {
	overrides, err := uc.availabilityRepo.ListOverridesForDate(ctx, mentorID, date.Format(domain.DateFormat))
	if err != nil {
		return nil, err
	}

	var specific []*domain.DateOverride
	var blocks []*domain.DateOverride
	for _, o := range overrides {
		if o.IsAvailable {
			specific = append(specific, o)
		} else {
			blocks = append(blocks, o)
		}
	}

	// Specific availability replaces weekly rules for the date entirely
	if len(specific) > 0 {
		slots := make([]domain.Slot, 0, len(specific))
		for _, o := range specific {
			slots = append(slots, domain.Slot{
				Date:      date,
				StartTime: o.StartTime,
				EndTime:   o.EndTime,
				Timezone:  o.Timezone,
				Source:    domain.SlotSourceSpecific,
			})
		}
		return slots, nil
	}

	for _, b := range blocks {
		if b.CoversFullDay() {
			return nil, nil
		}
	}

	rules, err := uc.availabilityRepo.ListWeeklyRulesForDay(ctx, mentorID, domain.DayOfWeek(date))
	if err != nil {
		return nil, err
	}

	var slots []domain.Slot
	for _, rule := range rules {
		if isRuleBlocked(rule, blocks) {
			continue
		}
		slots = append(slots, domain.Slot{
			Date:      date,
			StartTime: rule.StartTime,
			EndTime:   rule.EndTime,
			Timezone:  rule.Timezone,
			Source:    domain.SlotSourceWeekly,
		})
	}

	return slots, nil
}

// isRuleBlocked reports whether some block fully contains the rule's window
func isRuleBlocked(rule *domain.WeeklyRule, blocks []*domain.DateOverride) bool {
	for _, b := range blocks {
		if b.ContainsInterval(rule.StartTime, rule.EndTime) {
			return true
		}
	}
	return false
}
