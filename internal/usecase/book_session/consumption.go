package book_session

import (
	"context"

	"github.com/talentbridge/MentorBookingService/internal/domain"
	"github.com/talentbridge/MentorBookingService/pkg/types"
)

const consumedReason = "booked session"

// findContainingSlot returns the first slot whose interval contains
// [start, end], or nil when none does.
func findContainingSlot(slots []domain.Slot, start, end types.TimeString) *domain.Slot {
	for i := range slots {
		if slots[i].ContainsInterval(start, end) {
			return &slots[i]
		}
	}
	return nil
}

// consumeSlot records the booking against a weekly slot so the next
// resolution of the date no longer offers it.
//
// Without splitting, one block override covering the whole slot interval is
// written: the weekly rule is fully contained and drops out of resolution.
// With splitting, the block covers only the booked interval and the leftover
// edges come back as specific availability, which replaces the weekly rule
// for the date.
func (uc *UseCase) consumeSlot(ctx context.Context, mentorID int64, slot *domain.Slot, start, end types.TimeString) error {
	if !uc.cfg.SplitOnBooking {
		return uc.createOverride(ctx, mentorID, slot, slot.StartTime, slot.EndTime, false)
	}

	if slot.StartTime.IsBefore(start) {
		if err := uc.createOverride(ctx, mentorID, slot, slot.StartTime, start, true); err != nil {
			return err
		}
	}
	if end.IsBefore(slot.EndTime) {
		if err := uc.createOverride(ctx, mentorID, slot, end, slot.EndTime, true); err != nil {
			return err
		}
	}
	return uc.createOverride(ctx, mentorID, slot, start, end, false)
}

func (uc *UseCase) createOverride(ctx context.Context, mentorID int64, slot *domain.Slot, start, end types.TimeString, available bool) error {
	_, err := uc.availabilityRepo.CreateOverride(ctx, &domain.DateOverride{
		MentorID:    mentorID,
		Date:        slot.Date,
		StartTime:   start,
		EndTime:     end,
		Timezone:    slot.Timezone,
		IsAvailable: available,
		Reason:      consumedReason,
	})
	return err
}
