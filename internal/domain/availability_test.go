package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayOfWeek(t *testing.T) {
	// 2026-03-09 is a Monday
	monday := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, DayMonday, DayOfWeek(monday))
	assert.Equal(t, DayTuesday, DayOfWeek(monday.AddDate(0, 0, 1)))
	assert.Equal(t, DaySaturday, DayOfWeek(monday.AddDate(0, 0, 5)))
	assert.Equal(t, DaySunday, DayOfWeek(monday.AddDate(0, 0, 6)))
}

func TestDateOverrideCoversFullDay(t *testing.T) {
	full := &DateOverride{StartTime: "00:00", EndTime: "23:59"}
	assert.True(t, full.CoversFullDay())

	morning := &DateOverride{StartTime: "00:00", EndTime: "12:00"}
	assert.False(t, morning.CoversFullDay())

	late := &DateOverride{StartTime: "01:00", EndTime: "23:59"}
	assert.False(t, late.CoversFullDay())
}

func TestDateOverrideContainsInterval(t *testing.T) {
	block := &DateOverride{StartTime: "10:00", EndTime: "14:00"}

	assert.True(t, block.ContainsInterval("10:00", "14:00"))
	assert.True(t, block.ContainsInterval("11:00", "12:00"))
	assert.False(t, block.ContainsInterval("09:00", "12:00"))
	assert.False(t, block.ContainsInterval("12:00", "15:00"))
}

func TestSlotContainsInterval(t *testing.T) {
	slot := &Slot{StartTime: "09:00", EndTime: "12:00"}

	assert.True(t, slot.ContainsInterval("09:00", "10:00"))
	assert.True(t, slot.ContainsInterval("11:00", "12:00"))
	assert.False(t, slot.ContainsInterval("08:30", "09:30"))
	assert.False(t, slot.ContainsInterval("11:30", "12:30"))
}

func TestSessionHasStarted(t *testing.T) {
	now := time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC)

	past := &Session{ScheduledStart: now.Add(-time.Minute)}
	assert.True(t, past.HasStarted(now))

	exact := &Session{ScheduledStart: now}
	assert.True(t, exact.HasStarted(now))

	future := &Session{ScheduledStart: now.Add(time.Minute)}
	assert.False(t, future.HasStarted(now))
}
