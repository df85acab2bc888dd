package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestFindSlot_EmptyCalendar(t *testing.T) {
	window := Interval{Start: at(2024, 1, 1, 9, 0), End: at(2024, 1, 1, 17, 0)}

	slot, ok := FindSlot(window, 60, DefaultWorkingHours(), nil)

	require.True(t, ok)
	assert.Equal(t, at(2024, 1, 1, 9, 0), slot.Start)
	assert.Equal(t, at(2024, 1, 1, 10, 0), slot.End)
}

func TestFindSlot_SkipsBusyMorning(t *testing.T) {
	window := Interval{Start: at(2024, 1, 1, 9, 0), End: at(2024, 1, 1, 17, 0)}
	busy := []Interval{{Start: at(2024, 1, 1, 9, 0), End: at(2024, 1, 1, 10, 0)}}

	slot, ok := FindSlot(window, 60, DefaultWorkingHours(), busy)

	require.True(t, ok)
	assert.Equal(t, at(2024, 1, 1, 10, 0), slot.Start)
	assert.Equal(t, at(2024, 1, 1, 11, 0), slot.End)
}

func TestFindSlot_FullDayBusySameDayWindow(t *testing.T) {
	window := Interval{Start: at(2024, 1, 1, 9, 0), End: at(2024, 1, 1, 17, 0)}
	busy := []Interval{{Start: at(2024, 1, 1, 9, 0), End: at(2024, 1, 1, 17, 0)}}

	slot, ok := FindSlot(window, 60, DefaultWorkingHours(), busy)

	assert.False(t, ok, "no feasible slot must be an explicit not-found")
	assert.True(t, slot.IsZero(), "not-found returns the zero interval")
}

func TestFindSlot_FullDayBusyRollsToNextDay(t *testing.T) {
	window := Interval{Start: at(2024, 1, 1, 9, 0), End: at(2024, 1, 2, 17, 0)}
	busy := []Interval{{Start: at(2024, 1, 1, 9, 0), End: at(2024, 1, 1, 17, 0)}}

	slot, ok := FindSlot(window, 60, DefaultWorkingHours(), busy)

	require.True(t, ok)
	assert.Equal(t, at(2024, 1, 2, 9, 0), slot.Start)
}

func TestFindSlot_BeforeOpeningAdvancesToOpen(t *testing.T) {
	window := Interval{Start: at(2024, 1, 1, 6, 0), End: at(2024, 1, 1, 17, 0)}

	slot, ok := FindSlot(window, 30, DefaultWorkingHours(), nil)

	require.True(t, ok)
	assert.Equal(t, at(2024, 1, 1, 9, 0), slot.Start)
}

func TestFindSlot_AfterClosingAdvancesToNextDay(t *testing.T) {
	window := Interval{Start: at(2024, 1, 1, 18, 0), End: at(2024, 1, 2, 17, 0)}

	slot, ok := FindSlot(window, 30, DefaultWorkingHours(), nil)

	require.True(t, ok)
	assert.Equal(t, at(2024, 1, 2, 9, 0), slot.Start)
}

func TestFindSlot_SlotNeverStraddlesClosing(t *testing.T) {
	// Only 16:30-17:00 is free on day one; a 60-minute slot cannot end by
	// closing and must move to the next day.
	window := Interval{Start: at(2024, 1, 1, 9, 0), End: at(2024, 1, 2, 17, 0)}
	busy := []Interval{{Start: at(2024, 1, 1, 9, 0), End: at(2024, 1, 1, 16, 30)}}

	slot, ok := FindSlot(window, 60, DefaultWorkingHours(), busy)

	require.True(t, ok)
	assert.Equal(t, at(2024, 1, 2, 9, 0), slot.Start)
}

func TestFindSlot_HalfOpenTouchingIsNotOverlap(t *testing.T) {
	// Busy ends exactly where the candidate starts: no conflict.
	window := Interval{Start: at(2024, 1, 1, 9, 0), End: at(2024, 1, 1, 17, 0)}
	busy := []Interval{{Start: at(2024, 1, 1, 8, 0), End: at(2024, 1, 1, 9, 0)}}

	slot, ok := FindSlot(window, 60, DefaultWorkingHours(), busy)

	require.True(t, ok)
	assert.Equal(t, at(2024, 1, 1, 9, 0), slot.Start)
}

func TestFindSlot_StepGranularity(t *testing.T) {
	// Busy 09:00-09:15. The 09:00 candidate conflicts; the next candidate
	// is 09:30, not 09:15 — the search never tries busy-interval ends.
	window := Interval{Start: at(2024, 1, 1, 9, 0), End: at(2024, 1, 1, 17, 0)}
	busy := []Interval{{Start: at(2024, 1, 1, 9, 0), End: at(2024, 1, 1, 9, 15)}}

	slot, ok := FindSlot(window, 60, DefaultWorkingHours(), busy)

	require.True(t, ok)
	assert.Equal(t, at(2024, 1, 1, 9, 30), slot.Start)
}

func TestFindSlot_RespectsWindowEnd(t *testing.T) {
	// Window closes at 10:00; a 90-minute slot can never fit.
	window := Interval{Start: at(2024, 1, 1, 9, 0), End: at(2024, 1, 1, 10, 0)}

	slot, ok := FindSlot(window, 90, DefaultWorkingHours(), nil)

	assert.False(t, ok)
	assert.True(t, slot.IsZero())
}

func TestFindSlot_CustomWorkingHours(t *testing.T) {
	hours := WorkingHours{OpenHour: 13, CloseHour: 15}
	window := Interval{Start: at(2024, 1, 1, 9, 0), End: at(2024, 1, 1, 17, 0)}

	slot, ok := FindSlot(window, 60, hours, nil)

	require.True(t, ok)
	assert.Equal(t, at(2024, 1, 1, 13, 0), slot.Start)
	assert.Equal(t, at(2024, 1, 1, 14, 0), slot.End)
}

func TestInterval_Overlaps(t *testing.T) {
	base := Interval{Start: at(2024, 1, 1, 10, 0), End: at(2024, 1, 1, 11, 0)}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", base, true},
		{"contained", Interval{at(2024, 1, 1, 10, 15), at(2024, 1, 1, 10, 45)}, true},
		{"partial front", Interval{at(2024, 1, 1, 9, 30), at(2024, 1, 1, 10, 30)}, true},
		{"partial back", Interval{at(2024, 1, 1, 10, 30), at(2024, 1, 1, 11, 30)}, true},
		{"touching before", Interval{at(2024, 1, 1, 9, 0), at(2024, 1, 1, 10, 0)}, false},
		{"touching after", Interval{at(2024, 1, 1, 11, 0), at(2024, 1, 1, 12, 0)}, false},
		{"disjoint", Interval{at(2024, 1, 1, 14, 0), at(2024, 1, 1, 15, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}
