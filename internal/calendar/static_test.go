package calendar_test

import (
	"context"
	"testing"
	"time"

	"github.com/jordanmvolk/marquee/internal/calendar"
	"github.com/jordanmvolk/marquee/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iv(startHour, endHour int) scheduler.Interval {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	return scheduler.Interval{
		Start: day.Add(time.Duration(startHour) * time.Hour),
		End:   day.Add(time.Duration(endHour) * time.Hour),
	}
}

func TestStaticProvider_ListBusyFiltersToWindow(t *testing.T) {
	p := calendar.NewStaticProvider(iv(9, 10), iv(14, 15))

	busy, err := p.ListBusy(context.Background(), iv(8, 12))
	require.NoError(t, err)

	require.Len(t, busy, 1)
	assert.Equal(t, iv(9, 10), busy[0])
}

func TestStaticProvider_CreatedEventsCountAsBusy(t *testing.T) {
	p := calendar.NewStaticProvider()
	ctx := context.Background()

	slot := iv(10, 11)
	id, err := p.CreateEvent(ctx, calendar.Event{Title: "Draft copy", Start: slot.Start, End: slot.End})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	busy, err := p.ListBusy(ctx, iv(9, 12))
	require.NoError(t, err)
	assert.Len(t, busy, 1)
}

func TestStaticProvider_UpdateAndDelete(t *testing.T) {
	p := calendar.NewStaticProvider()
	ctx := context.Background()

	slot := iv(10, 11)
	id, err := p.CreateEvent(ctx, calendar.Event{Title: "Draft copy", Start: slot.Start, End: slot.End})
	require.NoError(t, err)

	moved := iv(13, 14)
	require.NoError(t, p.UpdateEvent(ctx, id, calendar.Event{Title: "Draft copy", Start: moved.Start, End: moved.End}))

	ev, ok := p.Event(id)
	require.True(t, ok)
	assert.Equal(t, moved.Start, ev.Start)

	require.NoError(t, p.DeleteEvent(ctx, id))
	_, ok = p.Event(id)
	assert.False(t, ok)

	assert.Error(t, p.UpdateEvent(ctx, id, ev))
	assert.Error(t, p.DeleteEvent(ctx, id))
}
