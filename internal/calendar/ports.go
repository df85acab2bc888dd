// Package calendar defines the contract between the scheduling core and a
// remote calendar. Providers implement these interfaces; the scheduling
// service never talks to a provider API directly.
package calendar

import (
	"context"
	"time"

	"github.com/jordanmvolk/marquee/internal/scheduler"
)

// Event is the provider-neutral shape of a calendar event.
type Event struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
}

// BusyProvider answers range queries for busy intervals. Implementations
// must return intervals that overlap the window; returning a superset is
// allowed, the slot allocator tolerates extra busy time.
type BusyProvider interface {
	ListBusy(ctx context.Context, window scheduler.Interval) ([]scheduler.Interval, error)
}

// EventWriter creates and maintains remote events. CreateEvent returns the
// provider's event id, which the caller stores for later updates.
type EventWriter interface {
	CreateEvent(ctx context.Context, ev Event) (string, error)
	UpdateEvent(ctx context.Context, eventID string, ev Event) error
	DeleteEvent(ctx context.Context, eventID string) error
}

// Provider is the full calendar surface a sync target exposes.
type Provider interface {
	BusyProvider
	EventWriter
}
