package calendar

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jordanmvolk/marquee/internal/scheduler"
)

// StaticProvider is an in-memory Provider. It backs the offline CLI path and
// tests: busy intervals are seeded up front, created events are held in a map.
type StaticProvider struct {
	mu     sync.Mutex
	busy   []scheduler.Interval
	events map[string]Event
}

// NewStaticProvider seeds a provider with the given busy intervals.
func NewStaticProvider(busy ...scheduler.Interval) *StaticProvider {
	return &StaticProvider{
		busy:   busy,
		events: make(map[string]Event),
	}
}

func (p *StaticProvider) ListBusy(ctx context.Context, window scheduler.Interval) ([]scheduler.Interval, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []scheduler.Interval
	for _, iv := range p.busy {
		if iv.Overlaps(window) {
			out = append(out, iv)
		}
	}
	// Events already placed on this calendar count as busy too.
	for _, ev := range p.events {
		iv := scheduler.Interval{Start: ev.Start, End: ev.End}
		if iv.Overlaps(window) {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (p *StaticProvider) CreateEvent(ctx context.Context, ev Event) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := uuid.New().String()
	p.events[id] = ev
	return id, nil
}

func (p *StaticProvider) UpdateEvent(ctx context.Context, eventID string, ev Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.events[eventID]; !ok {
		return fmt.Errorf("calendar event %s: not found", eventID)
	}
	p.events[eventID] = ev
	return nil
}

func (p *StaticProvider) DeleteEvent(ctx context.Context, eventID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.events[eventID]; !ok {
		return fmt.Errorf("calendar event %s: not found", eventID)
	}
	delete(p.events, eventID)
	return nil
}

// Event returns a stored event by id, for assertions in tests.
func (p *StaticProvider) Event(eventID string) (Event, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ev, ok := p.events[eventID]
	return ev, ok
}

// AddBusy appends a busy interval after construction.
func (p *StaticProvider) AddBusy(iv scheduler.Interval) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.busy = append(p.busy, iv)
}
