package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jordanmvolk/marquee/internal/calendar"
	"github.com/jordanmvolk/marquee/internal/domain"
	"github.com/jordanmvolk/marquee/internal/repository"
	"github.com/jordanmvolk/marquee/internal/scheduler"
)

// ErrNoSlot is returned when no free calendar slot exists inside a unit's
// date window.
var ErrNoSlot = errors.New("no free calendar slot within the unit's window")

// ErrNotSchedulable is returned when slot planning is requested for a unit
// that carries no execution duration (activities are planned by date window
// only; subtasks get calendar slots).
var ErrNotSchedulable = errors.New("unit has no execution duration to schedule")

type scheduleService struct {
	units    repository.UnitRepo
	deps     repository.DependencyRepo
	provider calendar.Provider
	source   domain.CalendarProvider
	hours    scheduler.WorkingHours
}

func NewScheduleService(units repository.UnitRepo, deps repository.DependencyRepo, provider calendar.Provider, source domain.CalendarProvider) ScheduleService {
	return &scheduleService{
		units:    units,
		deps:     deps,
		provider: provider,
		source:   source,
		hours:    scheduler.DefaultWorkingHours(),
	}
}

func (s *scheduleService) PlanView(ctx context.Context, planID string) (*ScheduleView, error) {
	units, err := s.units.ListActivities(ctx, planID)
	if err != nil {
		return nil, err
	}
	if err := attachDependencies(ctx, s.deps, planID, units); err != nil {
		return nil, err
	}
	return buildView(units)
}

func (s *scheduleService) ActivityView(ctx context.Context, activityID string) (*ScheduleView, error) {
	parent, err := s.units.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	units, err := s.units.ListSubtasks(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if err := attachDependencies(ctx, s.deps, parent.PlanID, units); err != nil {
		return nil, err
	}
	return buildView(units)
}

func buildView(units []*domain.Unit) (*ScheduleView, error) {
	g := scheduler.NewGraph(units)
	levels, err := scheduler.Levels(g)
	if err != nil {
		return nil, fmt.Errorf("computing levels: %w", err)
	}
	return &ScheduleView{
		Units:     units,
		Levels:    levels,
		Readiness: scheduler.Readiness(g),
	}, nil
}

func (s *scheduleService) PlanSlot(ctx context.Context, unitID string) (scheduler.Interval, error) {
	u, err := s.units.GetByID(ctx, unitID)
	if err != nil {
		return scheduler.Interval{}, err
	}
	return s.findSlot(ctx, u)
}

func (s *scheduleService) SyncToCalendar(ctx context.Context, unitID string) (scheduler.Interval, error) {
	u, err := s.units.GetByID(ctx, unitID)
	if err != nil {
		return scheduler.Interval{}, err
	}
	slot, err := s.findSlot(ctx, u)
	if err != nil {
		return scheduler.Interval{}, err
	}

	ev := calendar.Event{
		Title: u.Title,
		Start: slot.Start,
		End:   slot.End,
	}
	if u.CalendarSynced && u.CalendarEventID != "" {
		if err := s.provider.UpdateEvent(ctx, u.CalendarEventID, ev); err != nil {
			return scheduler.Interval{}, fmt.Errorf("moving calendar event: %w", err)
		}
	} else {
		eventID, err := s.provider.CreateEvent(ctx, ev)
		if err != nil {
			return scheduler.Interval{}, fmt.Errorf("creating calendar event: %w", err)
		}
		u.CalendarEventID = eventID
	}

	u.CalendarSynced = true
	u.CalendarProvider = s.source
	u.UpdatedAt = time.Now().UTC()
	if err := s.units.Update(ctx, u); err != nil {
		return scheduler.Interval{}, err
	}
	return slot, nil
}

func (s *scheduleService) Unsync(ctx context.Context, unitID string) error {
	u, err := s.units.GetByID(ctx, unitID)
	if err != nil {
		return err
	}
	if !u.CalendarSynced || u.CalendarEventID == "" {
		return nil
	}
	if err := s.provider.DeleteEvent(ctx, u.CalendarEventID); err != nil {
		return fmt.Errorf("deleting calendar event: %w", err)
	}
	u.CalendarSynced = false
	u.CalendarEventID = ""
	u.CalendarProvider = ""
	u.UpdatedAt = time.Now().UTC()
	return s.units.Update(ctx, u)
}

// findSlot searches the unit's date window, working hours only, avoiding
// the provider's busy intervals.
func (s *scheduleService) findSlot(ctx context.Context, u *domain.Unit) (scheduler.Interval, error) {
	minutes := u.ExecutionMinutes()
	if minutes <= 0 {
		return scheduler.Interval{}, fmt.Errorf("unit %s: %w", u.DisplayID(), ErrNotSchedulable)
	}

	window := scheduler.Interval{
		Start: s.hours.OpenOn(u.StartDate),
		End:   s.hours.CloseOn(u.DueDate),
	}
	busy, err := s.provider.ListBusy(ctx, window)
	if err != nil {
		return scheduler.Interval{}, fmt.Errorf("querying busy intervals: %w", err)
	}

	slot, ok := scheduler.FindSlot(window, minutes, s.hours, busy)
	if !ok {
		return scheduler.Interval{}, fmt.Errorf("unit %s: %w", u.DisplayID(), ErrNoSlot)
	}
	return slot, nil
}
