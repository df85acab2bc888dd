package service

import (
	"context"
	"time"

	"github.com/jordanmvolk/marquee/internal/domain"
	"github.com/jordanmvolk/marquee/internal/scheduler"
)

type PlanService interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Plan, error)
	Update(ctx context.Context, p *domain.Plan) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
}

type UnitService interface {
	Create(ctx context.Context, u *domain.Unit) error
	GetByID(ctx context.Context, id string) (*domain.Unit, error)
	ListActivities(ctx context.Context, planID string) ([]*domain.Unit, error)
	ListSubtasks(ctx context.Context, activityID string) ([]*domain.Unit, error)
	Update(ctx context.Context, u *domain.Unit) error
	Delete(ctx context.Context, id string) error

	// Scheduling edits. Each recomputes the edited unit's date window,
	// cascades to every transitive dependent, and persists the whole batch
	// in one transaction.
	SetStart(ctx context.Context, id string, start time.Time) error
	SetDueDate(ctx context.Context, id string, due time.Time) error
	SetDuration(ctx context.Context, id string, duration int) error
	SetDependencies(ctx context.Context, id string, dependsOn []string) error

	// SetStatus enforces the readiness gate: a unit cannot move to
	// in_progress or done while a dependency is unfinished.
	SetStatus(ctx context.Context, id string, status domain.UnitStatus) error
}

// ScheduleView bundles the derived graph state rendered for one planning
// context: the units with dependency edges attached, their topological
// levels, and their readiness.
type ScheduleView struct {
	Units     []*domain.Unit
	Levels    map[string]int
	Readiness map[string]bool
}

type ScheduleService interface {
	PlanView(ctx context.Context, planID string) (*ScheduleView, error)
	ActivityView(ctx context.Context, activityID string) (*ScheduleView, error)

	// PlanSlot finds the earliest free calendar slot for a subtask within
	// its date window, without writing anything.
	PlanSlot(ctx context.Context, unitID string) (scheduler.Interval, error)
	// SyncToCalendar finds a slot, creates or moves the remote event, and
	// stores the event id on the unit.
	SyncToCalendar(ctx context.Context, unitID string) (scheduler.Interval, error)
	// Unsync deletes the remote event and clears the unit's mirror state.
	Unsync(ctx context.Context, unitID string) error
}
