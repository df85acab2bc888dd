package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/jordanmvolk/marquee/internal/domain"
)

// Plan options
type PlanOption func(*domain.Plan)

func WithChannel(channel string) PlanOption {
	return func(p *domain.Plan) {
		p.Channel = channel
	}
}

func WithPlanStatus(s domain.PlanStatus) PlanOption {
	return func(p *domain.Plan) {
		p.Status = s
	}
}

// NewTestPlan builds a persisted-shape plan with sensible defaults.
func NewTestPlan(name string, opts ...PlanOption) *domain.Plan {
	now := time.Now().UTC()
	p := &domain.Plan{
		ID:        uuid.New().String(),
		Name:      name,
		Channel:   "email",
		StartDate: now.AddDate(0, 0, -7),
		Status:    domain.PlanActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Unit options
type UnitOption func(*domain.Unit)

func WithStatus(s domain.UnitStatus) UnitOption {
	return func(u *domain.Unit) {
		u.Status = s
	}
}

func WithDuration(d int) UnitOption {
	return func(u *domain.Unit) {
		u.Duration = d
	}
}

func WithWindow(start, due time.Time) UnitOption {
	return func(u *domain.Unit) {
		u.StartDate = start
		u.DueDate = due
	}
}

func WithDependencies(ids ...string) UnitOption {
	return func(u *domain.Unit) {
		u.Dependencies = ids
	}
}

// NewTestActivity builds an activity in the given plan.
func NewTestActivity(planID, title string, opts ...UnitOption) *domain.Unit {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	u := &domain.Unit{
		ID:        uuid.New().String(),
		PlanID:    planID,
		Title:     title,
		Kind:      domain.KindActivity,
		Status:    domain.UnitTodo,
		Duration:  1,
		StartDate: start,
		DueDate:   start.AddDate(0, 0, 1),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// NewTestSubtask builds a subtask under the given activity.
func NewTestSubtask(planID, activityID, title string, opts ...UnitOption) *domain.Unit {
	u := NewTestActivity(planID, title, opts...)
	u.Kind = domain.KindSubtask
	u.ParentID = &activityID
	if u.Duration == 1 {
		u.Duration = 30
	}
	return u
}
