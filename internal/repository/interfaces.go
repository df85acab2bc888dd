package repository

import (
	"context"

	"github.com/jordanmvolk/marquee/internal/domain"
)

type PlanRepo interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Plan, error)
	Update(ctx context.Context, p *domain.Plan) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type UnitRepo interface {
	Create(ctx context.Context, u *domain.Unit) error
	GetByID(ctx context.Context, id string) (*domain.Unit, error)
	ListActivities(ctx context.Context, planID string) ([]*domain.Unit, error)
	ListSubtasks(ctx context.Context, activityID string) ([]*domain.Unit, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Unit, error)
	Update(ctx context.Context, u *domain.Unit) error
	Delete(ctx context.Context, id string) error
}

// DependencyRepo stores the dependency edges of units. Units loaded
// through UnitRepo carry an empty Dependencies slice; services attach the
// edges from here before building a graph view.
type DependencyRepo interface {
	Add(ctx context.Context, unitID, dependsOnID string) error
	Remove(ctx context.Context, unitID, dependsOnID string) error
	Replace(ctx context.Context, unitID string, dependsOn []string) error
	ListForUnit(ctx context.Context, unitID string) ([]string, error)
	MapByPlan(ctx context.Context, planID string) (map[string][]string, error)
}
