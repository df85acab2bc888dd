package service

import (
	"context"

	"github.com/jordanmvolk/marquee/internal/domain"
	"github.com/jordanmvolk/marquee/internal/repository"
	"github.com/jordanmvolk/marquee/internal/scheduler"
)

// loadContext loads the peer units of u's planning context — sibling
// activities for an activity, sibling subtasks for a subtask — attaches
// their dependency edges, and returns a graph view over them. The unit's
// own instance is the one inside the graph; callers edit through Lookup.
func loadContext(ctx context.Context, units repository.UnitRepo, deps repository.DependencyRepo, u *domain.Unit) (*scheduler.Graph, error) {
	var peers []*domain.Unit
	var err error
	if u.Kind == domain.KindSubtask && u.ParentID != nil {
		peers, err = units.ListSubtasks(ctx, *u.ParentID)
	} else {
		peers, err = units.ListActivities(ctx, u.PlanID)
	}
	if err != nil {
		return nil, err
	}
	if err := attachDependencies(ctx, deps, u.PlanID, peers); err != nil {
		return nil, err
	}
	return scheduler.NewGraph(peers), nil
}

// attachDependencies fills the Dependencies slice of each unit from the
// edge table. Repositories return units with the slice empty.
func attachDependencies(ctx context.Context, deps repository.DependencyRepo, planID string, units []*domain.Unit) error {
	edges, err := deps.MapByPlan(ctx, planID)
	if err != nil {
		return err
	}
	for _, u := range units {
		u.Dependencies = edges[u.ID]
	}
	return nil
}
