package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jordanmvolk/marquee/internal/db"
	"github.com/jordanmvolk/marquee/internal/domain"
	"github.com/jordanmvolk/marquee/internal/repository"
	"github.com/jordanmvolk/marquee/internal/scheduler"
)

// ErrBlocked is returned when a status edit would start or finish a unit
// whose dependencies are not all done.
var ErrBlocked = errors.New("unit is blocked by unfinished dependencies")

type unitService struct {
	units repository.UnitRepo
	deps  repository.DependencyRepo
	uow   db.UnitOfWork
}

func NewUnitService(units repository.UnitRepo, deps repository.DependencyRepo, uow db.UnitOfWork) UnitService {
	return &unitService{units: units, deps: deps, uow: uow}
}

func (s *unitService) Create(ctx context.Context, u *domain.Unit) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Status == "" {
		u.Status = domain.UnitTodo
	}
	if u.Kind == "" {
		u.Kind = domain.KindActivity
	}
	if u.Kind == domain.KindSubtask && u.ParentID == nil {
		return fmt.Errorf("subtask requires a parent activity")
	}
	if u.Duration < 0 {
		return fmt.Errorf("duration must not be negative")
	}
	if u.DependsOn(u.ID) {
		return fmt.Errorf("unit cannot depend on itself")
	}

	dependsOn := u.Dependencies
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txUnits := repository.NewSQLiteUnitRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)

		if err := txUnits.Create(ctx, u); err != nil {
			return err
		}
		if len(dependsOn) > 0 {
			if err := txDeps.Replace(ctx, u.ID, dependsOn); err != nil {
				return err
			}
		}

		g, err := loadContext(ctx, txUnits, txDeps, u)
		if err != nil {
			return err
		}
		if _, err := scheduler.Levels(g); err != nil {
			return fmt.Errorf("dependencies rejected: %w", err)
		}

		if err := s.propagateAndPersist(ctx, txUnits, g, u.ID, now); err != nil {
			return err
		}

		// Reflect the computed window on the caller's instance.
		if inst, ok := g.Lookup(u.ID); ok {
			u.StartDate = inst.StartDate
			u.DueDate = inst.DueDate
		}
		return nil
	})
}

func (s *unitService) GetByID(ctx context.Context, id string) (*domain.Unit, error) {
	u, err := s.units.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Dependencies, err = s.deps.ListForUnit(ctx, id)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *unitService) ListActivities(ctx context.Context, planID string) ([]*domain.Unit, error) {
	units, err := s.units.ListActivities(ctx, planID)
	if err != nil {
		return nil, err
	}
	if err := attachDependencies(ctx, s.deps, planID, units); err != nil {
		return nil, err
	}
	return units, nil
}

func (s *unitService) ListSubtasks(ctx context.Context, activityID string) ([]*domain.Unit, error) {
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
	return units, nil
}

// Update persists descriptive fields. Scheduling fields go through the
// Set* operations so their cascades run.
func (s *unitService) Update(ctx context.Context, u *domain.Unit) error {
	u.UpdatedAt = time.Now().UTC()
	return s.units.Update(ctx, u)
}

func (s *unitService) Delete(ctx context.Context, id string) error {
	// Dependency edges pointing at the deleted unit stay behind; graph
	// queries drop them at read time.
	return s.units.Delete(ctx, id)
}

func (s *unitService) SetStart(ctx context.Context, id string, start time.Time) error {
	return s.edit(ctx, id, func(g *scheduler.Graph, u *domain.Unit) error {
		if len(g.Dependencies(u)) > 0 {
			return fmt.Errorf("start date is derived from dependencies; remove them to set it directly")
		}
		u.StartDate = scheduler.DayOf(start)
		return nil
	})
}

func (s *unitService) SetDueDate(ctx context.Context, id string, due time.Time) error {
	return s.edit(ctx, id, func(g *scheduler.Graph, u *domain.Unit) error {
		return scheduler.ApplyDueDate(u, scheduler.DayOf(due))
	})
}

func (s *unitService) SetDuration(ctx context.Context, id string, duration int) error {
	if duration < 0 {
		return fmt.Errorf("duration must not be negative")
	}
	return s.edit(ctx, id, func(g *scheduler.Graph, u *domain.Unit) error {
		scheduler.ApplyDuration(u, duration)
		return nil
	})
}

func (s *unitService) SetDependencies(ctx context.Context, id string, dependsOn []string) error {
	for _, dep := range dependsOn {
		if dep == id {
			return fmt.Errorf("unit cannot depend on itself")
		}
	}
	now := time.Now().UTC()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txUnits := repository.NewSQLiteUnitRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)

		u, err := txUnits.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := txDeps.Replace(ctx, id, dependsOn); err != nil {
			return err
		}

		g, err := loadContext(ctx, txUnits, txDeps, u)
		if err != nil {
			return err
		}
		// A cycle error aborts the transaction, restoring the old edges.
		if _, err := scheduler.Levels(g); err != nil {
			return fmt.Errorf("dependencies rejected: %w", err)
		}
		return s.propagateAndPersist(ctx, txUnits, g, id, now)
	})
}

func (s *unitService) SetStatus(ctx context.Context, id string, status domain.UnitStatus) error {
	if !domain.ValidUnitStatuses[string(status)] {
		return fmt.Errorf("unknown status %q", status)
	}
	u, err := s.units.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if status == domain.UnitInProgress || status == domain.UnitDone {
		g, err := loadContext(ctx, s.units, s.deps, u)
		if err != nil {
			return err
		}
		inst, _ := g.Lookup(id)
		if !scheduler.CanBegin(g, inst) {
			return ErrBlocked
		}
	}
	u.Status = status
	u.UpdatedAt = time.Now().UTC()
	return s.units.Update(ctx, u)
}

// edit runs a scheduling mutation on the unit inside a transaction: load
// the planning context, apply the mutation, cascade dates downstream, and
// persist every touched unit.
func (s *unitService) edit(ctx context.Context, id string, apply func(g *scheduler.Graph, u *domain.Unit) error) error {
	now := time.Now().UTC()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txUnits := repository.NewSQLiteUnitRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)

		u, err := txUnits.GetByID(ctx, id)
		if err != nil {
			return err
		}
		g, err := loadContext(ctx, txUnits, txDeps, u)
		if err != nil {
			return err
		}
		inst, ok := g.Lookup(id)
		if !ok {
			return fmt.Errorf("unit %s: %w", id, repository.ErrNotFound)
		}
		if err := apply(g, inst); err != nil {
			return err
		}
		inst.UpdatedAt = now
		if err := txUnits.Update(ctx, inst); err != nil {
			return err
		}
		return s.propagateAndPersist(ctx, txUnits, g, id, now)
	})
}

// propagateAndPersist cascades the date rules from the given unit and
// writes every unit whose window moved.
func (s *unitService) propagateAndPersist(ctx context.Context, txUnits repository.UnitRepo, g *scheduler.Graph, id string, now time.Time) error {
	for _, changed := range scheduler.PropagateDates(g, id, now) {
		changed.UpdatedAt = now
		if err := txUnits.Update(ctx, changed); err != nil {
			return err
		}
	}
	return nil
}
