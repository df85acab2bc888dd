package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jordanmvolk/marquee/internal/domain"
	"github.com/jordanmvolk/marquee/internal/repository"
)

type planService struct {
	plans repository.PlanRepo
}

func NewPlanService(plans repository.PlanRepo) PlanService {
	return &planService{plans: plans}
}

func (s *planService) Create(ctx context.Context, p *domain.Plan) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = domain.PlanActive
	}
	if p.Channel == "" {
		p.Channel = "generic"
	}
	if !domain.ValidChannels[p.Channel] {
		return fmt.Errorf("unknown channel %q", p.Channel)
	}
	if p.StartDate.IsZero() {
		p.StartDate = now
	}
	return s.plans.Create(ctx, p)
}

func (s *planService) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	return s.plans.GetByID(ctx, id)
}

func (s *planService) List(ctx context.Context, includeArchived bool) ([]*domain.Plan, error) {
	return s.plans.List(ctx, includeArchived)
}

func (s *planService) Update(ctx context.Context, p *domain.Plan) error {
	p.UpdatedAt = time.Now().UTC()
	return s.plans.Update(ctx, p)
}

func (s *planService) Archive(ctx context.Context, id string) error {
	return s.plans.Archive(ctx, id)
}

func (s *planService) Delete(ctx context.Context, id string, force bool) error {
	if !force {
		p, err := s.plans.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p.Status != domain.PlanArchived {
			return fmt.Errorf("plan must be archived before deletion (use --force to override)")
		}
	}
	return s.plans.Delete(ctx, id)
}
