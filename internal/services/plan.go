package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clearbridge/clearbridge-backend/internal/platform/logger"
	"github.com/clearbridge/clearbridge-backend/internal/repos"
	"github.com/clearbridge/clearbridge-backend/internal/types"
)

// PlanService is the read side: plans by client (version descending,
// optional status filter), single plans, and the diffs a plan participates
// in.
type PlanService interface {
	GetPlan(ctx context.Context, planID uuid.UUID) (*types.ActionPlan, error)
	ListPlansForClient(ctx context.Context, clientID uuid.UUID, status string) ([]*types.ActionPlan, error)
	ListDiffsForPlan(ctx context.Context, planID uuid.UUID) ([]*types.ActionPlanDiff, error)
}

type planService struct {
	db    *gorm.DB
	log   *logger.Logger
	plans repos.ActionPlanRepo
	diffs repos.ActionPlanDiffRepo
}

func NewPlanService(db *gorm.DB, baseLog *logger.Logger, plans repos.ActionPlanRepo, diffs repos.ActionPlanDiffRepo) PlanService {
	return &planService{
		db:    db,
		log:   baseLog.With("service", "PlanService"),
		plans: plans,
		diffs: diffs,
	}
}

func (s *planService) GetPlan(ctx context.Context, planID uuid.UUID) (*types.ActionPlan, error) {
	plan, err := s.plans.GetByID(ctx, nil, planID)
	if err != nil {
		return nil, fmt.Errorf("load plan: %w: %w", types.ErrPersistenceFailure, err)
	}
	if plan == nil {
		return nil, fmt.Errorf("plan %s: %w", planID, types.ErrNotFound)
	}
	return plan, nil
}

func (s *planService) ListPlansForClient(ctx context.Context, clientID uuid.UUID, status string) ([]*types.ActionPlan, error) {
	plans, err := s.plans.GetByClientID(ctx, nil, clientID, status)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w: %w", types.ErrPersistenceFailure, err)
	}
	return plans, nil
}

func (s *planService) ListDiffsForPlan(ctx context.Context, planID uuid.UUID) ([]*types.ActionPlanDiff, error) {
	if _, err := s.GetPlan(ctx, planID); err != nil {
		return nil, err
	}
	diffs, err := s.diffs.GetByPlanID(ctx, nil, planID)
	if err != nil {
		return nil, fmt.Errorf("list diffs: %w: %w", types.ErrPersistenceFailure, err)
	}
	return diffs, nil
}
