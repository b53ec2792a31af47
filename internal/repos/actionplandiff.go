package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clearbridge/clearbridge-backend/internal/platform/logger"
	"github.com/clearbridge/clearbridge-backend/internal/types"
)

type ActionPlanDiffRepo interface {
	Create(ctx context.Context, tx *gorm.DB, diffs []*types.ActionPlanDiff) ([]*types.ActionPlanDiff, error)
	GetByPlanID(ctx context.Context, tx *gorm.DB, planID uuid.UUID) ([]*types.ActionPlanDiff, error)
}

type actionPlanDiffRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActionPlanDiffRepo(db *gorm.DB, baseLog *logger.Logger) ActionPlanDiffRepo {
	return &actionPlanDiffRepo{db: db, log: baseLog.With("repo", "ActionPlanDiffRepo")}
}

func (r *actionPlanDiffRepo) Create(ctx context.Context, tx *gorm.DB, diffs []*types.ActionPlanDiff) ([]*types.ActionPlanDiff, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(diffs) == 0 {
		return []*types.ActionPlanDiff{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&diffs).Error; err != nil {
		return nil, err
	}
	return diffs, nil
}

// GetByPlanID returns every diff the plan participates in, as source or as
// target, newest first.
func (r *actionPlanDiffRepo) GetByPlanID(ctx context.Context, tx *gorm.DB, planID uuid.UUID) ([]*types.ActionPlanDiff, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ActionPlanDiff
	if planID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("from_plan_id = ? OR to_plan_id = ?", planID, planID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
