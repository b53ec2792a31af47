package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clearbridge/clearbridge-backend/internal/platform/logger"
	"github.com/clearbridge/clearbridge-backend/internal/types"
)

type ActionPlanRepo interface {
	Create(ctx context.Context, tx *gorm.DB, plans []*types.ActionPlan) ([]*types.ActionPlan, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ActionPlan, error)
	GetByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, status string) ([]*types.ActionPlan, error)
	GetActiveForClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (*types.ActionPlan, error)
	MaxVersionForClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int, error)
	ArchiveIfActive(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error)
	MarkActive(ctx context.Context, tx *gorm.DB, id uuid.UUID, supersedesID *uuid.UUID) error
}

type actionPlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActionPlanRepo(db *gorm.DB, baseLog *logger.Logger) ActionPlanRepo {
	return &actionPlanRepo{db: db, log: baseLog.With("repo", "ActionPlanRepo")}
}

func (r *actionPlanRepo) Create(ctx context.Context, tx *gorm.DB, plans []*types.ActionPlan) ([]*types.ActionPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(plans) == 0 {
		return []*types.ActionPlan{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *actionPlanRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ActionPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil {
		return nil, nil
	}

	var results []*types.ActionPlan
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *actionPlanRepo) GetByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, status string) ([]*types.ActionPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ActionPlan
	if clientID == uuid.Nil {
		return results, nil
	}

	q := transaction.WithContext(ctx).Where("client_id = ?", clientID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("version DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *actionPlanRepo) GetActiveForClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (*types.ActionPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if clientID == uuid.Nil {
		return nil, nil
	}

	var results []*types.ActionPlan
	if err := transaction.WithContext(ctx).
		Where("client_id = ? AND status = ?", clientID, types.PlanStatusActive).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *actionPlanRepo) MaxVersionForClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if clientID == uuid.Nil {
		return 0, nil
	}

	var maxVersion int
	if err := transaction.WithContext(ctx).
		Model(&types.ActionPlan{}).
		Where("client_id = ?", clientID).
		Select("COALESCE(MAX(version), 0)").
		Scan(&maxVersion).Error; err != nil {
		return 0, err
	}
	return maxVersion, nil
}

// ArchiveIfActive flips a plan to archived only if it is still active. The
// returned row count lets the caller detect a concurrent activation that
// already archived it.
func (r *actionPlanRepo) ArchiveIfActive(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil {
		return 0, nil
	}

	res := transaction.WithContext(ctx).
		Model(&types.ActionPlan{}).
		Where("id = ? AND status = ?", id, types.PlanStatusActive).
		Updates(map[string]interface{}{
			"status":     types.PlanStatusArchived,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *actionPlanRepo) MarkActive(ctx context.Context, tx *gorm.DB, id uuid.UUID, supersedesID *uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.ActionPlan{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        types.PlanStatusActive,
			"supersedes_id": supersedesID,
			"updated_at":    time.Now().UTC(),
		}).Error
}
