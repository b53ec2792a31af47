package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clearbridge/clearbridge-backend/internal/platform/logger"
	"github.com/clearbridge/clearbridge-backend/internal/types"
)

type PlanSeriesRepo interface {
	GetByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (*types.PlanSeries, error)
	UpsertActivePlan(ctx context.Context, tx *gorm.DB, clientID, planID uuid.UUID) (*types.PlanSeries, error)
}

type planSeriesRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlanSeriesRepo(db *gorm.DB, baseLog *logger.Logger) PlanSeriesRepo {
	return &planSeriesRepo{db: db, log: baseLog.With("repo", "PlanSeriesRepo")}
}

func (r *planSeriesRepo) GetByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (*types.PlanSeries, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if clientID == uuid.Nil {
		return nil, nil
	}

	var results []*types.PlanSeries
	if err := transaction.WithContext(ctx).
		Where("client_id = ?", clientID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// UpsertActivePlan lazily creates the client's series row on first activation
// and repoints it on every later one.
func (r *planSeriesRepo) UpsertActivePlan(ctx context.Context, tx *gorm.DB, clientID, planID uuid.UUID) (*types.PlanSeries, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	now := time.Now().UTC()
	row := &types.PlanSeries{
		ID:           uuid.New(),
		ClientID:     clientID,
		ActivePlanID: &planID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"active_plan_id": planID,
				"updated_at":     now,
			}),
		}).
		Create(row).Error; err != nil {
		return nil, err
	}
	return r.GetByClientID(ctx, transaction, clientID)
}
