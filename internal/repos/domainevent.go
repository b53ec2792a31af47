package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/clearbridge/clearbridge-backend/internal/platform/logger"
	"github.com/clearbridge/clearbridge-backend/internal/types"
)

// DomainEventRepo is append-only: the engine writes audit records and never
// reads them back.
type DomainEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, events []*types.DomainEvent) ([]*types.DomainEvent, error)
}

type domainEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDomainEventRepo(db *gorm.DB, baseLog *logger.Logger) DomainEventRepo {
	return &domainEventRepo{db: db, log: baseLog.With("repo", "DomainEventRepo")}
}

func (r *domainEventRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.DomainEvent) ([]*types.DomainEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(events) == 0 {
		return []*types.DomainEvent{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
