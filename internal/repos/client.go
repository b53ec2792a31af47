package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clearbridge/clearbridge-backend/internal/platform/logger"
	"github.com/clearbridge/clearbridge-backend/internal/types"
)

type ClientRepo interface {
	Create(ctx context.Context, tx *gorm.DB, clients []*types.Client) ([]*types.Client, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Client, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Client, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
}

type clientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClientRepo(db *gorm.DB, baseLog *logger.Logger) ClientRepo {
	return &clientRepo{db: db, log: baseLog.With("repo", "ClientRepo")}
}

func (r *clientRepo) Create(ctx context.Context, tx *gorm.DB, clients []*types.Client) ([]*types.Client, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(clients) == 0 {
		return []*types.Client{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Client, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil {
		return nil, nil
	}

	var results []*types.Client
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

func (r *clientRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Client, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Client
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *clientRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil || len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now().UTC()

	return transaction.WithContext(ctx).
		Model(&types.Client{}).
		Where("id = ?", id).
		Updates(fields).Error
}
