package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/clearbridge/clearbridge-backend/internal/platform/logger"
	"github.com/clearbridge/clearbridge-backend/internal/repos"
	"github.com/clearbridge/clearbridge-backend/internal/types"
)

type ClientService interface {
	CreateClient(ctx context.Context, tx *gorm.DB, client *types.Client) (*types.Client, error)
	GetClient(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Client, error)
	ListClients(ctx context.Context, tx *gorm.DB) ([]*types.Client, error)
	UpdateClient(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*types.Client, error)
	GetClientOverview(ctx context.Context, id uuid.UUID) (*ClientOverview, error)
}

// ClientOverview bundles the client record with its plan history and the
// materialized active-plan pointer.
type ClientOverview struct {
	Client *types.Client       `json:"client"`
	Plans  []*types.ActionPlan `json:"plans"`
	Series *types.PlanSeries   `json:"series,omitempty"`
}

type clientService struct {
	db      *gorm.DB
	log     *logger.Logger
	clients repos.ClientRepo
	plans   repos.ActionPlanRepo
	series  repos.PlanSeriesRepo
}

func NewClientService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clients repos.ClientRepo,
	plans repos.ActionPlanRepo,
	series repos.PlanSeriesRepo,
) ClientService {
	return &clientService{
		db:      db,
		log:     baseLog.With("service", "ClientService"),
		clients: clients,
		plans:   plans,
		series:  series,
	}
}

func (s *clientService) CreateClient(ctx context.Context, tx *gorm.DB, client *types.Client) (*types.Client, error) {
	if client == nil {
		return nil, fmt.Errorf("client is required")
	}
	if client.Name == "" {
		return nil, fmt.Errorf("client name is required")
	}
	now := time.Now().UTC()
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	client.CreatedAt = now
	client.UpdatedAt = now

	if _, err := s.clients.Create(ctx, tx, []*types.Client{client}); err != nil {
		s.log.Error("CreateClient failed", "error", err)
		return nil, fmt.Errorf("create client: %w: %w", types.ErrPersistenceFailure, err)
	}
	return client, nil
}

func (s *clientService) GetClient(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Client, error) {
	client, err := s.clients.GetByID(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("load client: %w: %w", types.ErrPersistenceFailure, err)
	}
	if client == nil {
		return nil, fmt.Errorf("client %s: %w", id, types.ErrNotFound)
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context, tx *gorm.DB) ([]*types.Client, error) {
	clients, err := s.clients.List(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w: %w", types.ErrPersistenceFailure, err)
	}
	return clients, nil
}

func (s *clientService) UpdateClient(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*types.Client, error) {
	if _, err := s.GetClient(ctx, tx, id); err != nil {
		return nil, err
	}
	if err := s.clients.UpdateFields(ctx, tx, id, fields); err != nil {
		return nil, fmt.Errorf("update client: %w: %w", types.ErrPersistenceFailure, err)
	}
	return s.GetClient(ctx, tx, id)
}

func (s *clientService) GetClientOverview(ctx context.Context, id uuid.UUID) (*ClientOverview, error) {
	overview := &ClientOverview{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		client, err := s.GetClient(gctx, nil, id)
		if err != nil {
			return err
		}
		overview.Client = client
		return nil
	})
	g.Go(func() error {
		plans, err := s.plans.GetByClientID(gctx, nil, id, "")
		if err != nil {
			return fmt.Errorf("load plans: %w: %w", types.ErrPersistenceFailure, err)
		}
		overview.Plans = plans
		return nil
	})
	g.Go(func() error {
		series, err := s.series.GetByClientID(gctx, nil, id)
		if err != nil {
			return fmt.Errorf("load series: %w: %w", types.ErrPersistenceFailure, err)
		}
		overview.Series = series
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}
