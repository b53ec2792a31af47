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

// ClientContextProvider loads the opaque context the recommendation strategy
// consumes. The recommender treats it as an external collaborator: any
// failure surfaces as ErrContextUnavailable and nothing is persisted.
type ClientContextProvider interface {
	LoadContext(ctx context.Context, clientID uuid.UUID) (map[string]any, error)
}

type clientContextProvider struct {
	db      *gorm.DB
	log     *logger.Logger
	clients repos.ClientRepo
}

func NewClientContextProvider(db *gorm.DB, baseLog *logger.Logger, clients repos.ClientRepo) ClientContextProvider {
	return &clientContextProvider{
		db:      db,
		log:     baseLog.With("service", "ClientContextProvider"),
		clients: clients,
	}
}

func (p *clientContextProvider) LoadContext(ctx context.Context, clientID uuid.UUID) (map[string]any, error) {
	client, err := p.clients.GetByID(ctx, nil, clientID)
	if err != nil {
		return nil, fmt.Errorf("load client %s: %w: %w", clientID, types.ErrContextUnavailable, err)
	}
	if client == nil {
		return nil, fmt.Errorf("client %s: %w", clientID, types.ErrContextUnavailable)
	}
	return map[string]any{
		"client_id":         client.ID.String(),
		"risk_score":        client.RiskScore,
		"readiness_percent": client.ReadinessPercent,
		"gaps":              []string(client.Gaps),
		"industry":          client.Industry,
	}, nil
}
