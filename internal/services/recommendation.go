package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/clearbridge/clearbridge-backend/internal/platform/logger"
	"github.com/clearbridge/clearbridge-backend/internal/repos"
	"github.com/clearbridge/clearbridge-backend/internal/strategy"
	"github.com/clearbridge/clearbridge-backend/internal/types"
)

// PlanRecommenderService proposes a new suggested plan version for a client.
// The strategy is injected once at startup and immutable afterwards; a
// suggested plan has no runtime effect until explicitly activated.
type PlanRecommenderService interface {
	GenerateRecommendation(ctx context.Context, clientID uuid.UUID) (*types.ActionPlan, error)
}

type planRecommenderService struct {
	db       *gorm.DB
	log      *logger.Logger
	plans    repos.ActionPlanRepo
	events   DomainEventService
	provider ClientContextProvider
	strat    strategy.Strategy
	locks    *ClientLocks
}

func NewPlanRecommenderService(
	db *gorm.DB,
	baseLog *logger.Logger,
	plans repos.ActionPlanRepo,
	events DomainEventService,
	provider ClientContextProvider,
	strat strategy.Strategy,
	locks *ClientLocks,
) PlanRecommenderService {
	return &planRecommenderService{
		db:       db,
		log:      baseLog.With("service", "PlanRecommenderService"),
		plans:    plans,
		events:   events,
		provider: provider,
		strat:    strat,
		locks:    locks,
	}
}

func (s *planRecommenderService) GenerateRecommendation(ctx context.Context, clientID uuid.UUID) (*types.ActionPlan, error) {
	ctx, span := otel.Tracer("services/recommendation").Start(ctx, "GenerateRecommendation")
	defer span.End()

	if clientID == uuid.Nil {
		return nil, fmt.Errorf("client id is required: %w", types.ErrNotFound)
	}

	clientContext, err := s.provider.LoadContext(ctx, clientID)
	if err != nil {
		s.log.Warn("client context load failed", "client_id", clientID.String(), "error", err)
		return nil, fmt.Errorf("generate recommendation (context stage) for client %s: %w", clientID, err)
	}

	proposal, err := s.strat.GeneratePlan(ctx, clientContext)
	if err != nil {
		return nil, fmt.Errorf("generate recommendation (strategy %s) for client %s: %w: %w",
			s.strat.Name(), clientID, types.ErrRecommendationFailed, err)
	}
	if err := validateProposal(proposal); err != nil {
		return nil, fmt.Errorf("generate recommendation (strategy %s) for client %s: %w: %w",
			s.strat.Name(), clientID, types.ErrRecommendationFailed, err)
	}

	// Version assignment is read-then-insert; the client lock makes it
	// effectively atomic so numbers are never reused.
	unlock := s.locks.Lock(clientID)
	defer unlock()

	now := time.Now().UTC()
	plan := &types.ActionPlan{
		ID:              uuid.New(),
		ClientID:        clientID,
		Status:          types.PlanStatusSuggested,
		Goals:           datatypes.NewJSONSlice(proposal.Goals),
		Interventions:   datatypes.NewJSONSlice(proposal.Interventions),
		GeneratedByType: types.GeneratedByRuleEngine,
		Metadata: datatypes.JSONMap{
			"rationale":          proposal.Metadata.Rationale,
			"source_tags":        proposal.Metadata.SourceTags,
			"generation_context": proposal.Metadata.GenerationContext,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	var recorded *types.DomainEvent
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		maxVersion, err := s.plans.MaxVersionForClient(ctx, tx, clientID)
		if err != nil {
			return fmt.Errorf("read max version: %w", err)
		}
		plan.Version = maxVersion + 1

		if _, err := s.plans.Create(ctx, tx, []*types.ActionPlan{plan}); err != nil {
			return fmt.Errorf("insert plan: %w", err)
		}

		recorded, err = s.events.Record(ctx, tx, types.EventActionPlanSuggested, map[string]interface{}{
			"plan_id":      plan.ID.String(),
			"client_id":    clientID.String(),
			"version":      plan.Version,
			"generated_by": plan.GeneratedByType,
		})
		if err != nil {
			return fmt.Errorf("record event: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Error("GenerateRecommendation persist failed", "client_id", clientID.String(), "error", err)
		return nil, fmt.Errorf("generate recommendation (persist stage) for client %s: %w: %w",
			clientID, types.ErrPersistenceFailure, err)
	}

	s.events.PublishRecorded(ctx, recorded)

	s.log.Info("action plan suggested",
		"client_id", clientID.String(),
		"plan_id", plan.ID.String(),
		"version", plan.Version,
	)
	return plan, nil
}

// Goals must have unique ids within the proposal and every intervention must
// target a goal in the same proposal.
func validateProposal(p *types.PlanProposal) error {
	if p == nil {
		return fmt.Errorf("strategy returned no proposal")
	}
	if len(p.Goals) == 0 {
		return fmt.Errorf("strategy returned no goals")
	}
	goalIDs := make(map[string]bool, len(p.Goals))
	for _, g := range p.Goals {
		if g.ID == "" {
			return fmt.Errorf("goal %q has no id", g.Title)
		}
		if goalIDs[g.ID] {
			return fmt.Errorf("duplicate goal id %q", g.ID)
		}
		goalIDs[g.ID] = true
	}
	for _, iv := range p.Interventions {
		if iv.ID == "" {
			return fmt.Errorf("intervention %q has no id", iv.Title)
		}
		if !goalIDs[iv.GoalID] {
			return fmt.Errorf("intervention %q targets unknown goal %q", iv.ID, iv.GoalID)
		}
	}
	return nil
}
