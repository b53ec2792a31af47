package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/clearbridge/clearbridge-backend/internal/plandiff"
	"github.com/clearbridge/clearbridge-backend/internal/platform/logger"
	"github.com/clearbridge/clearbridge-backend/internal/repos"
	"github.com/clearbridge/clearbridge-backend/internal/types"
)

// ActivationService promotes a draft or suggested plan version to active.
// The whole sequence — archive the prior active version, compute and persist
// the diff, flip the target, repoint the series — runs inside one store
// transaction under the client's lock, so a crash mid-way leaves either the
// old state or the new state, never a half-applied one.
type ActivationService interface {
	Activate(ctx context.Context, planID uuid.UUID) (*ActivationResult, error)
}

type ActivationResult struct {
	Plan *types.ActionPlan     `json:"plan"`
	Diff *types.ActionPlanDiff `json:"diff,omitempty"`
}

type activationService struct {
	db     *gorm.DB
	log    *logger.Logger
	plans  repos.ActionPlanRepo
	series repos.PlanSeriesRepo
	diffs  repos.ActionPlanDiffRepo
	events DomainEventService
	locks  *ClientLocks
}

func NewActivationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	plans repos.ActionPlanRepo,
	series repos.PlanSeriesRepo,
	diffs repos.ActionPlanDiffRepo,
	events DomainEventService,
	locks *ClientLocks,
) ActivationService {
	return &activationService{
		db:     db,
		log:    baseLog.With("service", "ActivationService"),
		plans:  plans,
		series: series,
		diffs:  diffs,
		events: events,
		locks:  locks,
	}
}

func (s *activationService) Activate(ctx context.Context, planID uuid.UUID) (*ActivationResult, error) {
	ctx, span := otel.Tracer("services/activation").Start(ctx, "Activate")
	defer span.End()

	if planID == uuid.Nil {
		return nil, fmt.Errorf("plan id is required: %w", types.ErrNotFound)
	}

	// First read is only to learn the client id for locking; the target is
	// re-read inside the transaction before any decision is made on it.
	target, err := s.plans.GetByID(ctx, nil, planID)
	if err != nil {
		return nil, fmt.Errorf("activate plan %s (load stage): %w: %w", planID, types.ErrPersistenceFailure, err)
	}
	if target == nil {
		return nil, fmt.Errorf("plan %s: %w", planID, types.ErrNotFound)
	}
	clientID := target.ClientID

	unlock := s.locks.Lock(clientID)
	defer unlock()

	var (
		diffRow  *types.ActionPlanDiff
		recorded []*types.DomainEvent
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err = s.plans.GetByID(ctx, tx, planID)
		if err != nil {
			return fmt.Errorf("reload plan: %w: %w", types.ErrPersistenceFailure, err)
		}
		if target == nil {
			return fmt.Errorf("plan %s: %w", planID, types.ErrNotFound)
		}
		if !target.Activatable() {
			return fmt.Errorf("plan %s is %s: %w", planID, target.Status, types.ErrInvalidTransition)
		}

		oldActive, err := s.plans.GetActiveForClient(ctx, tx, clientID)
		if err != nil {
			return fmt.Errorf("load active plan: %w: %w", types.ErrPersistenceFailure, err)
		}

		var supersedesID *uuid.UUID
		if oldActive != nil {
			rows, err := s.plans.ArchiveIfActive(ctx, tx, oldActive.ID)
			if err != nil {
				return fmt.Errorf("archive plan %s: %w: %w", oldActive.ID, types.ErrPersistenceFailure, err)
			}
			if rows == 0 {
				return fmt.Errorf("plan %s was no longer active: %w", oldActive.ID, types.ErrConcurrentModification)
			}

			summary := plandiff.Compute(oldActive, target)
			diffRow = &types.ActionPlanDiff{
				ID:         uuid.New(),
				FromPlanID: oldActive.ID,
				ToPlanID:   target.ID,
				Summary:    datatypes.NewJSONType(summary),
				CreatedAt:  time.Now().UTC(),
			}
			if _, err := s.diffs.Create(ctx, tx, []*types.ActionPlanDiff{diffRow}); err != nil {
				return fmt.Errorf("insert diff: %w: %w", types.ErrPersistenceFailure, err)
			}
			supersedesID = &oldActive.ID
		}

		if err := s.plans.MarkActive(ctx, tx, target.ID, supersedesID); err != nil {
			return fmt.Errorf("mark active: %w: %w", types.ErrPersistenceFailure, err)
		}
		target.Status = types.PlanStatusActive
		target.SupersedesID = supersedesID

		if _, err := s.series.UpsertActivePlan(ctx, tx, clientID, target.ID); err != nil {
			return fmt.Errorf("upsert plan series: %w: %w", types.ErrPersistenceFailure, err)
		}

		payload := map[string]interface{}{
			"plan_id":   target.ID.String(),
			"client_id": clientID.String(),
			"version":   target.Version,
		}
		if supersedesID != nil {
			payload["supersedes_id"] = supersedesID.String()
		}
		activated, err := s.events.Record(ctx, tx, types.EventActionPlanVersionActivated, payload)
		if err != nil {
			return fmt.Errorf("record activation event: %w: %w", types.ErrPersistenceFailure, err)
		}
		recorded = append(recorded, activated)

		if diffRow != nil {
			diffed, err := s.events.Record(ctx, tx, types.EventActionPlanDiffComputed, map[string]interface{}{
				"from_plan_id": diffRow.FromPlanID.String(),
				"to_plan_id":   diffRow.ToPlanID.String(),
				"client_id":    clientID.String(),
			})
			if err != nil {
				return fmt.Errorf("record diff event: %w: %w", types.ErrPersistenceFailure, err)
			}
			recorded = append(recorded, diffed)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("Activate failed", "plan_id", planID.String(), "client_id", clientID.String(), "error", err)
		return nil, fmt.Errorf("activate plan %s for client %s: %w", planID, clientID, err)
	}

	s.events.PublishRecorded(ctx, recorded...)

	s.log.Info("action plan activated",
		"client_id", clientID.String(),
		"plan_id", target.ID.String(),
		"version", target.Version,
		"superseded", target.SupersedesID != nil,
	)
	return &ActivationResult{Plan: target, Diff: diffRow}, nil
}
