package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	redisbus "github.com/clearbridge/clearbridge-backend/internal/clients/redis"
	"github.com/clearbridge/clearbridge-backend/internal/platform/logger"
	"github.com/clearbridge/clearbridge-backend/internal/repos"
	"github.com/clearbridge/clearbridge-backend/internal/types"
)

// DomainEventService appends audit records. Record writes inside the
// caller's transaction so the event commits or rolls back with the state
// change it describes; PublishRecorded fans committed events out afterwards,
// best effort.
type DomainEventService interface {
	Record(ctx context.Context, tx *gorm.DB, eventType string, payload map[string]interface{}) (*types.DomainEvent, error)
	PublishRecorded(ctx context.Context, events ...*types.DomainEvent)
}

type domainEventService struct {
	db     *gorm.DB
	log    *logger.Logger
	events repos.DomainEventRepo
	bus    redisbus.EventBus
}

// bus may be nil; the event table alone satisfies the audit trail.
func NewDomainEventService(db *gorm.DB, baseLog *logger.Logger, events repos.DomainEventRepo, bus redisbus.EventBus) DomainEventService {
	return &domainEventService{
		db:     db,
		log:    baseLog.With("service", "DomainEventService"),
		events: events,
		bus:    bus,
	}
}

func (s *domainEventService) Record(ctx context.Context, tx *gorm.DB, eventType string, payload map[string]interface{}) (*types.DomainEvent, error) {
	row := &types.DomainEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   datatypes.JSONMap(payload),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.events.Create(ctx, tx, []*types.DomainEvent{row}); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *domainEventService) PublishRecorded(ctx context.Context, events ...*types.DomainEvent) {
	if s.bus == nil {
		return
	}
	for _, ev := range events {
		if ev == nil {
			continue
		}
		if err := s.bus.Publish(ctx, ev); err != nil {
			s.log.Warn("domain event publish failed",
				"event_id", ev.ID.String(),
				"event_type", ev.EventType,
				"error", err,
			)
		}
	}
}
