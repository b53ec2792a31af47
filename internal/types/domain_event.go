package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	EventActionPlanSuggested        = "ActionPlanSuggested"
	EventActionPlanVersionActivated = "ActionPlanVersionActivated"
	EventActionPlanDiffComputed     = "ActionPlanDiffComputed"
)

// DomainEvent is an append-only audit record. The engine only ever writes
// these; external observability consumers read them and deduplicate by id.
type DomainEvent struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	EventType string            `gorm:"column:event_type;not null;index" json:"event_type"`
	Payload   datatypes.JSONMap `gorm:"column:payload;type:jsonb" json:"payload"`
	CreatedAt time.Time         `gorm:"not null;index" json:"created_at"`
}

func (DomainEvent) TableName() string { return "domain_event" }
