package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	PlanStatusDraft     = "draft"
	PlanStatusSuggested = "suggested"
	PlanStatusActive    = "active"
	PlanStatusArchived  = "archived"
)

const (
	GeneratedByRuleEngine = "rule_engine"
	GeneratedByManual     = "manual"
)

// ActionPlan is one immutable, numbered snapshot of goals and interventions
// for a client. After insert only status, supersedes_id and updated_at ever
// change, and only through the activation workflow.
type ActionPlan struct {
	ID              uuid.UUID                          `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID        uuid.UUID                          `gorm:"type:uuid;not null;index:idx_action_plan_client" json:"client_id"`
	Version         int                                `gorm:"column:version;not null" json:"version"`
	Status          string                             `gorm:"column:status;not null;index" json:"status"`
	Goals           datatypes.JSONSlice[Goal]          `gorm:"column:goals;type:jsonb" json:"goals"`
	Interventions   datatypes.JSONSlice[Intervention]  `gorm:"column:interventions;type:jsonb" json:"interventions"`
	GeneratedByType string                             `gorm:"column:generated_by_type" json:"generated_by_type,omitempty"`
	SupersedesID    *uuid.UUID                         `gorm:"type:uuid" json:"supersedes_id,omitempty"`
	Metadata        datatypes.JSONMap                  `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	CreatedAt       time.Time                          `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time                          `gorm:"not null" json:"updated_at"`
}

func (ActionPlan) TableName() string { return "action_plan" }

// Activatable reports whether the plan may legally transition to active.
// Active and archived are terminal for reactivation: a new version has to be
// created instead.
func (p *ActionPlan) Activatable() bool {
	if p == nil {
		return false
	}
	return p.Status == PlanStatusDraft || p.Status == PlanStatusSuggested
}
