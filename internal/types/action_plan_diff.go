package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActionPlanDiff is created exactly once per activation that had a prior
// active plan, and never recomputed or mutated afterwards.
type ActionPlanDiff struct {
	ID         uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	FromPlanID uuid.UUID                      `gorm:"type:uuid;not null;index" json:"from_plan_id"`
	ToPlanID   uuid.UUID                      `gorm:"type:uuid;not null;index" json:"to_plan_id"`
	Summary    datatypes.JSONType[DiffResult] `gorm:"column:summary_json;type:jsonb" json:"summary_json"`
	CreatedAt  time.Time                      `gorm:"not null" json:"created_at"`
}

func (ActionPlanDiff) TableName() string { return "action_plan_diff" }
