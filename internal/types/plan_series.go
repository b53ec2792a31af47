package types

import (
	"time"

	"github.com/google/uuid"
)

// PlanSeries is a materialized pointer to a client's currently active plan.
// It mirrors whichever ActionPlan holds status=active and exists so lookups
// avoid scanning every version; it is never the source of truth. One row per
// client, created lazily on first activation.
type PlanSeries struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"client_id"`
	ActivePlanID *uuid.UUID `gorm:"type:uuid" json:"active_plan_id,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (PlanSeries) TableName() string { return "plan_series" }
