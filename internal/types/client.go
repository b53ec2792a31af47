package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Client is the risk-profile record the recommendation engine plans for.
// RiskScore and ReadinessPercent feed the strategy's classification; Gaps and
// Industry travel along as opaque generation context.
type Client struct {
	ID               uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string                      `gorm:"column:name;not null" json:"name"`
	Industry         string                      `gorm:"column:industry" json:"industry"`
	RiskScore        float64                     `gorm:"column:risk_score;not null;default:0" json:"risk_score"`
	ReadinessPercent float64                     `gorm:"column:readiness_percent;not null;default:0" json:"readiness_percent"`
	Gaps             datatypes.JSONSlice[string] `gorm:"column:gaps;type:jsonb" json:"gaps,omitempty"`
	Metadata         datatypes.JSONMap           `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	CreatedAt        time.Time                   `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time                   `gorm:"not null" json:"updated_at"`
	DeletedAt        gorm.DeletedAt              `gorm:"index" json:"deleted_at,omitempty"`
}

func (Client) TableName() string { return "client" }
