// Package strategy turns a client context into a plan proposal. Strategies
// are constructed once at service startup and are immutable afterwards; a
// strategy has no side effects and is deterministic for identical context
// and configuration.
package strategy

import (
	"context"

	"github.com/clearbridge/clearbridge-backend/internal/types"
)

type Strategy interface {
	Name() string
	GeneratePlan(ctx context.Context, clientContext map[string]any) (*types.PlanProposal, error)
}
