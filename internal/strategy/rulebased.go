package strategy

import (
	"context"
	"fmt"

	"github.com/clearbridge/clearbridge-backend/internal/types"
)

// Readiness cutoffs are part of the documented classification algorithm, not
// the configurable table.
const (
	highReadinessCutoff   = 25.0
	mediumReadinessCutoff = 50.0
)

// RuleBasedBaseline is the shipped strategy: it buckets the client into a
// risk level and proposes the configured goal titles for that bucket, each
// paired with one process-improvement intervention.
type RuleBasedBaseline struct {
	rules RulesTable
}

func NewRuleBasedBaseline(rules RulesTable) *RuleBasedBaseline {
	return &RuleBasedBaseline{rules: rules}
}

func (s *RuleBasedBaseline) Name() string { return "rule_based_baseline" }

// Classification checks high, then medium, then low; first match wins, so a
// high risk_score classifies high even when readiness is high too. Score
// dominates intentionally; do not reorder.
func (s *RuleBasedBaseline) classify(riskScore, readinessPercent float64) string {
	switch {
	case riskScore >= *s.rules.High.Min || readinessPercent < highReadinessCutoff:
		return RiskLevelHigh
	case riskScore >= *s.rules.Medium.Min || readinessPercent < mediumReadinessCutoff:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

func (s *RuleBasedBaseline) GeneratePlan(ctx context.Context, clientContext map[string]any) (*types.PlanProposal, error) {
	if clientContext == nil {
		return nil, fmt.Errorf("client context is required")
	}
	riskScore, ok := numberFrom(clientContext, "risk_score")
	if !ok {
		return nil, fmt.Errorf("client context missing risk_score")
	}
	readiness, ok := numberFrom(clientContext, "readiness_percent")
	if !ok {
		return nil, fmt.Errorf("client context missing readiness_percent")
	}

	level := s.classify(riskScore, readiness)
	goalTitles := s.rules.goalsFor(level)

	goals := make([]types.Goal, 0, len(goalTitles))
	interventions := make([]types.Intervention, 0, len(goalTitles))
	for i, title := range goalTitles {
		goalID := fmt.Sprintf("goal_%d", i+1)
		goals = append(goals, types.Goal{
			ID:            goalID,
			Title:         title,
			Description:   fmt.Sprintf("Work toward %q over the coming quarter.", title),
			Timeframe:     "3 months",
			AssignedRoles: []string{"client"},
		})
		interventions = append(interventions, types.Intervention{
			ID:                fmt.Sprintf("intervention_%d", i+1),
			GoalID:            goalID,
			Title:             fmt.Sprintf("Improvement workstream for %q", title),
			Description:       fmt.Sprintf("A structured workstream addressing %q.", title),
			Type:              types.InterventionTypeProcessImprovement,
			ResourcesRequired: []string{},
			EstimatedDuration: "4-6 weeks",
		})
	}

	return &types.PlanProposal{
		Goals:         goals,
		Interventions: interventions,
		Metadata: types.PlanProposalMetadata{
			Rationale: []string{
				fmt.Sprintf("risk_score=%.0f readiness_percent=%.0f classified as %s", riskScore, readiness, level),
				fmt.Sprintf("%d goal(s) proposed from the %s bucket", len(goalTitles), level),
			},
			SourceTags:        []string{"rule_engine", level},
			GenerationContext: clientContext,
		},
	}, nil
}

func numberFrom(m map[string]any, key string) (float64, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
