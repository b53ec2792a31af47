package strategy

import (
	"context"
	"testing"
)

func testRules(t *testing.T) RulesTable {
	t.Helper()
	rules, err := LoadRules("")
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	return rules
}

func TestClassifyBoundaries(t *testing.T) {
	s := NewRuleBasedBaseline(testRules(t))

	cases := []struct {
		name      string
		risk      float64
		readiness float64
		want      string
	}{
		{"score at high threshold", 75, 90, RiskLevelHigh},
		{"score just below high with readiness at cutoff", 74, 25, RiskLevelMedium},
		{"low score, readiness at medium cutoff", 49, 50, RiskLevelLow},
		{"readiness below high cutoff dominates any score", 0, 24, RiskLevelHigh},
		{"score at medium threshold", 50, 80, RiskLevelMedium},
		{"comfortable low", 10, 90, RiskLevelLow},
		{"high score with high readiness still high", 90, 95, RiskLevelHigh},
	}
	for _, tc := range cases {
		if got := s.classify(tc.risk, tc.readiness); got != tc.want {
			t.Fatalf("%s: classify(%v, %v) = %q, want %q", tc.name, tc.risk, tc.readiness, got, tc.want)
		}
	}
}

func TestGeneratePlanHighRisk(t *testing.T) {
	s := NewRuleBasedBaseline(testRules(t))

	proposal, err := s.GeneratePlan(context.Background(), map[string]any{
		"risk_score":        85.0,
		"readiness_percent": 15.0,
	})
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if len(proposal.Goals) != 2 {
		t.Fatalf("goals: want 2, got %d", len(proposal.Goals))
	}
	if len(proposal.Interventions) != 2 {
		t.Fatalf("interventions: want 2, got %d", len(proposal.Interventions))
	}
	for i, g := range proposal.Goals {
		if g.ID == "" {
			t.Fatalf("goal %d has empty id", i)
		}
		if g.Timeframe != "3 months" {
			t.Fatalf("goal %d timeframe: want %q, got %q", i, "3 months", g.Timeframe)
		}
		if len(g.AssignedRoles) != 1 || g.AssignedRoles[0] != "client" {
			t.Fatalf("goal %d assigned_roles: want [client], got %v", i, g.AssignedRoles)
		}
	}
	goalIDs := map[string]bool{}
	for _, g := range proposal.Goals {
		goalIDs[g.ID] = true
	}
	for i, iv := range proposal.Interventions {
		if !goalIDs[iv.GoalID] {
			t.Fatalf("intervention %d references unknown goal %q", i, iv.GoalID)
		}
		if iv.Type != "process_improvement" {
			t.Fatalf("intervention %d type: want process_improvement, got %q", i, iv.Type)
		}
		if iv.EstimatedDuration != "4-6 weeks" {
			t.Fatalf("intervention %d duration: want 4-6 weeks, got %q", i, iv.EstimatedDuration)
		}
	}
	if len(proposal.Metadata.SourceTags) != 2 ||
		proposal.Metadata.SourceTags[0] != "rule_engine" ||
		proposal.Metadata.SourceTags[1] != RiskLevelHigh {
		t.Fatalf("source_tags: want [rule_engine high], got %v", proposal.Metadata.SourceTags)
	}
}

func TestGeneratePlanDeterministic(t *testing.T) {
	s := NewRuleBasedBaseline(testRules(t))
	ctx := map[string]any{"risk_score": 60.0, "readiness_percent": 70.0}

	a, err := s.GeneratePlan(context.Background(), ctx)
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	b, err := s.GeneratePlan(context.Background(), ctx)
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if len(a.Goals) != len(b.Goals) {
		t.Fatalf("goal counts differ: %d vs %d", len(a.Goals), len(b.Goals))
	}
	for i := range a.Goals {
		if a.Goals[i].ID != b.Goals[i].ID || a.Goals[i].Title != b.Goals[i].Title {
			t.Fatalf("goal %d differs between runs: %+v vs %+v", i, a.Goals[i], b.Goals[i])
		}
	}
}

func TestGeneratePlanMissingContextFields(t *testing.T) {
	s := NewRuleBasedBaseline(testRules(t))

	if _, err := s.GeneratePlan(context.Background(), nil); err == nil {
		t.Fatalf("nil context: expected error")
	}
	if _, err := s.GeneratePlan(context.Background(), map[string]any{"readiness_percent": 50.0}); err == nil {
		t.Fatalf("missing risk_score: expected error")
	}
	if _, err := s.GeneratePlan(context.Background(), map[string]any{"risk_score": 50.0}); err == nil {
		t.Fatalf("missing readiness_percent: expected error")
	}
}

func TestParseRulesValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"missing level", "high:\n  min: 75\n  goals: [a]\nmedium:\n  min: 50\n  goals: [b]\n"},
		{"unknown level", "high:\n  min: 75\n  goals: [a]\nmedium:\n  min: 50\n  goals: [b]\nlow:\n  min: 0\n  goals: [c]\nsevere:\n  min: 90\n  goals: [d]\n"},
		{"missing min", "high:\n  goals: [a]\nmedium:\n  min: 50\n  goals: [b]\nlow:\n  min: 0\n  goals: [c]\n"},
		{"empty goals", "high:\n  min: 75\n  goals: []\nmedium:\n  min: 50\n  goals: [b]\nlow:\n  min: 0\n  goals: [c]\n"},
		{"not yaml", "{{{{"},
	}
	for _, tc := range cases {
		if _, err := ParseRules([]byte(tc.yaml)); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}

	if _, err := ParseRules([]byte(defaultRulesYAML)); err != nil {
		t.Fatalf("default rules should validate: %v", err)
	}
}
