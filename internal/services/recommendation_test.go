package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/clearbridge/clearbridge-backend/internal/types"
)

func TestGenerateRecommendationCreatesSuggestedPlan(t *testing.T) {
	env := newTestEnv(t)
	client := env.createClient(t, 85, 15)

	plan, err := env.recommender.GenerateRecommendation(context.Background(), client.ID)
	if err != nil {
		t.Fatalf("GenerateRecommendation: %v", err)
	}
	if plan.Version != 1 {
		t.Fatalf("version: want 1, got %d", plan.Version)
	}
	if plan.Status != types.PlanStatusSuggested {
		t.Fatalf("status: want suggested, got %s", plan.Status)
	}
	if plan.GeneratedByType != types.GeneratedByRuleEngine {
		t.Fatalf("generated_by_type: want rule_engine, got %s", plan.GeneratedByType)
	}
	if plan.SupersedesID != nil {
		t.Fatalf("supersedes_id should be unset at creation, got %v", plan.SupersedesID)
	}
	if len(plan.Goals) != 2 || len(plan.Interventions) != 2 {
		t.Fatalf("high-risk plan: want 2 goals and 2 interventions, got %d/%d", len(plan.Goals), len(plan.Interventions))
	}

	stored, err := env.plans.GetPlan(context.Background(), plan.ID)
	if err != nil {
		t.Fatalf("GetPlan: %v", err)
	}
	if stored.Status != types.PlanStatusSuggested {
		t.Fatalf("stored status: want suggested, got %s", stored.Status)
	}
	if got := env.countEvents(t, types.EventActionPlanSuggested); got != 1 {
		t.Fatalf("ActionPlanSuggested events: want 1, got %d", got)
	}
}

func TestGenerateRecommendationVersionsAreMonotonic(t *testing.T) {
	env := newTestEnv(t)
	client := env.createClient(t, 60, 70)

	seen := map[int]bool{}
	prev := 0
	for i := 0; i < 4; i++ {
		plan, err := env.recommender.GenerateRecommendation(context.Background(), client.ID)
		if err != nil {
			t.Fatalf("GenerateRecommendation %d: %v", i, err)
		}
		if plan.Version <= prev {
			t.Fatalf("version %d not strictly increasing after %d", plan.Version, prev)
		}
		if seen[plan.Version] {
			t.Fatalf("version %d reused", plan.Version)
		}
		seen[plan.Version] = true
		prev = plan.Version
	}
}

func TestGenerateRecommendationContextUnavailable(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.recommender.GenerateRecommendation(context.Background(), uuid.New())
	if !errors.Is(err, types.ErrContextUnavailable) {
		t.Fatalf("want ErrContextUnavailable, got %v", err)
	}
	if got := env.countPlans(t); got != 0 {
		t.Fatalf("no plan should be persisted, found %d", got)
	}
}

func TestGenerateRecommendationStrategyFailureWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	client := env.createClient(t, 85, 15)

	failing := &fakeStrategy{err: fmt.Errorf("rule table exploded")}
	recommender := NewPlanRecommenderService(env.db, env.log, env.planRepo, env.events, env.provider, failing, env.locks)

	_, err := recommender.GenerateRecommendation(context.Background(), client.ID)
	if !errors.Is(err, types.ErrRecommendationFailed) {
		t.Fatalf("want ErrRecommendationFailed, got %v", err)
	}
	if failing.calls != 1 {
		t.Fatalf("strategy calls: want 1, got %d", failing.calls)
	}
	if got := env.countPlans(t); got != 0 {
		t.Fatalf("no partial plan may be persisted, found %d", got)
	}
	if got := env.countEvents(t, types.EventActionPlanSuggested); got != 0 {
		t.Fatalf("no event may be recorded, found %d", got)
	}
}

func TestGenerateRecommendationRejectsInvalidProposal(t *testing.T) {
	env := newTestEnv(t)
	client := env.createClient(t, 85, 15)

	// intervention referencing a goal outside the proposal
	bad := &fakeStrategy{proposal: &types.PlanProposal{
		Goals:         []types.Goal{{ID: "goal_1", Title: "a"}},
		Interventions: []types.Intervention{{ID: "iv_1", GoalID: "goal_9"}},
	}}
	recommender := NewPlanRecommenderService(env.db, env.log, env.planRepo, env.events, env.provider, bad, env.locks)

	_, err := recommender.GenerateRecommendation(context.Background(), client.ID)
	if !errors.Is(err, types.ErrRecommendationFailed) {
		t.Fatalf("want ErrRecommendationFailed, got %v", err)
	}
	if got := env.countPlans(t); got != 0 {
		t.Fatalf("no plan should be persisted, found %d", got)
	}
}
