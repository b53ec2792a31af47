package plandiff

import (
	"testing"

	"github.com/clearbridge/clearbridge-backend/internal/types"
)

func planWith(goals []types.Goal, ivs []types.Intervention) *types.ActionPlan {
	return &types.ActionPlan{Goals: goals, Interventions: ivs}
}

func TestComputeIdenticalPlansIsEmpty(t *testing.T) {
	p := planWith(
		[]types.Goal{{ID: "goal_1", Title: "Stabilize controls", AssignedRoles: []string{"client"}}},
		[]types.Intervention{{ID: "intervention_1", GoalID: "goal_1", Type: types.InterventionTypeProcessImprovement}},
	)
	d := Compute(p, p)
	if len(d.Added.Goals) != 0 || len(d.Added.Interventions) != 0 {
		t.Fatalf("added: want empty, got %+v", d.Added)
	}
	if len(d.Removed.Goals) != 0 || len(d.Removed.Interventions) != 0 {
		t.Fatalf("removed: want empty, got %+v", d.Removed)
	}
	if len(d.Changed.Goals) != 0 || len(d.Changed.Interventions) != 0 {
		t.Fatalf("changed: want empty, got %+v", d.Changed)
	}
}

func TestComputeAddedAndRemovedByID(t *testing.T) {
	from := planWith(
		[]types.Goal{{ID: "goal_1", Title: "a"}, {ID: "goal_2", Title: "b"}},
		[]types.Intervention{{ID: "iv_1", GoalID: "goal_1"}},
	)
	to := planWith(
		[]types.Goal{{ID: "goal_2", Title: "b"}, {ID: "goal_3", Title: "c"}},
		[]types.Intervention{{ID: "iv_1", GoalID: "goal_1"}, {ID: "iv_2", GoalID: "goal_3"}},
	)

	d := Compute(from, to)
	if len(d.Added.Goals) != 1 || d.Added.Goals[0].ID != "goal_3" {
		t.Fatalf("added goals: want [goal_3], got %+v", d.Added.Goals)
	}
	if len(d.Removed.Goals) != 1 || d.Removed.Goals[0].ID != "goal_1" {
		t.Fatalf("removed goals: want [goal_1], got %+v", d.Removed.Goals)
	}
	if len(d.Added.Interventions) != 1 || d.Added.Interventions[0].ID != "iv_2" {
		t.Fatalf("added interventions: want [iv_2], got %+v", d.Added.Interventions)
	}
	if len(d.Removed.Interventions) != 0 {
		t.Fatalf("removed interventions: want empty, got %+v", d.Removed.Interventions)
	}
	if len(d.Changed.Goals) != 0 {
		t.Fatalf("changed goals: want empty, got %+v", d.Changed.Goals)
	}
}

func TestComputeChangedListsOnlyDifferingFields(t *testing.T) {
	from := planWith(
		[]types.Goal{{
			ID:            "goal_1",
			Title:         "Old title",
			Description:   "same",
			Timeframe:     "3 months",
			AssignedRoles: []string{"client"},
		}},
		[]types.Intervention{{
			ID:                "iv_1",
			GoalID:            "goal_1",
			Title:             "same",
			Type:              types.InterventionTypeTraining,
			ResourcesRequired: []string{"facilitator"},
			EstimatedDuration: "4-6 weeks",
		}},
	)
	to := planWith(
		[]types.Goal{{
			ID:            "goal_1",
			Title:         "New title",
			Description:   "same",
			Timeframe:     "6 months",
			AssignedRoles: []string{"client"},
		}},
		[]types.Intervention{{
			ID:                "iv_1",
			GoalID:            "goal_1",
			Title:             "same",
			Type:              types.InterventionTypeProcessImprovement,
			ResourcesRequired: []string{"facilitator"},
			EstimatedDuration: "4-6 weeks",
		}},
	)

	d := Compute(from, to)
	if len(d.Changed.Goals) != 1 {
		t.Fatalf("changed goals: want 1, got %d", len(d.Changed.Goals))
	}
	gc := d.Changed.Goals[0]
	if gc.ID != "goal_1" {
		t.Fatalf("changed goal id: want goal_1, got %s", gc.ID)
	}
	wantFields := map[string]bool{"title": true, "timeframe": true}
	if len(gc.FieldsChanged) != len(wantFields) {
		t.Fatalf("goal fields_changed: want %v, got %v", wantFields, gc.FieldsChanged)
	}
	for _, f := range gc.FieldsChanged {
		if !wantFields[f] {
			t.Fatalf("unexpected goal field %q in %v", f, gc.FieldsChanged)
		}
	}

	if len(d.Changed.Interventions) != 1 {
		t.Fatalf("changed interventions: want 1, got %d", len(d.Changed.Interventions))
	}
	ic := d.Changed.Interventions[0]
	if len(ic.FieldsChanged) != 1 || ic.FieldsChanged[0] != "type" {
		t.Fatalf("intervention fields_changed: want [type], got %v", ic.FieldsChanged)
	}
}

func TestComputeChangedMembershipIsSymmetric(t *testing.T) {
	from := planWith([]types.Goal{{ID: "goal_1", Title: "a"}, {ID: "goal_2", Title: "x"}}, nil)
	to := planWith([]types.Goal{{ID: "goal_1", Title: "b"}, {ID: "goal_2", Title: "x"}}, nil)

	forward := Compute(from, to)
	backward := Compute(to, from)

	ids := func(changes []types.ItemChange) map[string]bool {
		out := map[string]bool{}
		for _, c := range changes {
			out[c.ID] = true
		}
		return out
	}
	f, b := ids(forward.Changed.Goals), ids(backward.Changed.Goals)
	if len(f) != len(b) {
		t.Fatalf("changed id sets differ: forward=%v backward=%v", f, b)
	}
	for id := range f {
		if !b[id] {
			t.Fatalf("id %s changed forward but not backward", id)
		}
	}
}

func TestComputeTargetMetricsValueEquality(t *testing.T) {
	from := planWith([]types.Goal{{ID: "goal_1", TargetMetrics: map[string]any{"score": 10.0}}}, nil)
	to := planWith([]types.Goal{{ID: "goal_1", TargetMetrics: map[string]any{"score": 20.0}}}, nil)

	d := Compute(from, to)
	if len(d.Changed.Goals) != 1 || d.Changed.Goals[0].FieldsChanged[0] != "target_metrics" {
		t.Fatalf("want target_metrics change, got %+v", d.Changed.Goals)
	}

	// nil and empty maps must not register as a change
	from = planWith([]types.Goal{{ID: "goal_1"}}, nil)
	to = planWith([]types.Goal{{ID: "goal_1", TargetMetrics: map[string]any{}}}, nil)
	d = Compute(from, to)
	if len(d.Changed.Goals) != 0 {
		t.Fatalf("nil vs empty metrics should not change, got %+v", d.Changed.Goals)
	}
}

func TestComputeAssignedRolesOrderInsensitive(t *testing.T) {
	from := planWith([]types.Goal{{ID: "goal_1", AssignedRoles: []string{"client", "coach"}}}, nil)
	to := planWith([]types.Goal{{ID: "goal_1", AssignedRoles: []string{"coach", "client"}}}, nil)

	d := Compute(from, to)
	if len(d.Changed.Goals) != 0 {
		t.Fatalf("reordered assigned_roles should not change, got %+v", d.Changed.Goals)
	}

	to = planWith([]types.Goal{{ID: "goal_1", AssignedRoles: []string{"coach", "sponsor"}}}, nil)
	d = Compute(from, to)
	if len(d.Changed.Goals) != 1 || d.Changed.Goals[0].FieldsChanged[0] != "assigned_roles" {
		t.Fatalf("different assigned_roles should change, got %+v", d.Changed.Goals)
	}

	// resources_required stays an ordered list
	from = planWith(nil, []types.Intervention{{ID: "iv_1", ResourcesRequired: []string{"budget", "facilitator"}}})
	to = planWith(nil, []types.Intervention{{ID: "iv_1", ResourcesRequired: []string{"facilitator", "budget"}}})
	d = Compute(from, to)
	if len(d.Changed.Interventions) != 1 || d.Changed.Interventions[0].FieldsChanged[0] != "resources_required" {
		t.Fatalf("reordered resources_required should change, got %+v", d.Changed.Interventions)
	}
}

func TestComputeNilPlans(t *testing.T) {
	p := planWith([]types.Goal{{ID: "goal_1"}}, []types.Intervention{{ID: "iv_1"}})

	d := Compute(nil, p)
	if len(d.Added.Goals) != 1 || len(d.Added.Interventions) != 1 {
		t.Fatalf("nil from: everything should be added, got %+v", d.Added)
	}
	d = Compute(p, nil)
	if len(d.Removed.Goals) != 1 || len(d.Removed.Interventions) != 1 {
		t.Fatalf("nil to: everything should be removed, got %+v", d.Removed)
	}
	d = Compute(nil, nil)
	if len(d.Added.Goals) != 0 || len(d.Removed.Goals) != 0 || len(d.Changed.Goals) != 0 {
		t.Fatalf("nil/nil should be empty, got %+v", d)
	}
}
