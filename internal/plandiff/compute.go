// Package plandiff computes the structural delta between two action plan
// versions. It is pure: no state, no store access, never fails.
package plandiff

import (
	"reflect"
	"sort"

	"github.com/clearbridge/clearbridge-backend/internal/types"
)

// Compute diffs the goal and intervention sets of two plans, keyed by item
// id. Added and removed carry the full item; changed carries only the names
// of the differing fields. Output order is unspecified.
func Compute(from, to *types.ActionPlan) types.DiffResult {
	var fromGoals, toGoals []types.Goal
	var fromIvs, toIvs []types.Intervention
	if from != nil {
		fromGoals = from.Goals
		fromIvs = from.Interventions
	}
	if to != nil {
		toGoals = to.Goals
		toIvs = to.Interventions
	}

	result := types.DiffResult{
		Added:   types.DiffEntry{Goals: []types.Goal{}, Interventions: []types.Intervention{}},
		Removed: types.DiffEntry{Goals: []types.Goal{}, Interventions: []types.Intervention{}},
		Changed: types.ChangedEntry{Goals: []types.ItemChange{}, Interventions: []types.ItemChange{}},
	}

	fromGoalsByID := make(map[string]types.Goal, len(fromGoals))
	for _, g := range fromGoals {
		fromGoalsByID[g.ID] = g
	}
	toGoalsByID := make(map[string]types.Goal, len(toGoals))
	for _, g := range toGoals {
		toGoalsByID[g.ID] = g
	}

	for _, g := range toGoals {
		old, ok := fromGoalsByID[g.ID]
		if !ok {
			result.Added.Goals = append(result.Added.Goals, g)
			continue
		}
		if fields := goalFieldsChanged(old, g); len(fields) > 0 {
			result.Changed.Goals = append(result.Changed.Goals, types.ItemChange{ID: g.ID, FieldsChanged: fields})
		}
	}
	for _, g := range fromGoals {
		if _, ok := toGoalsByID[g.ID]; !ok {
			result.Removed.Goals = append(result.Removed.Goals, g)
		}
	}

	fromIvsByID := make(map[string]types.Intervention, len(fromIvs))
	for _, iv := range fromIvs {
		fromIvsByID[iv.ID] = iv
	}
	toIvsByID := make(map[string]types.Intervention, len(toIvs))
	for _, iv := range toIvs {
		toIvsByID[iv.ID] = iv
	}

	for _, iv := range toIvs {
		old, ok := fromIvsByID[iv.ID]
		if !ok {
			result.Added.Interventions = append(result.Added.Interventions, iv)
			continue
		}
		if fields := interventionFieldsChanged(old, iv); len(fields) > 0 {
			result.Changed.Interventions = append(result.Changed.Interventions, types.ItemChange{ID: iv.ID, FieldsChanged: fields})
		}
	}
	for _, iv := range fromIvs {
		if _, ok := toIvsByID[iv.ID]; !ok {
			result.Removed.Interventions = append(result.Removed.Interventions, iv)
		}
	}

	return result
}

func goalFieldsChanged(a, b types.Goal) []string {
	var fields []string
	if a.Title != b.Title {
		fields = append(fields, "title")
	}
	if a.Description != b.Description {
		fields = append(fields, "description")
	}
	if !equalValues(a.TargetMetrics, b.TargetMetrics) {
		fields = append(fields, "target_metrics")
	}
	if a.Timeframe != b.Timeframe {
		fields = append(fields, "timeframe")
	}
	if !equalStringSets(a.AssignedRoles, b.AssignedRoles) {
		fields = append(fields, "assigned_roles")
	}
	return fields
}

func interventionFieldsChanged(a, b types.Intervention) []string {
	var fields []string
	if a.Title != b.Title {
		fields = append(fields, "title")
	}
	if a.Description != b.Description {
		fields = append(fields, "description")
	}
	if a.Type != b.Type {
		fields = append(fields, "type")
	}
	if !equalStrings(a.ResourcesRequired, b.ResourcesRequired) {
		fields = append(fields, "resources_required")
	}
	if a.EstimatedDuration != b.EstimatedDuration {
		fields = append(fields, "estimated_duration")
	}
	return fields
}

// Order matters for resources_required, which is an ordered list.
func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// assigned_roles is a set, so a reordering is not a change.
func equalStringSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	return equalStrings(as, bs)
}

// Treats nil and empty as equal so a round trip through the store does not
// register as a change.
func equalValues(a, b map[string]any) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}
