package types

// Goal and Intervention are value objects: they are born and die with the
// ActionPlan version that owns them and are stored inline as JSONB documents,
// never as independently addressable rows.

type Goal struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	TargetMetrics map[string]any `json:"target_metrics,omitempty"`
	Timeframe     string         `json:"timeframe,omitempty"`
	AssignedRoles []string       `json:"assigned_roles"`
}

type Intervention struct {
	ID                string   `json:"id"`
	GoalID            string   `json:"goal_id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Type              string   `json:"type"`
	ResourcesRequired []string `json:"resources_required"`
	EstimatedDuration string   `json:"estimated_duration,omitempty"`
}

const (
	InterventionTypeTraining           = "training"
	InterventionTypeProcessImprovement = "process_improvement"
	InterventionTypeToolAdoption       = "tool_adoption"
)

// ItemChange records which fields of a goal or intervention differ between
// two plan versions. Values are not captured, only field names.
type ItemChange struct {
	ID            string   `json:"id"`
	FieldsChanged []string `json:"fields_changed"`
}

type DiffEntry struct {
	Goals         []Goal         `json:"goals"`
	Interventions []Intervention `json:"interventions"`
}

type ChangedEntry struct {
	Goals         []ItemChange `json:"goals"`
	Interventions []ItemChange `json:"interventions"`
}

// DiffResult is the structural delta between two plan versions. Output order
// within each list is unspecified; consumers must not depend on it.
type DiffResult struct {
	Added   DiffEntry    `json:"added"`
	Removed DiffEntry    `json:"removed"`
	Changed ChangedEntry `json:"changed"`
}

// PlanProposal is what a recommendation strategy produces: plan content plus
// the rationale for it, before any version number or persistence concerns.
type PlanProposal struct {
	Goals         []Goal               `json:"goals"`
	Interventions []Intervention       `json:"interventions"`
	Metadata      PlanProposalMetadata `json:"metadata"`
}

type PlanProposalMetadata struct {
	Rationale         []string       `json:"rationale"`
	SourceTags        []string       `json:"source_tags"`
	GenerationContext map[string]any `json:"generation_context"`
}
