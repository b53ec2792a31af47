package strategy

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	RiskLevelHigh   = "high"
	RiskLevelMedium = "medium"
	RiskLevelLow    = "low"
)

type LevelRule struct {
	Min   *float64 `yaml:"min"`
	Goals []string `yaml:"goals"`
}

// RulesTable maps each risk level to its score threshold and the ordered
// goal titles proposed for clients in that bucket.
type RulesTable struct {
	High   LevelRule
	Medium LevelRule
	Low    LevelRule
}

const defaultRulesYAML = `
high:
  min: 75
  goals:
    - "Stabilize critical risk controls"
    - "Establish an incident response routine"
medium:
  min: 50
  goals:
    - "Close priority capability gaps"
    - "Formalize periodic risk reviews"
low:
  min: 0
  goals:
    - "Maintain the current control baseline"
`

// LoadRules reads the threshold table from path, or the built-in default
// when path is empty. Structural problems are configuration errors and are
// reported here, at load time, never at request time.
func LoadRules(path string) (RulesTable, error) {
	raw := []byte(defaultRulesYAML)
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return RulesTable{}, fmt.Errorf("read rules file %s: %w", path, err)
		}
		raw = b
	}
	return ParseRules(raw)
}

func ParseRules(raw []byte) (RulesTable, error) {
	var doc map[string]LevelRule
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return RulesTable{}, fmt.Errorf("parse rules yaml: %w", err)
	}

	want := map[string]bool{RiskLevelHigh: true, RiskLevelMedium: true, RiskLevelLow: true}
	for key := range doc {
		if !want[key] {
			return RulesTable{}, fmt.Errorf("rules table: unknown level %q", key)
		}
	}
	var missing []string
	for key := range want {
		if _, ok := doc[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return RulesTable{}, fmt.Errorf("rules table: missing levels %v", missing)
	}

	for _, key := range []string{RiskLevelHigh, RiskLevelMedium, RiskLevelLow} {
		rule := doc[key]
		if rule.Min == nil {
			return RulesTable{}, fmt.Errorf("rules table: level %q has no numeric min", key)
		}
		if len(rule.Goals) == 0 {
			return RulesTable{}, fmt.Errorf("rules table: level %q has an empty goals list", key)
		}
	}

	return RulesTable{
		High:   doc[RiskLevelHigh],
		Medium: doc[RiskLevelMedium],
		Low:    doc[RiskLevelLow],
	}, nil
}

func (t RulesTable) goalsFor(level string) []string {
	switch level {
	case RiskLevelHigh:
		return t.High.Goals
	case RiskLevelMedium:
		return t.Medium.Goals
	default:
		return t.Low.Goals
	}
}
