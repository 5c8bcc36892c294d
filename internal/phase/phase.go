// Package phase defines the per-type lifecycle graphs for work items and the
// rules for moving between phases. The tables are static; everything here is
// pure and testable without I/O.
package phase

import "github.com/zulandar/prodline/internal/models"

// Feature phases, in lifecycle order.
const (
	FeatureDesign = "design"
	FeatureBuild  = "build"
	FeatureRefine = "refine"
	FeatureLaunch = "launch"
)

// Bug phases, in lifecycle order.
const (
	BugTriage        = "triage"
	BugInvestigating = "investigating"
	BugFixing        = "fixing"
	BugVerified      = "verified"
)

// Concept phases. Rejected sits outside the primary line and is reachable
// from ideation or research only.
const (
	ConceptIdeation  = "ideation"
	ConceptResearch  = "research"
	ConceptValidated = "validated"
	ConceptRejected  = "rejected"
)

// FieldSpec identifies one field a phase requires or recommends, with
// display metadata for missing-field hints.
type FieldSpec struct {
	Key   string
	Label string
	Hint  string
}

// Config holds the metadata for one phase of one work item type.
type Config struct {
	Label    string
	Terminal bool
	Required []FieldSpec
	Optional []FieldSpec
}

// table is one type's phase graph: the linear order plus per-phase config.
type table struct {
	order   []string
	configs map[string]Config
}

var tables = map[string]table{
	models.TypeFeature: {
		order: []string{FeatureDesign, FeatureBuild, FeatureRefine, FeatureLaunch},
		configs: map[string]Config{
			FeatureDesign: {Label: "Design"},
			FeatureBuild: {
				Label: "Build",
				Required: []FieldSpec{
					{Key: "description", Label: "Description", Hint: "Describe what is being built and for whom"},
					{Key: "acceptance_criteria", Label: "Acceptance criteria", Hint: "List the conditions that mean this feature is done"},
				},
				Optional: []FieldSpec{
					{Key: "business_value", Label: "Business value", Hint: "Why this feature matters"},
					{Key: "target_release", Label: "Target release", Hint: "Release this feature ships in"},
				},
			},
			FeatureRefine: {
				Label: "Refine",
				Required: []FieldSpec{
					{Key: "timeline_items", Label: "Timeline items", Hint: "Add at least one delivery timeline item"},
					{Key: "business_value", Label: "Business value", Hint: "Why this feature matters"},
				},
				Optional: []FieldSpec{
					{Key: "target_release", Label: "Target release", Hint: "Release this feature ships in"},
				},
			},
			FeatureLaunch: {
				Label:    "Launch",
				Terminal: true,
				Required: []FieldSpec{
					{Key: "target_release", Label: "Target release", Hint: "Release this feature ships in"},
				},
			},
		},
	},
	models.TypeBug: {
		order: []string{BugTriage, BugInvestigating, BugFixing, BugVerified},
		configs: map[string]Config{
			BugTriage: {Label: "Triage"},
			BugInvestigating: {
				Label: "Investigating",
				Required: []FieldSpec{
					{Key: "severity", Label: "Severity", Hint: "Set the bug severity"},
					{Key: "reproducible", Label: "Reproducible", Hint: "Record whether the bug reproduces"},
				},
				Optional: []FieldSpec{
					{Key: "expected_behavior", Label: "Expected behavior", Hint: "What should happen"},
					{Key: "actual_behavior", Label: "Actual behavior", Hint: "What happens instead"},
				},
			},
			BugFixing: {
				Label: "Fixing",
				Required: []FieldSpec{
					{Key: "root_cause", Label: "Root cause", Hint: "Record the investigation's root cause"},
				},
			},
			BugVerified: {
				Label:    "Verified",
				Terminal: true,
				Required: []FieldSpec{
					{Key: "fix_solution", Label: "Fix solution", Hint: "Describe how the bug was fixed"},
				},
				Optional: []FieldSpec{
					{Key: "pr_link", Label: "PR link", Hint: "Link the fixing pull request"},
				},
			},
		},
	},
	models.TypeConcept: {
		order: []string{ConceptIdeation, ConceptResearch, ConceptValidated},
		configs: map[string]Config{
			ConceptIdeation: {Label: "Ideation"},
			ConceptResearch: {
				Label: "Research",
				Required: []FieldSpec{
					{Key: "description", Label: "Description", Hint: "Describe the concept"},
					{Key: "hypothesis", Label: "Hypothesis", Hint: "State the hypothesis to validate"},
				},
			},
			ConceptValidated: {
				Label:    "Validated",
				Terminal: true,
				Required: []FieldSpec{
					{Key: "research_notes", Label: "Research notes", Hint: "Summarize the validating research"},
				},
				Optional: []FieldSpec{
					{Key: "hypothesis", Label: "Hypothesis", Hint: "State the hypothesis to validate"},
				},
			},
			ConceptRejected: {Label: "Rejected", Terminal: true},
		},
	},
}

// Types returns the known work item types.
func Types() []string {
	return []string{models.TypeConcept, models.TypeFeature, models.TypeBug}
}

// ValidType reports whether t is a known work item type.
func ValidType(t string) bool {
	_, ok := tables[t]
	return ok
}

// Phases returns the ordered phase list for a type, including branch phases
// like concept's rejected. Returns nil for unknown types.
func Phases(t string) []string {
	tab, ok := tables[t]
	if !ok {
		return nil
	}
	phases := make([]string, len(tab.order))
	copy(phases, tab.order)
	if t == models.TypeConcept {
		phases = append(phases, ConceptRejected)
	}
	return phases
}

// GetConfig returns the config for a type/phase pair.
func GetConfig(t, p string) (Config, bool) {
	tab, ok := tables[t]
	if !ok {
		return Config{}, false
	}
	cfg, ok := tab.configs[p]
	return cfg, ok
}

// Initial returns the starting phase for a type, or "" for unknown types.
func Initial(t string) string {
	tab, ok := tables[t]
	if !ok {
		return ""
	}
	return tab.order[0]
}

// Valid reports whether p is a phase of type t.
func Valid(t, p string) bool {
	_, ok := GetConfig(t, p)
	return ok
}

// IsTerminal reports whether a phase admits no forward transition.
func IsTerminal(t, p string) bool {
	cfg, ok := GetConfig(t, p)
	return ok && cfg.Terminal
}

// Next returns the phase after p in the type's linear order, or "" when p is
// terminal, off the linear order, or unknown.
func Next(t, p string) string {
	tab, ok := tables[t]
	if !ok {
		return ""
	}
	for i, cur := range tab.order {
		if cur == p {
			if i+1 < len(tab.order) {
				return tab.order[i+1]
			}
			return ""
		}
	}
	return ""
}

// CanTransition reports whether moving a work item of type t from phase
// `from` to phase `to` is structurally allowed: forward to the adjacent
// phase, one step backward as a correction, or (concepts only) a branch to
// rejected from any non-terminal phase. Terminal phases admit nothing.
func CanTransition(t, from, to string) bool {
	tab, ok := tables[t]
	if !ok || from == to {
		return false
	}
	if !Valid(t, from) || !Valid(t, to) {
		return false
	}
	if IsTerminal(t, from) {
		return false
	}

	if t == models.TypeConcept && to == ConceptRejected {
		return true
	}
	if to == ConceptRejected {
		return false
	}

	fromIdx, toIdx := -1, -1
	for i, p := range tab.order {
		if p == from {
			fromIdx = i
		}
		if p == to {
			toIdx = i
		}
	}
	if fromIdx < 0 || toIdx < 0 {
		return false
	}
	return toIdx == fromIdx+1 || toIdx == fromIdx-1
}
