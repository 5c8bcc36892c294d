// Package readiness computes how complete a work item's data is relative to
// the requirements of its next phase. The score is advisory for display; the
// orchestrator only enforces it for explicit auto-upgrade requests.
package readiness

import (
	"github.com/zulandar/prodline/internal/models"
	"github.com/zulandar/prodline/internal/phase"
)

// Weighting of required vs optional field completion in the overall percent.
const (
	requiredWeight = 70
	optionalWeight = 30
)

// MissingField describes one required field that is still empty.
type MissingField struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Hint  string `json:"hint"`
}

// Report is the result of a readiness computation against the next phase.
type Report struct {
	CurrentPhase    string         `json:"current_phase"`
	NextPhase       string         `json:"next_phase,omitempty"`
	Percent         int            `json:"readiness_percent"`
	RequiredPercent int            `json:"required_percent"`
	OptionalPercent int            `json:"optional_percent"`
	Missing         []MissingField `json:"missing_fields"`
	CanUpgrade      bool           `json:"can_upgrade"`
	ReviewBlocked   bool           `json:"review_blocked"`
}

// Compute scores the work item against its next phase. Required fields carry
// 70% of the weight, optional fields 30%, each pro-rated by the filled
// fraction of the group. CanUpgrade requires every required field filled and
// the next phase not blocked by an unapproved review gate.
func Compute(item *models.WorkItem, timelineCount int) Report {
	report := Report{CurrentPhase: item.Phase}

	next := phase.Next(item.Type, item.Phase)
	if next == "" {
		return report
	}
	report.NextPhase = next

	cfg, ok := phase.GetConfig(item.Type, next)
	if !ok {
		return report
	}

	requiredFilled := 0
	for _, f := range cfg.Required {
		if fieldFilled(item, f.Key, timelineCount) {
			requiredFilled++
		} else {
			report.Missing = append(report.Missing, MissingField{Field: f.Key, Label: f.Label, Hint: f.Hint})
		}
	}
	optionalFilled := 0
	for _, f := range cfg.Optional {
		if fieldFilled(item, f.Key, timelineCount) {
			optionalFilled++
		}
	}

	report.RequiredPercent = groupPercent(requiredFilled, len(cfg.Required))
	report.OptionalPercent = groupPercent(optionalFilled, len(cfg.Optional))
	report.Percent = (report.RequiredPercent*requiredWeight + report.OptionalPercent*optionalWeight) / 100

	report.ReviewBlocked = reviewBlocked(item, next)
	report.CanUpgrade = report.RequiredPercent == 100 && !report.ReviewBlocked
	return report
}

// groupPercent returns the filled fraction of a field group as 0-100. An
// empty group counts as fully complete so it contributes its whole weight.
func groupPercent(filled, total int) int {
	if total == 0 {
		return 100
	}
	return filled * 100 / total
}

// reviewBlocked reports whether the review gate vetoes entering next.
func reviewBlocked(item *models.WorkItem, next string) bool {
	if !item.ReviewEnabled || item.Type != models.TypeBug || next != phase.BugVerified {
		return false
	}
	return item.ReviewStatus == nil || *item.ReviewStatus != models.ReviewApproved
}

// fieldFilled resolves a phase table field key against the work item's
// columns. Unknown keys count as unfilled so a table typo surfaces in tests
// rather than silently passing.
func fieldFilled(item *models.WorkItem, key string, timelineCount int) bool {
	switch key {
	case "description":
		return item.Description != ""
	case "acceptance_criteria":
		return item.AcceptanceCriteria != ""
	case "business_value":
		return item.BusinessValue != ""
	case "target_release":
		return item.TargetRelease != ""
	case "timeline_items":
		return timelineCount > 0
	case "hypothesis":
		return item.Hypothesis != ""
	case "research_notes":
		return item.ResearchNotes != ""
	case "severity":
		return item.Triage.Severity != ""
	case "reproducible":
		return item.Triage.Reproducible != nil
	case "steps_to_reproduce":
		return item.Triage.StepsToReproduce != ""
	case "expected_behavior":
		return item.Triage.ExpectedBehavior != ""
	case "actual_behavior":
		return item.Triage.ActualBehavior != ""
	case "root_cause":
		return item.Investigation.RootCause != ""
	case "fix_solution":
		return item.Fix.Solution != ""
	case "pr_link":
		return item.Fix.PRLink != ""
	default:
		return false
	}
}
