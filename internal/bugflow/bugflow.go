// Package bugflow checks whether a bug's accumulated metadata permits it to
// advance out of its current phase, producing human-readable blockers when it
// does not.
package bugflow

import (
	"github.com/zulandar/prodline/internal/models"
	"github.com/zulandar/prodline/internal/phase"
	"github.com/zulandar/prodline/internal/review"
)

// CanAdvance evaluates the per-phase metadata rules for moving the bug to
// the next phase in its lifecycle. The transition is permitted only when the
// returned blocker list is empty.
func CanAdvance(bug *models.WorkItem) (bool, []string) {
	var blockers []string

	switch bug.Phase {
	case phase.BugTriage:
		if bug.Triage.Severity == "" {
			blockers = append(blockers, "severity must be set before investigation")
		}
		if bug.Triage.Reproducible == nil {
			blockers = append(blockers, "reproducibility must be recorded before investigation")
		} else if *bug.Triage.Reproducible && bug.Triage.StepsToReproduce == "" {
			blockers = append(blockers, "reproducible bugs need steps to reproduce")
		}
	case phase.BugInvestigating:
		if bug.Investigation.RootCause == "" {
			blockers = append(blockers, "root cause must be recorded before fixing")
		}
	case phase.BugFixing:
		if bug.Fix.Solution == "" {
			blockers = append(blockers, "fix solution must be recorded before verification")
		}
		if bug.ReviewEnabled && !review.Approved(bug.ReviewStatus) {
			blockers = append(blockers, "review must be approved before verification")
		}
	}

	return len(blockers) == 0, blockers
}
