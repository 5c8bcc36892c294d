package bugflow

import (
	"strings"
	"testing"

	"github.com/zulandar/prodline/internal/models"
	"github.com/zulandar/prodline/internal/phase"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCanAdvance_Triage(t *testing.T) {
	tests := []struct {
		name     string
		triage   models.BugTriage
		want     bool
		blockers int
	}{
		{"empty triage", models.BugTriage{}, false, 2},
		{"severity only", models.BugTriage{Severity: "high"}, false, 1},
		{"not reproducible", models.BugTriage{Severity: "high", Reproducible: boolPtr(false)}, true, 0},
		{"reproducible without steps", models.BugTriage{Severity: "high", Reproducible: boolPtr(true)}, false, 1},
		{"reproducible with steps", models.BugTriage{
			Severity:         "high",
			Reproducible:     boolPtr(true),
			StepsToReproduce: "open two tabs, submit both",
		}, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bug := &models.WorkItem{Type: models.TypeBug, Phase: phase.BugTriage, Triage: tt.triage}
			ok, blockers := CanAdvance(bug)
			if ok != tt.want {
				t.Errorf("CanAdvance = %v, want %v (blockers: %v)", ok, tt.want, blockers)
			}
			if len(blockers) != tt.blockers {
				t.Errorf("blockers = %v, want %d", blockers, tt.blockers)
			}
		})
	}
}

func TestCanAdvance_Investigating(t *testing.T) {
	bug := &models.WorkItem{Type: models.TypeBug, Phase: phase.BugInvestigating}
	ok, blockers := CanAdvance(bug)
	if ok {
		t.Error("CanAdvance = true without root cause")
	}
	if len(blockers) != 1 || !strings.Contains(blockers[0], "root cause") {
		t.Errorf("blockers = %v, want root cause blocker", blockers)
	}

	bug.Investigation.RootCause = "race between cart writes"
	if ok, blockers := CanAdvance(bug); !ok {
		t.Errorf("CanAdvance = false with root cause set; blockers %v", blockers)
	}
}

func TestCanAdvance_Fixing(t *testing.T) {
	tests := []struct {
		name          string
		solution      string
		reviewEnabled bool
		reviewStatus  *string
		want          bool
	}{
		{"no solution", "", false, nil, false},
		{"solution, no gate", "serialize cart writes", false, nil, true},
		{"solution, gate unapproved", "serialize cart writes", true, nil, false},
		{"solution, gate pending", "serialize cart writes", true, strPtr(models.ReviewPending), false},
		{"solution, gate rejected", "serialize cart writes", true, strPtr(models.ReviewRejected), false},
		{"solution, gate approved", "serialize cart writes", true, strPtr(models.ReviewApproved), true},
		{"no solution, gate approved", "", true, strPtr(models.ReviewApproved), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bug := &models.WorkItem{
				Type:          models.TypeBug,
				Phase:         phase.BugFixing,
				Fix:           models.BugFix{Solution: tt.solution},
				ReviewEnabled: tt.reviewEnabled,
				ReviewStatus:  tt.reviewStatus,
			}
			ok, blockers := CanAdvance(bug)
			if ok != tt.want {
				t.Errorf("CanAdvance = %v, want %v (blockers: %v)", ok, tt.want, blockers)
			}
		})
	}
}

func TestCanAdvance_TerminalPhaseHasNoRules(t *testing.T) {
	bug := &models.WorkItem{Type: models.TypeBug, Phase: phase.BugVerified}
	ok, blockers := CanAdvance(bug)
	if !ok || len(blockers) != 0 {
		t.Errorf("CanAdvance(verified) = %v %v, want true with no blockers", ok, blockers)
	}
}
