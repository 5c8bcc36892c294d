package lifecycle

import (
	"fmt"
	"strings"

	"github.com/zulandar/prodline/internal/bugflow"
	"github.com/zulandar/prodline/internal/models"
	"github.com/zulandar/prodline/internal/phase"
	"github.com/zulandar/prodline/internal/readiness"
	"gorm.io/gorm"
)

// MinRejectionReason is the shortest acceptable concept rejection reason.
const MinRejectionReason = 10

// TransitionPhase moves a work item to target, conditioned on the item still
// being in expected at write time. Exactly one of two concurrent callers
// racing the same transition succeeds; the other gets a conflict. A request
// that is structurally illegal from the caller's expected phase is a
// validation failure regardless of where the item actually is.
func TransitionPhase(db *gorm.DB, id, target, expected string) (*models.WorkItem, error) {
	item, err := Get(db, id)
	if err != nil {
		return nil, err
	}
	if !phase.Valid(item.Type, target) {
		return nil, validationErr(fmt.Sprintf("%q is not a phase of type %s", target, item.Type), "phase")
	}
	if !phase.CanTransition(item.Type, expected, target) {
		return nil, validationErr(fmt.Sprintf("cannot move %s from %q to %q", item.Type, expected, target), "phase")
	}
	if item.Phase != expected {
		return nil, conflictErr(fmt.Sprintf("work item %s is in phase %q, expected %q", id, item.Phase, expected))
	}
	if err := checkGates(item, target); err != nil {
		return nil, err
	}

	res := db.Model(&models.WorkItem{}).
		Where("id = ? AND phase = ?", id, expected).
		Update("phase", target)
	if res.Error != nil {
		return nil, fmt.Errorf("lifecycle: transition %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, conflictErr(fmt.Sprintf("work item %s changed phase during transition to %q", id, target))
	}
	return Get(db, id)
}

// checkGates applies the type-specific data gates for a move out of the
// item's current phase. Structural legality has already been established.
func checkGates(item *models.WorkItem, target string) error {
	// Gates apply to forward movement only; backward corrections are free.
	if target != phase.Next(item.Type, item.Phase) && target != phase.ConceptRejected {
		return nil
	}

	if item.Type == models.TypeBug {
		if ok, blockers := bugflow.CanAdvance(item); !ok {
			return validationErr(
				fmt.Sprintf("bug cannot advance to %q: %s", target, strings.Join(blockers, "; ")),
				blockers...)
		}
	}

	if item.Type == models.TypeConcept && target == phase.ConceptRejected {
		if len(strings.TrimSpace(item.RejectionReason)) < MinRejectionReason {
			return validationErr(
				fmt.Sprintf("rejection requires a reason of at least %d characters; use the reject operation", MinRejectionReason),
				"rejection_reason")
		}
	}
	return nil
}

// AutoUpgrade re-runs the readiness calculation server-side and advances the
// item to its next phase only when every required field is complete and the
// review gate does not block it.
func AutoUpgrade(db *gorm.DB, id string) (*models.WorkItem, error) {
	item, err := Get(db, id)
	if err != nil {
		return nil, err
	}
	next := phase.Next(item.Type, item.Phase)
	if next == "" {
		return nil, validationErr(fmt.Sprintf("work item %s has no next phase after %q", id, item.Phase), "phase")
	}

	count, err := timelineCount(db, id)
	if err != nil {
		return nil, err
	}
	report := readiness.Compute(item, count)
	if !report.CanUpgrade {
		if report.ReviewBlocked {
			return nil, incompleteErr(fmt.Sprintf("cannot auto-upgrade to %q: review not approved", next))
		}
		fields := make([]string, 0, len(report.Missing))
		for _, m := range report.Missing {
			fields = append(fields, m.Field)
		}
		return nil, incompleteErr(
			fmt.Sprintf("cannot auto-upgrade to %q: required fields incomplete", next),
			fields...)
	}

	return TransitionPhase(db, id, next, item.Phase)
}

// Readiness loads the item and its timeline count and returns the advisory
// readiness report for its next phase.
func Readiness(db *gorm.DB, id string) (*readiness.Report, error) {
	item, err := Get(db, id)
	if err != nil {
		return nil, err
	}
	count, err := timelineCount(db, id)
	if err != nil {
		return nil, err
	}
	report := readiness.Compute(item, count)
	return &report, nil
}

func timelineCount(db *gorm.DB, workItemID string) (int, error) {
	var count int64
	if err := db.Model(&models.TimelineItem{}).Where("work_item_id = ?", workItemID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("lifecycle: count timeline items for %s: %w", workItemID, err)
	}
	return int(count), nil
}
