package lifecycle

import (
	"fmt"
	"strings"

	"github.com/zulandar/prodline/internal/models"
	"github.com/zulandar/prodline/internal/review"
	"gorm.io/gorm"
)

// Actor identifies the caller of a review action. The role is supplied by
// the external authorization provider; the engine only applies its policy.
type Actor struct {
	ID   string
	Role string
}

// RequestReview moves the item's review status from none (or rejected) to
// pending and records the requester.
func RequestReview(db *gorm.DB, id string, actor Actor) (*models.WorkItem, error) {
	return applyReviewAction(db, id, actor, review.ActionRequest, "")
}

// ApproveReview approves a pending review. Approval is final for the cycle.
func ApproveReview(db *gorm.DB, id string, actor Actor) (*models.WorkItem, error) {
	return applyReviewAction(db, id, actor, review.ActionApprove, "")
}

// RejectReview rejects a pending review with a reason. The item's phase is
// untouched; a new request cycle is needed before the gated phase opens.
func RejectReview(db *gorm.DB, id string, actor Actor, reason string) (*models.WorkItem, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, validationErr("review rejection requires a reason", "reason")
	}
	return applyReviewAction(db, id, actor, review.ActionReject, reason)
}

// CancelReview withdraws a pending review request.
func CancelReview(db *gorm.DB, id string, actor Actor) (*models.WorkItem, error) {
	return applyReviewAction(db, id, actor, review.ActionCancel, "")
}

// ReviewLog returns the item's review audit trail, oldest first.
func ReviewLog(db *gorm.DB, id string) ([]models.ReviewEvent, error) {
	if _, err := Get(db, id); err != nil {
		return nil, err
	}
	var events []models.ReviewEvent
	if err := db.Where("work_item_id = ?", id).Order("created_at ASC, id ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("lifecycle: review log for %s: %w", id, err)
	}
	return events, nil
}

// applyReviewAction validates legality and role policy, then writes the new
// status and an audit event in one transaction. The status write is
// conditioned on the status read just before, so racing actions conflict.
func applyReviewAction(db *gorm.DB, id string, actor Actor, action, reason string) (*models.WorkItem, error) {
	item, err := Get(db, id)
	if err != nil {
		return nil, err
	}
	if !item.ReviewEnabled {
		return nil, validationErr(fmt.Sprintf("review is not enabled for work item %s", id), "review_enabled")
	}
	if !review.Allowed(item.ReviewStatus, action) {
		return nil, validationErr(fmt.Sprintf("review %s is not valid while status is %s", action, statusLabel(item.ReviewStatus)))
	}
	if !review.RoleAllowed(action, actor.Role, actor.ID, item.ReviewRequestedBy) {
		return nil, permissionErr(fmt.Sprintf("role %q may not %s reviews", actor.Role, action))
	}

	newStatus := review.Apply(item.ReviewStatus, action)
	updates := map[string]interface{}{"review_status": newStatus}
	switch action {
	case review.ActionRequest:
		updates["review_requested_by"] = actor.ID
	case review.ActionCancel:
		updates["review_requested_by"] = ""
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.WorkItem{}).Where("id = ?", id)
		if item.ReviewStatus == nil {
			q = q.Where("review_status IS NULL")
		} else {
			q = q.Where("review_status = ?", *item.ReviewStatus)
		}
		res := q.Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("lifecycle: review %s on %s: %w", action, id, res.Error)
		}
		if res.RowsAffected == 0 {
			return conflictErr(fmt.Sprintf("review status of %s changed during %s", id, action))
		}

		event := models.ReviewEvent{
			WorkItemID: id,
			Action:     action,
			Actor:      actor.ID,
			Role:       actor.Role,
			Reason:     reason,
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("lifecycle: record review event for %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Get(db, id)
}

func statusLabel(status *string) string {
	if status == nil {
		return "none"
	}
	return *status
}
