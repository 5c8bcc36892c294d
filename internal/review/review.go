// Package review implements the optional human-approval sub-workflow that
// can veto a phase transition. It only decides which actions are legal for a
// given status and role; persisting the outcome is the orchestrator's job.
package review

import "github.com/zulandar/prodline/internal/models"

// Review gate actions.
const (
	ActionRequest = "request"
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionCancel  = "cancel"
)

// Roles with elevated review privileges. The caller's role comes from the
// external authorization provider; this package only encodes the policy.
var elevatedRoles = map[string]bool{
	"admin": true,
	"lead":  true,
}

// Elevated reports whether a role may approve or reject reviews.
func Elevated(role string) bool {
	return elevatedRoles[role]
}

// Allowed reports whether an action is legal for the current review status.
// A nil status means no review has been requested. Approval is final for the
// cycle: neither cancel nor a new request is accepted afterwards.
func Allowed(status *string, action string) bool {
	switch action {
	case ActionRequest:
		return status == nil || *status == models.ReviewRejected
	case ActionApprove, ActionReject:
		return status != nil && *status == models.ReviewPending
	case ActionCancel:
		return status != nil && *status == models.ReviewPending
	default:
		return false
	}
}

// Apply returns the review status resulting from an action. It assumes the
// action was checked with Allowed; unknown actions return the input status.
func Apply(status *string, action string) *string {
	switch action {
	case ActionRequest:
		return ptr(models.ReviewPending)
	case ActionApprove:
		return ptr(models.ReviewApproved)
	case ActionReject:
		return ptr(models.ReviewRejected)
	case ActionCancel:
		return nil
	default:
		return status
	}
}

// RoleAllowed reports whether the actor's role may perform the action.
// Request is open to any contributor with a role; approve and reject need an
// elevated role; cancel is open to the original requester or an elevated
// role.
func RoleAllowed(action, role, actor, requestedBy string) bool {
	switch action {
	case ActionRequest:
		return role != ""
	case ActionApprove, ActionReject:
		return Elevated(role)
	case ActionCancel:
		return Elevated(role) || (actor != "" && actor == requestedBy)
	default:
		return false
	}
}

// Approved reports whether the status represents an approved review.
func Approved(status *string) bool {
	return status != nil && *status == models.ReviewApproved
}

func ptr(s string) *string {
	return &s
}
