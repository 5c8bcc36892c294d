package review

import (
	"testing"

	"github.com/zulandar/prodline/internal/models"
)

func strPtr(s string) *string { return &s }

func TestAllowed(t *testing.T) {
	none := (*string)(nil)
	pending := strPtr(models.ReviewPending)
	approved := strPtr(models.ReviewApproved)
	rejected := strPtr(models.ReviewRejected)

	tests := []struct {
		name   string
		status *string
		action string
		want   bool
	}{
		{"request from none", none, ActionRequest, true},
		{"request from rejected", rejected, ActionRequest, true},
		{"request while pending", pending, ActionRequest, false},
		{"request after approval", approved, ActionRequest, false},

		{"approve pending", pending, ActionApprove, true},
		{"approve from none", none, ActionApprove, false},
		{"approve twice", approved, ActionApprove, false},
		{"approve after rejection", rejected, ActionApprove, false},

		{"reject pending", pending, ActionReject, true},
		{"reject from none", none, ActionReject, false},
		{"reject after approval", approved, ActionReject, false},

		{"cancel pending", pending, ActionCancel, true},
		{"cancel from none", none, ActionCancel, false},
		{"cancel after approval", approved, ActionCancel, false},
		{"cancel after rejection", rejected, ActionCancel, false},

		{"unknown action", pending, "escalate", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allowed(tt.status, tt.action); got != tt.want {
				t.Errorf("Allowed(%v, %s) = %v, want %v", tt.status, tt.action, got, tt.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	pending := strPtr(models.ReviewPending)

	if got := Apply(nil, ActionRequest); got == nil || *got != models.ReviewPending {
		t.Errorf("Apply(nil, request) = %v, want pending", got)
	}
	if got := Apply(pending, ActionApprove); got == nil || *got != models.ReviewApproved {
		t.Errorf("Apply(pending, approve) = %v, want approved", got)
	}
	if got := Apply(pending, ActionReject); got == nil || *got != models.ReviewRejected {
		t.Errorf("Apply(pending, reject) = %v, want rejected", got)
	}
	if got := Apply(pending, ActionCancel); got != nil {
		t.Errorf("Apply(pending, cancel) = %v, want nil", got)
	}
}

func TestRoleAllowed(t *testing.T) {
	tests := []struct {
		name        string
		action      string
		role        string
		actor       string
		requestedBy string
		want        bool
	}{
		{"contributor requests", ActionRequest, "contributor", "alice", "", true},
		{"empty role cannot request", ActionRequest, "", "alice", "", false},

		{"admin approves", ActionApprove, "admin", "bob", "alice", true},
		{"lead approves", ActionApprove, "lead", "bob", "alice", true},
		{"contributor cannot approve", ActionApprove, "contributor", "bob", "alice", false},
		{"contributor cannot reject", ActionReject, "contributor", "bob", "alice", false},
		{"admin rejects", ActionReject, "admin", "bob", "alice", true},

		{"requester cancels own", ActionCancel, "contributor", "alice", "alice", true},
		{"other contributor cannot cancel", ActionCancel, "contributor", "bob", "alice", false},
		{"admin cancels any", ActionCancel, "admin", "bob", "alice", true},
		{"anonymous cannot cancel", ActionCancel, "contributor", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoleAllowed(tt.action, tt.role, tt.actor, tt.requestedBy)
			if got != tt.want {
				t.Errorf("RoleAllowed(%s, %s, %s, %s) = %v, want %v",
					tt.action, tt.role, tt.actor, tt.requestedBy, got, tt.want)
			}
		})
	}
}

func TestApproved(t *testing.T) {
	if Approved(nil) {
		t.Error("Approved(nil) = true")
	}
	if Approved(strPtr(models.ReviewPending)) {
		t.Error("Approved(pending) = true")
	}
	if !Approved(strPtr(models.ReviewApproved)) {
		t.Error("Approved(approved) = false")
	}
}
