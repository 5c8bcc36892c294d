package models

import "time"

// Work item types.
const (
	TypeConcept = "concept"
	TypeFeature = "feature"
	TypeBug     = "bug"
)

// Review statuses. A nil ReviewStatus means no review has been requested.
const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// WorkItem is the core tracked entity in Prodline. Phase doubles as the
// item's status; there is no separate status column.
type WorkItem struct {
	ID          string `gorm:"primaryKey;size:32"`
	Owner       string `gorm:"size:64;index"`
	Name        string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Type        string `gorm:"size:16;not null;index"`
	Phase       string `gorm:"size:16;not null;index"`

	// Feature planning fields.
	AcceptanceCriteria string `gorm:"type:text"`
	BusinessValue      string `gorm:"type:text"`
	TargetRelease      string `gorm:"size:64"`

	// Enhancement lineage (features only).
	IsEnhancement  bool
	EnhancesID     *string `gorm:"size:32;index"`
	Version        int     `gorm:"default:1"`
	VersionNotes   string  `gorm:"type:text"`
	PromotedFromID *string `gorm:"size:32"`

	// Concept fields.
	Hypothesis      string `gorm:"type:text"`
	ResearchNotes   string `gorm:"type:text"`
	RejectionReason string `gorm:"type:text"`
	Archived        bool   `gorm:"default:false"`

	// Bug metadata, populated incrementally as the bug advances.
	Triage        BugTriage        `gorm:"embedded;embeddedPrefix:triage_"`
	Investigation BugInvestigation `gorm:"embedded;embeddedPrefix:investigation_"`
	Fix           BugFix           `gorm:"embedded;embeddedPrefix:fix_"`

	// Review gate.
	ReviewEnabled     bool
	ReviewStatus      *string `gorm:"size:16"`
	ReviewRequestedBy string  `gorm:"size:64"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Enhances      *WorkItem      `gorm:"foreignKey:EnhancesID"`
	TimelineItems []TimelineItem `gorm:"foreignKey:WorkItemID;constraint:OnDelete:CASCADE"`
	ReviewEvents  []ReviewEvent  `gorm:"foreignKey:WorkItemID;constraint:OnDelete:CASCADE"`
}

// BugTriage captures the initial assessment of a bug.
type BugTriage struct {
	Severity         string `gorm:"size:16"`
	Reproducible     *bool
	StepsToReproduce string `gorm:"type:text"`
	ExpectedBehavior string `gorm:"type:text"`
	ActualBehavior   string `gorm:"type:text"`
}

// BugInvestigation records what was learned while diagnosing a bug.
type BugInvestigation struct {
	RootCause string `gorm:"type:text"`
}

// BugFix records how a bug was resolved.
type BugFix struct {
	Solution string `gorm:"type:text"`
	PRLink   string `gorm:"size:256"`
}
