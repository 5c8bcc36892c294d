package models

import "time"

// Timeline horizons.
const (
	HorizonNear = "near"
	HorizonMid  = "mid"
	HorizonLong = "long"
)

// TimelineItem is a child record slicing a work item's delivery plan into a
// near/mid/long-term horizon. It carries its own status, distinct from the
// parent's phase, and feeds feature readiness as a count signal.
type TimelineItem struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	WorkItemID string `gorm:"size:32;index;not null"`
	Horizon    string `gorm:"size:8;default:near"`
	Title      string `gorm:"not null"`
	Status     string `gorm:"size:16;default:planned"`
	Difficulty int    `gorm:"default:2"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
