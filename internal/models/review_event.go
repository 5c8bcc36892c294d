package models

import "time"

// ReviewEvent is an append-only audit record of a review gate action.
type ReviewEvent struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	WorkItemID string `gorm:"size:32;index;not null"`
	Action     string `gorm:"size:16;not null"`
	Actor      string `gorm:"size:64"`
	Role       string `gorm:"size:32"`
	Reason     string `gorm:"type:text"`
	CreatedAt  time.Time
}
