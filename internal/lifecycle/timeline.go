package lifecycle

import (
	"fmt"

	"github.com/zulandar/prodline/internal/models"
	"gorm.io/gorm"
)

// TimelineOpts holds parameters for adding a timeline item.
type TimelineOpts struct {
	Horizon    string // near, mid, long
	Title      string
	Status     string // planned, in_progress, done
	Difficulty int
}

var validHorizons = map[string]bool{
	models.HorizonNear: true,
	models.HorizonMid:  true,
	models.HorizonLong: true,
}

var validTimelineStatuses = map[string]bool{
	"planned":     true,
	"in_progress": true,
	"done":        true,
}

// AddTimelineItem attaches a delivery timeline slice to a work item. The
// item's own lifecycle is not managed here; its count feeds readiness.
func AddTimelineItem(db *gorm.DB, workItemID string, opts TimelineOpts) (*models.TimelineItem, error) {
	if _, err := Get(db, workItemID); err != nil {
		return nil, err
	}
	if opts.Title == "" {
		return nil, validationErr("timeline item title is required", "title")
	}
	if opts.Horizon == "" {
		opts.Horizon = models.HorizonNear
	}
	if !validHorizons[opts.Horizon] {
		return nil, validationErr(fmt.Sprintf("unknown horizon %q", opts.Horizon), "horizon")
	}
	if opts.Status == "" {
		opts.Status = "planned"
	}
	if !validTimelineStatuses[opts.Status] {
		return nil, validationErr(fmt.Sprintf("unknown timeline status %q", opts.Status), "status")
	}
	if opts.Difficulty == 0 {
		opts.Difficulty = 2
	}

	item := models.TimelineItem{
		WorkItemID: workItemID,
		Horizon:    opts.Horizon,
		Title:      opts.Title,
		Status:     opts.Status,
		Difficulty: opts.Difficulty,
	}
	if err := db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("lifecycle: add timeline item to %s: %w", workItemID, err)
	}
	return &item, nil
}

// ListTimelineItems returns a work item's timeline slices, oldest first.
func ListTimelineItems(db *gorm.DB, workItemID string) ([]models.TimelineItem, error) {
	if _, err := Get(db, workItemID); err != nil {
		return nil, err
	}
	var items []models.TimelineItem
	if err := db.Where("work_item_id = ?", workItemID).Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("lifecycle: list timeline items of %s: %w", workItemID, err)
	}
	return items, nil
}
