package api

import (
	"fmt"
	"io"

	"github.com/robfig/cron/v3"
	"github.com/zulandar/prodline/internal/models"
	"gorm.io/gorm"
)

// digestParser uses standard 5-field cron expressions (minute, hour, dom,
// month, dow).
var digestParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// startDigest schedules a periodic log line summarizing work items waiting
// on review, so pending requests don't sit unnoticed. Returns a stop
// function for shutdown.
func startDigest(expr string, db *gorm.DB, out io.Writer) (func(), error) {
	sched, err := digestParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parse digest cron %q: %w", expr, err)
	}

	c := cron.New(cron.WithParser(digestParser))
	c.Schedule(sched, cron.FuncJob(func() {
		logPendingReviews(db, out)
	}))
	c.Start()
	return func() { c.Stop() }, nil
}

// logPendingReviews writes one line per count of items whose review gate is
// waiting on an approver.
func logPendingReviews(db *gorm.DB, out io.Writer) {
	if out == nil {
		return
	}
	var count int64
	err := db.Model(&models.WorkItem{}).
		Where("review_enabled = ? AND review_status = ?", true, models.ReviewPending).
		Count(&count).Error
	if err != nil {
		fmt.Fprintf(out, "review digest: count pending: %v\n", err)
		return
	}
	fmt.Fprintf(out, "review digest: %d work item(s) awaiting review\n", count)
}
