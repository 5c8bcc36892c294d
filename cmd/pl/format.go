package main

import (
	"fmt"
	"strings"

	"github.com/zulandar/prodline/internal/models"
)

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}

// reviewColumn renders the review gate state for table output.
func reviewColumn(item *models.WorkItem) string {
	if !item.ReviewEnabled {
		return "-"
	}
	if item.ReviewStatus == nil {
		return "none"
	}
	return *item.ReviewStatus
}

// parseFieldArgs converts column=value arguments to an update map.
func parseFieldArgs(fields []string) (map[string]interface{}, error) {
	updates := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		col, val, ok := strings.Cut(f, "=")
		if !ok || col == "" {
			return nil, fmt.Errorf("invalid field %q, expected column=value", f)
		}
		switch val {
		case "true":
			updates[col] = true
		case "false":
			updates[col] = false
		default:
			updates[col] = val
		}
	}
	return updates, nil
}
