// Package version holds the pure arithmetic and ordering rules for feature
// enhancement chains. Persistence-side chain walking lives in the lifecycle
// orchestrator.
package version

import (
	"sort"

	"github.com/zulandar/prodline/internal/models"
	"github.com/zulandar/prodline/internal/phase"
)

// CanEnhance reports whether a work item may spawn a new version. Only
// features qualify, and only once they have left design: an item that has
// not shipped anything has nothing to enhance.
func CanEnhance(itemType, itemPhase string) bool {
	if itemType != models.TypeFeature {
		return false
	}
	return phase.Valid(itemType, itemPhase) && itemPhase != phase.FeatureDesign
}

// Next returns the version number for a new enhancement of a parent at v.
func Next(v int) int {
	return v + 1
}

// SortChain orders chain members root-first by ascending version, in place.
func SortChain(items []models.WorkItem) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Version < items[j].Version
	})
}

// Latest returns the highest-version member of a chain, or nil for an empty
// chain.
func Latest(items []models.WorkItem) *models.WorkItem {
	if len(items) == 0 {
		return nil
	}
	latest := &items[0]
	for i := range items {
		if items[i].Version > latest.Version {
			latest = &items[i]
		}
	}
	return latest
}
