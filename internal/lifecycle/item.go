// Package lifecycle is the single entry point for mutating work items. Every
// operation re-validates against the phase tables, readiness rules, and
// review gate before writing, and phase writes are conditioned on the phase
// read just before so concurrent transitions conflict instead of clobbering.
package lifecycle

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/zulandar/prodline/internal/models"
	"github.com/zulandar/prodline/internal/phase"
	"gorm.io/gorm"
)

// CreateOpts holds parameters for creating a new work item.
type CreateOpts struct {
	Name          string
	Description   string
	Type          string // concept, feature, bug
	Owner         string
	ReviewEnabled bool
}

// ListFilters holds optional filters for listing work items.
type ListFilters struct {
	Owner string
	Type  string
	Phase string
}

// GenerateID creates a work item ID in wi-xxxxx format (5-char hex).
func GenerateID() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("lifecycle: generate ID: %w", err)
	}
	return "wi-" + hex.EncodeToString(b)[:5], nil
}

// Create persists a new work item in its type's initial phase at version 1.
func Create(db *gorm.DB, opts CreateOpts) (*models.WorkItem, error) {
	if opts.Name == "" {
		return nil, validationErr("name is required", "name")
	}
	if !phase.ValidType(opts.Type) {
		return nil, validationErr(fmt.Sprintf("unknown work item type %q", opts.Type), "type")
	}

	id, err := generateUniqueID(db)
	if err != nil {
		return nil, err
	}

	item := models.WorkItem{
		ID:            id,
		Name:          opts.Name,
		Description:   opts.Description,
		Type:          opts.Type,
		Phase:         phase.Initial(opts.Type),
		Owner:         opts.Owner,
		Version:       1,
		ReviewEnabled: opts.ReviewEnabled,
	}
	if err := db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("lifecycle: create: %w", err)
	}
	return &item, nil
}

// Get retrieves a work item by ID.
func Get(db *gorm.DB, id string) (*models.WorkItem, error) {
	var item models.WorkItem
	if err := db.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr(fmt.Sprintf("work item not found: %s", id))
		}
		return nil, fmt.Errorf("lifecycle: get %s: %w", id, err)
	}
	return &item, nil
}

// List returns work items matching the given filters, newest first.
func List(db *gorm.DB, filters ListFilters) ([]models.WorkItem, error) {
	q := db.Model(&models.WorkItem{})

	if filters.Owner != "" {
		q = q.Where("owner = ?", filters.Owner)
	}
	if filters.Type != "" {
		q = q.Where("type = ?", filters.Type)
	}
	if filters.Phase != "" {
		q = q.Where("phase = ?", filters.Phase)
	}

	var items []models.WorkItem
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("lifecycle: list: %w", err)
	}
	return items, nil
}

// editableColumns are the structured fields a caller may set through
// UpdateFields. Phase, type, version lineage, and review state all move
// through their dedicated operations instead.
var editableColumns = map[string]bool{
	"name":                       true,
	"description":                true,
	"owner":                      true,
	"acceptance_criteria":        true,
	"business_value":             true,
	"target_release":             true,
	"hypothesis":                 true,
	"research_notes":             true,
	"review_enabled":             true,
	"triage_severity":            true,
	"triage_reproducible":        true,
	"triage_steps_to_reproduce":  true,
	"triage_expected_behavior":   true,
	"triage_actual_behavior":     true,
	"investigation_root_cause":   true,
	"fix_solution":               true,
	"fix_pr_link":                true,
}

// UpdateFields edits a work item's structured data fields. Lifecycle state
// (phase, review status, version lineage) is rejected here.
func UpdateFields(db *gorm.DB, id string, updates map[string]interface{}) (*models.WorkItem, error) {
	for col := range updates {
		if !editableColumns[col] {
			return nil, validationErr(fmt.Sprintf("field %q cannot be edited directly", col), col)
		}
	}

	if _, err := Get(db, id); err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := db.Model(&models.WorkItem{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("lifecycle: update %s: %w", id, err)
		}
	}
	return Get(db, id)
}

// generateUniqueID generates an ID and retries once on collision.
func generateUniqueID(db *gorm.DB) (string, error) {
	for attempt := 0; attempt < 2; attempt++ {
		id, err := GenerateID()
		if err != nil {
			return "", err
		}
		var count int64
		if err := db.Model(&models.WorkItem{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return "", fmt.Errorf("lifecycle: check ID uniqueness: %w", err)
		}
		if count == 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("lifecycle: failed to generate unique ID after retries")
}
