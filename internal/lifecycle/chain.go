package lifecycle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zulandar/prodline/internal/models"
	"github.com/zulandar/prodline/internal/phase"
	"github.com/zulandar/prodline/internal/version"
	"gorm.io/gorm"
)

// Enhance spawns a new version of a shipped feature. The parent is left
// unchanged; the child starts fresh in the initial phase at parent.version+1
// with only lineage and the caller's notes carried over, so the new version
// is re-qualified from scratch.
func Enhance(db *gorm.DB, parentID, versionNotes string) (*models.WorkItem, error) {
	parent, err := Get(db, parentID)
	if err != nil {
		return nil, err
	}
	if !version.CanEnhance(parent.Type, parent.Phase) {
		return nil, validationErr(fmt.Sprintf(
			"work item %s (%s, phase %q) cannot be enhanced; only features past design qualify",
			parentID, parent.Type, parent.Phase))
	}

	id, err := generateUniqueID(db)
	if err != nil {
		return nil, err
	}
	child := models.WorkItem{
		ID:            id,
		Name:          parent.Name,
		Type:          models.TypeFeature,
		Phase:         phase.Initial(models.TypeFeature),
		Owner:         parent.Owner,
		IsEnhancement: true,
		EnhancesID:    &parent.ID,
		Version:       version.Next(parent.Version),
		VersionNotes:  versionNotes,
	}

	if err := db.Create(&child).Error; err != nil {
		return nil, fmt.Errorf("lifecycle: create enhancement of %s: %w", parentID, err)
	}
	return &child, nil
}

// PromoteConcept turns a validated concept into a fresh feature work item.
// The lineage pointer runs from the feature back to the concept, the reverse
// direction of an enhancement: a concept originates a feature rather than
// being a version of it.
func PromoteConcept(db *gorm.DB, conceptID, name, description string) (*models.WorkItem, error) {
	concept, err := Get(db, conceptID)
	if err != nil {
		return nil, err
	}
	if concept.Type != models.TypeConcept {
		return nil, validationErr(fmt.Sprintf("work item %s is a %s, not a concept", conceptID, concept.Type))
	}
	if concept.Phase != phase.ConceptValidated {
		return nil, validationErr(fmt.Sprintf("concept %s is in phase %q; only validated concepts can be promoted", conceptID, concept.Phase), "phase")
	}

	if name == "" {
		name = concept.Name
	}
	if description == "" {
		description = concept.Description
	}

	id, err := generateUniqueID(db)
	if err != nil {
		return nil, err
	}
	feature := models.WorkItem{
		ID:             id,
		Name:           name,
		Description:    description,
		Type:           models.TypeFeature,
		Phase:          phase.Initial(models.TypeFeature),
		Owner:          concept.Owner,
		Version:        1,
		PromotedFromID: &concept.ID,
	}

	if err := db.Create(&feature).Error; err != nil {
		return nil, fmt.Errorf("lifecycle: promote concept %s: %w", conceptID, err)
	}
	return &feature, nil
}

// RejectConcept moves a concept to the rejected phase with its reason and
// optional archive flag in a single conditional write.
func RejectConcept(db *gorm.DB, id, reason string, archive bool) (*models.WorkItem, error) {
	item, err := Get(db, id)
	if err != nil {
		return nil, err
	}
	if item.Type != models.TypeConcept {
		return nil, validationErr(fmt.Sprintf("work item %s is a %s, not a concept", id, item.Type))
	}
	if !phase.CanTransition(models.TypeConcept, item.Phase, phase.ConceptRejected) {
		return nil, validationErr(fmt.Sprintf("concept %s cannot be rejected from phase %q", id, item.Phase), "phase")
	}
	if len(strings.TrimSpace(reason)) < MinRejectionReason {
		return nil, validationErr(fmt.Sprintf("rejection reason must be at least %d characters", MinRejectionReason), "rejection_reason")
	}

	res := db.Model(&models.WorkItem{}).
		Where("id = ? AND phase = ?", id, item.Phase).
		Updates(map[string]interface{}{
			"phase":            phase.ConceptRejected,
			"rejection_reason": reason,
			"archived":         archive,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("lifecycle: reject concept %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, conflictErr(fmt.Sprintf("concept %s changed phase during rejection", id))
	}
	return Get(db, id)
}

// Chain returns the full version chain containing the given work item,
// ordered root to latest. Any member yields the same chain.
func Chain(db *gorm.DB, id string) ([]models.WorkItem, error) {
	item, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	// Walk lineage pointers back to the root. The visited set guards
	// against a corrupted cyclic chain looping forever.
	root := item
	visited := map[string]bool{root.ID: true}
	for root.EnhancesID != nil {
		parent, err := Get(db, *root.EnhancesID)
		if err != nil {
			return nil, err
		}
		if visited[parent.ID] {
			return nil, fmt.Errorf("lifecycle: version chain of %s contains a cycle at %s", id, parent.ID)
		}
		visited[parent.ID] = true
		root = parent
	}

	// Walk forward from the root. Each item has at most one enhancement;
	// enhancement always targets the current latest version.
	chain := []models.WorkItem{*root}
	current := root.ID
	for {
		var child models.WorkItem
		err := db.Where("enhances_id = ?", current).First(&child).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("lifecycle: walk version chain of %s: %w", id, err)
		}
		chain = append(chain, child)
		current = child.ID
	}

	version.SortChain(chain)
	return chain, nil
}
