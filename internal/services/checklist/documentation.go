package checklist

import (
	"context"
	"errors"
	"fmt"

	"github.com/xelth-com/linerecords/internal/calc"
	"github.com/xelth-com/linerecords/internal/models"
	"gorm.io/gorm"
)

// DocumentationView is the documentation checklist of one equipment
type DocumentationView struct {
	Equipment  models.Equipment               `json:"equipment"`
	Categories []models.DocumentationCategory `json:"categories"`
	Checked    map[uint]bool                  `json:"checked"` // keyed by checklist item
	Progress   calc.Summary                   `json:"progress"`
}

// DocumentationChecklist loads categories, items and checked state for equipmentID
func (s *Service) DocumentationChecklist(ctx context.Context, equipmentID uint) (*DocumentationView, error) {
	tx := s.db.WithContext(ctx)

	var eq models.Equipment
	if err := tx.First(&eq, equipmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("equipment %d: %w", equipmentID, models.ErrNotFound)
		}
		return nil, err
	}

	var categories []models.DocumentationCategory
	if err := tx.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order, id")
	}).Order("sort_order, id").Find(&categories).Error; err != nil {
		return nil, err
	}

	var results []models.DocumentationResult
	if err := tx.Where("equipment_id = ?", equipmentID).Find(&results).Error; err != nil {
		return nil, err
	}
	checked := make(map[uint]bool, len(results))
	for _, r := range results {
		checked[r.ChecklistItemID] = r.IsChecked
	}

	progress, err := documentationSummary(tx, equipmentID)
	if err != nil {
		return nil, err
	}

	return &DocumentationView{
		Equipment:  eq,
		Categories: categories,
		Checked:    checked,
		Progress:   progress,
	}, nil
}

// SetDocumentation stores the checked state of itemID for equipmentID.
// A nil checked toggles the stored state; an absent row toggles to checked.
func (s *Service) SetDocumentation(ctx context.Context, equipmentID, itemID uint, checked *bool) (*models.DocumentationResult, calc.Summary, error) {
	var result models.DocumentationResult
	var progress calc.Summary
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureEquipment(tx, equipmentID); err != nil {
			return err
		}
		var item models.DocumentationChecklistItem
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("documentation item %d: %w", itemID, models.ErrNotFound)
			}
			return err
		}

		var current *bool
		err := tx.Where("equipment_id = ? AND checklist_item_id = ?", equipmentID, itemID).First(&result).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			result = models.DocumentationResult{
				EquipmentID:     equipmentID,
				ChecklistItemID: itemID,
			}
		case err != nil:
			return err
		default:
			current = &result.IsChecked
		}

		if checked != nil {
			result.IsChecked = *checked
		} else {
			result.IsChecked = calc.Toggle(current)
		}
		if err := tx.Save(&result).Error; err != nil {
			return err
		}

		progress, err = documentationSummary(tx, equipmentID)
		return err
	})
	if err != nil {
		return nil, calc.Summary{}, err
	}
	return &result, progress, nil
}
