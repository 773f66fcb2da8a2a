// Package checklist records validation and documentation results per
// equipment and derives their progress.
package checklist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xelth-com/linerecords/internal/calc"
	"github.com/xelth-com/linerecords/internal/logs"
	"github.com/xelth-com/linerecords/internal/models"
	"gorm.io/gorm"
)

var log = logs.WithComponent("checklist")

// Service manages checklist catalogs and results
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

// NewService creates a checklist service
func NewService(db *gorm.DB) *Service {
	return &Service{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func ensureEquipment(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&models.Equipment{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("equipment %d: %w", id, models.ErrNotFound)
	}
	return nil
}

func validationSummary(tx *gorm.DB, equipmentID uint) (calc.Summary, error) {
	var total, ok int64
	if err := tx.Model(&models.ValidationChecklistItem{}).Count(&total).Error; err != nil {
		return calc.Summary{}, err
	}
	if err := tx.Model(&models.ValidationResult{}).
		Where("equipment_id = ? AND status = ?", equipmentID, models.StatusOK).
		Count(&ok).Error; err != nil {
		return calc.Summary{}, err
	}
	return calc.Summarize(int(ok), int(total)), nil
}

func documentationSummary(tx *gorm.DB, equipmentID uint) (calc.Summary, error) {
	var total, checked int64
	if err := tx.Model(&models.DocumentationChecklistItem{}).Count(&total).Error; err != nil {
		return calc.Summary{}, err
	}
	if err := tx.Model(&models.DocumentationResult{}).
		Where("equipment_id = ? AND is_checked = ?", equipmentID, true).
		Count(&checked).Error; err != nil {
		return calc.Summary{}, err
	}
	return calc.Summarize(int(checked), int(total)), nil
}

// ValidationProgress returns OK results of the equipment over all validation items.
// NOK results never count.
func (s *Service) ValidationProgress(ctx context.Context, equipmentID uint) (calc.Summary, error) {
	tx := s.db.WithContext(ctx)
	if err := ensureEquipment(tx, equipmentID); err != nil {
		return calc.Summary{}, err
	}
	return validationSummary(tx, equipmentID)
}

// DocumentationProgress returns checked documents over all documentation items
func (s *Service) DocumentationProgress(ctx context.Context, equipmentID uint) (calc.Summary, error) {
	tx := s.db.WithContext(ctx)
	if err := ensureEquipment(tx, equipmentID); err != nil {
		return calc.Summary{}, err
	}
	return documentationSummary(tx, equipmentID)
}

// ValidationView is the validation checklist of one equipment
type ValidationView struct {
	Equipment  models.Equipment                 `json:"equipment"`
	Categories []models.ValidationCategory      `json:"categories"`
	Results    map[uint]models.ValidationResult `json:"results"` // keyed by checklist item
	Progress   calc.Summary                     `json:"progress"`
}

// ValidationChecklist loads categories, items and results for equipmentID
func (s *Service) ValidationChecklist(ctx context.Context, equipmentID uint) (*ValidationView, error) {
	tx := s.db.WithContext(ctx)

	var eq models.Equipment
	if err := tx.First(&eq, equipmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("equipment %d: %w", equipmentID, models.ErrNotFound)
		}
		return nil, err
	}

	var categories []models.ValidationCategory
	if err := tx.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order, id")
	}).Order("sort_order, id").Find(&categories).Error; err != nil {
		return nil, err
	}

	var results []models.ValidationResult
	if err := tx.Where("equipment_id = ?", equipmentID).Find(&results).Error; err != nil {
		return nil, err
	}
	byItem := make(map[uint]models.ValidationResult, len(results))
	for _, r := range results {
		byItem[r.ChecklistItemID] = r
	}

	progress, err := validationSummary(tx, equipmentID)
	if err != nil {
		return nil, err
	}

	return &ValidationView{
		Equipment:  eq,
		Categories: categories,
		Results:    byItem,
		Progress:   progress,
	}, nil
}

// SubmitValidation upserts the verdict of equipmentID on itemID and
// returns the stored result with the recomputed progress.
func (s *Service) SubmitValidation(ctx context.Context, equipmentID, itemID uint, status, validatedBy string) (*models.ValidationResult, calc.Summary, error) {
	st, err := models.ParseResultStatus(status)
	if err != nil {
		return nil, calc.Summary{}, fmt.Errorf("%w: %q", err, status)
	}

	var result models.ValidationResult
	var progress calc.Summary
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureEquipment(tx, equipmentID); err != nil {
			return err
		}
		var item models.ValidationChecklistItem
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("checklist item %d: %w", itemID, models.ErrNotFound)
			}
			return err
		}

		err := tx.Where("equipment_id = ? AND checklist_item_id = ?", equipmentID, itemID).First(&result).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			result = models.ValidationResult{
				EquipmentID:     equipmentID,
				ChecklistItemID: itemID,
			}
		case err != nil:
			return err
		}
		result.Status = st
		result.ValidatedAt = s.now()
		result.ValidatedBy = validatedBy
		if err := tx.Save(&result).Error; err != nil {
			return err
		}

		progress, err = validationSummary(tx, equipmentID)
		return err
	})
	if err != nil {
		return nil, calc.Summary{}, err
	}

	log.WithFields(logrus.Fields{
		"equipment": equipmentID,
		"item":      itemID,
		"status":    st,
	}).Debug("validation result saved")
	return &result, progress, nil
}

// ClearValidation removes the verdict of equipmentID on itemID, if any
func (s *Service) ClearValidation(ctx context.Context, equipmentID, itemID uint) (calc.Summary, error) {
	var progress calc.Summary
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureEquipment(tx, equipmentID); err != nil {
			return err
		}
		if err := tx.Where("equipment_id = ? AND checklist_item_id = ?", equipmentID, itemID).
			Delete(&models.ValidationResult{}).Error; err != nil {
			return err
		}
		var err error
		progress, err = validationSummary(tx, equipmentID)
		return err
	})
	return progress, err
}
