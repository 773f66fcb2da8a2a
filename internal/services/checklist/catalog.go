package checklist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xelth-com/linerecords/internal/models"
	"gorm.io/gorm"
)

// CreateValidationCategory adds a validation category
func (s *Service) CreateValidationCategory(ctx context.Context, code, title string, order int) (*models.ValidationCategory, error) {
	code, title = strings.TrimSpace(code), strings.TrimSpace(title)
	if code == "" || title == "" {
		return nil, models.ErrEmptyName
	}

	tx := s.db.WithContext(ctx)
	var count int64
	if err := tx.Model(&models.ValidationCategory{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("category %q: %w", code, models.ErrDuplicateName)
	}

	cat := models.ValidationCategory{Code: code, Title: title, SortOrder: order}
	if err := tx.Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// CreateValidationItem adds a test to an existing category
func (s *Service) CreateValidationItem(ctx context.Context, item models.ValidationChecklistItem) (*models.ValidationChecklistItem, error) {
	if strings.TrimSpace(item.Test) == "" {
		return nil, fmt.Errorf("%w: test text", models.ErrInvalidValue)
	}
	item.ID = 0

	tx := s.db.WithContext(ctx)
	var cat models.ValidationCategory
	if err := tx.First(&cat, item.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %d: %w", item.CategoryID, models.ErrNotFound)
		}
		return nil, err
	}
	if err := tx.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteValidationItem removes a test together with all its results
func (s *Service) DeleteValidationItem(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("checklist_item_id = ?", id).Delete(&models.ValidationResult{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.ValidationChecklistItem{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("checklist item %d: %w", id, models.ErrNotFound)
		}
		return nil
	})
}

// DeleteValidationCategory removes a category, its items and their results
func (s *Service) DeleteValidationCategory(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := tx.Model(&models.ValidationChecklistItem{}).Select("id").Where("category_id = ?", id)
		if err := tx.Where("checklist_item_id IN (?)", items).Delete(&models.ValidationResult{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.ValidationChecklistItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.ValidationCategory{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("category %d: %w", id, models.ErrNotFound)
		}
		return nil
	})
}
