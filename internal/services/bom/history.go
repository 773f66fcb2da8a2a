package bom

import (
	"context"
	"fmt"

	"github.com/xelth-com/linerecords/internal/models"
	"gorm.io/gorm"
)

// History returns the document revision entries in display order
func (s *Service) History(ctx context.Context) ([]models.DocHistoryItem, error) {
	var entries []models.DocHistoryItem
	err := s.db.WithContext(ctx).Order("sort_order, id").Find(&entries).Error
	return entries, err
}

// AddHistory appends an empty revision entry
func (s *Service) AddHistory(ctx context.Context) (*models.DocHistoryItem, error) {
	var h models.DocHistoryItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := nextSortOrder(tx, &models.DocHistoryItem{})
		if err != nil {
			return err
		}
		h = models.DocHistoryItem{SortOrder: order}
		return tx.Create(&h).Error
	})
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// UpdateHistoryField writes one enumerated field of a revision entry
func (s *Service) UpdateHistoryField(ctx context.Context, id uint, field, value string) (*models.DocHistoryItem, error) {
	tx := s.db.WithContext(ctx)

	var h models.DocHistoryItem
	if err := tx.First(&h, id).Error; err != nil {
		return nil, notFound(err, "history entry", id)
	}
	update, err := h.SetField(field, value)
	if err != nil {
		return nil, err
	}
	if err := tx.Model(&models.DocHistoryItem{ID: id}).Update(update.Column, update.Value).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

// DeleteHistory removes a revision entry
func (s *Service) DeleteHistory(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.DocHistoryItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("history entry %d: %w", id, models.ErrNotFound)
	}
	return nil
}
