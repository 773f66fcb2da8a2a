// Package bom maintains the bill of materials and its variant
// applicability matrix.
package bom

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xelth-com/linerecords/internal/calc"
	"github.com/xelth-com/linerecords/internal/logs"
	"github.com/xelth-com/linerecords/internal/models"
	"gorm.io/gorm"
)

var log = logs.WithComponent("bom")

// Service manages variants, BOM items and their applicability
type Service struct {
	db *gorm.DB
}

// NewService creates a BOM service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func notFound(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, models.ErrNotFound)
	}
	return err
}

// Variants returns all variants in display order
func (s *Service) Variants(ctx context.Context) ([]models.Variant, error) {
	var variants []models.Variant
	err := s.db.WithContext(ctx).Order("sort_order, id").Find(&variants).Error
	return variants, err
}

// Items returns all BOM items in display order
func (s *Service) Items(ctx context.Context) ([]models.BomItem, error) {
	var items []models.BomItem
	err := s.db.WithContext(ctx).Order("sort_order, id").Find(&items).Error
	return items, err
}

// Item returns one BOM item
func (s *Service) Item(ctx context.Context, id uint) (*models.BomItem, error) {
	var item models.BomItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, notFound(err, "bom item", id)
	}
	return &item, nil
}

// nextSortOrder returns one past the highest sort_order of model, 0 for an empty table
func nextSortOrder(tx *gorm.DB, model interface{}) (int, error) {
	var next int
	err := tx.Model(model).Select("COALESCE(MAX(sort_order), -1) + 1").Scan(&next).Error
	return next, err
}

// CreateVariant adds a variant and an inapplicable row for every existing item.
// An empty or malformed color takes the next palette color.
func (s *Service) CreateVariant(ctx context.Context, name, color string) (*models.Variant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrEmptyName
	}

	var v models.Variant
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dup int64
		if err := tx.Model(&models.Variant{}).Where("name = ?", name).Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return fmt.Errorf("variant %q: %w", name, models.ErrDuplicateName)
		}

		var count int64
		if err := tx.Model(&models.Variant{}).Count(&count).Error; err != nil {
			return err
		}
		c, ok := models.NormalizeHexColor(color)
		if !ok {
			c = calc.VariantColor(int(count))
		}

		order, err := nextSortOrder(tx, &models.Variant{})
		if err != nil {
			return err
		}
		v = models.Variant{Name: name, Color: c, SortOrder: order}
		if err := tx.Create(&v).Error; err != nil {
			return err
		}

		var itemIDs []uint
		if err := tx.Model(&models.BomItem{}).Pluck("id", &itemIDs).Error; err != nil {
			return err
		}
		return seedRows(tx, itemIDs, []uint{v.ID})
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{"id": v.ID, "name": v.Name}).Info("variant created")
	return &v, nil
}

// seedRows inserts an inapplicable association for every item x variant pair
func seedRows(tx *gorm.DB, itemIDs, variantIDs []uint) error {
	rows := make([]models.BomItemVariant, 0, len(itemIDs)*len(variantIDs))
	for _, i := range itemIDs {
		for _, v := range variantIDs {
			rows = append(rows, models.BomItemVariant{BomItemID: i, VariantID: v, IsApplicable: false})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(&rows, 200).Error
}

// UpdateVariant renames and/or recolors a variant. Nil arguments are left as is.
func (s *Service) UpdateVariant(ctx context.Context, id uint, name, color *string) (*models.Variant, error) {
	var v models.Variant
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&v, id).Error; err != nil {
			return notFound(err, "variant", id)
		}
		updates := map[string]interface{}{}
		if name != nil {
			n := strings.TrimSpace(*name)
			if n == "" {
				return models.ErrEmptyName
			}
			var dup int64
			if err := tx.Model(&models.Variant{}).Where("name = ? AND id <> ?", n, id).Count(&dup).Error; err != nil {
				return err
			}
			if dup > 0 {
				return fmt.Errorf("variant %q: %w", n, models.ErrDuplicateName)
			}
			updates["name"] = n
			v.Name = n
		}
		if color != nil {
			c, ok := models.NormalizeHexColor(*color)
			if !ok {
				return fmt.Errorf("%w: color %q", models.ErrInvalidValue, *color)
			}
			updates["color"] = c
			v.Color = c
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&models.Variant{ID: id}).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// DeleteVariant removes a variant and its matrix column
func (s *Service) DeleteVariant(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("variant_id = ?", id).Delete(&models.BomItemVariant{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Variant{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("variant %d: %w", id, models.ErrNotFound)
		}
		return nil
	})
}

// NewItem holds the initial values of a BOM item
type NewItem struct {
	Station     string `json:"station"`
	PartNumber  string `json:"partNumber"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Color       string `json:"visualAidBgColor"`
}

// CreateItem adds a BOM item and an inapplicable row for every existing variant
func (s *Service) CreateItem(ctx context.Context, in NewItem) (*models.BomItem, error) {
	color, ok := models.NormalizeHexColor(in.Color)
	if !ok {
		color = models.DefaultBomItemColor
	}

	var item models.BomItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := nextSortOrder(tx, &models.BomItem{})
		if err != nil {
			return err
		}
		item = models.BomItem{
			Station:          strings.TrimSpace(in.Station),
			PartNumber:       strings.TrimSpace(in.PartNumber),
			Description:      in.Description,
			Quantity:         models.ParseQuantity(in.Quantity),
			VisualAidBgColor: color,
			SortOrder:        order,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		var variantIDs []uint
		if err := tx.Model(&models.Variant{}).Pluck("id", &variantIDs).Error; err != nil {
			return err
		}
		return seedRows(tx, []uint{item.ID}, variantIDs)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItemField writes one enumerated field of a BOM item
func (s *Service) UpdateItemField(ctx context.Context, id uint, field, value string) (*models.BomItem, error) {
	tx := s.db.WithContext(ctx)

	var item models.BomItem
	if err := tx.First(&item, id).Error; err != nil {
		return nil, notFound(err, "bom item", id)
	}
	update, err := item.SetField(field, value)
	if err != nil {
		return nil, err
	}
	if err := tx.Model(&models.BomItem{ID: id}).Update(update.Column, update.Value).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// SetItemColor changes the visual aid background of a BOM item
func (s *Service) SetItemColor(ctx context.Context, id uint, color string) (*models.BomItem, error) {
	return s.UpdateItemField(ctx, id, models.FieldVisualAidColor, color)
}

// SetItemImage stores the object reference of the item's visual aid image
func (s *Service) SetItemImage(ctx context.Context, id uint, ref string) (*models.BomItem, error) {
	tx := s.db.WithContext(ctx)

	var item models.BomItem
	if err := tx.First(&item, id).Error; err != nil {
		return nil, notFound(err, "bom item", id)
	}
	if err := tx.Model(&item).Update("image", ref).Error; err != nil {
		return nil, err
	}
	item.Image = ref
	return &item, nil
}

// DeleteItem removes a BOM item and its matrix row
func (s *Service) DeleteItem(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bom_item_id = ?", id).Delete(&models.BomItemVariant{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.BomItem{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("bom item %d: %w", id, models.ErrNotFound)
		}
		return nil
	})
}

// Toggle flips the applicability of (itemID, variantID) and returns the new value.
// A pair without a stored row becomes applicable.
func (s *Service) Toggle(ctx context.Context, itemID, variantID uint) (bool, error) {
	var next bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.BomItem
		if err := tx.Select("id").First(&item, itemID).Error; err != nil {
			return notFound(err, "bom item", itemID)
		}
		var variant models.Variant
		if err := tx.Select("id").First(&variant, variantID).Error; err != nil {
			return notFound(err, "variant", variantID)
		}

		var row models.BomItemVariant
		err := tx.Where("bom_item_id = ? AND variant_id = ?", itemID, variantID).First(&row).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			next = calc.Toggle(nil)
			row = models.BomItemVariant{BomItemID: itemID, VariantID: variantID, IsApplicable: next}
			return tx.Create(&row).Error
		case err != nil:
			return err
		}
		next = calc.Toggle(&row.IsApplicable)
		return tx.Model(&row).Update("is_applicable", next).Error
	})
	if err != nil {
		return false, err
	}
	return next, nil
}
