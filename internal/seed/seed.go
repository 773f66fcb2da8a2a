// Package seed loads the demo line: checklist catalogs, product variants,
// stations with their devices, the BOM and its document history.
// Every step is idempotent so the seeder can run on each start.
package seed

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/xelth-com/linerecords/internal/calc"
	"github.com/xelth-com/linerecords/internal/logs"
	"github.com/xelth-com/linerecords/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var log = logs.WithComponent("seed")

// Report counts the rows each step inserted
type Report struct {
	ValidationItems    int
	DocumentationItems int
	Variants           int
	Equipment          int
	Devices            int
	BomItems           int
	History            int
}

// Empty reports whether the run changed nothing
func (r Report) Empty() bool {
	return r == Report{}
}

// Run seeds all demo data inside one transaction
func Run(ctx context.Context, db *gorm.DB) (Report, error) {
	var rep Report
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			name string
			fn   func(*gorm.DB, *Report) error
		}{
			{"validation catalog", seedValidation},
			{"documentation catalog", seedDocumentation},
			{"variants", seedVariants},
			{"equipment", seedEquipment},
			{"bom", seedBOM},
			{"history", seedHistory},
		}
		for _, s := range steps {
			if err := s.fn(tx, &rep); err != nil {
				return fmt.Errorf("seed %s: %w", s.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return Report{}, err
	}

	log.WithFields(logrus.Fields{
		"validation_items":    rep.ValidationItems,
		"documentation_items": rep.DocumentationItems,
		"variants":            rep.Variants,
		"equipment":           rep.Equipment,
		"devices":             rep.Devices,
		"bom_items":           rep.BomItems,
		"history":             rep.History,
	}).Info("seed complete")
	return rep, nil
}

// upsertByCode inserts the category unless its code exists, then loads it
func upsertByCode(tx *gorm.DB, dst interface{}, code string) error {
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(dst).Error; err != nil {
		return err
	}
	return tx.Where("code = ?", code).First(dst).Error
}

// Items are only added to categories that have none, so edits made
// through the catalog endpoints survive a re-seed.
func seedValidation(tx *gorm.DB, rep *Report) error {
	for i, c := range validationCatalog {
		cat := models.ValidationCategory{Code: c.code, Title: c.title, SortOrder: i + 1}
		if err := upsertByCode(tx, &cat, c.code); err != nil {
			return err
		}

		var n int64
		if err := tx.Model(&models.ValidationChecklistItem{}).Where("category_id = ?", cat.ID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		items := make([]models.ValidationChecklistItem, 0, len(c.items))
		for j, it := range c.items {
			items = append(items, models.ValidationChecklistItem{
				CategoryID: cat.ID,
				RefIATF:    it.refIATF,
				RefVDA:     it.refVDA,
				Test:       it.test,
				Expected:   it.expected,
				Example:    it.example,
				SortOrder:  j + 1,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		rep.ValidationItems += len(items)
	}
	return nil
}

func seedDocumentation(tx *gorm.DB, rep *Report) error {
	for i, c := range documentationCatalog {
		cat := models.DocumentationCategory{
			Code:          c.code,
			TitleKey:      c.titleKey,
			DescKey:       c.descKey,
			SortOrder:     i + 1,
			IsHighlighted: c.highlighted,
		}
		if err := upsertByCode(tx, &cat, c.code); err != nil {
			return err
		}

		var n int64
		if err := tx.Model(&models.DocumentationChecklistItem{}).Where("category_id = ?", cat.ID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		items := make([]models.DocumentationChecklistItem, 0, len(c.items))
		for j, key := range c.items {
			items = append(items, models.DocumentationChecklistItem{CategoryID: cat.ID, ItemKey: key, SortOrder: j + 1})
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		rep.DocumentationItems += len(items)
	}
	return nil
}

func seedVariants(tx *gorm.DB, rep *Report) error {
	for i, name := range variantNames {
		v := models.Variant{Name: name, Color: calc.VariantColor(i), SortOrder: i}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&v)
		if res.Error != nil {
			return res.Error
		}
		rep.Variants += int(res.RowsAffected)
	}
	return nil
}

// Stations are seeded only into an empty line.
func seedEquipment(tx *gorm.DB, rep *Report) error {
	var n int64
	if err := tx.Model(&models.Equipment{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, s := range stations {
		eq := s
		if err := tx.Create(&eq).Error; err != nil {
			return err
		}
		rep.Equipment++

		devices := append([]models.EquipmentDevice(nil), stationDevices[eq.Station]...)
		if len(devices) == 0 {
			continue
		}
		for i := range devices {
			devices[i].EquipmentID = eq.ID
		}
		if err := tx.Create(&devices).Error; err != nil {
			return err
		}
		rep.Devices += len(devices)
	}
	return nil
}

// BOM rows are seeded only into an empty BOM; every seeded item applies to every variant.
func seedBOM(tx *gorm.DB, rep *Report) error {
	var n int64
	if err := tx.Model(&models.BomItem{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var variantIDs []uint
	if err := tx.Model(&models.Variant{}).Order("sort_order, id").Pluck("id", &variantIDs).Error; err != nil {
		return err
	}

	for i, b := range bomItems {
		item := b
		item.SortOrder = i
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		rep.BomItems++

		if len(variantIDs) == 0 {
			continue
		}
		links := make([]models.BomItemVariant, 0, len(variantIDs))
		for _, vid := range variantIDs {
			links = append(links, models.BomItemVariant{BomItemID: item.ID, VariantID: vid, IsApplicable: true})
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedHistory(tx *gorm.DB, rep *Report) error {
	var n int64
	if err := tx.Model(&models.DocHistoryItem{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for i, e := range historyEntries {
		h := models.DocHistoryItem{
			Version:    e.version,
			Register:   e.register,
			Changes:    e.changes,
			CreatedBy:  e.createdBy,
			ReleasedBy: e.releasedBy,
			SortOrder:  i,
		}
		if _, err := h.SetField(models.FieldDateCreated, e.dateCreated); err != nil {
			return err
		}
		if _, err := h.SetField(models.FieldDateReleased, e.dateReleased); err != nil {
			return err
		}
		if err := tx.Create(&h).Error; err != nil {
			return err
		}
		rep.History++
	}
	return nil
}
