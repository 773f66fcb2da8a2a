package seed

import (
	"context"
	"testing"

	"github.com/xelth-com/linerecords/internal/models"
	"github.com/xelth-com/linerecords/internal/testutil"
)

func TestRunIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	first, err := Run(ctx, db)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Variants != len(variantNames) {
		t.Errorf("Expected %d variants, got %d", len(variantNames), first.Variants)
	}
	if first.Equipment != len(stations) || first.BomItems != len(bomItems) || first.History != len(historyEntries) {
		t.Errorf("Unexpected first report %+v", first)
	}
	if first.Devices != 20 {
		t.Errorf("Expected 20 devices, got %d", first.Devices)
	}

	second, err := Run(ctx, db)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.Empty() {
		t.Errorf("Expected second run to insert nothing, got %+v", second)
	}

	var categories int64
	db.Model(&models.ValidationCategory{}).Count(&categories)
	if int(categories) != len(validationCatalog) {
		t.Errorf("Expected %d categories, got %d", len(validationCatalog), categories)
	}
}

func TestRunSeedsFullMatrix(t *testing.T) {
	db := testutil.NewDB(t)
	if _, err := Run(context.Background(), db); err != nil {
		t.Fatal(err)
	}

	var links []models.BomItemVariant
	if err := db.Find(&links).Error; err != nil {
		t.Fatal(err)
	}
	if len(links) != len(bomItems)*len(variantNames) {
		t.Errorf("Expected %d matrix rows, got %d", len(bomItems)*len(variantNames), len(links))
	}
	for _, l := range links {
		if !l.IsApplicable {
			t.Errorf("Expected seeded pair %d/%d to be applicable", l.BomItemID, l.VariantID)
		}
	}

	var h models.DocHistoryItem
	if err := db.Order("sort_order").First(&h).Error; err != nil {
		t.Fatal(err)
	}
	if h.DateCreated == nil {
		t.Fatal("Expected creation date to be set")
	}
}

func TestRunKeepsEditedCatalog(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	if _, err := Run(ctx, db); err != nil {
		t.Fatal(err)
	}

	var cat models.ValidationCategory
	if err := db.Where("code = ?", "safety").First(&cat).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Where("category_id = ?", cat.ID).Delete(&models.ValidationChecklistItem{}).Error; err != nil {
		t.Fatal(err)
	}
	db.Create(&models.ValidationChecklistItem{CategoryID: cat.ID, Test: "custom"})

	rep, err := Run(ctx, db)
	if err != nil {
		t.Fatal(err)
	}
	if rep.ValidationItems != 0 {
		t.Errorf("Expected edited category to be left alone, got %d new items", rep.ValidationItems)
	}
}
