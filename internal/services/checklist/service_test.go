package checklist

import (
	"context"
	"errors"
	"testing"

	"github.com/xelth-com/linerecords/internal/calc"
	"github.com/xelth-com/linerecords/internal/models"
	"github.com/xelth-com/linerecords/internal/testutil"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	svc   *Service
	eq    models.Equipment
	items []models.ValidationChecklistItem
}

func setup(t *testing.T, itemCount int) *fixture {
	t.Helper()
	db := testutil.NewDB(t)

	eq := models.Equipment{Station: "OP10", Owner: models.OwnerPreh}
	if err := db.Create(&eq).Error; err != nil {
		t.Fatalf("create equipment: %v", err)
	}
	cat := models.ValidationCategory{Code: "safety", Title: "Safety"}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	items := make([]models.ValidationChecklistItem, itemCount)
	for i := range items {
		items[i] = models.ValidationChecklistItem{CategoryID: cat.ID, Test: "test", SortOrder: i}
		if err := db.Create(&items[i]).Error; err != nil {
			t.Fatalf("create item: %v", err)
		}
	}
	return &fixture{db: db, svc: NewService(db), eq: eq, items: items}
}

func TestValidationProgressCountsOnlyOK(t *testing.T) {
	f := setup(t, 3)
	ctx := context.Background()

	if _, _, err := f.svc.SubmitValidation(ctx, f.eq.ID, f.items[0].ID, "OK", "tester"); err != nil {
		t.Fatalf("SubmitValidation failed: %v", err)
	}
	_, progress, err := f.svc.SubmitValidation(ctx, f.eq.ID, f.items[1].ID, "NOK", "tester")
	if err != nil {
		t.Fatalf("SubmitValidation failed: %v", err)
	}
	if progress.Satisfied != 1 || progress.Total != 3 || progress.Percentage != 33 || progress.Band != calc.BandLow {
		t.Errorf("Unexpected progress %+v", progress)
	}

	_, progress, err = f.svc.SubmitValidation(ctx, f.eq.ID, f.items[1].ID, "OK", "tester")
	if err != nil {
		t.Fatalf("SubmitValidation failed: %v", err)
	}
	if progress.Percentage != 67 || progress.Band != calc.BandPartial {
		t.Errorf("Unexpected progress %+v", progress)
	}

	var count int64
	f.db.Model(&models.ValidationResult{}).Where("equipment_id = ?", f.eq.ID).Count(&count)
	if count != 2 {
		t.Errorf("Expected one row per pair, got %d rows", count)
	}
}

func TestValidationProgressIgnoresNOK(t *testing.T) {
	f := setup(t, 2)
	ctx := context.Background()

	fresh, err := f.svc.ValidationProgress(ctx, f.eq.ID)
	if err != nil {
		t.Fatalf("ValidationProgress failed: %v", err)
	}

	_, progress, err := f.svc.SubmitValidation(ctx, f.eq.ID, f.items[0].ID, "NOK", "tester")
	if err != nil {
		t.Fatalf("SubmitValidation failed: %v", err)
	}
	if progress.Satisfied != 0 || progress.Percentage != 0 || progress.Band != calc.BandLow {
		t.Errorf("Unexpected progress %+v", progress)
	}
	if progress != fresh {
		t.Errorf("Expected %+v, same as without results, got %+v", fresh, progress)
	}
}

func TestSubmitValidationRejectsStatus(t *testing.T) {
	f := setup(t, 1)
	ctx := context.Background()

	for _, status := range []string{"MAYBE", " OK", "NOK ", "ok", ""} {
		_, _, err := f.svc.SubmitValidation(ctx, f.eq.ID, f.items[0].ID, status, "tester")
		if !errors.Is(err, models.ErrInvalidStatus) {
			t.Fatalf("SubmitValidation(%q): expected ErrInvalidStatus, got %v", status, err)
		}
	}
	var count int64
	f.db.Model(&models.ValidationResult{}).Count(&count)
	if count != 0 {
		t.Errorf("Rejected status must not write, got %d rows", count)
	}
}

func TestSubmitValidationUnknownTargets(t *testing.T) {
	f := setup(t, 1)
	ctx := context.Background()

	if _, _, err := f.svc.SubmitValidation(ctx, 999, f.items[0].ID, "OK", ""); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for equipment, got %v", err)
	}
	if _, _, err := f.svc.SubmitValidation(ctx, f.eq.ID, 999, "OK", ""); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for item, got %v", err)
	}
}

func TestValidationProgressWithoutItems(t *testing.T) {
	f := setup(t, 0)
	p, err := f.svc.ValidationProgress(context.Background(), f.eq.ID)
	if err != nil {
		t.Fatalf("ValidationProgress failed: %v", err)
	}
	if p.Percentage != 0 || p.Band != calc.BandLow {
		t.Errorf("Expected 0%% low, got %+v", p)
	}
}

func TestValidationChecklistView(t *testing.T) {
	f := setup(t, 2)
	ctx := context.Background()
	if _, _, err := f.svc.SubmitValidation(ctx, f.eq.ID, f.items[1].ID, "OK", "qa"); err != nil {
		t.Fatalf("SubmitValidation failed: %v", err)
	}

	view, err := f.svc.ValidationChecklist(ctx, f.eq.ID)
	if err != nil {
		t.Fatalf("ValidationChecklist failed: %v", err)
	}
	if len(view.Categories) != 1 || len(view.Categories[0].Items) != 2 {
		t.Fatalf("Unexpected categories %+v", view.Categories)
	}
	if r, ok := view.Results[f.items[1].ID]; !ok || r.Status != models.StatusOK || r.ValidatedBy != "qa" {
		t.Errorf("Unexpected result %+v", r)
	}
	if view.Progress.Percentage != 50 {
		t.Errorf("Expected 50%%, got %d", view.Progress.Percentage)
	}
}

func TestDeleteValidationItemCascades(t *testing.T) {
	f := setup(t, 2)
	ctx := context.Background()
	if _, _, err := f.svc.SubmitValidation(ctx, f.eq.ID, f.items[0].ID, "OK", ""); err != nil {
		t.Fatalf("SubmitValidation failed: %v", err)
	}

	if err := f.svc.DeleteValidationItem(ctx, f.items[0].ID); err != nil {
		t.Fatalf("DeleteValidationItem failed: %v", err)
	}
	var count int64
	f.db.Model(&models.ValidationResult{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected results removed, got %d", count)
	}
	if err := f.svc.DeleteValidationItem(ctx, f.items[0].ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCatalogCreate(t *testing.T) {
	f := setup(t, 0)
	ctx := context.Background()

	cat, err := f.svc.CreateValidationCategory(ctx, "hardware", "Hardware", 2)
	if err != nil {
		t.Fatalf("CreateValidationCategory failed: %v", err)
	}
	if _, err := f.svc.CreateValidationCategory(ctx, "hardware", "Again", 3); !errors.Is(err, models.ErrDuplicateName) {
		t.Errorf("Expected ErrDuplicateName, got %v", err)
	}
	if _, err := f.svc.CreateValidationItem(ctx, models.ValidationChecklistItem{CategoryID: cat.ID, Test: "Emergency stop"}); err != nil {
		t.Fatalf("CreateValidationItem failed: %v", err)
	}
	if _, err := f.svc.CreateValidationItem(ctx, models.ValidationChecklistItem{CategoryID: 999, Test: "x"}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if err := f.svc.DeleteValidationCategory(ctx, cat.ID); err != nil {
		t.Fatalf("DeleteValidationCategory failed: %v", err)
	}
	var count int64
	f.db.Model(&models.ValidationChecklistItem{}).Where("category_id = ?", cat.ID).Count(&count)
	if count != 0 {
		t.Errorf("Expected items removed, got %d", count)
	}
}

func TestSetDocumentation(t *testing.T) {
	f := setup(t, 0)
	ctx := context.Background()

	cat := models.DocumentationCategory{Code: "manuals", TitleKey: "docManuals"}
	f.db.Create(&cat)
	items := []models.DocumentationChecklistItem{
		{CategoryID: cat.ID, ItemKey: "docElectricalSchematic"},
		{CategoryID: cat.ID, ItemKey: "docPneumaticSchematic"},
	}
	f.db.Create(&items)

	// absent pair toggles to checked
	res, p, err := f.svc.SetDocumentation(ctx, f.eq.ID, items[0].ID, nil)
	if err != nil {
		t.Fatalf("SetDocumentation failed: %v", err)
	}
	if !res.IsChecked || p.Percentage != 50 {
		t.Errorf("Unexpected result %+v / %+v", res, p)
	}

	// explicit value wins over toggle
	checked := true
	if _, p, err = f.svc.SetDocumentation(ctx, f.eq.ID, items[0].ID, &checked); err != nil {
		t.Fatalf("SetDocumentation failed: %v", err)
	}
	if p.Percentage != 50 {
		t.Errorf("Expected 50%%, got %d", p.Percentage)
	}

	if res, p, err = f.svc.SetDocumentation(ctx, f.eq.ID, items[0].ID, nil); err != nil {
		t.Fatalf("SetDocumentation failed: %v", err)
	}
	if res.IsChecked || p.Percentage != 0 {
		t.Errorf("Expected unchecked and 0%%, got %+v / %+v", res, p)
	}

	view, err := f.svc.DocumentationChecklist(ctx, f.eq.ID)
	if err != nil {
		t.Fatalf("DocumentationChecklist failed: %v", err)
	}
	if len(view.Categories) != 1 || len(view.Categories[0].Items) != 2 {
		t.Errorf("Unexpected categories %+v", view.Categories)
	}
	if view.Checked[items[0].ID] {
		t.Error("Expected item to be unchecked")
	}
}
