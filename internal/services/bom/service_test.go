package bom

import (
	"context"
	"errors"
	"testing"

	"github.com/xelth-com/linerecords/internal/calc"
	"github.com/xelth-com/linerecords/internal/models"
	"github.com/xelth-com/linerecords/internal/testutil"
	"gorm.io/gorm"
)

func newService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	return NewService(db), db
}

func countLinks(t *testing.T, db *gorm.DB, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(&models.BomItemVariant{})
	if where != "" {
		q = q.Where(where, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count links: %v", err)
	}
	return n
}

func TestCreateVariantSeedsRows(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	svc.CreateItem(ctx, NewItem{Station: "OP10", PartNumber: "P-1"})
	svc.CreateItem(ctx, NewItem{Station: "OP20", PartNumber: "P-2"})

	v, err := svc.CreateVariant(ctx, "  90122-032/0000 ", "")
	if err != nil {
		t.Fatalf("CreateVariant failed: %v", err)
	}
	if v.Name != "90122-032/0000" || v.Color != calc.DefaultVariantColors[0] {
		t.Errorf("Unexpected variant %+v", v)
	}
	if n := countLinks(t, db, "variant_id = ? AND is_applicable = ?", v.ID, false); n != 2 {
		t.Errorf("Expected 2 inapplicable rows, got %d", n)
	}

	v2, _ := svc.CreateVariant(ctx, "90122-033/0000", "#ABCDEF")
	if v2.Color != "#abcdef" {
		t.Errorf("Expected given color, got %s", v2.Color)
	}

	// a new item gets a row for every variant
	c, _ := svc.CreateItem(ctx, NewItem{Station: "OP30", PartNumber: "P-3", Quantity: "-2"})
	if c.Quantity != 1 || c.VisualAidBgColor != models.DefaultBomItemColor {
		t.Errorf("Unexpected item defaults %+v", c)
	}
	if n := countLinks(t, db, "bom_item_id = ?", c.ID); n != 2 {
		t.Errorf("Expected 2 rows for new item, got %d", n)
	}
	if n := countLinks(t, db, ""); n != 6 {
		t.Errorf("Expected dense 3x2 links, got %d", n)
	}
}

func TestCreateVariantKeepsExistingCells(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	item, _ := svc.CreateItem(ctx, NewItem{Station: "OP10", PartNumber: "P-1"})
	v1, _ := svc.CreateVariant(ctx, "V1", "")
	if on, err := svc.Toggle(ctx, item.ID, v1.ID); err != nil || !on {
		t.Fatalf("Toggle = %v, %v; want true", on, err)
	}

	v2, err := svc.CreateVariant(ctx, "V2", "")
	if err != nil {
		t.Fatalf("CreateVariant failed: %v", err)
	}

	m, err := svc.Matrix(ctx)
	if err != nil {
		t.Fatalf("Matrix failed: %v", err)
	}
	if len(m.Rows) != 1 || len(m.Rows[0].Cells) != 2 {
		t.Fatalf("Unexpected matrix %+v", m.Rows)
	}
	cells := m.Rows[0].Cells
	if cells[0].VariantID != v1.ID || !cells[0].Applicable {
		t.Errorf("Expected existing cell to stay applicable, got %+v", cells[0])
	}
	if cells[1].VariantID != v2.ID || cells[1].Applicable {
		t.Errorf("Expected new cell to be inapplicable, got %+v", cells[1])
	}
}

func TestSortOrderAfterDelete(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	v1, _ := svc.CreateVariant(ctx, "V1", "")
	v2, _ := svc.CreateVariant(ctx, "V2", "")
	if err := svc.DeleteVariant(ctx, v1.ID); err != nil {
		t.Fatalf("DeleteVariant failed: %v", err)
	}
	v3, err := svc.CreateVariant(ctx, "V3", "")
	if err != nil {
		t.Fatalf("CreateVariant failed: %v", err)
	}
	if v3.SortOrder <= v2.SortOrder {
		t.Errorf("Expected variant after %d, got %d", v2.SortOrder, v3.SortOrder)
	}

	i1, _ := svc.CreateItem(ctx, NewItem{Station: "OP10", PartNumber: "P-1"})
	i2, _ := svc.CreateItem(ctx, NewItem{Station: "OP20", PartNumber: "P-2"})
	if err := svc.DeleteItem(ctx, i1.ID); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}
	i3, err := svc.CreateItem(ctx, NewItem{Station: "OP30", PartNumber: "P-3"})
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	if i3.SortOrder <= i2.SortOrder {
		t.Errorf("Expected item after %d, got %d", i2.SortOrder, i3.SortOrder)
	}

	h1, _ := svc.AddHistory(ctx)
	h2, _ := svc.AddHistory(ctx)
	if err := svc.DeleteHistory(ctx, h1.ID); err != nil {
		t.Fatalf("DeleteHistory failed: %v", err)
	}
	h3, err := svc.AddHistory(ctx)
	if err != nil {
		t.Fatalf("AddHistory failed: %v", err)
	}
	if h3.SortOrder <= h2.SortOrder {
		t.Errorf("Expected history entry after %d, got %d", h2.SortOrder, h3.SortOrder)
	}
}

func TestCreateVariantRejects(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.CreateVariant(ctx, "   ", ""); !errors.Is(err, models.ErrEmptyName) {
		t.Errorf("Expected ErrEmptyName, got %v", err)
	}
	if _, err := svc.CreateVariant(ctx, "V1", ""); err != nil {
		t.Fatalf("CreateVariant failed: %v", err)
	}
	if _, err := svc.CreateVariant(ctx, "V1", ""); !errors.Is(err, models.ErrDuplicateName) {
		t.Errorf("Expected ErrDuplicateName, got %v", err)
	}
}

func TestToggle(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	item, _ := svc.CreateItem(ctx, NewItem{Station: "OP10", PartNumber: "P-1"})
	v, _ := svc.CreateVariant(ctx, "V1", "")

	// seeded false row toggles to true and back
	on, err := svc.Toggle(ctx, item.ID, v.ID)
	if err != nil || !on {
		t.Fatalf("Toggle = %v, %v; want true", on, err)
	}
	off, err := svc.Toggle(ctx, item.ID, v.ID)
	if err != nil || off {
		t.Fatalf("Toggle = %v, %v; want false", off, err)
	}

	// a missing row is created as applicable
	db.Where("bom_item_id = ?", item.ID).Delete(&models.BomItemVariant{})
	on, err = svc.Toggle(ctx, item.ID, v.ID)
	if err != nil || !on {
		t.Fatalf("Toggle of absent pair = %v, %v; want true", on, err)
	}
	if n := countLinks(t, db, "bom_item_id = ?", item.ID); n != 1 {
		t.Errorf("Expected one row, got %d", n)
	}

	if _, err := svc.Toggle(ctx, 999, v.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for item, got %v", err)
	}
	if _, err := svc.Toggle(ctx, item.ID, 999); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for variant, got %v", err)
	}
}

func TestMatrixIsDense(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	item, _ := svc.CreateItem(ctx, NewItem{Station: "OP10", PartNumber: "P-1", Color: "#000080"})
	v1, _ := svc.CreateVariant(ctx, "V1", "")
	v2, _ := svc.CreateVariant(ctx, "V2", "")
	svc.Toggle(ctx, item.ID, v2.ID)

	// drop one stored pair; the cell must still be present
	db.Where("variant_id = ?", v1.ID).Delete(&models.BomItemVariant{})

	m, err := svc.Matrix(ctx)
	if err != nil {
		t.Fatalf("Matrix failed: %v", err)
	}
	if len(m.Variants) != 2 || len(m.Rows) != 1 {
		t.Fatalf("Unexpected matrix shape %d x %d", len(m.Rows), len(m.Variants))
	}
	row := m.Rows[0]
	if len(row.Cells) != 2 {
		t.Fatalf("Expected 2 cells, got %d", len(row.Cells))
	}
	if row.Cells[0].VariantID != v1.ID || row.Cells[0].Applicable {
		t.Errorf("Unexpected first cell %+v", row.Cells[0])
	}
	if row.Cells[1].VariantID != v2.ID || !row.Cells[1].Applicable {
		t.Errorf("Unexpected second cell %+v", row.Cells[1])
	}
	if row.TextColor != calc.White {
		t.Errorf("Expected white text on navy, got %s", row.TextColor)
	}
	if m.Variants[0].TextColor != calc.Black {
		t.Errorf("Expected black text on pastel, got %s", m.Variants[0].TextColor)
	}
}

func TestDeleteCascades(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	item, _ := svc.CreateItem(ctx, NewItem{Station: "OP10", PartNumber: "P-1"})
	v, _ := svc.CreateVariant(ctx, "V1", "")

	if err := svc.DeleteVariant(ctx, v.ID); err != nil {
		t.Fatalf("DeleteVariant failed: %v", err)
	}
	if n := countLinks(t, db, ""); n != 0 {
		t.Errorf("Expected no links after variant delete, got %d", n)
	}

	svc.CreateVariant(ctx, "V2", "")
	if err := svc.DeleteItem(ctx, item.ID); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}
	if n := countLinks(t, db, ""); n != 0 {
		t.Errorf("Expected no links after item delete, got %d", n)
	}
	if err := svc.DeleteItem(ctx, item.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUpdateItemAndVariant(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	item, _ := svc.CreateItem(ctx, NewItem{Station: "OP10", PartNumber: "P-1"})
	updated, err := svc.UpdateItemField(ctx, item.ID, "quantity", "4")
	if err != nil || updated.Quantity != 4 {
		t.Fatalf("UpdateItemField = %+v, %v", updated, err)
	}
	if _, err := svc.UpdateItemField(ctx, item.ID, "sort_order", "1"); !errors.Is(err, models.ErrUnknownField) {
		t.Errorf("Expected ErrUnknownField, got %v", err)
	}
	if _, err := svc.SetItemColor(ctx, item.ID, "red"); !errors.Is(err, models.ErrInvalidValue) {
		t.Errorf("Expected ErrInvalidValue, got %v", err)
	}
	withImage, err := svc.SetItemImage(ctx, item.ID, "bom/1.png")
	if err != nil || withImage.Image != "bom/1.png" {
		t.Fatalf("SetItemImage = %+v, %v", withImage, err)
	}

	v1, _ := svc.CreateVariant(ctx, "V1", "")
	svc.CreateVariant(ctx, "V2", "")
	name := "V2"
	if _, err := svc.UpdateVariant(ctx, v1.ID, &name, nil); !errors.Is(err, models.ErrDuplicateName) {
		t.Errorf("Expected ErrDuplicateName, got %v", err)
	}
	name, color := "V1-renamed", "#112233"
	v, err := svc.UpdateVariant(ctx, v1.ID, &name, &color)
	if err != nil || v.Name != name || v.Color != color {
		t.Fatalf("UpdateVariant = %+v, %v", v, err)
	}
}

func TestHistory(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	h, err := svc.AddHistory(ctx)
	if err != nil {
		t.Fatalf("AddHistory failed: %v", err)
	}
	if _, err := svc.UpdateHistoryField(ctx, h.ID, "version", "B"); err != nil {
		t.Fatalf("UpdateHistoryField failed: %v", err)
	}
	updated, err := svc.UpdateHistoryField(ctx, h.ID, "date_created", "2024-05-06")
	if err != nil {
		t.Fatalf("UpdateHistoryField failed: %v", err)
	}
	if updated.DateCreated == nil {
		t.Error("Expected date to be set")
	}
	if _, err := svc.UpdateHistoryField(ctx, h.ID, "date_released", "tomorrow"); !errors.Is(err, models.ErrInvalidValue) {
		t.Errorf("Expected ErrInvalidValue, got %v", err)
	}
	if _, err := svc.UpdateHistoryField(ctx, h.ID, " version ", "C"); !errors.Is(err, models.ErrUnknownField) {
		t.Errorf("Expected ErrUnknownField for padded name, got %v", err)
	}

	list, _ := svc.History(ctx)
	if len(list) != 1 || list[0].Version != "B" {
		t.Errorf("Unexpected history %+v", list)
	}

	if err := svc.DeleteHistory(ctx, h.ID); err != nil {
		t.Fatalf("DeleteHistory failed: %v", err)
	}
	if err := svc.DeleteHistory(ctx, h.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestExportXLSX(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	item, _ := svc.CreateItem(ctx, NewItem{Station: "OP10", PartNumber: "P-1", Quantity: "2"})
	v, _ := svc.CreateVariant(ctx, "90122-032/0000", "")
	svc.Toggle(ctx, item.ID, v.ID)
	svc.AddHistory(ctx)

	f, err := svc.ExportXLSX(ctx)
	if err != nil {
		t.Fatalf("ExportXLSX failed: %v", err)
	}
	defer f.Close()

	checks := map[string]string{
		"A1": "Station",
		"E1": "90122-032/0000",
		"A2": "OP10",
		"B2": "P-1",
		"D2": "2",
		"E2": "X",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue(bomSheet, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}
	if idx, err := f.GetSheetIndex(historySheet); err != nil || idx < 0 {
		t.Errorf("Expected history sheet, got %d, %v", idx, err)
	}
}
