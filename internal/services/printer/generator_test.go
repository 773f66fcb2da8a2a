package printer

import (
	"bytes"
	"testing"
	"time"

	"github.com/xelth-com/linerecords/internal/calc"
	"github.com/xelth-com/linerecords/internal/models"
	"github.com/xelth-com/linerecords/internal/services/checklist"
)

func TestEquipmentLabels(t *testing.T) {
	labels := EquipmentLabels([]models.Equipment{
		{Station: "OP10", EqNumber: "EQ-1", Owner: models.OwnerPreh},
		{Station: "OP20", Owner: models.OwnerCustomer},
	})
	if len(labels) != 2 {
		t.Fatalf("Expected 2 labels, got %d", len(labels))
	}
	if labels[0].Code != "EQ-1" || labels[1].Code != "OP20" {
		t.Errorf("Unexpected codes %q, %q", labels[0].Code, labels[1].Code)
	}
	if got := QRContent(labels[0], "-L1"); got != "EQ:OP10/EQ-1-L1" {
		t.Errorf("Unexpected QR content %s", got)
	}
}

func TestGenerateLabelsPDF(t *testing.T) {
	labels := make([]Label, 0, 12)
	for i := 0; i < 12; i++ {
		labels = append(labels, Label{Title: "OP10", Code: "EQ", Caption: "Preh"})
	}
	// zero grid falls back to defaults and spills onto a second page
	pdf, err := GenerateLabelsPDF(LabelConfig{}, labels)
	if err != nil {
		t.Fatalf("GenerateLabelsPDF failed: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("Output is not a PDF")
	}

	empty, err := GenerateLabelsPDF(LabelConfig{Cols: 3, Rows: 7}, nil)
	if err != nil || !bytes.HasPrefix(empty, []byte("%PDF")) {
		t.Errorf("Empty sheet failed: %v", err)
	}
}

func TestValidationReportPDF(t *testing.T) {
	view := &checklist.ValidationView{
		Equipment: models.Equipment{ID: 1, Station: "OP10", EqNumber: "EQ-1", Owner: models.OwnerPreh},
		Categories: []models.ValidationCategory{{
			ID:    1,
			Title: "Safety",
			Items: []models.ValidationChecklistItem{
				{ID: 1, RefIATF: "8.5.1.5", Test: "Emergency stop stops every axis within the required time."},
				{ID: 2, RefVDA: "P6.4", Test: "Light curtain"},
			},
		}},
		Results: map[uint]models.ValidationResult{
			1: {ChecklistItemID: 1, Status: models.StatusOK},
		},
		Progress: calc.Summarize(1, 2),
	}

	pdf, err := ValidationReportPDF(view, time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ValidationReportPDF failed: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("Output is not a PDF")
	}
}
