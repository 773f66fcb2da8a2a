package models

import (
	"errors"
	"testing"
)

func TestEquipmentSetField(t *testing.T) {
	e := Equipment{Station: "OP10", Owner: OwnerPreh}

	u, err := e.SetField(FieldPowerKW, "2.5")
	if err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if u.Column != "power_kw" || u.Value != "2.5" {
		t.Errorf("Unexpected update %+v", u)
	}
	if e.PowerKW != "2.5" {
		t.Errorf("Expected PowerKW 2.5, got %q", e.PowerKW)
	}

	if _, err := e.SetField(FieldOwner, "Customer"); err != nil {
		t.Fatalf("SetField owner failed: %v", err)
	}
	if e.Owner != OwnerCustomer {
		t.Errorf("Expected owner Customer, got %q", e.Owner)
	}
}

func TestEquipmentSetFieldRejects(t *testing.T) {
	e := Equipment{Station: "OP10", Owner: OwnerPreh}
	before := e

	if _, err := e.SetField("id", "99"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Expected ErrUnknownField, got %v", err)
	}
	if _, err := e.SetField("created_at", "now"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Expected ErrUnknownField, got %v", err)
	}
	if _, err := e.SetField(FieldOwner, "Supplier"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Expected ErrInvalidValue, got %v", err)
	}
	if e.Station != before.Station || e.Owner != before.Owner || e.ID != before.ID {
		t.Errorf("Rejected writes must not mutate the entity: %+v", e)
	}
}

func TestDeviceIsComplete(t *testing.T) {
	d := EquipmentDevice{DeviceType: "PLC", Name: "OP10-PLC"}
	if d.IsComplete() {
		t.Error("Device without IP should not be complete")
	}
	if _, err := d.SetField(FieldIPAddress, "10.0.0.1"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if !d.IsComplete() {
		t.Error("Device with type, name and IP should be complete")
	}
	if _, err := d.SetField("equipment_id", "2"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Expected ErrUnknownField, got %v", err)
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-4", 1},
		{"3", 3},
		{" 12 ", 12},
	}
	for _, tt := range tests {
		if got := ParseQuantity(tt.raw); got != tt.want {
			t.Errorf("ParseQuantity(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestBomItemSetField(t *testing.T) {
	b := BomItem{Quantity: 2, VisualAidBgColor: DefaultBomItemColor}

	u, err := b.SetField(FieldQuantity, "zero")
	if err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if u.Value != 1 || b.Quantity != 1 {
		t.Errorf("Expected quantity coerced to 1, got %v / %d", u.Value, b.Quantity)
	}

	if _, err := b.SetField(FieldVisualAidColor, "#12345"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Expected ErrInvalidValue for short color, got %v", err)
	}
	if b.VisualAidBgColor != DefaultBomItemColor {
		t.Errorf("Color changed on rejected write: %s", b.VisualAidBgColor)
	}
	if _, err := b.SetField(FieldVisualAidColor, "FFAA00"); err != nil {
		t.Fatalf("SetField color failed: %v", err)
	}
	if b.VisualAidBgColor != "#ffaa00" {
		t.Errorf("Expected normalized color, got %s", b.VisualAidBgColor)
	}
}

func TestHistorySetFieldDates(t *testing.T) {
	h := DocHistoryItem{}
	if _, err := h.SetField(FieldDateCreated, "2024-03-01"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if h.DateCreated == nil {
		t.Fatal("Expected DateCreated to be set")
	}
	if _, err := h.SetField(FieldDateReleased, "01.03.2024"); err != nil {
		t.Fatalf("European date rejected: %v", err)
	}
	if _, err := h.SetField(FieldDateReleased, "2024/03/01"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Expected ErrInvalidValue, got %v", err)
	}
	if _, err := h.SetField(FieldDateCreated, ""); err != nil {
		t.Fatalf("Clearing date failed: %v", err)
	}
	if h.DateCreated != nil {
		t.Error("Expected DateCreated to be cleared")
	}
}

func TestParseResultStatus(t *testing.T) {
	for _, s := range []string{"OK", "NOK"} {
		if _, err := ParseResultStatus(s); err != nil {
			t.Errorf("ParseResultStatus(%q) failed: %v", s, err)
		}
	}
	for _, s := range []string{"", "ok", "MAYBE"} {
		if _, err := ParseResultStatus(s); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("ParseResultStatus(%q) should fail", s)
		}
	}
}
