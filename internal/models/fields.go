package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// FieldUpdate is a validated single-column write produced by a SetField call.
// Column is always one of the enumerated names below, never caller input.
type FieldUpdate struct {
	Column string
	Value  interface{}
}

func unknownField(entity, name string) error {
	return fmt.Errorf("%w: %s.%s", ErrUnknownField, entity, name)
}

// Equipment editable fields
const (
	FieldStation       = "station"
	FieldOwner         = "owner"
	FieldEqNumber      = "eq_number"
	FieldPowerSupply   = "power_supply"
	FieldPowerKW       = "power_kw"
	FieldAirSupplyBar  = "air_supply_bar"
	FieldAirSupplyDiam = "air_supply_diam"
	FieldPhotoFront    = "photo_front"
	FieldPhotoTag      = "photo_tag"
)

// SetField applies one editable field to the equipment.
// Unknown names and invalid values leave e untouched.
func (e *Equipment) SetField(name, value string) (FieldUpdate, error) {
	switch name {
	case FieldStation:
		e.Station = value
	case FieldOwner:
		owner, err := ParseOwner(value)
		if err != nil {
			return FieldUpdate{}, err
		}
		e.Owner = owner
		return FieldUpdate{Column: name, Value: string(owner)}, nil
	case FieldEqNumber:
		e.EqNumber = value
	case FieldPowerSupply:
		e.PowerSupply = value
	case FieldPowerKW:
		e.PowerKW = value
	case FieldAirSupplyBar:
		e.AirSupplyBar = value
	case FieldAirSupplyDiam:
		e.AirSupplyDiam = value
	case FieldPhotoFront:
		e.PhotoFront = value
	case FieldPhotoTag:
		e.PhotoTag = value
	default:
		return FieldUpdate{}, unknownField("equipment", name)
	}
	return FieldUpdate{Column: name, Value: value}, nil
}

// Device editable fields
const (
	FieldDeviceType = "device_type"
	FieldDeviceName = "name"
	FieldIPAddress  = "ip_address"
)

// SetField applies one editable field to the device
func (d *EquipmentDevice) SetField(name, value string) (FieldUpdate, error) {
	switch name {
	case FieldDeviceType:
		d.DeviceType = value
	case FieldDeviceName:
		d.Name = value
	case FieldIPAddress:
		d.IPAddress = value
	default:
		return FieldUpdate{}, unknownField("device", name)
	}
	return FieldUpdate{Column: name, Value: value}, nil
}

// BOM item editable fields
const (
	FieldBomStation     = "station"
	FieldPartNumber     = "part_number"
	FieldDescription    = "description"
	FieldQuantity       = "quantity"
	FieldVisualAidColor = "visual_aid_bg_color"
)

// DefaultBomItemColor is the visual aid background of new BOM rows
const DefaultBomItemColor = "#CCFFFF"

// ParseQuantity coerces raw input to a positive quantity.
// Empty, unparseable and non-positive input all yield 1.
func ParseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// SetField applies one editable field to the BOM item
func (b *BomItem) SetField(name, value string) (FieldUpdate, error) {
	switch name {
	case FieldBomStation:
		b.Station = value
	case FieldPartNumber:
		b.PartNumber = value
	case FieldDescription:
		b.Description = value
	case FieldQuantity:
		b.Quantity = ParseQuantity(value)
		return FieldUpdate{Column: name, Value: b.Quantity}, nil
	case FieldVisualAidColor:
		color, ok := NormalizeHexColor(value)
		if !ok {
			return FieldUpdate{}, fmt.Errorf("%w: color %q", ErrInvalidValue, value)
		}
		b.VisualAidBgColor = color
		return FieldUpdate{Column: name, Value: color}, nil
	default:
		return FieldUpdate{}, unknownField("bom_item", name)
	}
	return FieldUpdate{Column: name, Value: value}, nil
}

// NormalizeHexColor returns s as "#rrggbb" when it holds exactly six hex digits
func NormalizeHexColor(s string) (string, bool) {
	h := strings.TrimLeft(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return "", false
	}
	for _, c := range h {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return "", false
		}
	}
	return "#" + strings.ToLower(h), true
}

// History editable fields
const (
	FieldVersion      = "version"
	FieldRegister     = "register"
	FieldChanges      = "changes"
	FieldCreatedBy    = "created_by"
	FieldDateCreated  = "date_created"
	FieldReleasedBy   = "released_by"
	FieldDateReleased = "date_released"
)

// DateLayout is the wire format of history dates.
// The European form is accepted on input as well.
const (
	DateLayout         = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
)

func parseDate(value string) (*datatypes.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		if t, err = time.Parse(DateLayoutEuropean, value); err != nil {
			return nil, fmt.Errorf("%w: date %q", ErrInvalidValue, value)
		}
	}
	d := datatypes.Date(t)
	return &d, nil
}

// SetField applies one editable field to the history entry
func (h *DocHistoryItem) SetField(name, value string) (FieldUpdate, error) {
	switch name {
	case FieldVersion:
		h.Version = value
	case FieldRegister:
		h.Register = value
	case FieldChanges:
		h.Changes = value
	case FieldCreatedBy:
		h.CreatedBy = value
	case FieldReleasedBy:
		h.ReleasedBy = value
	case FieldDateCreated, FieldDateReleased:
		d, err := parseDate(value)
		if err != nil {
			return FieldUpdate{}, err
		}
		if name == FieldDateCreated {
			h.DateCreated = d
		} else {
			h.DateReleased = d
		}
		return FieldUpdate{Column: name, Value: d}, nil
	default:
		return FieldUpdate{}, unknownField("history", name)
	}
	return FieldUpdate{Column: name, Value: value}, nil
}
