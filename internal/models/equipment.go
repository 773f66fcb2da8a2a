package models

import (
	"fmt"
	"time"
)

// Owner identifies who owns a station
type Owner string

const (
	OwnerCustomer Owner = "Customer"
	OwnerPreh     Owner = "Preh"
)

// ParseOwner accepts only the known owners
func ParseOwner(s string) (Owner, error) {
	switch Owner(s) {
	case OwnerCustomer, OwnerPreh:
		return Owner(s), nil
	}
	return "", fmt.Errorf("%w: owner %q", ErrInvalidValue, s)
}

// Equipment is a station on the production line
// Convention: Go PascalCase -> DB snake_case (GORM auto) -> JSON camelCase
type Equipment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Station       string    `gorm:"size:50;not null" json:"station"`
	Owner         Owner     `gorm:"size:50;not null" json:"owner"`
	EqNumber      string    `gorm:"size:50" json:"eqNumber"`
	PowerSupply   string    `gorm:"size:100" json:"powerSupply"`
	PowerKW       string    `gorm:"column:power_kw;size:20" json:"powerKw"`
	AirSupplyBar  string    `gorm:"size:20" json:"airSupplyBar"`
	AirSupplyDiam string    `gorm:"size:20" json:"airSupplyDiam"`
	PhotoFront    string    `json:"photoFront"`
	PhotoTag      string    `json:"photoTag"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	// Relations
	Devices              []EquipmentDevice     `gorm:"foreignKey:EquipmentID;constraint:OnDelete:CASCADE" json:"devices,omitempty"`
	ValidationResults    []ValidationResult    `gorm:"foreignKey:EquipmentID;constraint:OnDelete:CASCADE" json:"-"`
	DocumentationResults []DocumentationResult `gorm:"foreignKey:EquipmentID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Equipment model
func (Equipment) TableName() string {
	return "equipment"
}

func (e Equipment) String() string {
	return fmt.Sprintf("%s (%s)", e.Station, e.EqNumber)
}

// EquipmentDevice is a network endpoint (PLC, HMI, vision sensor...) of a station
type EquipmentDevice struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EquipmentID uint      `gorm:"not null;index" json:"equipmentId"`
	DeviceType  string    `gorm:"size:100" json:"deviceType"`
	Name        string    `gorm:"size:100" json:"name"`
	IPAddress   string    `gorm:"column:ip_address;size:45" json:"ipAddress"` // free-form, may be empty
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the table name for EquipmentDevice model
func (EquipmentDevice) TableName() string {
	return "equipment_devices"
}

// IsComplete is true when type, name and IP are all filled in
func (d EquipmentDevice) IsComplete() bool {
	return d.DeviceType != "" && d.Name != "" && d.IPAddress != ""
}
