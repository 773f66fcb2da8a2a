package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Variant is a product variant column of the BOM matrix
type Variant struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Color     string `gorm:"size:7;not null" json:"color"`
	SortOrder int    `gorm:"not null;default:0" json:"order"`

	ItemVariants []BomItemVariant `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Variant model
func (Variant) TableName() string {
	return "variants"
}

// BomItem is one bill-of-materials row
type BomItem struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Station          string    `gorm:"size:100;not null" json:"station"`
	PartNumber       string    `gorm:"size:100;not null" json:"partNumber"`
	Description      string    `gorm:"type:text" json:"description"`
	Quantity         int       `gorm:"not null" json:"quantity"`
	VisualAidBgColor string    `gorm:"size:7;not null" json:"visualAidBgColor"`
	Image            string    `json:"image,omitempty"` // object reference, empty when no image
	SortOrder        int       `gorm:"not null;default:0" json:"order"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	ItemVariants []BomItemVariant `gorm:"foreignKey:BomItemID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for BomItem model
func (BomItem) TableName() string {
	return "bom_items"
}

func (b BomItem) String() string {
	return fmt.Sprintf("%s - %s", b.Station, b.PartNumber)
}

// BomItemVariant links a BOM row to a variant with its applicability
type BomItemVariant struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BomItemID    uint `gorm:"not null;uniqueIndex:ux_bom_item_variants_pair" json:"bomItemId"`
	VariantID    uint `gorm:"not null;uniqueIndex:ux_bom_item_variants_pair" json:"variantId"`
	IsApplicable bool `json:"isApplicable"`
}

// TableName specifies the table name for BomItemVariant model
func (BomItemVariant) TableName() string {
	return "bom_item_variants"
}

// DocHistoryItem is a revision entry of the BOM document
type DocHistoryItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Version      string          `gorm:"size:10" json:"version"`
	Register     string          `gorm:"size:100" json:"register"`
	Changes      string          `gorm:"type:text" json:"changes"`
	CreatedBy    string          `gorm:"size:100" json:"createdBy"`
	DateCreated  *datatypes.Date `json:"dateCreated"`
	ReleasedBy   string          `gorm:"size:100" json:"releasedBy"`
	DateReleased *datatypes.Date `json:"dateReleased"`
	SortOrder    int             `gorm:"not null;default:0" json:"order"`
}

// TableName specifies the table name for DocHistoryItem model
func (DocHistoryItem) TableName() string {
	return "doc_history_items"
}
