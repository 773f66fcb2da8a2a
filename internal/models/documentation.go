package models

import "time"

// DocumentationCategory groups documentation checklist items.
// Titles are translation keys resolved by the presentation layer.
type DocumentationCategory struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Code          string `gorm:"size:50;not null;uniqueIndex" json:"code"`
	TitleKey      string `gorm:"size:50;not null" json:"titleKey"`
	DescKey       string `gorm:"size:50" json:"descKey"`
	SortOrder     int    `gorm:"not null;default:0" json:"order"`
	IsHighlighted bool   `json:"isHighlighted"`

	Items []DocumentationChecklistItem `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName specifies the table name for DocumentationCategory model
func (DocumentationCategory) TableName() string {
	return "documentation_categories"
}

// DocumentationChecklistItem is one document that must exist for a station
type DocumentationChecklistItem struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CategoryID uint   `gorm:"not null;index" json:"categoryId"`
	ItemKey    string `gorm:"size:50;not null" json:"itemKey"`
	SortOrder  int    `gorm:"not null;default:0" json:"order"`

	Results []DocumentationResult `gorm:"foreignKey:ChecklistItemID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for DocumentationChecklistItem model
func (DocumentationChecklistItem) TableName() string {
	return "documentation_checklist_items"
}

// DocumentationResult stores the checked state per (equipment, item)
type DocumentationResult struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	EquipmentID     uint      `gorm:"not null;uniqueIndex:ux_documentation_results_pair" json:"equipmentId"`
	ChecklistItemID uint      `gorm:"not null;uniqueIndex:ux_documentation_results_pair" json:"checklistItemId"`
	IsChecked       bool      `json:"isChecked"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TableName specifies the table name for DocumentationResult model
func (DocumentationResult) TableName() string {
	return "documentation_results"
}
