package models

import "time"

// ResultStatus is the outcome of a validation test
type ResultStatus string

const (
	StatusOK  ResultStatus = "OK"
	StatusNOK ResultStatus = "NOK"
)

// ParseResultStatus rejects anything other than OK and NOK
func ParseResultStatus(s string) (ResultStatus, error) {
	switch ResultStatus(s) {
	case StatusOK, StatusNOK:
		return ResultStatus(s), nil
	}
	return "", ErrInvalidStatus
}

// ValidationCategory groups checklist items (Safety, Hardware, ...)
type ValidationCategory struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Code      string `gorm:"size:50;not null;uniqueIndex" json:"code"`
	Title     string `gorm:"size:200;not null" json:"title"`
	SortOrder int    `gorm:"not null;default:0" json:"order"`

	Items []ValidationChecklistItem `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName specifies the table name for ValidationCategory model
func (ValidationCategory) TableName() string {
	return "validation_categories"
}

// ValidationChecklistItem is a single IATF/VDA conformance test
type ValidationChecklistItem struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CategoryID uint   `gorm:"not null;index" json:"categoryId"`
	RefIATF    string `gorm:"column:ref_iatf;size:100" json:"refIatf"`
	RefVDA     string `gorm:"column:ref_vda;size:100" json:"refVda"`
	Test       string `gorm:"type:text" json:"test"`
	Expected   string `gorm:"type:text" json:"expected"`
	Example    string `gorm:"type:text" json:"example"`
	SortOrder  int    `gorm:"not null;default:0" json:"order"`

	Results []ValidationResult `gorm:"foreignKey:ChecklistItemID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for ValidationChecklistItem model
func (ValidationChecklistItem) TableName() string {
	return "validation_checklist_items"
}

// ValidationResult is the OK/NOK verdict of one equipment on one item.
// At most one row exists per (equipment, item).
type ValidationResult struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	EquipmentID     uint         `gorm:"not null;uniqueIndex:ux_validation_results_pair" json:"equipmentId"`
	ChecklistItemID uint         `gorm:"not null;uniqueIndex:ux_validation_results_pair" json:"checklistItemId"`
	Status          ResultStatus `gorm:"size:3;not null" json:"status"`
	ValidatedAt     time.Time    `json:"validatedAt"`
	ValidatedBy     string       `gorm:"size:100" json:"validatedBy"`
}

// TableName specifies the table name for ValidationResult model
func (ValidationResult) TableName() string {
	return "validation_results"
}
