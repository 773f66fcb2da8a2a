package models

// All lists every persisted model in migration order
func All() []interface{} {
	return []interface{}{
		&Equipment{},
		&EquipmentDevice{},
		&ValidationCategory{},
		&ValidationChecklistItem{},
		&ValidationResult{},
		&DocumentationCategory{},
		&DocumentationChecklistItem{},
		&DocumentationResult{},
		&Variant{},
		&BomItem{},
		&BomItemVariant{},
		&DocHistoryItem{},
	}
}
