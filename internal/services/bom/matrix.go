package bom

import (
	"context"

	"github.com/xelth-com/linerecords/internal/calc"
	"github.com/xelth-com/linerecords/internal/models"
)

// Column is a variant header of the matrix
type Column struct {
	models.Variant
	TextColor string `json:"textColor"`
}

// Cell is the applicability of one item for one variant
type Cell struct {
	VariantID  uint `json:"variantId"`
	Applicable bool `json:"applicable"`
}

// Row is one BOM item with a cell for every variant
type Row struct {
	Item      models.BomItem `json:"item"`
	TextColor string         `json:"textColor"`
	Cells     []Cell         `json:"cells"`
}

// Matrix is the dense item x variant applicability grid
type Matrix struct {
	Variants []Column `json:"variants"`
	Rows     []Row    `json:"rows"`
}

// Matrix builds the full grid. Pairs without a stored row read as inapplicable.
func (s *Service) Matrix(ctx context.Context) (*Matrix, error) {
	variants, err := s.Variants(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}

	var links []models.BomItemVariant
	if err := s.db.WithContext(ctx).Find(&links).Error; err != nil {
		return nil, err
	}
	stored := make(map[uint]map[uint]bool, len(items))
	for _, l := range links {
		if stored[l.BomItemID] == nil {
			stored[l.BomItemID] = make(map[uint]bool)
		}
		stored[l.BomItemID][l.VariantID] = l.IsApplicable
	}

	m := &Matrix{
		Variants: make([]Column, 0, len(variants)),
		Rows:     make([]Row, 0, len(items)),
	}
	variantIDs := make([]uint, 0, len(variants))
	for _, v := range variants {
		variantIDs = append(variantIDs, v.ID)
		m.Variants = append(m.Variants, Column{Variant: v, TextColor: calc.ContrastColor(v.Color)})
	}

	for _, item := range items {
		applicability := calc.VariantMatrix(variantIDs, stored[item.ID])
		cells := make([]Cell, 0, len(variantIDs))
		for _, id := range variantIDs {
			cells = append(cells, Cell{VariantID: id, Applicable: applicability[id]})
		}
		m.Rows = append(m.Rows, Row{
			Item:      item,
			TextColor: calc.ContrastColor(item.VisualAidBgColor),
			Cells:     cells,
		})
	}
	return m, nil
}
