package bom

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xelth-com/linerecords/internal/calc"
	"github.com/xelth-com/linerecords/internal/models"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
)

const (
	bomSheet     = "BOM"
	historySheet = "History"
)

// fillStyles caches one cell style per background color
type fillStyles struct {
	f     *excelize.File
	bold  bool
	cache map[string]int
}

func (fs *fillStyles) get(bg string) int {
	if id, ok := fs.cache[bg]; ok {
		return id
	}
	id, _ := fs.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: fs.bold, Color: strings.TrimPrefix(calc.ContrastColor(bg), "#")},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{bg}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	fs.cache[bg] = id
	return id
}

// ExportXLSX renders the BOM matrix and the revision history as a workbook
func (s *Service) ExportXLSX(ctx context.Context) (*excelize.File, error) {
	m, err := s.Matrix(ctx)
	if err != nil {
		return nil, err
	}
	history, err := s.History(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", bomSheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	headerFills := &fillStyles{f: f, bold: true, cache: map[string]int{}}
	rowFills := &fillStyles{f: f, cache: map[string]int{}}

	headers := []string{"Station", "Part Number", "Description", "Qty"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(bomSheet, cell, h)
		f.SetCellStyle(bomSheet, cell, cell, headerStyle)
	}
	for i, v := range m.Variants {
		col, _ := excelize.ColumnNumberToName(len(headers) + i + 1)
		cell := col + "1"
		f.SetCellValue(bomSheet, cell, v.Name)
		f.SetCellStyle(bomSheet, cell, cell, headerFills.get(v.Color))
	}

	for r, row := range m.Rows {
		line := r + 2
		f.SetCellValue(bomSheet, fmt.Sprintf("A%d", line), row.Item.Station)
		f.SetCellValue(bomSheet, fmt.Sprintf("B%d", line), row.Item.PartNumber)
		f.SetCellValue(bomSheet, fmt.Sprintf("C%d", line), row.Item.Description)
		f.SetCellValue(bomSheet, fmt.Sprintf("D%d", line), row.Item.Quantity)
		f.SetCellStyle(bomSheet, fmt.Sprintf("A%d", line), fmt.Sprintf("A%d", line), rowFills.get(row.Item.VisualAidBgColor))

		for i, c := range row.Cells {
			if !c.Applicable {
				continue
			}
			col, _ := excelize.ColumnNumberToName(len(headers) + i + 1)
			cell := fmt.Sprintf("%s%d", col, line)
			f.SetCellValue(bomSheet, cell, "X")
			f.SetCellStyle(bomSheet, cell, cell, rowFills.get(m.Variants[i].Color))
		}
	}

	widths := []float64{12, 22, 45, 6}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(bomSheet, col, col, w)
	}
	if len(m.Variants) > 0 {
		first, _ := excelize.ColumnNumberToName(len(headers) + 1)
		last, _ := excelize.ColumnNumberToName(len(headers) + len(m.Variants))
		f.SetColWidth(bomSheet, first, last, 16)
	}

	if err := writeHistory(f, history, headerStyle); err != nil {
		return nil, err
	}
	return f, nil
}

func writeHistory(f *excelize.File, history []models.DocHistoryItem, headerStyle int) error {
	if _, err := f.NewSheet(historySheet); err != nil {
		return err
	}
	headers := []string{"Version", "Register", "Changes", "Created by", "Date created", "Released by", "Date released"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(historySheet, cell, h)
		f.SetCellStyle(historySheet, cell, cell, headerStyle)
	}
	for r, h := range history {
		values := []interface{}{h.Version, h.Register, h.Changes, h.CreatedBy, formatDate(h.DateCreated), h.ReleasedBy, formatDate(h.DateReleased)}
		for i, v := range values {
			col, _ := excelize.ColumnNumberToName(i + 1)
			f.SetCellValue(historySheet, fmt.Sprintf("%s%d", col, r+2), v)
		}
	}
	f.SetColWidth(historySheet, "C", "C", 50)
	return nil
}

func formatDate(d *datatypes.Date) string {
	if d == nil {
		return ""
	}
	return time.Time(*d).Format(models.DateLayout)
}
