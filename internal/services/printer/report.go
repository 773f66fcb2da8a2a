package printer

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xelth-com/linerecords/internal/calc"
	"github.com/xelth-com/linerecords/internal/models"
	"github.com/xelth-com/linerecords/internal/services/checklist"
)

const (
	refW    = 32.0
	testW   = 118.0
	statusW = 20.0
	lineH   = 5.0
)

// ValidationReportPDF renders the checklist of one equipment with its verdicts
func ValidationReportPDF(view *checklist.ValidationView, printedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 15, 20)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	_, pageH := pdf.GetPageSize()
	bottom := pageH - 15

	eq := view.Equipment
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("%s - page %d", tr(eq.Station), pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 9, tr("Validation report "+eq.Station), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Equipment no.: %s   Owner: %s", eq.EqNumber, eq.Owner)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Printed: %s", printedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")

	p := view.Progress
	r, g, b := bandColor(p.Band)
	pdf.SetFillColor(r, g, b)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Progress: %d%% (%d / %d OK)", p.Percentage, p.Satisfied, p.Total), "1", 1, "C", true, 0, "")
	pdf.Ln(3)

	cellMargin := pdf.GetCellMargin()
	for _, cat := range view.Categories {
		if pdf.GetY()+2*lineH+8 > bottom {
			pdf.AddPage()
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, tr(cat.Title), "", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(217, 225, 242)
		pdf.CellFormat(refW, lineH+1, "Ref", "1", 0, "L", true, 0, "")
		pdf.CellFormat(testW, lineH+1, "Test", "1", 0, "L", true, 0, "")
		pdf.CellFormat(statusW, lineH+1, "Status", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 8)
		for _, item := range cat.Items {
			text := tr(item.Test)
			lines := pdf.SplitLines([]byte(text), testW-2*cellMargin)
			h := float64(len(lines)) * lineH
			if h < lineH {
				h = lineH
			}
			if pdf.GetY()+h > bottom {
				pdf.AddPage()
			}

			x, y := pdf.GetXY()
			pdf.Rect(x, y, refW, h, "D")
			pdf.CellFormat(refW, lineH, tr(reference(item)), "", 0, "L", false, 0, "")

			pdf.SetXY(x+refW, y)
			pdf.MultiCell(testW, lineH, text, "1", "L", false)

			status, fill := "-", false
			if res, ok := view.Results[item.ID]; ok {
				status = string(res.Status)
				fill = true
				if res.Status == models.StatusOK {
					pdf.SetFillColor(198, 239, 206)
				} else {
					pdf.SetFillColor(255, 199, 206)
				}
			}
			pdf.SetXY(x+refW+testW, y)
			pdf.CellFormat(statusW, h, status, "1", 0, "C", fill, 0, "")
			pdf.SetXY(x, y+h)
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func reference(item models.ValidationChecklistItem) string {
	refs := make([]string, 0, 2)
	for _, r := range []string{item.RefIATF, item.RefVDA} {
		if r = strings.TrimSpace(r); r != "" {
			refs = append(refs, r)
		}
	}
	return strings.Join(refs, " / ")
}

func bandColor(b calc.Band) (int, int, int) {
	switch b {
	case calc.BandComplete:
		return 198, 239, 206
	case calc.BandPartial:
		return 255, 235, 156
	default:
		return 255, 199, 206
	}
}
