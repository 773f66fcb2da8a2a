package printer

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
	"github.com/xelth-com/linerecords/internal/models"
)

// LabelConfig holds configuration for PDF generation
type LabelConfig struct {
	Cols       int     `json:"cols"`
	Rows       int     `json:"rows"`
	MarginTop  float64 `json:"marginTop"`
	MarginLeft float64 `json:"marginLeft"`
	GapX       float64 `json:"gapX"`
	GapY       float64 `json:"gapY"`
	Suffix     string  `json:"suffix"` // appended to every QR payload
}

// WithDefaults fills unset grid values with a 2x5 sheet
func (c LabelConfig) WithDefaults() LabelConfig {
	if c.Cols <= 0 {
		c.Cols = 2
	}
	if c.Rows <= 0 {
		c.Rows = 5
	}
	if c.MarginTop == 0 {
		c.MarginTop = 10
	}
	if c.MarginLeft == 0 {
		c.MarginLeft = 10
	}
	return c
}

// Label is one equipment tag
type Label struct {
	Title   string // station
	Code    string // equipment number, encoded in the QR
	Caption string
}

// EquipmentLabels builds one tag per equipment
func EquipmentLabels(list []models.Equipment) []Label {
	labels := make([]Label, 0, len(list))
	for _, eq := range list {
		code := eq.EqNumber
		if code == "" {
			code = eq.Station
		}
		labels = append(labels, Label{
			Title:   eq.Station,
			Code:    code,
			Caption: fmt.Sprintf("%s | %s | %s kW", eq.Owner, eq.PowerSupply, eq.PowerKW),
		})
	}
	return labels
}

// QRContent is the payload encoded on a tag
func QRContent(l Label, suffix string) string {
	return fmt.Sprintf("EQ:%s/%s%s", l.Title, l.Code, suffix)
}

// GenerateLabelsPDF creates an A4 sheet of equipment tags with QR codes
func GenerateLabelsPDF(cfg LabelConfig, labels []Label) ([]byte, error) {
	cfg = cfg.WithDefaults()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Arial", "B", 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// A4 dimensions
	pageWidth, pageHeight := 210.0, 297.0

	totalGapX := float64(cfg.Cols-1) * cfg.GapX
	totalGapY := float64(cfg.Rows-1) * cfg.GapY

	// Assuming symmetric margins
	availW := pageWidth - (cfg.MarginLeft * 2)
	availH := pageHeight - (cfg.MarginTop * 2)

	labelW := (availW - totalGapX) / float64(cfg.Cols)
	labelH := (availH - totalGapY) / float64(cfg.Rows)

	labelsPerPage := cfg.Cols * cfg.Rows
	if len(labels) == 0 {
		pdf.AddPage()
	}

	for i, l := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		indexOnPage := i % labelsPerPage
		col := indexOnPage % cfg.Cols
		row := indexOnPage / cfg.Cols

		// Top-left of label
		x := cfg.MarginLeft + float64(col)*(labelW+cfg.GapX)
		y := cfg.MarginTop + float64(row)*(labelH+cfg.GapY)

		qrPng, err := qrcode.Encode(QRContent(l, cfg.Suffix), qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("encode QR for %s: %w", l.Title, err)
		}

		imgName := fmt.Sprintf("qr_%d", i)
		imgOptions := gofpdf.ImageOptions{
			ImageType: "PNG",
			ReadDpi:   true,
		}
		pdf.RegisterImageOptionsReader(imgName, imgOptions, bytes.NewReader(qrPng))

		// QR on the left, text on the right
		qrSize := labelH * 0.8
		if qrSize > labelW/2 {
			qrSize = labelW / 2
		}
		qrY := y + (labelH-qrSize)/2
		pdf.ImageOptions(imgName, x+2, qrY, qrSize, qrSize, false, imgOptions, 0, "")

		textX := x + qrSize + 4
		textW := labelW - qrSize - 6

		pdf.SetXY(textX, y+labelH/2-9)
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(textW, 7, tr(l.Title), "", 2, "L", false, 0, "")

		pdf.SetX(textX)
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(textW, 5, tr(l.Code), "", 2, "L", false, 0, "")

		pdf.SetX(textX)
		pdf.SetFont("Arial", "", 7)
		pdf.CellFormat(textW, 4, tr(l.Caption), "", 0, "L", false, 0, "")

		// Cutting frame
		pdf.SetDrawColor(180, 180, 180)
		pdf.Rect(x, y, labelW, labelH, "D")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
