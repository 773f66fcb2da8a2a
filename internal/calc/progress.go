// Package calc holds the pure rules behind the line records: progress
// percentages, readable text colors and the BOM applicability matrix.
package calc

import "math"

// Band classifies a percentage for display
type Band string

const (
	BandComplete Band = "complete" // 100
	BandPartial  Band = "partial"  // 50..99
	BandLow      Band = "low"      // below 50
)

// Percentage returns round(satisfied/total*100) with ties to even.
// A zero total yields 0; the result is clamped to [0,100].
func Percentage(satisfied, total int) int {
	if total <= 0 || satisfied <= 0 {
		return 0
	}
	p := int(math.RoundToEven(float64(satisfied) / float64(total) * 100))
	if p > 100 {
		return 100
	}
	return p
}

// BandFor maps a percentage to its band
func BandFor(percentage int) Band {
	switch {
	case percentage >= 100:
		return BandComplete
	case percentage >= 50:
		return BandPartial
	default:
		return BandLow
	}
}

// Summary is a ratio with its percentage and band, as shown on status cards
type Summary struct {
	Satisfied  int  `json:"satisfied"`
	Total      int  `json:"total"`
	Percentage int  `json:"percentage"`
	Band       Band `json:"band"`
}

// Summarize builds a Summary for satisfied out of total
func Summarize(satisfied, total int) Summary {
	p := Percentage(satisfied, total)
	return Summary{
		Satisfied:  satisfied,
		Total:      total,
		Percentage: p,
		Band:       BandFor(p),
	}
}
