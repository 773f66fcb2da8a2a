package calc

import (
	"encoding/hex"
	"strings"
)

const (
	Black = "#000000"
	White = "#FFFFFF"
)

// ContrastColor picks black or white text for a "#rrggbb" background.
// Anything that is not exactly six hex digits falls back to black.
func ContrastColor(background string) string {
	h := strings.TrimLeft(background, "#")
	if len(h) != 6 {
		return Black
	}
	rgb, err := hex.DecodeString(h)
	if err != nil {
		return Black
	}
	luminance := (0.299*float64(rgb[0]) + 0.587*float64(rgb[1]) + 0.114*float64(rgb[2])) / 255
	if luminance > 0.5 {
		return Black
	}
	return White
}
