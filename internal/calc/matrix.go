package calc

// VariantMatrix returns the applicability of one BOM item for every variant.
// Pairs without a stored association are not applicable.
func VariantMatrix(variantIDs []uint, stored map[uint]bool) map[uint]bool {
	m := make(map[uint]bool, len(variantIDs))
	for _, id := range variantIDs {
		m[id] = stored[id]
	}
	return m
}

// Toggle returns the next applicability of a pair.
// A pair with no stored state (current == nil) becomes applicable.
func Toggle(current *bool) bool {
	if current == nil {
		return true
	}
	return !*current
}

// DefaultVariantColors is cycled to color new variants
var DefaultVariantColors = []string{
	"#bdd7ee", "#a9d08e", "#ffff99", "#f4b084", "#cc99ff",
	"#99ffff", "#e2f0d9", "#deebf7", "#fff2cc", "#fbe5d6",
}

// VariantColor returns the palette color for the n-th variant (0-based)
func VariantColor(n int) string {
	if n < 0 {
		n = -n
	}
	return DefaultVariantColors[n%len(DefaultVariantColors)]
}
