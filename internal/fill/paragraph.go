package fill

import "strings"

// Paragraph greedy-wraps plain paragraph text to the full fill column,
// preserving the indentation of the first line on every output line.
// This is the generic fallback used when the fill command is invoked
// outside a property record.
func Paragraph(text string, cfg Config) []string {
	width := cfg.FillColumn
	if width <= 0 {
		width = DefaultFillColumn
	}

	stripped := strings.TrimLeft(text, " \t")
	indent := text[:len(text)-len(stripped)]
	avail := width - len(indent)
	if avail < 1 {
		avail = 1
	}

	lines := wrapSegment(stripped, avail)
	for i, line := range lines {
		lines[i] = indent + line
	}
	return lines
}
