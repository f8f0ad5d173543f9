package cards

import (
	"fmt"
	"strings"

	"colordist/internal/colors"
)

// TextColorFor picks black or white text for a swatch background.
func TextColorFor(c colors.RGBDisplay) string {
	r, g, b := c.EightBit()
	// Perceived brightness on the 0-255 scale; 128 splits light from dark.
	if 0.299*float64(r)+0.587*float64(g)+0.114*float64(b) > 128 {
		return "#000000"
	}
	return "#ffffff"
}

const previewHead = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Color pairs preview</title>
    <style>
        body { font-family: sans-serif; background: #f0f0f0; margin: 20px; }
        table { border-collapse: collapse; }
        td, th { padding: 4px 8px; text-align: center; }
        .swatch { width: 120px; height: 60px; border: 1px solid #ccc; font-family: monospace; }
        .num { font-family: monospace; text-align: right; }
    </style>
</head>
<body>
<h2>Color pairs (%d)</h2>
<table>
<tr><th>#</th><th>A</th><th>B</th>%s</tr>
`

const previewTail = `</table>
</body>
</html>
`

// Preview renders a self-contained HTML page with one row per pair and,
// for each metric given, the pair's normalized distance.
func Preview(pairs []Pair, metrics []colors.Metric) string {
	var heads strings.Builder
	for _, m := range metrics {
		fmt.Fprintf(&heads, "<th>%s</th>", m)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, previewHead, len(pairs), heads.String())
	for i, p := range pairs {
		fmt.Fprintf(&sb, "<tr><td>%d</td>%s%s", i+1, swatch(p.A), swatch(p.B))
		for _, m := range metrics {
			fmt.Fprintf(&sb, `<td class="num">%.3f</td>`, p.Distance(m))
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString(previewTail)
	return sb.String()
}

func swatch(c colors.RGBDisplay) string {
	return fmt.Sprintf(`<td class="swatch" style="background:%s;color:%s">%s</td>`, c.Hex(), TextColorFor(c), c.Hex())
}
