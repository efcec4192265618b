package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/bonsai/internal/viz"
)

// CanvasToSVG draws each run of same-coloured cells as one <text> span
// in a monospace grid. cell is the character width in pixels; rows are
// twice as tall.
func CanvasToSVG(canvas *viz.Canvas, cell float64) string {
	if canvas == nil {
		return ""
	}
	canvas = canvas.Crop()

	width := float64(canvas.Width) * cell
	height := float64(canvas.Height) * cell * 2

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g font-family="monospace" font-size="%.1f" xml:space="preserve">
`, width, height, width, height, cell*1.6))

	for row := 0; row < canvas.Height; row++ {
		cells := canvas.Grid[row]
		y := float64(row)*cell*2 + cell*1.5
		for col := 0; col < len(cells); {
			c := cells[col]
			if c.Glyph == 0 || c.Glyph == ' ' {
				col++
				continue
			}
			start := col
			var run []rune
			for col < len(cells) && cells[col].Glyph != 0 && cells[col].Color == c.Color {
				run = append(run, cells[col].Glyph)
				col++
			}
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" textLength="%.1f">%s</text>
`, float64(start)*cell, y, c.Color.Hex(), float64(len(run))*cell, html.EscapeString(string(run))))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
