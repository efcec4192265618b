package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/bonsai/internal/bonsai"
)

// Cell is one terminal character. A zero Glyph is blank.
type Cell struct {
	Glyph rune
	Color bonsai.Color
}

// Canvas is a grid of coloured cells. It implements bonsai.Sink, so a
// tree can draw straight into it.
type Canvas struct {
	Width, Height int
	Grid          [][]Cell
}

func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 0), max(h, 0)
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]Cell, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]Cell, w)
	}
	return c
}

// Draw writes glyph left to right from pos. Characters that fall
// outside the canvas are dropped.
func (c *Canvas) Draw(pos bonsai.Point, glyph string, color bonsai.Color) {
	if pos.Y < 0 || pos.Y >= c.Height {
		return
	}
	x := pos.X
	for _, r := range glyph {
		if x >= 0 && x < c.Width {
			c.Grid[pos.Y][x] = Cell{Glyph: r, Color: color}
		}
		x++
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		clear(c.Grid[i])
	}
}

func (c *Canvas) At(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return Cell{}, false
	}
	return c.Grid[y][x], true
}

// Bounds returns the smallest box, inclusive, holding every drawn cell.
func (c *Canvas) Bounds() (x0, y0, x1, y1 int, ok bool) {
	x0, y0 = c.Width, c.Height
	x1, y1 = -1, -1
	for y, row := range c.Grid {
		for x, cell := range row {
			if cell.Glyph == 0 {
				continue
			}
			x0, y0 = min(x0, x), min(y0, y)
			x1, y1 = max(x1, x), max(y1, y)
		}
	}
	return x0, y0, x1, y1, x1 >= 0
}

// Crop returns a copy holding only the drawn area.
func (c *Canvas) Crop() *Canvas {
	x0, y0, x1, y1, ok := c.Bounds()
	if !ok {
		return NewCanvas(0, 0)
	}
	out := NewCanvas(x1-x0+1, y1-y0+1)
	for y := range out.Grid {
		copy(out.Grid[y], c.Grid[y0+y][x0:x1+1])
	}
	return out
}

// String renders the canvas without colour, one line per row with
// trailing blanks removed.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		line := make([]rune, len(row))
		for i, cell := range row {
			line[i] = glyphOf(cell)
		}
		b.WriteString(strings.TrimRight(string(line), " ") + "\n")
	}
	return b.String()
}

// Render draws the canvas in colour with the default renderer.
func (c *Canvas) Render() string {
	return c.RenderWith(lipgloss.DefaultRenderer())
}

// RenderWith draws the canvas in colour, grouping runs of same-coloured
// cells into one styled span. Rows keep their full width.
func (c *Canvas) RenderWith(r *lipgloss.Renderer) string {
	styles := make(map[bonsai.Color]lipgloss.Style)
	style := func(col bonsai.Color) lipgloss.Style {
		s, ok := styles[col]
		if !ok {
			s = r.NewStyle().Foreground(lipgloss.Color(col.Hex()))
			styles[col] = s
		}
		return s
	}

	rows := make([]string, len(c.Grid))
	var run []rune
	for y, row := range c.Grid {
		var b strings.Builder
		for x := 0; x < len(row); {
			cell := row[x]
			if cell.Glyph == 0 {
				b.WriteByte(' ')
				x++
				continue
			}
			run = run[:0]
			for x < len(row) && row[x].Glyph != 0 && row[x].Color == cell.Color {
				run = append(run, row[x].Glyph)
				x++
			}
			b.WriteString(style(cell.Color).Render(string(run)))
		}
		rows[y] = b.String()
	}
	return strings.Join(rows, "\n")
}

func glyphOf(c Cell) rune {
	if c.Glyph == 0 {
		return ' '
	}
	return c.Glyph
}
