package export

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/san-kum/bonsai/internal/viz"
)

// Text returns the drawn area without colour.
func Text(canvas *viz.Canvas) string {
	return canvas.Crop().String()
}

// ANSI returns the drawn area with 24-bit colour escapes, whatever the
// current terminal supports.
func ANSI(canvas *viz.Canvas) string {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	return canvas.Crop().RenderWith(r) + "\n"
}
