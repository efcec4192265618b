package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// styles are the viewer's text styles for one theme.
type styles struct {
	label   lipgloss.Style
	value   lipgloss.Style
	running lipgloss.Style
	paused  lipgloss.Style
	done    lipgloss.Style
	key     lipgloss.Style
	hint    lipgloss.Style
	err     lipgloss.Style
	box     lipgloss.Style
	title   lipgloss.Style
	subtle  lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		label:   lipgloss.NewStyle().Foreground(t.Muted),
		value:   lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		running: lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		paused:  lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		done:    lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		key:     lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		hint:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		err:     lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Accent).
			Padding(1, 2),
		title:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		subtle: lipgloss.NewStyle().Foreground(t.Muted),
	}
}

// GradientText blends text from startColor to endColor in Lab space.
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	start, err := colorful.Hex(string(startColor))
	if err != nil {
		start = colorful.Color{R: 1, G: 1, B: 1}
	}
	end, err := colorful.Hex(string(endColor))
	if err != nil {
		end = start
	}

	var result strings.Builder
	n := len(runes)
	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		color := lipgloss.Color(start.BlendLab(end, t).Clamped().Hex())
		result.WriteString(lipgloss.NewStyle().Foreground(color).Bold(true).Render(string(c)))
	}

	return result.String()
}

// keyHints renders "key action" pairs on one line.
func (s styles) keyHints(pairs ...[2]string) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = s.key.Render(p[0]) + s.hint.Render(" "+p[1])
	}
	return strings.Join(parts, "  ")
}

// Decorative separator
func (s styles) separator(width int) string {
	if width < 8 {
		return s.subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.subtle.Render(left + " ◆ " + right)
}
