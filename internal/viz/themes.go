package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the viewer chrome. The tree keeps its own colours.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

var (
	ThemeBonsai = Theme{
		Name:    "bonsai",
		Primary: lipgloss.Color("#00cd00"),
		Accent:  lipgloss.Color("#8e2c13"),
		Text:    lipgloss.Color("#e5e5e5"),
		Muted:   lipgloss.Color("#6c6c6c"),
		Success: lipgloss.Color("#5fd068"),
		Warning: lipgloss.Color("#ffc048"),
		Error:   lipgloss.Color("#ff4757"),
	}

	ThemeMoss = Theme{
		Name:    "moss",
		Primary: lipgloss.Color("#8a9a5b"),
		Accent:  lipgloss.Color("#c2b280"),
		Text:    lipgloss.Color("#e8eddf"),
		Muted:   lipgloss.Color("#5b6445"),
		Success: lipgloss.Color("#a7c957"),
		Warning: lipgloss.Color("#f2cc8f"),
		Error:   lipgloss.Color("#bc4749"),
	}

	ThemeSakura = Theme{
		Name:    "sakura",
		Primary: lipgloss.Color("#fcd4fb"),
		Accent:  lipgloss.Color("#ff9ff3"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Success: lipgloss.Color("#ffc6e5"),
		Warning: lipgloss.Color("#feca57"),
		Error:   lipgloss.Color("#ff6b6b"),
	}

	ThemeInk = Theme{
		Name:    "ink",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#9e9e9e"),
		Text:    lipgloss.Color("#dddddd"),
		Muted:   lipgloss.Color("#585858"),
		Success: lipgloss.Color("#ffffff"),
		Warning: lipgloss.Color("#bbbbbb"),
		Error:   lipgloss.Color("#ff0000"),
	}

	ThemeDusk = Theme{
		Name:    "dusk",
		Primary: lipgloss.Color("#ff6b6b"),
		Accent:  lipgloss.Color("#feca57"),
		Text:    lipgloss.Color("#f5e6ff"),
		Muted:   lipgloss.Color("#6b5b7b"),
		Success: lipgloss.Color("#5fd068"),
		Warning: lipgloss.Color("#ffc048"),
		Error:   lipgloss.Color("#ff4757"),
	}

	// All available themes
	Themes = []Theme{
		ThemeBonsai,
		ThemeMoss,
		ThemeSakura,
		ThemeInk,
		ThemeDusk,
	}
)

// GetTheme returns a theme by name, falling back to the bonsai theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeBonsai
}

func HasTheme(name string) bool {
	for _, t := range Themes {
		if t.Name == name {
			return true
		}
	}
	return false
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
