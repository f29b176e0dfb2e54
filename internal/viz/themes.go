package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Prey      lipgloss.Color
	Predator  lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
}

var (
	ThemeMeadow = Theme{
		Name:      "meadow",
		Primary:   lipgloss.Color("#88ff88"),
		Secondary: lipgloss.Color("#00ffff"),
		Prey:      lipgloss.Color("#5f87ff"),
		Predator:  lipgloss.Color("#ff5f5f"),
		Muted:     lipgloss.Color("#444466"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeSavanna = Theme{
		Name:      "savanna",
		Primary:   lipgloss.Color("#feca57"),
		Secondary: lipgloss.Color("#ff6b6b"),
		Prey:      lipgloss.Color("#ffd700"),
		Predator:  lipgloss.Color("#ff4757"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Error:     lipgloss.Color("#ff4757"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#00a8cc"),
		Secondary: lipgloss.Color("#0077be"),
		Prey:      lipgloss.Color("#e0f0ff"),
		Predator:  lipgloss.Color("#ffcc00"),
		Muted:     lipgloss.Color("#4488aa"),
		Error:     lipgloss.Color("#ff4444"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Prey:      lipgloss.Color("#0088ff"),
		Predator:  lipgloss.Color("#ff0000"),
		Muted:     lipgloss.Color("#888888"),
		Error:     lipgloss.Color("#ff0000"),
	}

	Themes = []Theme{
		ThemeMeadow,
		ThemeSavanna,
		ThemeOcean,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name. Unknown names yield the first theme
// and false.
func GetTheme(name string) (Theme, bool) {
	i, ok := themeIndex(name)
	return Themes[i], ok
}

func themeIndex(name string) (int, bool) {
	for i, t := range Themes {
		if t.Name == name {
			return i, true
		}
	}
	return 0, false
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// WithTheme selects the named theme; unknown names fall back to the first.
func (m App) WithTheme(name string) App {
	m.theme, _ = themeIndex(name)
	return m
}
