package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the live view.
type Theme struct {
	Name     string
	Title    lipgloss.Color
	Box      lipgloss.Color
	Label    lipgloss.Color
	Value    lipgloss.Color
	Chart    lipgloss.Color
	Muted    lipgloss.Color
	Running  lipgloss.Color
	Stopped  lipgloss.Color
	Progress lipgloss.Color
}

var Themes = []Theme{
	{
		Name:     "neon",
		Title:    lipgloss.Color("86"),
		Box:      lipgloss.Color("#00ffff"),
		Label:    lipgloss.Color("245"),
		Value:    lipgloss.Color("252"),
		Chart:    lipgloss.Color("49"),
		Muted:    lipgloss.Color("240"),
		Running:  lipgloss.Color("#00ff88"),
		Stopped:  lipgloss.Color("#ffaa00"),
		Progress: lipgloss.Color("#ff00ff"),
	},
	{
		Name:     "mono",
		Title:    lipgloss.Color("#ffffff"),
		Box:      lipgloss.Color("#cccccc"),
		Label:    lipgloss.Color("#888888"),
		Value:    lipgloss.Color("#ffffff"),
		Chart:    lipgloss.Color("#cccccc"),
		Muted:    lipgloss.Color("#666666"),
		Running:  lipgloss.Color("#ffffff"),
		Stopped:  lipgloss.Color("#888888"),
		Progress: lipgloss.Color("#aaaaaa"),
	},
	{
		Name:     "ocean",
		Title:    lipgloss.Color("#00a8cc"),
		Box:      lipgloss.Color("#0077be"),
		Label:    lipgloss.Color("#4488aa"),
		Value:    lipgloss.Color("#e0f0ff"),
		Chart:    lipgloss.Color("#ffd700"),
		Muted:    lipgloss.Color("#4488aa"),
		Running:  lipgloss.Color("#00ff88"),
		Stopped:  lipgloss.Color("#ffcc00"),
		Progress: lipgloss.Color("#00a8cc"),
	},
}

// ThemeIndex returns the position of the named theme, or 0.
func ThemeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}
