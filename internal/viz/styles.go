package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title    lipgloss.Style
	box      lipgloss.Style
	stats    lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	chart    lipgloss.Style
	help     lipgloss.Style
	running  lipgloss.Style
	stopped  lipgloss.Style
	progress lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title: lipgloss.NewStyle().Foreground(t.Title).Bold(true).MarginBottom(1),
		box:   lipgloss.NewStyle().Foreground(t.Box).Padding(1, 2),
		stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(52),
		label:    lipgloss.NewStyle().Foreground(t.Label).Width(14),
		value:    lipgloss.NewStyle().Foreground(t.Value),
		chart:    lipgloss.NewStyle().Foreground(t.Chart).Padding(1, 0),
		help:     lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		running:  lipgloss.NewStyle().Foreground(t.Running).Bold(true),
		stopped:  lipgloss.NewStyle().Foreground(t.Stopped).Bold(true),
		progress: lipgloss.NewStyle().Foreground(t.Progress),
	}
}

// ProgressBar renders fraction in [0, 1] as a bar of the given width.
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
