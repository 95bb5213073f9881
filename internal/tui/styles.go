package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/weeklit/internal/theme"
)

type styles struct {
	activeTab   lipgloss.Style
	inactiveTab lipgloss.Style
	title       lipgloss.Style
	day         lipgloss.Style
	selectedDay lipgloss.Style
	today       lipgloss.Style
	muted       lipgloss.Style
	danger      lipgloss.Style
	doc         lipgloss.Style
}

// newStyles derives the palette from the theme store. Custom colors drive
// the accent; dark themes swap the neutral greys.
func newStyles(ts *theme.Store) styles {
	colors := ts.Colors()
	primary := lipgloss.Color(colors[theme.ColorPrimary])

	subtle, surface := lipgloss.Color("240"), lipgloss.Color("254")
	if ts.IsDark() {
		subtle, surface = lipgloss.Color("246"), lipgloss.Color("236")
	}

	return styles{
		activeTab: lipgloss.NewStyle().
			Foreground(primary).
			Background(surface).
			Padding(0, 1).
			Bold(true),
		inactiveTab: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(0, 1),
		title: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		day: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(0, 1),
		selectedDay: lipgloss.NewStyle().
			Foreground(primary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(primary).
			Padding(0, 1).
			Bold(true),
		today: lipgloss.NewStyle().
			Underline(true),
		muted: lipgloss.NewStyle().
			Foreground(subtle).
			Italic(true),
		danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		doc: lipgloss.NewStyle().Padding(1, 2),
	}
}
