package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/arbor/internal/config/colors"
)

// Tab borders. The active tab has no bottom border so it opens into the list.
var (
	activeTabBorder = lipgloss.Border{
		Top:         "─",
		Bottom:      " ",
		Left:        "│",
		Right:       "│",
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "┘",
		BottomRight: "└",
	}

	tabBorder = lipgloss.Border{
		Top:         "─",
		Bottom:      "─",
		Left:        "│",
		Right:       "│",
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "┴",
		BottomRight: "┴",
	}
)

// Styles holds every style derived from the color scheme
type Styles struct {
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Header    lipgloss.Style
	Row       lipgloss.Style
	Selected  lipgloss.Style
	Active    lipgloss.Style
	Inactive  lipgloss.Style
	Subtle    lipgloss.Style
	Title     lipgloss.Style
	Panel     lipgloss.Style
	Confirm   lipgloss.Style
	Info      lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
}

// NewStyles builds the styles for scheme
func NewStyles(scheme colors.ColorScheme) Styles {
	accent := lipgloss.Color(scheme.Accent)
	tab := lipgloss.NewStyle().
		Border(tabBorder, true).
		BorderForeground(accent).
		Padding(0, 1)

	return Styles{
		Tab:       tab,
		ActiveTab: tab.Border(activeTabBorder, true).Bold(true).Foreground(lipgloss.Color(scheme.Title)),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(scheme.Title)),
		Row:       lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Normal)),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(scheme.SelectedFg)).
			Background(lipgloss.Color(scheme.SelectedBg)),
		Active:   lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Active)),
		Inactive: lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Inactive)),
		Subtle:   lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Subtle)),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(scheme.Border)).
			Padding(0, 1),
		Confirm: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(scheme.Delete)).
			Padding(1, 2),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.InfoFg)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.WarningFg)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.ErrorFg)).Bold(true),
	}
}
