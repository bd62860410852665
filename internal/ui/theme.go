package ui

import "github.com/charmbracelet/lipgloss"

// Theme is the color palette for the terminal UI. ANSI 256 codes keep
// it working over SSH and tmux. The reds follow the workshop's
// branding.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color
	Accent     lipgloss.Color
	Success    lipgloss.Color
	Error      lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	BorderColor lipgloss.Color
	HelpText    lipgloss.Color
}

var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),
	Accent:     lipgloss.Color("160"),
	Success:    lipgloss.Color("114"),
	Error:      lipgloss.Color("196"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	BorderColor: lipgloss.Color("240"),
	HelpText:    lipgloss.Color("241"),
}

// Styles are the prebuilt lipgloss styles shared by every screen.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Faint    lipgloss.Style
	Value    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Help     lipgloss.Style
	Box      lipgloss.Style
	Selected lipgloss.Style
}

func NewStyles(theme Theme) Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		Label:    lipgloss.NewStyle().Foreground(theme.FaintText),
		Faint:    lipgloss.NewStyle().Foreground(theme.FaintText),
		Value:    lipgloss.NewStyle().Foreground(theme.NormalText),
		Error:    lipgloss.NewStyle().Foreground(theme.Error),
		Success:  lipgloss.NewStyle().Foreground(theme.Success),
		Help:     lipgloss.NewStyle().Foreground(theme.HelpText),
		Box:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.BorderColor).Padding(0, 1),
		Selected: lipgloss.NewStyle().Background(theme.SelectedBackground).Foreground(theme.SelectedForeground),
	}
}
