package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the TUI styling definitions
type Styles struct {
	Title      lipgloss.Style
	Status     lipgloss.Style
	MenuItem   lipgloss.Style
	MenuActive lipgloss.Style
	MenuMuted  lipgloss.Style
	Content    lipgloss.Style
	Warning    lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Spinner    lipgloss.Style
	Help       lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2),
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MenuItem:   lipgloss.NewStyle().PaddingLeft(2),
		MenuActive: lipgloss.NewStyle().PaddingLeft(1).Bold(true).Foreground(lipgloss.Color("212")),
		MenuMuted:  lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("240")),
		Content: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Spinner: lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
