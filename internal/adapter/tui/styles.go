package tui

import "github.com/charmbracelet/lipgloss"

var (
	primary   = lipgloss.Color("#2c3e50")
	secondary = lipgloss.Color("#e74c3c")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(primary).Padding(0, 1)
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(primary)
	quantityStyle = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(secondary).Bold(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)
