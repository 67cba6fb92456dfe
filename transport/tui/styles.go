package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

	activePlayerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	playerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))

	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

	gameOverStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(0, 2)

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)
