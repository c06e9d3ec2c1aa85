package tui

import (
	"samm/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("69"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	onStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	offStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	infoStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	warnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

func levelStyle(l domain.Level) lipgloss.Style {
	switch l {
	case domain.LevelWarning:
		return warnStyle
	case domain.LevelError:
		return errorStyle
	default:
		return infoStyle
	}
}
