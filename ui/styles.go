package ui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Width(13)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238"))
	activeButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Bold(true)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 3).
			Width(48)
	errorDialogStyle = dialogStyle.BorderForeground(lipgloss.Color("203"))
	infoDialogStyle  = dialogStyle.BorderForeground(lipgloss.Color("42"))
	dialogTitleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

func button(label string, active bool) string {
	if active {
		return activeButtonStyle.Render(label)
	}
	return buttonStyle.Render(label)
}
