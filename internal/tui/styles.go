package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "39"})

	headerStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "250"})

	headerSelStyle = lipgloss.NewStyle().Bold(true).Underline(true).
			Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "39"})

	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.AdaptiveColor{Light: "254", Dark: "236"})

	completedRowStyle = lipgloss.NewStyle().Faint(true)

	quickStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "130", Dark: "214"})

	dimStyle = lipgloss.NewStyle().Faint(true)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "124", Dark: "203"})
)
