package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#3584e4")
	green  = lipgloss.Color("#2ec27e")
	dim    = lipgloss.Color("#9a9996")
	red    = lipgloss.Color("#e01b24")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			MarginBottom(1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	rowStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	disabledStyle = lipgloss.NewStyle().
			Foreground(dim).
			Strikethrough(true)

	activeBadge = lipgloss.NewStyle().
			Foreground(green).
			Bold(true)

	shiftBadge = lipgloss.NewStyle().
			Foreground(accent)

	detailStyle = lipgloss.NewStyle().
			PaddingLeft(6).
			Foreground(dim)

	labelsStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(dim).
			Padding(0, 1).
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(dim).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(red)
)
