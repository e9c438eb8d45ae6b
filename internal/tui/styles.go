package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent   = lipgloss.Color("#AF87FF")
	colorReserved = lipgloss.Color("#5FD75F")
	colorOpen     = lipgloss.Color("#FFD75F")
	colorMeal     = lipgloss.Color("#5FD7FF")
	colorError    = lipgloss.Color("#E53935")
	colorMuted    = lipgloss.Color("#767676")
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1)
	reservedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorReserved)
	openStyle     = lipgloss.NewStyle().Foreground(colorOpen)
	mealStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorMeal)
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	statusStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	helpStyle     = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)
)

var detailsStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorAccent).
	Padding(0, 1)

var loginBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorAccent).
	Padding(1, 2)
