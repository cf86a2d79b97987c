package tui

import "github.com/charmbracelet/lipgloss"

const (
	sidebarWidth   = 28
	headerHeight   = 1
	inputHeight    = 3
	statusHeight   = 1
	minMainWidth   = 20
	minViewportRow = 1
)

var (
	primaryColor = lipgloss.Color("#7C3AED")
	accentColor  = lipgloss.Color("#F59E0B")
	userColor    = lipgloss.Color("#06B6D4")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")
	borderColor  = lipgloss.Color("#4B5563")
	textColor    = lipgloss.Color("#F9FAFB")
)

var (
	headerStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(textColor).
			Bold(true).
			Padding(0, 1)

	sidebarStyle = lipgloss.NewStyle().
			Width(sidebarWidth).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(borderColor)

	activeThreadStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	threadStyle       = lipgloss.NewStyle().Foreground(mutedColor)

	userLabelStyle      = lipgloss.NewStyle().Foreground(userColor).Bold(true)
	assistantLabelStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	sourcesStyle        = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	statusStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	alertStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	confirmStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
)
