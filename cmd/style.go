package cmd

import "github.com/charmbracelet/lipgloss"

// LipGloss signature purple/pink palette
var (
	headerColor  = lipgloss.Color("#F780FF") // Bright pink/magenta
	idColor      = lipgloss.Color("#BD93F9") // Purple
	numberColor  = lipgloss.Color("#FF79C6") // Pink
	textColor    = lipgloss.Color("#E9E9F4") // Light purple/white
	borderColor  = lipgloss.Color("#6272A4") // Muted purple
	summaryColor = lipgloss.Color("#8BE9FD") // Cyan accent
	successColor = lipgloss.Color("#50FA7B") // Green
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(headerColor).
			Bold(true)

	borderStyle = lipgloss.NewStyle().Foreground(borderColor)

	bodyStyle = lipgloss.NewStyle().Foreground(textColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(borderColor).
			Italic(true)

	summaryStyle = lipgloss.NewStyle().
			Foreground(summaryColor).
			Italic(true)

	successStyle = lipgloss.NewStyle().Foreground(successColor)

	mockBadge = lipgloss.NewStyle().
			Foreground(numberColor).
			Bold(true).
			Render("[mock mode]")
)
