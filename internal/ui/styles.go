// ABOUTME: Lipgloss styles for the bank browser
// ABOUTME: ANSI 256-color codes for broad terminal compatibility
package ui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("24")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("31"))

	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("117"))
	faintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	dividerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)
