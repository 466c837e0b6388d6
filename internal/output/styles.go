package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Use these instead of inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: resource paths, loader names.
	ColorCyan = lipgloss.Color("14")

	// ColorYellow marks chains that came from the built-in default table.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for failures (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")

	colorGreen = lipgloss.Color("82")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (resource paths, loader names).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs.
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Resolution sources and result statuses shown in terminal output.
const (
	StatusRule    = "rule"
	StatusDefault = "default"
	StatusNone    = "none"
	StatusWritten = "written"
	StatusFailed  = "failed"
)

// StatusStyle returns the style for a status word. Unknown statuses are unstyled.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusRule, StatusWritten:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusDefault:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusNone:
		return lipgloss.NewStyle().Faint(true)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minPathColumnWidth keeps status words aligned across lines.
const minPathColumnWidth = 48

// FormatResourceLine renders a resource path with a right-aligned status.
//
// Format: t:<path>  <status>
func FormatResourceLine(path, status string) string {
	padding := minPathColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}

	return StyleDim.Render("t:") +
		StyleNoun.Render(path) +
		strings.Repeat(" ", padding) +
		StatusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
