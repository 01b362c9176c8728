// Package style defines lipgloss styles for the terminal output.
package style

import "github.com/charmbracelet/lipgloss"

// Styles are package-level values; lipgloss styles are value types and
// safe for concurrent use.
var (
	// Title is used for the headline of each state.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))

	// Subtitle is used for secondary text.
	Subtitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	// Success is used for success messages.
	Success = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	// Error is used for error messages.
	Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	// Help is used for keyboard shortcut hints.
	Help = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	// Label is used for inline labels (e.g., "File:", "Saved:").
	Label = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255"))

	// Muted is used for URLs and paths.
	Muted = lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	// TableHeader is used for the header row of printed tables.
	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	// TableCell is used for table body cells.
	TableCell = lipgloss.NewStyle().
			Padding(0, 1)
)
