// Package style holds the colours, icons and text styles every ppac surface
// renders with: command output, prompts, the progress console and log lines.
package style

import "github.com/charmbracelet/lipgloss"

// Colours.
var (
	Iris   = lipgloss.Color("#5D3FD3")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "•"
	Arrow   = "→"
)

// Text styles.
var (
	// Name renders package and repository names and choice numbers.
	Name = lipgloss.NewStyle().Foreground(Iris).Bold(true)
	// Muted renders labels and secondary details.
	Muted = lipgloss.NewStyle().Foreground(Slate)
	// Faded renders steps that had nothing to do.
	Faded = Muted.Faint(true)
	// Notice renders available updates.
	Notice = lipgloss.NewStyle().Foreground(Yellow)
	// Success and Failure render step outcomes.
	Success = lipgloss.NewStyle().Foreground(Green)
	Failure = lipgloss.NewStyle().Foreground(Red)
	// Question renders prompts waiting for an answer.
	Question = lipgloss.NewStyle().Bold(true)
)
