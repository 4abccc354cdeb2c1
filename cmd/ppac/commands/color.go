package commands

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/ppac/internal/ui/output"
)

// useColorProfile makes lipgloss honour NO_COLOR the way the logger does.
func useColorProfile() {
	lipgloss.SetColorProfile(output.ColorProfile())
}
