package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Output colors, independent of the TUI theme
var (
	colorSuccess = lipgloss.Color("#a6e3a1")
	colorError   = lipgloss.Color("#f38ba8")
	colorWarning = lipgloss.Color("#f9e2af")
	colorInfo    = lipgloss.Color("#89b4fa")
	colorMuted   = lipgloss.Color("#7f849c")
)

var (
	styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	styleError   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarning)
	styleInfo    = lipgloss.NewStyle().Foreground(colorInfo)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleTitle   = lipgloss.NewStyle().Foreground(colorInfo).Bold(true)
)

func printStyled(w io.Writer, style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(w, style.Render(fmt.Sprintf(format, args...)))
}
