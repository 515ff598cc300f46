package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robertguss/vibe-academy-go/internal/theme"
	"github.com/robertguss/vibe-academy-go/internal/util"
)

// DefaultHelp is shown when there is no message
const DefaultHelp = "? 說明 | Ctrl+C 離開"

// Model represents the status bar component
type Model struct {
	width     int
	sessionID string
	stage     string
	percent   int
	message   string
	isError   bool
}

// New creates a new status bar model
func New() Model {
	return Model{}
}

// SetWidth sets the status bar width
func (m *Model) SetWidth(width int) {
	m.width = width
}

// SetSession sets the session id, shortened for display
func (m *Model) SetSession(id string) {
	if len(id) > 8 {
		id = id[:8]
	}
	m.sessionID = id
}

// SetProgress sets the active stage name and its step progress
func (m *Model) SetProgress(stage string, percent int) {
	m.stage = stage
	m.percent = percent
}

// SetMessage sets a temporary status message
func (m *Model) SetMessage(msg string) {
	m.message = msg
	m.isError = false
}

// SetError sets a status message shown in the error color
func (m *Model) SetError(msg string) {
	m.message = msg
	m.isError = true
}

// ClearMessage clears the status message
func (m *Model) ClearMessage() {
	m.message = ""
	m.isError = false
}

// Message returns the current status message
func (m Model) Message() string {
	return m.message
}

// View renders the status bar
func (m Model) View() string {
	t := theme.Current

	border := lipgloss.NewStyle().
		Foreground(t.Border).
		Width(m.width).
		Render(strings.Repeat("─", max(m.width, 0)))

	session := fmt.Sprintf("Session: %s | %s",
		lipgloss.NewStyle().Foreground(t.Info).Render(m.sessionID),
		lipgloss.NewStyle().Foreground(t.Subtle).Render(t.Name),
	)

	filled, empty := util.ProgressBar(m.percent, 10)
	progress := fmt.Sprintf("%s %s%s %d%%",
		lipgloss.NewStyle().Foreground(t.Foreground).Bold(true).Render(m.stage),
		lipgloss.NewStyle().Foreground(t.Primary).Render(filled),
		lipgloss.NewStyle().Foreground(t.Border).Render(empty),
		m.percent,
	)

	var right string
	switch {
	case m.message != "" && m.isError:
		right = lipgloss.NewStyle().Foreground(t.Error).Render(m.message)
	case m.message != "":
		right = lipgloss.NewStyle().Foreground(t.Warning).Render(m.message)
	default:
		right = lipgloss.NewStyle().Foreground(t.Subtle).Render(DefaultHelp)
	}

	leftWidth := lipgloss.Width(session)
	centerWidth := lipgloss.Width(progress)
	rightWidth := lipgloss.Width(right)
	total := leftWidth + centerWidth + rightWidth

	var content string
	if m.width > total+4 {
		gap := (m.width - total - 4) / 2
		content = session + strings.Repeat(" ", gap) + progress + strings.Repeat(" ", gap) + right
	} else {
		content = progress + "  " + right
	}

	bar := lipgloss.NewStyle().
		Background(t.StatusBar).
		Foreground(t.Subtle).
		Width(m.width).
		Padding(0, 2).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, border, bar)
}
