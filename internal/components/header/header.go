package header

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robertguss/vibe-academy-go/internal/orchestrator"
	"github.com/robertguss/vibe-academy-go/internal/theme"
)

// Title is shown at the left of the header
const Title = "Vibe Coding Academy"

// Model represents the header component: the title and one tab per stage
type Model struct {
	width  int
	stages []orchestrator.StageStatus
}

// New creates a new header model
func New() Model {
	return Model{}
}

// SetWidth sets the header width
func (m *Model) SetWidth(width int) {
	m.width = width
}

// SetStages updates the stage tabs
func (m *Model) SetStages(stages []orchestrator.StageStatus) {
	m.stages = stages
}

// Tab renders the label of one stage tab without styling
func Tab(s orchestrator.StageStatus) string {
	icon := "○"
	switch {
	case s.Active:
		icon = "●"
	case s.Complete:
		icon = "✓"
	case !s.Visitable:
		icon = "·"
	}
	return fmt.Sprintf("%s %d %s", icon, s.Index+1, s.Name)
}

// View renders the header
func (m Model) View() string {
	t := theme.Current
	styles := theme.NewStyles()

	title := styles.Title.Render(Title)

	tabs := make([]string, 0, len(m.stages))
	for _, s := range m.stages {
		style := styles.StageLocked
		switch {
		case s.Active:
			style = styles.StageActive
		case s.Complete:
			style = styles.StageDone
		case s.Visitable:
			style = styles.StageOpen
		}
		tabs = append(tabs, style.Render(Tab(s)))
	}
	nav := strings.Join(tabs, " ")

	hint := styles.Muted.Render("[Ctrl+P] 指令")

	titleWidth := lipgloss.Width(title)
	navWidth := lipgloss.Width(nav)
	hintWidth := lipgloss.Width(hint)
	total := titleWidth + navWidth + hintWidth + 8

	content := title + "  " + nav + "  " + hint
	if m.width > total {
		gap1 := (m.width - total) / 2
		gap2 := m.width - total - gap1
		content = title + strings.Repeat(" ", gap1+2) + nav + strings.Repeat(" ", gap2+2) + hint
	}

	header := lipgloss.NewStyle().
		Background(t.HeaderBg).
		Foreground(t.Foreground).
		Width(m.width).
		Padding(0, 2).
		Render(content)

	border := lipgloss.NewStyle().
		Foreground(t.Border).
		Width(m.width).
		Render(strings.Repeat("─", max(m.width, 0)))

	return lipgloss.JoinVertical(lipgloss.Left, header, border)
}
