package intro

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robertguss/vibe-academy-go/internal/domain"
	"github.com/robertguss/vibe-academy-go/internal/messages"
	"github.com/robertguss/vibe-academy-go/internal/orchestrator"
	"github.com/robertguss/vibe-academy-go/internal/theme"
)

// Model represents the welcome screen
type Model struct {
	width     int
	height    int
	styles    theme.Styles
	dialogue  domain.Dialogue
	resumable bool
	stages    []orchestrator.StageStatus
}

// New creates a new welcome screen
func New(dialogue domain.Dialogue) Model {
	return Model{
		dialogue: dialogue,
		styles:   theme.NewStyles(),
	}
}

// SetResume switches to the resume prompt, listing the saved stages
func (m *Model) SetResume(dialogue domain.Dialogue, stages []orchestrator.StageStatus) {
	m.dialogue = dialogue
	m.resumable = true
	m.stages = stages
}

// Resumable reports whether a saved session is on offer
func (m Model) Resumable() bool {
	return m.resumable
}

// SetSize sets the view dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// RefreshStyles rebuilds styles after theme change
func (m *Model) RefreshStyles() {
	m.styles = theme.NewStyles()
}

// Init initializes the view
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "enter", " ":
		return m, func() tea.Msg { return messages.ResumeMsg{Resume: true} }
	case "n":
		if m.resumable {
			return m, func() tea.Msg { return messages.ResumeMsg{Resume: false} }
		}
	}
	return m, nil
}

// View renders the welcome screen
func (m Model) View() string {
	t := theme.Current

	banner := lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		Render("✨ Vibe Coding Academy ✨")

	width := max(min(m.width-8, 70), 30)
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Bold.Render(m.dialogue.Title),
		"",
		lipgloss.NewStyle().Width(width-6).Render(m.dialogue.Body),
	)

	sections := []string{banner, "", m.styles.Dialogue.Width(width).Render(body), ""}

	if m.resumable && len(m.stages) > 0 {
		sections = append(sections, m.renderSaved(), "")
	} else {
		sections = append(sections, m.renderStages(), "")
	}

	action := m.dialogue.PrimaryAction
	if action == "" {
		action = "開始"
	}
	help := m.styles.Shortcut.Render("Enter") + " " + action
	if m.resumable {
		help += m.styles.Muted.Render("  |  ") + m.styles.Shortcut.Render("n") + " 重新開始"
	}
	sections = append(sections, help)

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderStages lists the five stages ahead
func (m Model) renderStages() string {
	var lines []string
	for i, stage := range domain.AllStages() {
		lines = append(lines, fmt.Sprintf("%s %s",
			m.styles.Shortcut.Render(fmt.Sprintf("%d.", i+1)),
			stage.DisplayName()))
	}
	return strings.Join(lines, "\n")
}

// renderSaved shows how far the saved session got
func (m Model) renderSaved() string {
	var lines []string
	for _, s := range m.stages {
		var line string
		switch {
		case s.Complete:
			line = m.styles.Success.Render("✓ " + s.Name)
		case s.Visitable:
			line = m.styles.Warning.Render("… " + s.Name)
		default:
			line = m.styles.Muted.Render("· " + s.Name)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
