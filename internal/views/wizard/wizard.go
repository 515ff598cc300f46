package wizard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robertguss/vibe-academy-go/internal/domain"
	"github.com/robertguss/vibe-academy-go/internal/orchestrator"
	"github.com/robertguss/vibe-academy-go/internal/theme"
	"github.com/robertguss/vibe-academy-go/internal/util"
)

// Driver is the part of the orchestrator the wizard talks to
type Driver interface {
	ActiveStep() orchestrator.StepView
	Select(step domain.StepName, value string, multiSelect bool) bool
	Validate() bool
	StepBack()
}

// textFields maps free-text input cards to the list they fill
var textFields = map[string]string{
	domain.InputReferenceSites:      domain.FieldReferenceSites,
	domain.InputInspirationKeywords: domain.FieldInspirationKeywords,
}

var moodIcons = map[domain.Mood]string{
	domain.MoodExcited:      "🤩",
	domain.MoodThinking:     "🤔",
	domain.MoodFocused:      "🧐",
	domain.MoodProfessional: "👔",
	domain.MoodHelpful:      "🙌",
}

// Model represents the questionnaire view
type Model struct {
	width    int
	height   int
	styles   theme.Styles
	driver   Driver
	step     orchestrator.StepView
	cursor   int
	editing  bool
	input    string
	warnings []string
}

// New creates a wizard view bound to a driver
func New(d Driver) Model {
	m := Model{driver: d, styles: theme.NewStyles()}
	m.Refresh()
	return m
}

// Refresh re-reads the active step. The cursor and any open text entry are
// kept while the step stays the same.
func (m *Model) Refresh() {
	v := m.driver.ActiveStep()
	if v.Stage != m.step.Stage || v.Step != m.step.Step {
		m.cursor = 0
		m.editing = false
		m.input = ""
	}
	m.step = v
	if m.cursor >= len(v.Options) {
		m.cursor = max(0, len(v.Options)-1)
	}
}

// Step returns the step being shown
func (m Model) Step() orchestrator.StepView {
	return m.step
}

// Cursor returns the focused option index
func (m Model) Cursor() int {
	return m.cursor
}

// Editing reports whether a text entry is open
func (m Model) Editing() bool {
	return m.editing
}

// SetWarnings sets the advisory warnings shown under the cards
func (m *Model) SetWarnings(w []string) {
	m.warnings = w
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
	if m.editing {
		return m.handleEditKey(key)
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.step.Options)-1 {
			m.cursor++
		}
	case " ":
		m.act()
	case "enter":
		// single choice steps take the focused card on the way out
		if m.step.Mode == domain.ModeSingle {
			if opt, ok := m.focused(); ok && !m.step.Selected(opt.Value) {
				m.driver.Select(m.step.Step, opt.Value, false)
			}
		}
		m.driver.Validate()
	case "d":
		m.removeEntry()
	case "b", "backspace":
		m.driver.StepBack()
	default:
		return m, nil
	}
	m.Refresh()
	return m, nil
}

func (m Model) focused() (domain.Option, bool) {
	if m.cursor < 0 || m.cursor >= len(m.step.Options) {
		return domain.Option{}, false
	}
	return m.step.Options[m.cursor], true
}

// act applies the focused card according to the step's mode
func (m *Model) act() {
	opt, ok := m.focused()
	if !ok || m.step.Mode == domain.ModeDisplay {
		return
	}
	if opt.Input {
		m.editing = true
		m.input = ""
		return
	}
	m.driver.Select(m.step.Step, opt.Value, m.step.Mode.IsMulti())
}

// removeEntry drops the newest text entry of the focused input card
func (m *Model) removeEntry() {
	opt, ok := m.focused()
	if !ok || !opt.Input {
		return
	}
	switch m.step.Mode {
	case domain.ModeText:
		entries := m.step.Answers.List(textFields[opt.ID])
		if len(entries) > 0 {
			m.driver.Select(m.step.Step, opt.ID+"="+entries[len(entries)-1], true)
		}
	case domain.ModeKeyed:
		m.driver.Select(m.step.Step, opt.ID+"=", false)
	}
}

func (m Model) handleEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.input = ""
	case tea.KeyEnter:
		opt, ok := m.focused()
		text := strings.TrimSpace(m.input)
		if !ok || text == "" {
			m.editing = false
			m.input = ""
			return m, nil
		}
		// a rejected entry stays open so it can be corrected
		if m.driver.Select(m.step.Step, opt.ID+"="+text, m.step.Mode == domain.ModeText) {
			m.editing = false
			m.input = ""
		}
		m.Refresh()
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

// View renders the wizard
func (m Model) View() string {
	var sections []string
	sections = append(sections, m.renderProgress(), "", m.renderDialogue(), "")
	sections = append(sections, m.renderOptions()...)
	if m.editing {
		sections = append(sections, "", m.renderInput())
	}
	if len(m.warnings) > 0 {
		sections = append(sections, "", m.renderWarnings())
	}
	sections = append(sections, "", m.renderHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderProgress() string {
	p := m.step.Progress
	filled, empty := util.ProgressBar(int(p.Percentage), 20)
	return fmt.Sprintf("%s  %s  %s%s",
		m.styles.Title.Render(fmt.Sprintf("階段 %d/%d · %s", m.step.StageIndex+1, domain.StageCount, m.step.StageName)),
		m.styles.Muted.Render(fmt.Sprintf("步驟 %d/%d", p.Current, p.Total)),
		m.styles.ProgressFull.Render(filled),
		m.styles.ProgressEmpty.Render(empty),
	)
}

func (m Model) renderDialogue() string {
	d := m.step.Dialogue
	icon, ok := moodIcons[d.Mood]
	if !ok {
		icon = "😊"
	}

	width := max(min(m.width-6, 80), 20)
	body := lipgloss.NewStyle().Width(width - 4).Render(d.Body)
	content := lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+m.styles.Bold.Render(d.Title),
		body,
	)
	if d.PrimaryAction != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, m.styles.Mood.Render("→ "+d.PrimaryAction))
	}
	return m.styles.Dialogue.Width(width).Render(content)
}

// visibleRange returns the window of options that fits the view
func (m Model) visibleRange() (int, int) {
	n := len(m.step.Options)
	limit := n
	if m.height > 0 {
		limit = max((m.height-16)/2, 3)
	}
	if n <= limit {
		return 0, n
	}
	start := max(0, m.cursor-limit/2)
	end := min(n, start+limit)
	return end - limit, end
}

func (m Model) renderOptions() []string {
	if len(m.step.Options) == 0 {
		return []string{m.styles.Muted.Render("（沒有可選擇的項目）")}
	}

	start, end := m.visibleRange()
	var rows []string
	if start > 0 {
		rows = append(rows, m.styles.Muted.Render(fmt.Sprintf("  ↑ 還有 %d 項", start)))
	}
	category := ""
	if start > 0 {
		category = m.step.Options[start-1].Category
	}
	for i := start; i < end; i++ {
		opt := m.step.Options[i]
		if opt.Category != "" && opt.Category != category {
			rows = append(rows, m.styles.Subtitle.Render(opt.Category))
		}
		category = opt.Category
		rows = append(rows, m.renderOption(i, opt))
	}
	if end < len(m.step.Options) {
		rows = append(rows, m.styles.Muted.Render(fmt.Sprintf("  ↓ 還有 %d 項", len(m.step.Options)-end)))
	}
	return rows
}

func (m Model) marker(opt domain.Option) string {
	switch {
	case m.step.Mode == domain.ModeDisplay:
		return "•"
	case opt.Input:
		return "✎"
	case m.step.Mode == domain.ModeMultiple:
		if m.step.Selected(opt.Value) {
			return "[x]"
		}
		return "[ ]"
	default:
		if m.step.Selected(opt.Value) {
			return "◉"
		}
		return "○"
	}
}

func (m Model) renderOption(index int, opt domain.Option) string {
	focused := index == m.cursor
	selected := !opt.Input && m.step.Mode != domain.ModeDisplay && m.step.Selected(opt.Value)

	cursor := "  "
	if focused {
		cursor = m.styles.Shortcut.Render("› ")
	}

	title := opt.Title
	if opt.Icon != "" {
		title = opt.Icon + " " + title
	}
	titleStyle := m.styles.Bold
	switch {
	case selected:
		titleStyle = m.styles.Success.Bold(true)
	case focused:
		titleStyle = m.styles.Highlight
	}

	line := fmt.Sprintf("%s%s %s", cursor, m.marker(opt), titleStyle.Render(title))
	if opt.Description != "" {
		desc := util.Truncate(opt.Description, max(m.width-lipgloss.Width(line)-6, 10))
		line += "  " + m.styles.Muted.Render(desc)
	}

	if !opt.Input {
		return line
	}
	lines := []string{line}
	for _, entry := range m.entries(opt) {
		lines = append(lines, "      "+m.styles.Info.Render("· "+entry))
	}
	return strings.Join(lines, "\n")
}

// entries returns the text recorded under an input card
func (m Model) entries(opt domain.Option) []string {
	if m.step.Mode == domain.ModeText {
		return m.step.Answers.List(textFields[opt.ID])
	}
	if note := m.step.Answers.MapValue(domain.FieldNotes, opt.ID); note != "" {
		return []string{note}
	}
	return nil
}

func (m Model) renderInput() string {
	label := "輸入"
	if opt, ok := m.focused(); ok {
		label = opt.Title
	}
	return m.styles.BorderedBox.Padding(0, 1).Render(
		m.styles.Title.Render(label+": ") + m.input + m.styles.Shortcut.Render("_"))
}

func (m Model) renderWarnings() string {
	lines := []string{m.styles.Warning.Bold(true).Render("⚠ 注意事項")}
	for _, w := range m.warnings {
		lines = append(lines, m.styles.Warning.Render("  - "+w))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderHelp() string {
	if m.editing {
		return m.styles.Muted.Render("Enter 確認 | Esc 取消")
	}

	var action string
	switch m.step.Mode {
	case domain.ModeSingle:
		action = "Space 選擇 | Enter 選擇並繼續"
	case domain.ModeMultiple:
		action = "Space 切換 | Enter 繼續"
	case domain.ModeText:
		action = "Space 輸入 | d 刪除最後一筆 | Enter 繼續"
	case domain.ModeKeyed:
		action = "Space 選擇/輸入 | Enter 繼續"
	default:
		action = "Enter 繼續"
	}
	return m.styles.Muted.Render(action + " | ↑/↓ 移動 | b 上一步 | [ ] 切換階段")
}
