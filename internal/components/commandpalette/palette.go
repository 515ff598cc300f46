package commandpalette

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robertguss/vibe-academy-go/internal/domain"
	"github.com/robertguss/vibe-academy-go/internal/messages"
	"github.com/robertguss/vibe-academy-go/internal/theme"
)

// Command represents an action available in the command palette
type Command struct {
	Name        string
	Description string
	Shortcut    string
	Category    string
	// Action builds the message sent when the command runs. Prompt commands
	// receive the text typed after choosing them.
	Action func(input string) tea.Msg
	// Prompt, when set, asks for text before running Action
	Prompt string
}

// SelectCommandMsg is sent when a command is selected
type SelectCommandMsg struct {
	Command Command
	Msg     tea.Msg
}

// CloseMsg is sent when the palette is closed
type CloseMsg struct{}

// Model represents the command palette
type Model struct {
	width    int
	height   int
	input    string
	commands []Command
	filtered []Command
	cursor   int
	active   bool
	prompt   *Command
}

// New creates a new command palette
func New() Model {
	m := Model{}
	m.commands = defaultCommands(nil)
	m.filtered = m.commands
	return m
}

// SetPresets rebuilds the command list with one apply command per preset
func (m *Model) SetPresets(names []string) {
	m.commands = defaultCommands(names)
	m.filterCommands()
}

func fixed(msg tea.Msg) func(string) tea.Msg {
	return func(string) tea.Msg { return msg }
}

func defaultCommands(presets []string) []Command {
	var cmds []Command

	for i, stage := range domain.AllStages() {
		cmds = append(cmds, Command{
			Name:        fmt.Sprintf("前往：%s", stage.DisplayName()),
			Description: fmt.Sprintf("切換到第 %d 階段", i+1),
			Shortcut:    fmt.Sprintf("%d", i+1),
			Category:    "Navigation",
			Action:      fixed(messages.GoToStageMsg{Index: i}),
		})
	}
	cmds = append(cmds, Command{
		Name:        "查看生成文件",
		Description: "顯示已生成的需求文件",
		Category:    "Navigation",
		Action:      fixed(messages.NavigateMsg{View: domain.ViewResults}),
	})

	cmds = append(cmds,
		Command{
			Name:        "儲存文件",
			Description: "將生成的文件寫入輸出目錄",
			Shortcut:    "w",
			Category:    "Actions",
			Action:      fixed(messages.WriteDocumentsMsg{}),
		},
		Command{
			Name:        "重新開始",
			Description: "清除所有答案並從第一階段開始",
			Category:    "Actions",
			Action:      fixed(messages.ResetSessionMsg{}),
		},
		Command{
			Name:        "儲存預設組合",
			Description: "將目前的答案儲存為預設組合",
			Category:    "Presets",
			Prompt:      "預設組合名稱",
			Action:      func(input string) tea.Msg { return messages.SavePresetMsg{Name: strings.TrimSpace(input)} },
		},
	)

	for _, name := range presets {
		cmds = append(cmds, Command{
			Name:        "套用預設組合：" + name,
			Description: "載入預設組合的答案",
			Category:    "Presets",
			Action:      fixed(messages.ApplyPresetMsg{Name: name}),
		})
	}

	for _, name := range theme.AvailableThemes() {
		cmds = append(cmds, Command{
			Name:        "Theme: " + name,
			Description: "切換佈景主題",
			Category:    "Theme",
			Action:      fixed(messages.ThemeChangeMsg{Theme: name}),
		})
	}
	return cmds
}

// Open opens the command palette
func (m *Model) Open() {
	m.active = true
	m.input = ""
	m.cursor = 0
	m.prompt = nil
	m.filtered = m.commands
}

// Close closes the command palette
func (m *Model) Close() {
	m.active = false
	m.input = ""
	m.cursor = 0
	m.prompt = nil
}

// IsActive returns whether the palette is open
func (m Model) IsActive() bool {
	return m.active
}

// SetSize sets the palette dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Filtered returns the commands matching the current input
func (m Model) Filtered() []Command {
	return m.filtered
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyMsg(key)
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlP:
		m.Close()
		return m, func() tea.Msg { return CloseMsg{} }

	case tea.KeyEnter:
		if m.prompt != nil {
			cmd := *m.prompt
			input := m.input
			if strings.TrimSpace(input) == "" {
				return m, nil
			}
			m.Close()
			return m, func() tea.Msg { return SelectCommandMsg{Command: cmd, Msg: cmd.Action(input)} }
		}
		if m.cursor < len(m.filtered) {
			cmd := m.filtered[m.cursor]
			if cmd.Prompt != "" {
				m.prompt = &cmd
				m.input = ""
				return m, nil
			}
			m.Close()
			return m, func() tea.Msg { return SelectCommandMsg{Command: cmd, Msg: cmd.Action("")} }
		}

	case tea.KeyUp, tea.KeyCtrlK:
		if m.cursor > 0 {
			m.cursor--
		}

	case tea.KeyDown, tea.KeyCtrlJ:
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}

	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
			m.filterCommands()
		}

	case tea.KeySpace:
		m.input += " "
		m.filterCommands()

	case tea.KeyRunes:
		m.input += string(msg.Runes)
		m.filterCommands()
	}
	return m, nil
}

func (m *Model) filterCommands() {
	if m.prompt != nil {
		return
	}
	if m.input == "" {
		m.filtered = m.commands
		m.cursor = 0
		return
	}

	query := strings.ToLower(m.input)
	var filtered []Command
	for _, cmd := range m.commands {
		name := strings.ToLower(cmd.Name)
		desc := strings.ToLower(cmd.Description)
		cat := strings.ToLower(cmd.Category)
		if fuzzyMatch(name, query) || fuzzyMatch(desc, query) || strings.Contains(cat, query) {
			filtered = append(filtered, cmd)
		}
	}

	m.filtered = filtered
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

// fuzzyMatch checks if query runes appear in target in order
func fuzzyMatch(target, query string) bool {
	t := []rune(target)
	i := 0
	for _, q := range query {
		for i < len(t) && t[i] != q {
			i++
		}
		if i == len(t) {
			return false
		}
		i++
	}
	return true
}

// View renders the command palette
func (m Model) View() string {
	if !m.active {
		return ""
	}

	t := theme.Current
	paletteWidth := max(min(60, m.width-4), 20)
	maxItems := max(min(10, m.height-10), 3)

	label := "> "
	if m.prompt != nil {
		label = m.prompt.Prompt + ": "
	}
	inputBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1).
		Width(paletteWidth - 2).
		Render(lipgloss.NewStyle().Foreground(t.Primary).Render(label) + m.input +
			lipgloss.NewStyle().Foreground(t.Accent).Render("_"))

	parts := []string{inputBox}
	if m.prompt == nil {
		start := 0
		if m.cursor >= maxItems {
			start = m.cursor - maxItems + 1
		}
		var rows []string
		for i := start; i < len(m.filtered) && i < start+maxItems; i++ {
			rows = append(rows, m.renderCommand(i, m.filtered[i], paletteWidth-4))
		}
		parts = append(parts, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Width(paletteWidth-2).
			Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	}

	box := lipgloss.NewStyle().
		Background(t.Background).
		Padding(1).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Primary).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderCommand(index int, cmd Command, width int) string {
	t := theme.Current
	selected := index == m.cursor

	nameStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Foreground)
	descStyle := lipgloss.NewStyle().Foreground(t.Subtle)
	rowStyle := lipgloss.NewStyle().Width(width).Padding(0, 1)
	if selected {
		nameStyle = nameStyle.Foreground(t.Primary).Background(t.Selection)
		descStyle = descStyle.Background(t.Selection)
		rowStyle = rowStyle.Background(t.Selection)
	}

	name := nameStyle.Render(cmd.Name)
	if cmd.Shortcut != "" {
		name += lipgloss.NewStyle().Foreground(t.Accent).Render(" [" + cmd.Shortcut + "]")
	}
	name += lipgloss.NewStyle().Foreground(t.Subtle).Render(" " + cmd.Category)

	return rowStyle.Render(name + "\n" + descStyle.Render("  "+cmd.Description))
}
