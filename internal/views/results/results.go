package results

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robertguss/vibe-academy-go/internal/domain"
	"github.com/robertguss/vibe-academy-go/internal/messages"
	"github.com/robertguss/vibe-academy-go/internal/orchestrator"
	"github.com/robertguss/vibe-academy-go/internal/theme"
	"github.com/robertguss/vibe-academy-go/internal/util"
)

// Model lists the generated documents of a completed session
type Model struct {
	width   int
	height  int
	styles  theme.Styles
	result  *orchestrator.Result
	cursor  int
	dir     string
	written []string
}

// New creates a new results view
func New() Model {
	return Model{styles: theme.NewStyles()}
}

// SetResult sets the completed session to show
func (m *Model) SetResult(r *orchestrator.Result) {
	m.result = r
	m.written = nil
	m.dir = ""
	if m.cursor >= len(m.documents()) {
		m.cursor = 0
	}
}

// SetWritten records where the documents were saved
func (m *Model) SetWritten(dir string, paths []string) {
	m.dir = dir
	m.written = paths
}

// Cursor returns the focused document index
func (m Model) Cursor() int {
	return m.cursor
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

func (m Model) documents() []domain.GeneratedDocument {
	if m.result == nil {
		return nil
	}
	return m.result.Documents
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
	docs := m.documents()
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(docs)-1 {
			m.cursor++
		}
	case "enter":
		if len(docs) > 0 {
			index := m.cursor
			return m, func() tea.Msg { return messages.ViewDocumentMsg{Index: index} }
		}
	case "w":
		if len(docs) > 0 {
			return m, func() tea.Msg { return messages.WriteDocumentsMsg{} }
		}
	}
	return m, nil
}

// View renders the results
func (m Model) View() string {
	if m.result == nil {
		return m.styles.Muted.Padding(2, 0).Render("尚未完成需求收集。完成五個階段後，文件會顯示在這裡。")
	}

	sections := []string{
		m.styles.Title.Render("🎉 需求收集完成！"),
		"",
		m.renderSummary(),
		"",
		m.styles.Subtitle.Render("生成的文件"),
		m.renderDocuments(),
	}
	if warnings := m.renderWarnings(); warnings != "" {
		sections = append(sections, "", warnings)
	}
	if len(m.written) > 0 {
		sections = append(sections, "", m.styles.Success.Render(
			fmt.Sprintf("✓ 已儲存 %d 份文件到 %s", len(m.written), m.dir)))
	}
	sections = append(sections, "", m.styles.Muted.Render(
		"↑/↓ 選擇 | Enter 預覽 | w 儲存全部 | 1-5 修改階段 | Ctrl+P 指令"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderSummary() string {
	r := m.result.Requirement
	if r == nil {
		return ""
	}

	row := func(label, value string) string {
		return m.styles.Muted.Render(util.PadRight(label, 10)) + value
	}

	var rows []string
	if v := r.ProjectVision; v != nil {
		rows = append(rows, row("專案類型", v.TypeName), row("目標受眾", v.AudienceName))
	}
	if f := r.Features; f != nil {
		rows = append(rows,
			row("複雜度", string(f.TotalComplexity)),
			row("預估時程", fmt.Sprintf("%d %s（%d-%d）",
				f.EstimatedTime.Realistic, f.EstimatedTime.Unit, f.EstimatedTime.Minimum, f.EstimatedTime.Maximum)),
		)
	}
	if ts := r.TechStack; ts != nil && ts.RecommendedStack.Name != "" {
		rows = append(rows, row("推薦技術", ts.RecommendedStack.Name))
	}
	rows = append(rows, row("資料完整度", fmt.Sprintf("%d%%", r.Metadata.DataIntegrity.Score)))

	return m.styles.BorderedBox.Render(strings.Join(rows, "\n"))
}

func (m Model) renderDocuments() string {
	var rows []string
	for i, doc := range m.documents() {
		cursor := "  "
		name := m.styles.Bold.Render(doc.Filename)
		if i == m.cursor {
			cursor = m.styles.Shortcut.Render("› ")
			name = m.styles.Highlight.Render(doc.Filename)
		}
		rows = append(rows, fmt.Sprintf("%s%s  %s", cursor, name,
			m.styles.Muted.Render(fmt.Sprintf("%s · %s", doc.Format, util.FormatSize(len(doc.Content))))))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderWarnings() string {
	r := m.result.Requirement
	if r == nil || len(r.Warnings) == 0 {
		return ""
	}
	lines := []string{m.styles.Warning.Bold(true).Render("⚠ 注意事項")}
	for _, w := range r.Warnings {
		lines = append(lines, m.styles.Warning.Render("  - "+w))
	}
	return strings.Join(lines, "\n")
}
