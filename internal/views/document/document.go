package document

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robertguss/vibe-academy-go/internal/domain"
	"github.com/robertguss/vibe-academy-go/internal/theme"
	"github.com/robertguss/vibe-academy-go/internal/util"
)

// Model is a scrolling preview of one generated document
type Model struct {
	width  int
	height int
	styles theme.Styles
	doc    domain.GeneratedDocument
	lines  []docLine
	scroll int
}

type docLine struct {
	content  string
	lineType lineType
}

type lineType int

const (
	lineNormal lineType = iota
	lineHeading
	lineBullet
	lineQuote
	lineKey
)

// New creates a new document view model
func New() Model {
	return Model{styles: theme.NewStyles()}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// SetDocument shows doc from the top
func (m *Model) SetDocument(doc domain.GeneratedDocument) {
	m.doc = doc
	m.lines = parseLines(doc)
	m.scroll = 0
}

// Document returns the document being shown
func (m Model) Document() domain.GeneratedDocument {
	return m.doc
}

// Scroll returns the first visible line index
func (m Model) Scroll() int {
	return m.scroll
}

// SetSize updates the view dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.scroll = min(m.scroll, m.maxScroll())
}

// RefreshStyles rebuilds styles after theme change
func (m *Model) RefreshStyles() {
	m.styles = theme.NewStyles()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyMsg(key)
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.scroll > 0 {
			m.scroll--
		}
	case "down", "j":
		if m.scroll < m.maxScroll() {
			m.scroll++
		}
	case "home", "g":
		m.scroll = 0
	case "end", "G":
		m.scroll = m.maxScroll()
	case "pgup":
		m.scroll = max(m.scroll-m.contentHeight(), 0)
	case "pgdown":
		m.scroll = min(m.scroll+m.contentHeight(), m.maxScroll())
	}
	return m, nil
}

// View renders the document
func (m Model) View() string {
	if m.doc.Filename == "" {
		return m.styles.Muted.Padding(2, 0).Render("尚未選擇文件")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderContent(),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render(m.doc.Filename)
	info := m.styles.Muted.Render(fmt.Sprintf(" (%s, %d 行, %s)",
		m.doc.Format, len(m.lines), util.FormatSize(len(m.doc.Content))))
	return lipgloss.JoinHorizontal(lipgloss.Left, title, info)
}

func (m Model) renderContent() string {
	t := theme.Current
	height := m.contentHeight()

	end := min(m.scroll+height, len(m.lines))
	rendered := make([]string, 0, height)
	for i := m.scroll; i < end; i++ {
		rendered = append(rendered, m.renderLine(m.lines[i], i+1))
	}
	for len(rendered) < height {
		rendered = append(rendered, "")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Width(max(m.width-4, 10)).
		Render(strings.Join(rendered, "\n"))
}

func (m Model) renderLine(line docLine, num int) string {
	t := theme.Current

	numStr := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Width(5).
		Align(lipgloss.Right).
		Render(fmt.Sprintf("%d", num))

	var style lipgloss.Style
	switch line.lineType {
	case lineHeading:
		style = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	case lineBullet:
		style = lipgloss.NewStyle().Foreground(t.Foreground)
	case lineQuote:
		style = lipgloss.NewStyle().Foreground(t.Secondary).Italic(true)
	case lineKey:
		style = lipgloss.NewStyle().Foreground(t.Info)
	default:
		style = lipgloss.NewStyle().Foreground(t.Foreground)
	}

	content := util.Truncate(line.content, max(m.width-12, 4))
	return lipgloss.JoinHorizontal(lipgloss.Left, numStr, " ", style.Render(content))
}

func (m Model) renderFooter() string {
	var scrollInfo string
	if len(m.lines) > m.contentHeight() {
		scrollInfo = fmt.Sprintf(" [%d-%d / %d]",
			m.scroll+1,
			min(m.scroll+m.contentHeight(), len(m.lines)),
			len(m.lines),
		)
	}
	return m.styles.Muted.Padding(1, 0, 0, 0).
		Render("↑/↓/PgUp/PgDn 捲動 | w 儲存全部 | Esc 返回" + scrollInfo)
}

func (m Model) contentHeight() int {
	return max(m.height-6, 1)
}

func (m Model) maxScroll() int {
	return max(len(m.lines)-m.contentHeight(), 0)
}

// parseLines classifies document lines for highlighting
func parseLines(doc domain.GeneratedDocument) []docLine {
	if doc.Content == "" {
		return nil
	}

	raw := strings.Split(strings.TrimRight(doc.Content, "\n"), "\n")
	lines := make([]docLine, len(raw))
	for i, s := range raw {
		trimmed := strings.TrimSpace(s)
		line := docLine{content: s}
		switch {
		case doc.Format == domain.FormatJSON && strings.HasPrefix(trimmed, `"`):
			line.lineType = lineKey
		case strings.HasPrefix(trimmed, "#"):
			line.lineType = lineHeading
		case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
			line.lineType = lineBullet
		case strings.HasPrefix(trimmed, ">"):
			line.lineType = lineQuote
		}
		lines[i] = line
	}
	return lines
}
