package document

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertguss/vibe-academy-go/internal/domain"
)

func longDoc(n int) domain.GeneratedDocument {
	var b strings.Builder
	b.WriteString("# 專案簡介\n")
	for i := 0; i < n; i++ {
		b.WriteString("- 項目\n")
	}
	return domain.GeneratedDocument{
		Filename: "project-brief.md",
		Content:  b.String(),
		Format:   domain.FormatMarkdown,
	}
}

func TestParseLines(t *testing.T) {
	lines := parseLines(domain.GeneratedDocument{
		Content: "# Title\n- item\n> quote\nplain\n",
		Format:  domain.FormatMarkdown,
	})

	require.Len(t, lines, 4)
	assert.Equal(t, lineHeading, lines[0].lineType)
	assert.Equal(t, lineBullet, lines[1].lineType)
	assert.Equal(t, lineQuote, lines[2].lineType)
	assert.Equal(t, lineNormal, lines[3].lineType)
}

func TestParseLines_JSONKeys(t *testing.T) {
	lines := parseLines(domain.GeneratedDocument{
		Content: "{\n  \"metadata\": {}\n}",
		Format:  domain.FormatJSON,
	})

	require.Len(t, lines, 3)
	assert.Equal(t, lineKey, lines[1].lineType)
}

func TestScrolling(t *testing.T) {
	m := New()
	m.SetSize(80, 16)
	m.SetDocument(longDoc(40))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Scroll())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.Scroll())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, m.maxScroll(), m.Scroll())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, m.maxScroll(), m.Scroll())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, m.Scroll())
}

func TestSetDocument_ResetsScroll(t *testing.T) {
	m := New()
	m.SetSize(80, 16)
	m.SetDocument(longDoc(40))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	require.Positive(t, m.Scroll())

	m.SetDocument(longDoc(2))
	assert.Equal(t, 0, m.Scroll())
	assert.Equal(t, "project-brief.md", m.Document().Filename)
}

func TestView(t *testing.T) {
	m := New()
	assert.Contains(t, m.View(), "尚未選擇文件")

	m.SetSize(80, 30)
	m.SetDocument(longDoc(3))
	view := m.View()
	assert.Contains(t, view, "project-brief.md")
	assert.Contains(t, view, "專案簡介")
}
