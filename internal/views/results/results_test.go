package results

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertguss/vibe-academy-go/internal/domain"
	"github.com/robertguss/vibe-academy-go/internal/messages"
	"github.com/robertguss/vibe-academy-go/internal/orchestrator"
	"github.com/robertguss/vibe-academy-go/internal/parser"
)

func sampleResult() *orchestrator.Result {
	return &orchestrator.Result{
		Requirement: &parser.Requirement{
			ProjectVision: &parser.ProjectVision{TypeName: "作品集網站", AudienceName: "創意工作者"},
			Warnings:      []string{"時程偏緊"},
		},
		Documents: []domain.GeneratedDocument{
			{Filename: "project-brief.md", Content: "# brief", Format: domain.FormatMarkdown},
			{Filename: "requirements.json", Content: "{}", Format: domain.FormatJSON},
		},
	}
}

func TestResults_Empty(t *testing.T) {
	m := New()
	assert.Contains(t, m.View(), "尚未完成")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")})
	assert.Nil(t, cmd)
}

func TestResults_OpenDocument(t *testing.T) {
	m := New()
	m.SetResult(sampleResult())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.Cursor())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewDocumentMsg{Index: 1}, cmd())
}

func TestResults_Write(t *testing.T) {
	m := New()
	m.SetResult(sampleResult())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.WriteDocumentsMsg{}, cmd())

	m.SetWritten("/tmp/out", []string{"/tmp/out/a", "/tmp/out/b"})
	assert.Contains(t, m.View(), "已儲存 2 份文件到 /tmp/out")
}

func TestResults_View(t *testing.T) {
	m := New()
	m.SetResult(sampleResult())

	view := m.View()
	assert.Contains(t, view, "作品集網站")
	assert.Contains(t, view, "project-brief.md")
	assert.Contains(t, view, "requirements.json")
	assert.Contains(t, view, "時程偏緊")
}
