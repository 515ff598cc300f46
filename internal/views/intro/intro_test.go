package intro

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertguss/vibe-academy-go/internal/domain"
	"github.com/robertguss/vibe-academy-go/internal/messages"
	"github.com/robertguss/vibe-academy-go/internal/orchestrator"
)

var welcome = domain.Dialogue{Title: "歡迎", Body: "五個階段", PrimaryAction: "開始收集需求"}

func TestIntro_EnterStarts(t *testing.T) {
	m := New(welcome)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ResumeMsg{Resume: true}, cmd())
}

func TestIntro_NIgnoredWithoutSavedSession(t *testing.T) {
	m := New(welcome)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.Nil(t, cmd)
}

func TestIntro_ResumePrompt(t *testing.T) {
	m := New(welcome)
	m.SetResume(domain.Dialogue{Title: "發現先前的進度", PrimaryAction: "繼續上次進度"}, []orchestrator.StageStatus{
		{Index: 0, Name: "專案願景", Complete: true, Visitable: true},
		{Index: 1, Name: "設計風格", Visitable: true},
	})
	require.True(t, m.Resumable())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ResumeMsg{Resume: false}, cmd())

	view := m.View()
	assert.Contains(t, view, "發現先前的進度")
	assert.Contains(t, view, "✓ 專案願景")
	assert.Contains(t, view, "重新開始")
}

func TestIntro_ViewListsStages(t *testing.T) {
	m := New(welcome)
	m.SetSize(100, 40)

	view := m.View()
	for _, stage := range domain.AllStages() {
		assert.Contains(t, view, stage.DisplayName())
	}
	assert.Contains(t, view, "開始收集需求")
}
