package commandpalette

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertguss/vibe-academy-go/internal/messages"
)

func typeText(m Model, s string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func run(t *testing.T, cmd tea.Cmd) SelectCommandMsg {
	t.Helper()
	require.NotNil(t, cmd)
	sel, ok := cmd().(SelectCommandMsg)
	require.True(t, ok)
	return sel
}

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		target string
		query  string
		want   bool
	}{
		{"theme: nord", "nord", true},
		{"theme: nord", "thn", true},
		{"theme: nord", "dron", false},
		{"前往：設計風格", "設計", true},
		{"前往：設計風格", "風設", false},
		{"anything", "", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fuzzyMatch(tt.target, tt.query), "%s / %s", tt.target, tt.query)
	}
}

func TestPalette_FilterAndSelect(t *testing.T) {
	m := New()
	m.Open()
	require.True(t, m.IsActive())

	m = typeText(m, "dracula")
	require.Len(t, m.Filtered(), 1)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sel := run(t, cmd)

	assert.Equal(t, messages.ThemeChangeMsg{Theme: "dracula"}, sel.Msg)
	assert.False(t, m.IsActive())
}

func TestPalette_StageCommands(t *testing.T) {
	m := New()
	m.Open()
	m = typeText(m, "技術")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sel := run(t, cmd)

	assert.Equal(t, messages.GoToStageMsg{Index: 3}, sel.Msg)
}

func TestPalette_PromptCommand(t *testing.T) {
	m := New()
	m.Open()
	m = typeText(m, "儲存預設")
	require.Len(t, m.Filtered(), 1)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "choosing a prompt command waits for input")
	assert.True(t, m.IsActive())

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "empty input is ignored")

	m = typeText(m, "my")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = typeText(m, "site")
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	sel := run(t, cmd)
	assert.Equal(t, messages.SavePresetMsg{Name: "my site"}, sel.Msg)
	assert.False(t, m.IsActive())
}

func TestPalette_PresetCommands(t *testing.T) {
	m := New()
	m.SetPresets([]string{"corp"})
	m.Open()
	m = typeText(m, "套用")

	require.Len(t, m.Filtered(), 1)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, messages.ApplyPresetMsg{Name: "corp"}, run(t, cmd).Msg)
}

func TestPalette_BackspaceAndEscape(t *testing.T) {
	m := New()
	m.Open()
	m = typeText(m, "設計")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "設", m.input)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CloseMsg{}, cmd())
	assert.False(t, m.IsActive())
}

func TestPalette_CursorBounds(t *testing.T) {
	m := New()
	m.Open()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)

	for i := 0; i < 100; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, len(m.Filtered())-1, m.cursor)
}
