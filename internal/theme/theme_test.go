package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableThemes(t *testing.T) {
	assert.Equal(t, []string{"catppuccin", "dracula", "nord"}, AvailableThemes())
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme(DefaultName) })

	tests := []struct {
		name string
		want string
	}{
		{"dracula", "Dracula"},
		{"NORD", "Nord"},
		{"catppuccin", "Catppuccin Mocha"},
		{"unknown", "Catppuccin Mocha"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetTheme(tt.name)
			assert.Equal(t, tt.want, Current.Name)
		})
	}
}

func TestPalette_FillsMissingColors(t *testing.T) {
	th := Palette{Name: "half", Primary: "#123456"}.Theme()

	assert.Equal(t, "half", th.Name)
	assert.Equal(t, lipgloss.Color("#123456"), th.Primary)
	assert.Equal(t, lipgloss.Color("#1e1e2e"), th.Background)
}

func TestPalette_Validate(t *testing.T) {
	assert.NoError(t, Palette{Primary: "#abc", Error: "#ABCDEF"}.Validate())
	assert.Error(t, Palette{Primary: "blue"}.Validate())
	assert.Error(t, Palette{Border: "#12345"}.Validate())
}

func TestLoadThemeFromYAML(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "ocean.yaml")
		require.NoError(t, os.WriteFile(path, []byte("name: ocean\nprimary: \"#0077be\"\n"), 0644))

		th, err := LoadThemeFromYAML(path)
		require.NoError(t, err)
		assert.Equal(t, "ocean", th.Name)
		assert.Equal(t, lipgloss.Color("#0077be"), th.Primary)
	})

	t.Run("invalid color", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("primary: teal\n"), 0644))

		_, err := LoadThemeFromYAML(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadThemeFromYAML(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestResolve(t *testing.T) {
	th, err := Resolve("nord", "")
	require.NoError(t, err)
	assert.Equal(t, "Nord", th.Name)

	_, err = Resolve("ocean", "")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "ocean.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Ocean\n"), 0644))
	th, err = Resolve("ocean", path)
	require.NoError(t, err)
	assert.Equal(t, "Ocean", th.Name)
}
