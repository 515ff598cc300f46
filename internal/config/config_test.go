package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cfg := New()

	t.Run("sets default completion delay", func(t *testing.T) {
		assert.Equal(t, DefaultCompletionDelay, cfg.CompletionDelay)
		assert.Equal(t, 1500*time.Millisecond, cfg.CompletionDelayDuration())
	})

	t.Run("sets default theme", func(t *testing.T) {
		assert.Equal(t, "catppuccin", cfg.Theme)
	})

	t.Run("sets default API port", func(t *testing.T) {
		assert.Equal(t, DefaultAPIPort, cfg.APIPort)
	})

	t.Run("sets default watch debounce", func(t *testing.T) {
		assert.Equal(t, DefaultWatchDebounce, cfg.WatchDebounce)
		assert.Equal(t, 500*time.Millisecond, cfg.WatchDebounceDuration())
	})

	t.Run("notifications enabled by default", func(t *testing.T) {
		assert.True(t, cfg.NotificationsEnabled)
	})

	t.Run("live validation disabled by default", func(t *testing.T) {
		assert.False(t, cfg.LiveValidation)
	})

	t.Run("watch disabled by default", func(t *testing.T) {
		assert.False(t, cfg.WatchEnabled)
	})

	t.Run("API disabled by default", func(t *testing.T) {
		assert.False(t, cfg.APIEnabled)
	})

	t.Run("sets paths relative to working directory", func(t *testing.T) {
		wd, _ := os.Getwd()
		assert.Contains(t, cfg.DataDir, wd)
		assert.Contains(t, cfg.DatabasePath, wd)
		assert.Contains(t, cfg.OutputDir, wd)
		assert.Equal(t, filepath.Join(cfg.DataDir, "presets"), cfg.PresetsDir)
	})
}

func TestConfig_CustomThemePath(t *testing.T) {
	cfg := &Config{ThemesDir: "/themes"}
	assert.Equal(t, "/themes/ocean.yaml", cfg.CustomThemePath("ocean"))
}

func TestConfig_EnsureDirs(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		DataDir:    filepath.Join(dir, "data"),
		PresetsDir: filepath.Join(dir, "data", "presets"),
		ThemesDir:  filepath.Join(dir, "data", "themes"),
	}

	require.NoError(t, cfg.EnsureDirs())

	for _, d := range []string{cfg.DataDir, cfg.PresetsDir, cfg.ThemesDir} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestLoader_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	dir := t.TempDir()

	cfg, err := NewLoader().WithSearchPaths(dir).WithEnvFiles().Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultTheme, cfg.Theme)
	assert.Equal(t, DefaultAPIPort, cfg.APIPort)
	assert.Equal(t, DefaultCompletionDelay, cfg.CompletionDelay)
	assert.NotEmpty(t, cfg.DatabasePath)
	assert.Equal(t, filepath.Join(cfg.DataDir, DefaultDatabaseName), cfg.DatabasePath)
}

func TestLoader_ConfigFile(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	dir := t.TempDir()
	content := `
theme: nord
api_port: 9191
live_validation: true
data_dir: /tmp/vibe-data
allowed_origins:
  - http://localhost:3000
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vibe.yaml"), []byte(content), 0644))

	l := NewLoader().WithSearchPaths(dir).WithEnvFiles()
	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, "nord", cfg.Theme)
	assert.Equal(t, 9191, cfg.APIPort)
	assert.True(t, cfg.LiveValidation)
	assert.Equal(t, "/tmp/vibe-data", cfg.DataDir)
	assert.Equal(t, "/tmp/vibe-data/vibe.db", cfg.DatabasePath)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, filepath.Join(dir, "vibe.yaml"), l.ConfigFileUsed())
}

func TestLoader_ExplicitConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: dracula\n"), 0644))
	t.Setenv(ConfigPathEnv, path)

	cfg, err := NewLoader().WithSearchPaths().WithEnvFiles().Load()
	require.NoError(t, err)
	assert.Equal(t, "dracula", cfg.Theme)
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vibe.yaml"), []byte("api_port: 9191\n"), 0644))
	t.Setenv("VIBE_API_PORT", "7070")
	t.Setenv("VIBE_API_ENABLED", "true")

	cfg, err := NewLoader().WithSearchPaths(dir).WithEnvFiles().Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.APIPort)
	assert.True(t, cfg.APIEnabled)
}

func TestLoader_DotEnvFile(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("VIBE_OUTPUT_DIR=/tmp/vibe-dotenv\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("VIBE_OUTPUT_DIR") })

	cfg, err := NewLoader().WithSearchPaths(dir).WithEnvFiles(envFile).Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/vibe-dotenv", cfg.OutputDir)
}

func TestLoader_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [unterminated\n"), 0644))
	t.Setenv(ConfigPathEnv, path)

	_, err := NewLoader().WithEnvFiles().Load()
	assert.Error(t, err)
}

func TestLoader_ClampsNegativeValues(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	t.Setenv("VIBE_COMPLETION_DELAY", "-5")
	t.Setenv("VIBE_WATCH_DEBOUNCE", "0")

	cfg, err := NewLoader().WithSearchPaths(t.TempDir()).WithEnvFiles().Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.CompletionDelay)
	assert.Equal(t, DefaultWatchDebounce, cfg.WatchDebounce)
}

func TestLoader_WithConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "explicit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: nord\n"), 0644))
	other := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(other, []byte("theme: dracula\n"), 0644))
	t.Setenv(ConfigPathEnv, other)

	cfg, err := NewLoader().WithSearchPaths().WithEnvFiles().WithConfigFile(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "nord", cfg.Theme)
}
