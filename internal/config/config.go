package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default configuration values
const (
	DefaultDataDir         = ".vibe"
	DefaultDatabaseName    = "vibe.db"
	DefaultOutputDir       = "vibe-output"
	DefaultTheme           = "catppuccin"
	DefaultCompletionDelay = 1500 // milliseconds
	DefaultAPIPort         = 8080
	DefaultWatchDebounce   = 500 // milliseconds
)

// Config holds all application configuration
type Config struct {
	// Paths
	WorkingDir   string `mapstructure:"working_dir"`
	DataDir      string `mapstructure:"data_dir"`
	DatabasePath string `mapstructure:"database_path"`
	OutputDir    string `mapstructure:"output_dir"`
	PresetsDir   string `mapstructure:"presets_dir"`
	ThemesDir    string `mapstructure:"themes_dir"`

	// CatalogPath replaces the embedded option catalog when set
	CatalogPath string `mapstructure:"catalog_path"`

	// Wizard behaviour
	CompletionDelay int  `mapstructure:"completion_delay"` // milliseconds
	LiveValidation  bool `mapstructure:"live_validation"`

	// UI settings
	Theme string `mapstructure:"theme"`

	// Feature flags
	NotificationsEnabled bool `mapstructure:"notifications_enabled"`
	SoundEnabled         bool `mapstructure:"sound_enabled"`
	WatchEnabled         bool `mapstructure:"watch_enabled"`
	WatchDebounce        int  `mapstructure:"watch_debounce"` // milliseconds

	// API server
	APIEnabled     bool     `mapstructure:"api_enabled"`
	APIPort        int      `mapstructure:"api_port"`
	APIKey         string   `mapstructure:"api_key"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// New creates a new Config with default values
func New() *Config {
	wd, _ := os.Getwd()
	dataDir := filepath.Join(wd, DefaultDataDir)

	return &Config{
		WorkingDir:           wd,
		DataDir:              dataDir,
		DatabasePath:         filepath.Join(dataDir, DefaultDatabaseName),
		OutputDir:            filepath.Join(wd, DefaultOutputDir),
		PresetsDir:           filepath.Join(dataDir, "presets"),
		ThemesDir:            filepath.Join(dataDir, "themes"),
		CompletionDelay:      DefaultCompletionDelay,
		LiveValidation:       false,
		Theme:                DefaultTheme,
		NotificationsEnabled: true,
		SoundEnabled:         false,
		WatchEnabled:         false,
		WatchDebounce:        DefaultWatchDebounce,
		APIEnabled:           false,
		APIPort:              DefaultAPIPort,
	}
}

// CompletionDelayDuration returns the pause between stages as a duration
func (c *Config) CompletionDelayDuration() time.Duration {
	return time.Duration(c.CompletionDelay) * time.Millisecond
}

// WatchDebounceDuration returns the watcher debounce as a duration
func (c *Config) WatchDebounceDuration() time.Duration {
	return time.Duration(c.WatchDebounce) * time.Millisecond
}

// EnsureDirs creates the data, preset and theme directories
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, c.PresetsDir, c.ThemesDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// CustomThemePath returns the YAML file for a named custom theme
func (c *Config) CustomThemePath(name string) string {
	return filepath.Join(c.ThemesDir, name+".yaml")
}
