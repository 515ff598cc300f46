package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. VIBE_API_PORT
const EnvPrefix = "VIBE"

// ConfigPathEnv names an explicit config file, bypassing the search path
const ConfigPathEnv = "VIBE_CONFIG_PATH"

// Loader reads configuration with Viper.
//
// Priority, highest first:
//  1. VIBE_* environment variables (including those from .env files)
//  2. the file named by VIBE_CONFIG_PATH
//  3. vibe.yaml in the working directory, $XDG_CONFIG_HOME/vibe or ~/.vibe
//  4. [New] defaults
type Loader struct {
	v        *viper.Viper
	envFiles []string
	paths    []string
	file     string
}

// NewLoader creates a loader that searches the standard locations
func NewLoader() *Loader {
	l := &Loader{v: viper.New(), envFiles: []string{".env"}}

	if wd, err := os.Getwd(); err == nil {
		l.paths = append(l.paths, wd)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		l.paths = append(l.paths, filepath.Join(dir, "vibe"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		l.paths = append(l.paths, filepath.Join(home, DefaultDataDir))
	}
	return l
}

// WithSearchPaths replaces the directories searched for vibe.yaml
func (l *Loader) WithSearchPaths(paths ...string) *Loader {
	l.paths = paths
	return l
}

// WithEnvFiles replaces the dotenv files loaded before reading the environment
func (l *Loader) WithEnvFiles(files ...string) *Loader {
	l.envFiles = files
	return l
}

// WithConfigFile reads path instead of searching, taking precedence over
// VIBE_CONFIG_PATH
func (l *Loader) WithConfigFile(path string) *Loader {
	l.file = path
	return l
}

// Viper exposes the underlying instance so commands can bind flags
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Load resolves the configuration. A missing config file is not an error.
func (l *Loader) Load() (*Config, error) {
	if err := l.loadEnvFiles(); err != nil {
		return nil, err
	}

	l.setDefaults(New())

	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	if l.file != "" {
		l.v.SetConfigFile(l.file)
	} else if path := os.Getenv(ConfigPathEnv); path != "" {
		l.v.SetConfigFile(path)
	} else {
		l.v.SetConfigName("vibe")
		l.v.SetConfigType("yaml")
		for _, p := range l.paths {
			l.v.AddConfigPath(p)
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.fillDerived()
	return cfg, nil
}

// ConfigFileUsed returns the file Load read, or "" when none was found
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

func (l *Loader) loadEnvFiles() error {
	var present []string
	for _, f := range l.envFiles {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	// existing environment variables win over .env values
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("failed to load env files: %w", err)
	}
	return nil
}

func (l *Loader) setDefaults(d *Config) {
	l.v.SetDefault("working_dir", d.WorkingDir)
	l.v.SetDefault("data_dir", "")
	l.v.SetDefault("database_path", "")
	l.v.SetDefault("output_dir", d.OutputDir)
	l.v.SetDefault("presets_dir", "")
	l.v.SetDefault("themes_dir", "")
	l.v.SetDefault("catalog_path", "")
	l.v.SetDefault("completion_delay", d.CompletionDelay)
	l.v.SetDefault("live_validation", d.LiveValidation)
	l.v.SetDefault("theme", d.Theme)
	l.v.SetDefault("notifications_enabled", d.NotificationsEnabled)
	l.v.SetDefault("sound_enabled", d.SoundEnabled)
	l.v.SetDefault("watch_enabled", d.WatchEnabled)
	l.v.SetDefault("watch_debounce", d.WatchDebounce)
	l.v.SetDefault("api_enabled", d.APIEnabled)
	l.v.SetDefault("api_port", d.APIPort)
	l.v.SetDefault("api_key", "")
	l.v.SetDefault("allowed_origins", []string{})
}

// fillDerived places the database, presets and themes under DataDir unless
// they were set explicitly
func (c *Config) fillDerived() {
	if c.DataDir == "" {
		c.DataDir = filepath.Join(c.WorkingDir, DefaultDataDir)
	}
	if c.DatabasePath == "" {
		c.DatabasePath = filepath.Join(c.DataDir, DefaultDatabaseName)
	}
	if c.PresetsDir == "" {
		c.PresetsDir = filepath.Join(c.DataDir, "presets")
	}
	if c.ThemesDir == "" {
		c.ThemesDir = filepath.Join(c.DataDir, "themes")
	}
	if c.CompletionDelay < 0 {
		c.CompletionDelay = 0
	}
	if c.WatchDebounce <= 0 {
		c.WatchDebounce = DefaultWatchDebounce
	}
}
