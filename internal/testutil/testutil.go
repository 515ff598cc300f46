// Package testutil provides test utilities and helpers for the vibe-academy-go tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/robertguss/vibe-academy-go/internal/catalog"
	"github.com/robertguss/vibe-academy-go/internal/config"
	"github.com/robertguss/vibe-academy-go/internal/domain"
	"github.com/robertguss/vibe-academy-go/internal/events"
	"github.com/robertguss/vibe-academy-go/internal/orchestrator"
	"github.com/robertguss/vibe-academy-go/internal/storage"
)

// NewTestConfig creates a Config with temp directories for testing.
// All temp directories are automatically cleaned up when the test completes.
func NewTestConfig(t *testing.T) *config.Config {
	t.Helper()

	tempDir := CreateTempDir(t)

	cfg := &config.Config{
		WorkingDir:           tempDir,
		DataDir:              filepath.Join(tempDir, "data"),
		DatabasePath:         filepath.Join(tempDir, "data", "test.db"),
		OutputDir:            filepath.Join(tempDir, "out"),
		PresetsDir:           filepath.Join(tempDir, "data", "presets"),
		ThemesDir:            filepath.Join(tempDir, "data", "themes"),
		CompletionDelay:      0,
		LiveValidation:       false,
		Theme:                "catppuccin",
		NotificationsEnabled: false,
		WatchEnabled:         false,
		WatchDebounce:        50,
		APIEnabled:           false,
		APIPort:              8080,
	}

	if err := cfg.EnsureDirs(); err != nil {
		t.Fatalf("failed to create config dirs: %v", err)
	}

	return cfg
}

// NewTestStorage creates an in-memory SQLite storage for testing.
// The storage is automatically closed when the test completes.
func NewTestStorage(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	s, err := storage.NewInMemoryStorage()
	if err != nil {
		t.Fatalf("failed to create in-memory storage: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

// NewTestOrchestrator creates an orchestrator over s with no completion
// delay. Transitions still happen on a timer goroutine, so tests wait for
// them with require.Eventually.
func NewTestOrchestrator(t *testing.T, s storage.KeyValueStore, opts ...orchestrator.Option) *orchestrator.Orchestrator {
	t.Helper()

	opts = append([]orchestrator.Option{orchestrator.WithCompletionDelay(0)}, opts...)
	o, err := orchestrator.New(catalog.MustLoad(), s, events.NewBus(), opts...)
	if err != nil {
		t.Fatalf("failed to create orchestrator: %v", err)
	}
	t.Cleanup(o.Close)

	return o
}

// CreateTempDir creates a temporary directory for testing.
// The directory is automatically removed when the test completes.
func CreateTempDir(t *testing.T) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "vibe-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	t.Cleanup(func() {
		os.RemoveAll(dir)
	})

	return dir
}

// CreateTempFile creates a temporary file with the given content.
// The file is automatically removed when the test completes.
func CreateTempFile(t *testing.T, content string) string {
	t.Helper()

	f, err := os.CreateTemp("", "vibe-test-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		t.Fatalf("failed to write temp file: %v", err)
	}

	if err := f.Close(); err != nil {
		t.Fatalf("failed to close temp file: %v", err)
	}

	t.Cleanup(func() {
		os.Remove(f.Name())
	})

	return f.Name()
}

// CreateTempFileInDir creates a file with given content in the specified directory.
func CreateTempFileInDir(t *testing.T, dir, filename, content string) string {
	t.Helper()

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}

	return path
}

// CompletedAnswers returns answers for all five stages of a small
// portfolio site, valid for every step.
func CompletedAnswers() map[domain.StageName]domain.StageAnswer {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	vision := domain.NewStageAnswer(domain.StageProjectVision)
	vision.SetValue(domain.FieldProjectType, "portfolio")
	vision.SetValue(domain.FieldTargetAudience, "creatives")
	vision.SetValue(domain.FieldCorePurpose, "showcase_work")

	design := domain.NewStageAnswer(domain.StageDesignStyle)
	design.SetValue(domain.FieldColorScheme, "cool")
	design.SetValue(domain.FieldLayoutStyle, "grid")
	design.SetValue(domain.FieldVisualStyle, "minimal")
	design.SetValue(domain.FieldAnimationLevel, "moderate")
	design.SetValue(domain.FieldMobilePriority, "balanced")

	features := domain.NewStageAnswer(domain.StageFeatureRequirements)
	features.Toggle(domain.FieldContentTypes, "portfolio_items")
	features.Toggle(domain.FieldInteractionFeatures, "contact_form")
	features.Toggle(domain.FieldAdminFeatures, "seo_tools")
	features.SetMapValue(domain.FieldPriorities, "portfolio_items", domain.PriorityEssential)
	features.SetMapValue(domain.FieldPriorities, "contact_form", domain.PriorityImportant)
	features.SetMapValue(domain.FieldPriorities, "seo_tools", domain.PriorityNiceToHave)

	tech := domain.NewStageAnswer(domain.StageTechPreferences)
	tech.SetValue(domain.FieldContentManagement, "code_based")
	tech.SetValue(domain.FieldDeploymentMaintenance, "auto_update")
	tech.SetValue(domain.FieldPerformanceBudget, "ultra_fast")
	tech.SetValue(domain.FieldScalabilitySecurity, "current_needs")
	tech.SetValue(domain.FieldHostingPreference, "cloud_hosting")

	deploy := domain.NewStageAnswer(domain.StageDeploymentSpecs)
	deploy.Toggle(domain.FieldPriorityOrder, "portfolio_items")
	deploy.SetValue(domain.FieldTimeline, "standard")
	deploy.SetValue(domain.FieldBudget, "standard")

	out := map[domain.StageName]domain.StageAnswer{
		domain.StageProjectVision:       vision,
		domain.StageDesignStyle:         design,
		domain.StageFeatureRequirements: features,
		domain.StageTechPreferences:     tech,
		domain.StageDeploymentSpecs:     deploy,
	}
	for stage, a := range out {
		a.Timestamp = ts
		out[stage] = a
	}
	return out
}

// CustomThemeYAML returns a valid custom theme file.
func CustomThemeYAML() string {
	return `name: ocean
primary: "#0077be"
secondary: "#00a8e8"
success: "#2ecc71"
warning: "#f1c40f"
error: "#e74c3c"
info: "#3498db"
background: "#001f3f"
foreground: "#e0f7ff"
subtle: "#4f6d7a"
highlight: "#00334d"
border: "#005f73"
`
}

// MalformedYAML returns malformed YAML content.
func MalformedYAML() string {
	return `name: [unterminated
  missing: colon
  - invalid: structure
`
}
