package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertguss/vibe-academy-go/internal/testutil"
)

func TestResults_PassedCount(t *testing.T) {
	tests := []struct {
		name     string
		checks   []CheckResult
		expected int
	}{
		{
			name:     "all passed",
			checks:   []CheckResult{{Passed: true}, {Passed: true}, {Passed: true}},
			expected: 3,
		},
		{
			name:     "some failed",
			checks:   []CheckResult{{Passed: true}, {Passed: false}, {Passed: true}},
			expected: 2,
		},
		{
			name:     "all failed",
			checks:   []CheckResult{{Passed: false}, {Passed: false}},
			expected: 0,
		},
		{
			name:     "empty",
			checks:   []CheckResult{},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Results{Checks: tt.checks}
			assert.Equal(t, tt.expected, r.PassedCount())
		})
	}
}

func TestResults_FailedChecks(t *testing.T) {
	tests := []struct {
		name          string
		checks        []CheckResult
		expectedCount int
	}{
		{
			name: "returns only failed checks",
			checks: []CheckResult{
				{Name: "Check1", Passed: true},
				{Name: "Check2", Passed: false},
				{Name: "Check3", Passed: true},
				{Name: "Check4", Passed: false},
			},
			expectedCount: 2,
		},
		{
			name: "returns empty when all pass",
			checks: []CheckResult{
				{Name: "Check1", Passed: true},
				{Name: "Check2", Passed: true},
			},
			expectedCount: 0,
		},
		{
			name:          "handles empty checks",
			checks:        []CheckResult{},
			expectedCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Results{Checks: tt.checks}
			failed := r.FailedChecks()
			assert.Len(t, failed, tt.expectedCount)

			// Verify all returned are actually failed
			for _, check := range failed {
				assert.False(t, check.Passed)
			}
		})
	}
}

func TestResults_AddCheck(t *testing.T) {
	t.Run("sets AllPass to false when check fails", func(t *testing.T) {
		r := &Results{Checks: []CheckResult{}, AllPass: true}

		r.addCheck(CheckResult{Name: "Failed", Passed: false})

		assert.Len(t, r.Checks, 1)
		assert.False(t, r.AllPass)
	})

	t.Run("keeps AllPass true for a failed warning", func(t *testing.T) {
		r := &Results{Checks: []CheckResult{}, AllPass: true}

		r.addCheck(CheckResult{Name: "API Key", Warning: true, Passed: false})

		assert.True(t, r.AllPass)
	})

	t.Run("keeps AllPass true when check passes", func(t *testing.T) {
		r := &Results{Checks: []CheckResult{}, AllPass: true}

		r.addCheck(CheckResult{Name: "Passed", Passed: true})

		assert.True(t, r.AllPass)
	})
}

func TestCheckDataDir(t *testing.T) {
	t.Run("passes when writable", func(t *testing.T) {
		cfg := testutil.NewTestConfig(t)

		result := checkDataDir(cfg)

		assert.True(t, result.Passed)
		assert.Equal(t, cfg.DataDir, result.Message)
		entries, err := os.ReadDir(cfg.DataDir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.NotContains(t, e.Name(), ".preflight-")
		}
	})

	t.Run("fails when missing", func(t *testing.T) {
		cfg := testutil.NewTestConfig(t)
		cfg.DataDir = filepath.Join(cfg.WorkingDir, "nope")

		result := checkDataDir(cfg)

		assert.False(t, result.Passed)
		assert.Contains(t, result.Error, "not found")
	})

	t.Run("fails when path is not a directory", func(t *testing.T) {
		cfg := testutil.NewTestConfig(t)
		cfg.DataDir = testutil.CreateTempFileInDir(t, cfg.WorkingDir, "file", "x")

		result := checkDataDir(cfg)

		assert.False(t, result.Passed)
		assert.Contains(t, result.Error, "Not a directory")
	})
}

func TestCheckDatabase(t *testing.T) {
	cfg := testutil.NewTestConfig(t)

	result := checkDatabase(cfg)

	assert.True(t, result.Passed)
	assert.FileExists(t, cfg.DatabasePath)
}

func TestCheckCatalog(t *testing.T) {
	t.Run("embedded", func(t *testing.T) {
		cfg := testutil.NewTestConfig(t)

		result := checkCatalog(cfg)

		assert.True(t, result.Passed)
		assert.Equal(t, "Embedded", result.Message)
	})

	t.Run("broken file", func(t *testing.T) {
		cfg := testutil.NewTestConfig(t)
		cfg.CatalogPath = testutil.CreateTempFile(t, testutil.MalformedYAML())

		result := checkCatalog(cfg)

		assert.False(t, result.Passed)
		assert.NotEmpty(t, result.Error)
	})
}

func TestCheckTheme(t *testing.T) {
	t.Run("builtin", func(t *testing.T) {
		cfg := testutil.NewTestConfig(t)

		assert.True(t, checkTheme(cfg).Passed)
	})

	t.Run("missing custom theme", func(t *testing.T) {
		cfg := testutil.NewTestConfig(t)
		cfg.Theme = "ocean"

		assert.False(t, checkTheme(cfg).Passed)
	})

	t.Run("custom theme file", func(t *testing.T) {
		cfg := testutil.NewTestConfig(t)
		cfg.Theme = "ocean"
		testutil.CreateTempFileInDir(t, cfg.ThemesDir, "ocean.yaml", testutil.CustomThemeYAML())

		assert.True(t, checkTheme(cfg).Passed)
	})
}

func TestCheckOutputDir(t *testing.T) {
	cfg := testutil.NewTestConfig(t)

	result := checkOutputDir(cfg)
	assert.True(t, result.Passed)
	assert.True(t, result.Warning)

	cfg.OutputDir = testutil.CreateTempFileInDir(t, cfg.WorkingDir, "out-file", "x")
	result = checkOutputDir(cfg)
	assert.False(t, result.Passed)
	assert.Contains(t, result.Error, "Not a directory")
}

func TestCheckAPIKey(t *testing.T) {
	cfg := testutil.NewTestConfig(t)
	assert.True(t, checkAPIKey(cfg).Passed)

	cfg.APIEnabled = true
	result := checkAPIKey(cfg)
	assert.False(t, result.Passed)
	assert.True(t, result.Warning)

	cfg.APIKey = "secret"
	assert.True(t, checkAPIKey(cfg).Passed)
}

func TestRunAll(t *testing.T) {
	t.Run("healthy configuration", func(t *testing.T) {
		cfg := testutil.NewTestConfig(t)

		results := RunAll(cfg)

		require.NotNil(t, results)
		assert.Len(t, results.Checks, 6)
		assert.True(t, results.AllPass)
		assert.Equal(t, 6, results.PassedCount())
	})

	t.Run("warnings do not fail the run", func(t *testing.T) {
		cfg := testutil.NewTestConfig(t)
		cfg.APIEnabled = true

		results := RunAll(cfg)

		assert.True(t, results.AllPass)
		assert.Len(t, results.FailedChecks(), 1)
	})
}
