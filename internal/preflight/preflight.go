// Package preflight checks that the wizard's files and settings are usable
// before a session starts.
package preflight

import (
	"fmt"
	"os"

	"github.com/robertguss/vibe-academy-go/internal/catalog"
	"github.com/robertguss/vibe-academy-go/internal/config"
	"github.com/robertguss/vibe-academy-go/internal/storage"
	"github.com/robertguss/vibe-academy-go/internal/theme"
)

// CheckResult represents the result of a single pre-flight check
type CheckResult struct {
	Name    string
	Passed  bool
	Warning bool // a failed warning does not fail the run
	Message string
	Error   string
}

// Results holds all pre-flight check results
type Results struct {
	Checks  []CheckResult
	AllPass bool
}

// RunAll executes all pre-flight checks
func RunAll(cfg *config.Config) *Results {
	results := &Results{
		Checks:  make([]CheckResult, 0),
		AllPass: true,
	}

	results.addCheck(checkDataDir(cfg))
	results.addCheck(checkDatabase(cfg))
	results.addCheck(checkCatalog(cfg))
	results.addCheck(checkTheme(cfg))
	results.addCheck(checkOutputDir(cfg))
	results.addCheck(checkAPIKey(cfg))

	return results
}

// addCheck adds a check result and updates AllPass
func (r *Results) addCheck(check CheckResult) {
	r.Checks = append(r.Checks, check)
	if !check.Passed && !check.Warning {
		r.AllPass = false
	}
}

// PassedCount returns the number of passed checks
func (r *Results) PassedCount() int {
	count := 0
	for _, check := range r.Checks {
		if check.Passed {
			count++
		}
	}
	return count
}

// FailedChecks returns only the failed checks, warnings included
func (r *Results) FailedChecks() []CheckResult {
	failed := make([]CheckResult, 0)
	for _, check := range r.Checks {
		if !check.Passed {
			failed = append(failed, check)
		}
	}
	return failed
}

// checkDataDir verifies the data directory exists and accepts new files
func checkDataDir(cfg *config.Config) CheckResult {
	result := CheckResult{Name: "Data Directory"}

	info, err := os.Stat(cfg.DataDir)
	if os.IsNotExist(err) {
		result.Error = fmt.Sprintf("Directory not found: %s", cfg.DataDir)
		return result
	}
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if !info.IsDir() {
		result.Error = fmt.Sprintf("Not a directory: %s", cfg.DataDir)
		return result
	}

	f, err := os.CreateTemp(cfg.DataDir, ".preflight-*")
	if err != nil {
		result.Error = fmt.Sprintf("Not writable: %s", cfg.DataDir)
		return result
	}
	f.Close()
	os.Remove(f.Name())

	result.Passed = true
	result.Message = cfg.DataDir
	return result
}

// checkDatabase opens the session database, creating it if needed
func checkDatabase(cfg *config.Config) CheckResult {
	result := CheckResult{Name: "Database"}

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	store.Close()

	result.Passed = true
	result.Message = cfg.DatabasePath
	return result
}

// checkCatalog loads and validates the option catalog
func checkCatalog(cfg *config.Config) CheckResult {
	result := CheckResult{Name: "Catalog"}

	if cfg.CatalogPath == "" {
		if _, err := catalog.Load(); err != nil {
			result.Error = err.Error()
			return result
		}
		result.Passed = true
		result.Message = "Embedded"
		return result
	}

	if _, err := catalog.LoadFile(cfg.CatalogPath); err != nil {
		result.Error = err.Error()
		return result
	}
	result.Passed = true
	result.Message = cfg.CatalogPath
	return result
}

// checkTheme resolves the configured theme
func checkTheme(cfg *config.Config) CheckResult {
	result := CheckResult{Name: "Theme"}

	if _, err := theme.Resolve(cfg.Theme, cfg.CustomThemePath(cfg.Theme)); err != nil {
		result.Error = err.Error()
		return result
	}

	result.Passed = true
	result.Message = cfg.Theme
	return result
}

// checkOutputDir warns when documents could not be written where configured
func checkOutputDir(cfg *config.Config) CheckResult {
	result := CheckResult{Name: "Output Directory", Warning: true}

	info, err := os.Stat(cfg.OutputDir)
	if os.IsNotExist(err) {
		result.Passed = true
		result.Message = "Created on first write"
		return result
	}
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if !info.IsDir() {
		result.Error = fmt.Sprintf("Not a directory: %s", cfg.OutputDir)
		return result
	}

	result.Passed = true
	result.Message = cfg.OutputDir
	return result
}

// checkAPIKey warns when the API server would run without authentication
func checkAPIKey(cfg *config.Config) CheckResult {
	result := CheckResult{Name: "API Key", Warning: true}

	switch {
	case !cfg.APIEnabled:
		result.Passed = true
		result.Message = "API disabled"
	case cfg.APIKey == "":
		result.Error = "API enabled without api_key; anyone on the network can drive the session"
	default:
		result.Passed = true
		result.Message = "Set"
	}
	return result
}
