// Package cli wires configuration, storage and the wizard core into the
// vibe command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/robertguss/vibe-academy-go/internal/catalog"
	"github.com/robertguss/vibe-academy-go/internal/config"
	"github.com/robertguss/vibe-academy-go/internal/events"
	"github.com/robertguss/vibe-academy-go/internal/orchestrator"
	"github.com/robertguss/vibe-academy-go/internal/preset"
	"github.com/robertguss/vibe-academy-go/internal/storage"
	"github.com/robertguss/vibe-academy-go/internal/theme"
)

// App holds what every command shares. Configuration is loaded on first
// use so that `vibe version` works without a readable config file.
type App struct {
	Loader *config.Loader
	Out    io.Writer
	Err    io.Writer

	configPath string
	cfg        *config.Config
}

// NewApp creates an App writing to the process's stdout and stderr
func NewApp() *App {
	return &App{
		Loader: config.NewLoader(),
		Out:    os.Stdout,
		Err:    os.Stderr,
	}
}

// Config loads the configuration and creates its directories
func (a *App) Config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	if a.configPath != "" {
		a.Loader.WithConfigFile(a.configPath)
	}
	cfg, err := a.Loader.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("failed to create data directories: %w", err)
	}
	a.cfg = cfg
	return cfg, nil
}

// session is the saved wizard session opened from the database
type session struct {
	store *storage.SQLiteStorage
	orch  *orchestrator.Orchestrator
}

func (s *session) Close() {
	s.orch.Close()
	if err := s.store.Close(); err != nil {
		log.Printf("cli: failed to close database: %v", err)
	}
}

// openSession opens the database and restores the saved session from it
func (a *App) openSession(ctx context.Context) (*session, error) {
	cfg, err := a.Config()
	if err != nil {
		return nil, err
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	orch, err := orchestrator.New(cat, store, events.NewBus(),
		orchestrator.WithCompletionDelay(cfg.CompletionDelayDuration()),
		orchestrator.WithLiveValidation(cfg.LiveValidation),
		orchestrator.WithDocumentStore(store),
	)
	if err != nil {
		store.Close()
		return nil, err
	}
	orch.Restore(ctx)

	return &session{store: store, orch: orch}, nil
}

// openStorage opens the database without restoring a session
func (a *App) openStorage() (*storage.SQLiteStorage, error) {
	cfg, err := a.Config()
	if err != nil {
		return nil, err
	}
	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}

// presetStore loads the presets directory
func (a *App) presetStore() (*preset.Store, error) {
	cfg, err := a.Config()
	if err != nil {
		return nil, err
	}
	store := preset.NewStore(cfg.PresetsDir)
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("failed to load presets: %w", err)
	}
	return store, nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Load()
	}
	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", cfg.CatalogPath, err)
	}
	return cat, nil
}

// applyTheme makes the configured theme current
func applyTheme(cfg *config.Config) error {
	t, err := theme.Resolve(cfg.Theme, cfg.CustomThemePath(cfg.Theme))
	if err != nil {
		return err
	}
	theme.Current = t
	return nil
}
