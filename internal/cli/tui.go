package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"github.com/robertguss/vibe-academy-go/internal/api"
	tui "github.com/robertguss/vibe-academy-go/internal/app"
	"github.com/robertguss/vibe-academy-go/internal/config"
	"github.com/robertguss/vibe-academy-go/internal/notify"
	"github.com/robertguss/vibe-academy-go/internal/sound"
	"github.com/robertguss/vibe-academy-go/internal/theme"
	"github.com/robertguss/vibe-academy-go/internal/watcher"
)

// LogFileName is written under the data directory while the TUI owns the
// terminal
const LogFileName = "vibe.log"

const shutdownTimeout = 5 * time.Second

// errNoTerminal is returned when the wizard is started without a TTY
var errNoTerminal = errors.New("the wizard needs an interactive terminal; use `vibe serve` for the HTTP API")

func runTUI(ctx context.Context, a *App) error {
	if !term.IsTerminal(os.Stdin.Fd()) || !term.IsTerminal(os.Stdout.Fd()) {
		return NewExitError(2, errNoTerminal)
	}

	cfg, err := a.Config()
	if err != nil {
		return err
	}

	logFile, err := tea.LogToFile(filepath.Join(cfg.DataDir, LogFileName), "vibe")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	if err := applyTheme(cfg); err != nil {
		log.Printf("cli: keeping default theme: %v", err)
	}

	s, err := a.openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	presets, err := a.presetStore()
	if err != nil {
		log.Printf("cli: presets unavailable: %v", err)
		presets = nil
	}

	model := tui.New(cfg, s.orch, presets, notify.New(cfg.NotificationsEnabled))
	model.SetSound(sound.New(cfg.SoundEnabled))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if cfg.APIEnabled {
		srv := api.NewServer(cfg, s.orch, s.store)
		go func() {
			if err := srv.Start(cfg.APIPort); err != nil {
				log.Printf("cli: api server stopped: %v", err)
			}
		}()
		defer stopServer(srv)
	}

	if w := themeWatcher(cfg); w != nil {
		w.SetSender(p)
		if err := w.Start(); err != nil {
			log.Printf("cli: theme watcher not started: %v", err)
		} else {
			defer w.Stop()
		}
	}

	final, err := p.Run()
	if m, ok := final.(tui.Model); ok {
		m.Close()
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run wizard: %w", err)
	}
	return nil
}

// themeWatcher watches the custom theme file when hot reload is enabled and
// the configured theme is not built in
func themeWatcher(cfg *config.Config) *watcher.Watcher {
	if !cfg.WatchEnabled {
		return nil
	}
	if _, builtin := theme.Lookup(cfg.Theme); builtin {
		return nil
	}
	path := cfg.CustomThemePath(cfg.Theme)
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return watcher.WatchTheme(path, cfg.WatchDebounceDuration())
}

func stopServer(srv *api.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		log.Printf("cli: api server shutdown: %v", err)
	}
}
