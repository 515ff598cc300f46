package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/robertguss/vibe-academy-go/internal/api"
	"github.com/robertguss/vibe-academy-go/internal/domain"
	"github.com/robertguss/vibe-academy-go/internal/util"
)

func newServeCommand(app *App) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP/WebSocket API",
		Long: `Serve the saved wizard session over HTTP so a browser front end can
drive it. Events are streamed on /api/ws.

The session is saved when the server stops (Ctrl+C or SIGTERM).

Example:
  vibe serve --port 9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, app, port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (default: api_port from config)")
	return cmd
}

// runServe serves the session until ctx is cancelled
func runServe(ctx context.Context, a *App, port int) error {
	cfg, err := a.Config()
	if err != nil {
		return err
	}
	if port <= 0 {
		port = cfg.APIPort
	}

	s, err := a.openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if s.orch.State() == domain.SessionNotStarted {
		s.orch.Start()
	}

	srv := api.NewServer(cfg, s.orch, s.store)
	started := time.Now()
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(port)
	}()

	printStyled(a.Out, styleTitle, "Vibe Coding Academy API")
	printStyled(a.Out, styleInfo, "  listening on http://localhost:%d", port)
	printStyled(a.Out, styleMuted, "  session %s (%s)", s.orch.SessionID(), s.orch.State())
	if cfg.APIKey == "" {
		printStyled(a.Out, styleWarning, "  no api_key configured, /api is open to any client that passes CORS")
	}

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("api server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.orch.Persist(shutdownCtx); err != nil {
		printStyled(a.Err, styleWarning, "failed to save session: %v", err)
	}
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("api server shutdown: %w", err)
	}
	printStyled(a.Out, styleSuccess, "Session saved (served %s)", util.FormatDuration(time.Since(started)))
	return nil
}
