package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCommand(app *App) *cobra.Command {
	var documents bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the saved session",
		Long: `Discard the saved wizard answers so the next start begins a new session.

Archived documents are kept unless --documents is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(cmd.Context(), app, documents)
		},
	}

	cmd.Flags().BoolVar(&documents, "documents", false, "also delete the session's archived documents")
	return cmd
}

func runReset(ctx context.Context, a *App, documents bool) error {
	s, err := a.openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	old := s.orch.SessionID()
	if err := s.orch.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}
	if documents {
		if err := s.store.DeleteDocuments(ctx, old); err != nil {
			return fmt.Errorf("failed to delete documents: %w", err)
		}
	}

	printStyled(a.Out, styleSuccess, "✓ Session %s discarded", shortID(old))
	return nil
}
