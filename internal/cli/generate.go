package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/robertguss/vibe-academy-go/internal/domain"
	"github.com/robertguss/vibe-academy-go/internal/generator"
	"github.com/robertguss/vibe-academy-go/internal/parser"
	"github.com/robertguss/vibe-academy-go/internal/storage"
	"github.com/robertguss/vibe-academy-go/internal/util"
)

// errSessionIncomplete is returned when generate has nothing to render
var errSessionIncomplete = errors.New("no completed session to generate from; finish the wizard or pass --preset")

type generateOptions struct {
	out     string
	preset  string
	list    bool
	session string
	limit   int
}

func newGenerateCommand(app *App) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the generated documents",
		Long: `Write the five generated documents of the completed wizard session to
the output directory.

With --preset the documents are generated straight from a saved preset,
without touching the session. With --list the document archive is shown
instead.

Examples:
  vibe generate
  vibe generate --out ./docs
  vibe generate --preset portfolio
  vibe generate --list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.list {
				return runListDocuments(cmd.Context(), app, opts)
			}
			return runGenerate(cmd.Context(), app, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output directory (default: output_dir from config)")
	cmd.Flags().StringVar(&opts.preset, "preset", "", "generate from a saved preset instead of the session")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "list archived documents")
	cmd.Flags().StringVar(&opts.session, "session", "", "with --list, only show this session's documents")
	cmd.Flags().IntVar(&opts.limit, "limit", 50, "with --list, maximum number of documents")
	return cmd
}

func runGenerate(ctx context.Context, a *App, opts generateOptions) error {
	cfg, err := a.Config()
	if err != nil {
		return err
	}

	var docs []domain.GeneratedDocument
	if opts.preset != "" {
		docs, err = a.presetDocuments(opts.preset)
		if err != nil {
			return err
		}
	} else {
		s, err := a.openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		r, ok := s.orch.Result()
		if !ok {
			return NewExitError(1, errSessionIncomplete)
		}
		docs = r.Documents
	}

	dir := opts.out
	if dir == "" {
		dir = cfg.OutputDir
	}
	paths, err := generator.WriteFiles(dir, docs)
	if err != nil {
		return err
	}

	printStyled(a.Out, styleSuccess, "✓ Wrote %d documents to %s", len(paths), dir)
	for i, path := range paths {
		fmt.Fprintf(a.Out, "  %s %s\n", path, styleMuted.Render(util.FormatSize(len(docs[i].Content))))
	}
	return nil
}

// presetDocuments renders a preset's answers without a session
func (a *App) presetDocuments(name string) ([]domain.GeneratedDocument, error) {
	cfg, err := a.Config()
	if err != nil {
		return nil, err
	}
	presets, err := a.presetStore()
	if err != nil {
		return nil, err
	}
	p, ok := presets.Get(name)
	if !ok {
		return nil, fmt.Errorf("preset %q not found", name)
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	return generator.GenerateAll(parser.New(cat).Parse(p.Answers)), nil
}

func runListDocuments(ctx context.Context, a *App, opts generateOptions) error {
	store, err := a.openStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.ListDocuments(ctx, &storage.DocumentFilter{
		SessionID: opts.session,
		Limit:     opts.limit,
	})
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	if len(records) == 0 {
		printStyled(a.Out, styleMuted, "No archived documents yet")
		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			shortID(r.SessionID),
			r.Filename,
			util.FormatSize(r.Size),
			util.FormatAgo(r.CreatedAt),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleMuted).
		Headers("SESSION", "DOCUMENT", "SIZE", "CREATED").
		Rows(rows...)
	fmt.Fprintln(a.Out, t.Render())
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
