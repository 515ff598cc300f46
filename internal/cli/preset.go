package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/robertguss/vibe-academy-go/internal/domain"
	"github.com/robertguss/vibe-academy-go/internal/preset"
	"github.com/robertguss/vibe-academy-go/internal/util"
)

func newPresetCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage saved answer presets",
		Long: `A preset is a named copy of wizard answers. Save the current session's
answers as a preset, then apply it to start a new project from the same
choices.`,
	}

	var description string
	save := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the current session's answers as a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresetSave(cmd.Context(), app, args[0], description)
		},
	}
	save.Flags().StringVarP(&description, "description", "d", "", "short description shown in the list")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List presets",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runPresetList(app)
			},
		},
		save,
		&cobra.Command{
			Use:   "apply <name>",
			Short: "Start a new session from a preset",
			Long: `Discard the saved session and replace it with the preset's answers.
The next wizard start offers to resume from them.`,
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runPresetApply(cmd.Context(), app, args[0])
			},
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Delete a preset",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runPresetDelete(app, args[0])
			},
		},
	)
	return cmd
}

func runPresetList(a *App) error {
	presets, err := a.presetStore()
	if err != nil {
		return err
	}

	list := presets.List()
	if len(list) == 0 {
		printStyled(a.Out, styleMuted, "No presets in %s", presets.Dir())
		return nil
	}

	rows := make([][]string, 0, len(list))
	for _, p := range list {
		rows = append(rows, []string{
			p.Name,
			p.Description,
			fmt.Sprintf("%d/%d", len(p.Stages()), domain.StageCount),
			util.FormatAgo(p.CreatedAt),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleMuted).
		Headers("NAME", "DESCRIPTION", "STAGES", "CREATED").
		Rows(rows...)
	fmt.Fprintln(a.Out, t.Render())
	return nil
}

func runPresetSave(ctx context.Context, a *App, name, description string) error {
	if err := preset.ValidateName(name); err != nil {
		return err
	}
	presets, err := a.presetStore()
	if err != nil {
		return err
	}

	s, err := a.openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	p := preset.FromAnswers(name, description, s.orch.CollectedData())
	if len(p.Answers) == 0 {
		return NewExitError(1, errors.New("the saved session has no answers yet"))
	}
	if err := presets.Save(p); err != nil {
		return err
	}

	printStyled(a.Out, styleSuccess, "✓ Saved preset %s (%d stages)", name, len(p.Stages()))
	return nil
}

func runPresetApply(ctx context.Context, a *App, name string) error {
	presets, err := a.presetStore()
	if err != nil {
		return err
	}
	p, ok := presets.Get(name)
	if !ok {
		return fmt.Errorf("preset %q not found", name)
	}

	s, err := a.openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.orch.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}
	s.orch.Apply(p.Answers)
	if err := s.orch.Persist(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	printStyled(a.Out, styleSuccess, "✓ Applied preset %s (%d stages)", p.Name, len(p.Stages()))
	printStyled(a.Out, styleMuted, "  run `vibe` to review and finish the wizard")
	return nil
}

func runPresetDelete(a *App, name string) error {
	presets, err := a.presetStore()
	if err != nil {
		return err
	}
	if _, ok := presets.Get(name); !ok {
		return fmt.Errorf("preset %q not found", name)
	}
	if err := presets.Delete(name); err != nil {
		return err
	}
	printStyled(a.Out, styleSuccess, "✓ Deleted preset %s", name)
	return nil
}
