package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robertguss/vibe-academy-go/internal/preflight"
)

func newDoctorCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the data directory, database, catalog and theme are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(app)
		},
	}
}

func runDoctor(a *App) error {
	cfg, err := a.Config()
	if err != nil {
		return err
	}

	results := preflight.RunAll(cfg)
	printStyled(a.Out, styleTitle, "Pre-flight checks")
	for _, c := range results.Checks {
		switch {
		case c.Passed:
			printStyled(a.Out, styleSuccess, "  ✓ %-18s %s", c.Name, c.Message)
		case c.Warning:
			printStyled(a.Out, styleWarning, "  ! %-18s %s", c.Name, c.Error)
		default:
			printStyled(a.Out, styleError, "  ✗ %-18s %s", c.Name, c.Error)
		}
	}
	fmt.Fprintln(a.Out)

	if !results.AllPass {
		return NewExitError(1, errors.New("pre-flight checks failed"))
	}
	printStyled(a.Out, styleMuted, "%d/%d checks passed", results.PassedCount(), len(results.Checks))
	return nil
}
