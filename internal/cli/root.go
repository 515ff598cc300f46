package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the vibe command tree over app
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "vibe",
		Short: "Vibe Coding Academy - website requirements wizard",
		Long: `Vibe Coding Academy walks you through five stages of questions about
the website you want to build, then generates a project brief, technical
specification, development plan and an AI coding prompt from your answers.

Run without a subcommand to start the terminal wizard. Progress is saved
when you quit and offered for resume on the next start.

Commands:
  serve       Run the HTTP/WebSocket API
  generate    Write the documents of a completed session or a preset
  reset       Discard the saved session
  preset      Manage saved answer presets
  doctor      Check files and settings before a session
  version     Show version info`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), app)
		},
	}

	root.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default: vibe.yaml in the working directory)")
	root.SetOut(app.Out)
	root.SetErr(app.Err)

	root.AddCommand(
		newServeCommand(app),
		newGenerateCommand(app),
		newResetCommand(app),
		newPresetCommand(app),
		newDoctorCommand(app),
		newVersionCommand(app),
	)
	return root
}

// Run executes the command line args against app and returns the exit code
func Run(ctx context.Context, app *App, args []string) int {
	root := NewRootCommand(app)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		printStyled(app.Err, styleError, "Error: %v", err)
		if code, ok := IsExitError(err); ok {
			return code
		}
		return 1
	}
	return 0
}

// Execute runs the process's command line and returns the exit code
func Execute() int {
	return Run(context.Background(), NewApp(), os.Args[1:])
}
