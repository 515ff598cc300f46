package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/robertguss/vibe-academy-go/internal/generator"
)

// Version information - set via ldflags at build time
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func newVersionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version info",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(app.Out, "vibe %s\n", Version)
			fmt.Fprintf(app.Out, "  commit:    %s\n", Commit)
			fmt.Fprintf(app.Out, "  built:     %s\n", BuildDate)
			fmt.Fprintf(app.Out, "  documents: v%s\n", generator.Version)
			fmt.Fprintf(app.Out, "  go:        %s\n", runtime.Version())
			fmt.Fprintf(app.Out, "  os/arch:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
