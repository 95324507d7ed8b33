package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/sheetdiff/cmd/sheetdiff/cmd/compare"
	"github.com/agentstation/sheetdiff/cmd/sheetdiff/cmd/layout"
)

// NewCompareCommand creates the compare command with app dependencies.
func (a *App) NewCompareCommand() *cobra.Command {
	return compare.NewCommand(a)
}

// NewLayoutCommand creates the layout command with app dependencies.
func (a *App) NewLayoutCommand() *cobra.Command {
	return layout.NewCommand(a)
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "sheetdiff %s\n", a.version)
			fmt.Fprintf(w, "  commit:   %s\n", a.commit)
			fmt.Fprintf(w, "  built:    %s\n", a.date)
			fmt.Fprintf(w, "  built by: %s\n", a.builtBy)
			if a.config.Verbose {
				fmt.Fprintf(w, "  go:       %s\n", runtime.Version())
				fmt.Fprintf(w, "  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}
