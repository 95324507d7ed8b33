// Package layout implements the layout command.
package layout

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/sheetdiff/internal/appcontext"
	"github.com/agentstation/sheetdiff/internal/cmd/alerts"
	"github.com/agentstation/sheetdiff/internal/cmd/output"
	"github.com/agentstation/sheetdiff/pkg/layout"
)

// NewCommand creates the layout command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "layout",
		GroupID: "core",
		Short:   "Print the default comparison layout as YAML",
		Long: `Layout prints the built-in block layout. Save it to a file, edit the
labels, fields or blocks, and pass it to compare with --layout.`,
		Args:    cobra.NoArgs,
		Example: `  sheetdiff layout > layout.yaml
  sheetdiff layout validate layout.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := layout.Default().Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.AddCommand(newValidateCommand(app))
	return cmd
}

func newValidateCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a layout file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := layout.Load(args[0])
			if err != nil {
				return err
			}

			app.Logger().Debug().Str("path", args[0]).Int("blocks", len(l.Blocks)).Msg("Layout loaded")

			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}
			alert := alerts.NewSuccess(fmt.Sprintf("%s is valid", args[0]))
			for _, b := range l.Blocks {
				alert.WithDetails(fmt.Sprintf("%s (%s, %d fields)", b.Name, b.Kind, len(b.Fields)))
			}
			return alerts.NewFormatWriter(cmd.OutOrStdout(), format).WriteAlert(alert)
		},
	}
}
