// Package compare implements the compare command.
package compare

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/sheetdiff/internal/appcontext"
	"github.com/agentstation/sheetdiff/internal/cmd/alerts"
	"github.com/agentstation/sheetdiff/internal/cmd/cmdutil"
	"github.com/agentstation/sheetdiff/internal/cmd/output"
	"github.com/agentstation/sheetdiff/pkg/errors"
	"github.com/agentstation/sheetdiff/pkg/logging"
	"github.com/agentstation/sheetdiff/pkg/reconcile"
)

// ErrGapsFound is returned with --fail-on-gap when any block differs.
var ErrGapsFound = errors.New("comparison found gaps")

// NewCommand creates the compare command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *cmdutil.CompareFlags

	cmd := &cobra.Command{
		Use:     "compare",
		GroupID: "core",
		Short:   "Compare two sheets and write a reconciliation report",
		Long: `Compare reads the Source A and Source B sheets, aligns their records by
the normalized identifier, compares every block of fields and writes the
report workbook. A summary is printed in the selected format.`,
		Args: cobra.NoArgs,
		Example: `  sheetdiff compare -i input.xlsx
  sheetdiff compare -i input.xlsx -o report.xlsx --now 2025-06-30
  sheetdiff compare -i a.xlsx --input-b b.xlsx --sheet-a Left --sheet-b Right --layout layout.yaml
  sheetdiff compare -i input.xlsx -f json --fail-on-gap`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, flags)
		},
	}

	flags = cmdutil.AddCompareFlags(cmd)
	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface, flags *cmdutil.CompareFlags) error {
	flags.Merge(app.Defaults())
	if err := flags.Validate(); err != nil {
		return err
	}

	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}
	if format == "" {
		format = output.DetectFormat("")
	}

	opts, err := flags.Options()
	if err != nil {
		return err
	}
	client, err := app.ClientWithOptions(opts...)
	if err != nil {
		return err
	}

	ctx := logging.WithLogger(cmd.Context(), app.Logger())
	ctx = logging.WithOperation(ctx, "compare")

	result, err := client.CompareFiles(ctx, flags.Input, flags.SourceB())
	if err != nil {
		return fmt.Errorf("comparing %s: %w", flags.Input, err)
	}

	if err := client.WriteReport(ctx, flags.Output, result); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	logging.FromContext(ctx).Info().
		Str("report", flags.Output).
		Int("rows", result.Metadata.Stats.Rows).
		Dur("duration", result.Metadata.Duration).
		Msg(result.Summary())

	summary := output.NewSummary(result, flags.Output)
	if err := output.Write(cmd.OutOrStdout(), summary, format); err != nil {
		return err
	}

	alertWriter := alerts.NewFormatWriter(cmd.ErrOrStderr(), format)
	if alert := excludedAlert(result); alert != nil {
		if err := alertWriter.WriteAlert(alert); err != nil {
			return err
		}
	}

	if format == output.FormatTable || format == output.FormatWide {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), summary.Verdict(app.NoColor())); err != nil {
			return err
		}
	}

	if flags.FailOnGap && !summary.Clean() {
		return ErrGapsFound
	}
	return nil
}

// excludedAlert lists the records left out for lack of an identifier.
func excludedAlert(result *reconcile.Result) *alerts.Alert {
	excluded := result.Alignment.Excluded
	if len(excluded) == 0 {
		return nil
	}

	alert := alerts.NewWarning(fmt.Sprintf("%d records without identifier were excluded", len(excluded)))
	for _, ex := range excluded {
		alert.WithDetails(fmt.Sprintf("%s row %d", result.Layout.Label(ex.Source).Name, ex.Index+1))
	}
	return alert
}
