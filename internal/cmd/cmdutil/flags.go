// Package cmdutil provides shared flags and configuration utilities for sheetdiff commands.
package cmdutil

import (
	"github.com/agentstation/utc"
	"github.com/spf13/cobra"

	"github.com/agentstation/sheetdiff"
	"github.com/agentstation/sheetdiff/internal/appcontext"
	"github.com/agentstation/sheetdiff/pkg/errors"
)

// referenceLayouts are accepted by --now.
var referenceLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
}

// ParseReferenceTime parses an RFC 3339 timestamp or a plain date.
func ParseReferenceTime(s string) (utc.Time, error) {
	for _, layout := range referenceLayouts {
		if t, err := utc.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return utc.Time{}, errors.NewParseError("rfc3339", "", "invalid reference time "+s, errors.ErrInvalidInput)
}

// CompareFlags holds the flags of a comparison.
type CompareFlags struct {
	Input     string
	InputB    string
	SheetA    string
	SheetB    string
	Output    string
	Layout    string
	Now       string
	Ignore    []string
	FailOnGap bool
}

// AddCompareFlags adds comparison flags to a command.
func AddCompareFlags(cmd *cobra.Command) *CompareFlags {
	flags := &CompareFlags{}

	cmd.Flags().StringVarP(&flags.Input, "input", "i", "",
		"Workbook holding both sheets")
	cmd.Flags().StringVar(&flags.InputB, "input-b", "",
		"Separate workbook holding the Source B sheet")
	cmd.Flags().StringVar(&flags.SheetA, "sheet-a", "",
		"Sheet read as Source A")
	cmd.Flags().StringVar(&flags.SheetB, "sheet-b", "",
		"Sheet read as Source B")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "",
		"Report workbook path")
	cmd.Flags().StringVar(&flags.Layout, "layout", "",
		"YAML layout file (default is the built-in layout)")
	cmd.Flags().StringVar(&flags.Now, "now", "",
		"Reference time for end dates, RFC 3339 or YYYY-MM-DD (default is the current time)")
	cmd.Flags().StringSliceVar(&flags.Ignore, "ignore", nil,
		"Fields left out of every block verdict")
	cmd.Flags().BoolVar(&flags.FailOnGap, "fail-on-gap", false,
		"Exit with an error when any block verdict is not a match")

	return flags
}

// Merge fills unset flags from the configured defaults.
func (f *CompareFlags) Merge(d appcontext.Defaults) {
	if f.Input == "" {
		f.Input = d.Input
	}
	if f.InputB == "" {
		f.InputB = d.InputB
	}
	if f.SheetA == "" {
		f.SheetA = d.SheetA
	}
	if f.SheetB == "" {
		f.SheetB = d.SheetB
	}
	if f.Output == "" {
		f.Output = d.Output
	}
}

// Validate checks that the flags describe a runnable comparison.
func (f *CompareFlags) Validate() error {
	if f.Input == "" {
		return errors.NewValidationError("input", nil, "an input workbook is required (--input or SHEETDIFF_INPUT)")
	}
	if f.Output == "" {
		return errors.NewValidationError("output", nil, "a report path is required")
	}
	return nil
}

// SourceB returns the workbook holding Source B.
func (f *CompareFlags) SourceB() string {
	if f.InputB != "" {
		return f.InputB
	}
	return f.Input
}

// Options converts the flags into client options. Only flags that were set
// produce an option, so configured values stay in effect otherwise.
func (f *CompareFlags) Options() ([]sheetdiff.Option, error) {
	var opts []sheetdiff.Option

	if f.Layout != "" {
		opts = append(opts, sheetdiff.WithLayoutFile(f.Layout))
	}
	if f.SheetA != "" && f.SheetB != "" {
		opts = append(opts, sheetdiff.WithSheets(f.SheetA, f.SheetB))
	}
	if f.Now != "" {
		now, err := ParseReferenceTime(f.Now)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sheetdiff.WithReferenceTime(now))
	}
	if len(f.Ignore) > 0 {
		opts = append(opts, sheetdiff.WithIgnoredFields(f.Ignore...))
	}

	return opts, nil
}
