// Package sheetdiff reconciles two tabular sources that describe the same
// entities. Records are grouped by a normalized key, paired by position
// within each group, and compared field by field in configurable blocks.
// The result is one report row per pair, carrying side-by-side values and
// human-readable comments, and can be written to a styled workbook.
//
// Basic usage:
//
//	client, err := sheetdiff.New(sheetdiff.WithReferenceTime(now))
//	if err != nil {
//		return err
//	}
//	result, err := client.CompareFile(ctx, "input.xlsx")
//	if err != nil {
//		return err
//	}
//	err = client.WriteReport(ctx, "Compare_Report.xlsx", result)
package sheetdiff

import (
	"context"
	"fmt"

	"github.com/agentstation/sheetdiff/internal/xlsx"
	"github.com/agentstation/sheetdiff/pkg/layout"
	"github.com/agentstation/sheetdiff/pkg/logging"
	"github.com/agentstation/sheetdiff/pkg/reconcile"
	"github.com/agentstation/sheetdiff/pkg/record"
)

// Client compares two sources and renders the result.
type Client interface {
	// Compare reconciles two record slices.
	Compare(ctx context.Context, a, b []record.Record) (*reconcile.Result, error)

	// CompareFile reads both configured sheets from one workbook.
	CompareFile(ctx context.Context, path string) (*reconcile.Result, error)

	// CompareFiles reads the Source A sheet from pathA and the Source B
	// sheet from pathB.
	CompareFiles(ctx context.Context, pathA, pathB string) (*reconcile.Result, error)

	// WriteReport writes a result as a styled workbook.
	WriteReport(ctx context.Context, path string, result *reconcile.Result) error

	// Layout returns the layout in use.
	Layout() *layout.Layout

	// OnGap registers a callback for every block row that is not a match
	OnGap(GapHook)

	// OnExcluded registers a callback for every record left out of alignment
	OnExcluded(ExcludedHook)
}

// client is the internal implementation of the Client interface
type client struct {
	config     *config
	reconciler reconcile.Reconciler
	hooks      *hooks
}

// New creates a new Client with the given options
func New(opts ...Option) (Client, error) {
	c := &client{
		config: defaultConfig(),
		hooks:  newHooks(),
	}

	if err := c.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	rOpts := []reconcile.Option{reconcile.WithLayout(c.config.layout)}
	if !c.config.referenceTime.Time.IsZero() {
		rOpts = append(rOpts, reconcile.WithReferenceTime(c.config.referenceTime))
	}
	if len(c.config.ignoredFields) > 0 {
		rOpts = append(rOpts, reconcile.WithIgnoredFields(c.config.ignoredFields...))
	}

	r, err := reconcile.New(rOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating reconciler: %w", err)
	}
	c.reconciler = r

	return c, nil
}

// Layout returns the layout in use
func (c *client) Layout() *layout.Layout {
	return c.config.layout
}

// OnGap registers a callback for non-matching block rows
func (c *client) OnGap(fn GapHook) {
	c.hooks.OnGap(fn)
}

// OnExcluded registers a callback for excluded records
func (c *client) OnExcluded(fn ExcludedHook) {
	c.hooks.OnExcluded(fn)
}

// Compare reconciles two record slices and fires the registered hooks
func (c *client) Compare(ctx context.Context, a, b []record.Record) (*reconcile.Result, error) {
	result, err := c.reconciler.Reconcile(ctx, a, b)
	if err != nil {
		return nil, err
	}
	c.hooks.trigger(result)
	return result, nil
}

// CompareFile reads both sheets from one workbook and reconciles them
func (c *client) CompareFile(ctx context.Context, path string) (*reconcile.Result, error) {
	return c.CompareFiles(ctx, path, path)
}

// CompareFiles reads Source A from pathA and Source B from pathB
func (c *client) CompareFiles(ctx context.Context, pathA, pathB string) (*reconcile.Result, error) {
	a, err := c.readSheet(ctx, pathA, c.config.sheetA)
	if err != nil {
		return nil, err
	}
	b, err := c.readSheet(ctx, pathB, c.config.sheetB)
	if err != nil {
		return nil, err
	}
	return c.Compare(ctx, a, b)
}

// WriteReport writes the result rows to a workbook
func (c *client) WriteReport(ctx context.Context, path string, result *reconcile.Result) error {
	l := result.Layout
	if l == nil {
		l = c.config.layout
	}
	return xlsx.NewWriter(l).Write(ctx, path, result.Rows)
}

func (c *client) readSheet(ctx context.Context, path, sheet string) ([]record.Record, error) {
	ctx = logging.WithSheet(ctx, sheet)

	r, err := xlsx.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	s, err := r.ReadSheet(ctx, sheet, c.config.layout.Identity)
	if err != nil {
		return nil, err
	}
	if s.BlankRows > 0 {
		logging.FromContext(ctx).Debug().
			Int("blank_rows", s.BlankRows).
			Msg("Skipped blank rows")
	}
	return s.Records, nil
}
