// Package reconcile runs the full comparison pipeline over two record
// sequences: enrichment, alignment, block comparison and row assembly.
//
// The pipeline is a pure function of its inputs and the reference time. It
// returns an error only when the context is done or the layout is invalid;
// any data shape degrades to a defined outcome instead.
package reconcile

import (
	"context"
	"fmt"

	"github.com/agentstation/utc"

	"github.com/agentstation/sheetdiff/pkg/align"
	"github.com/agentstation/sheetdiff/pkg/differ"
	"github.com/agentstation/sheetdiff/pkg/enrich"
	"github.com/agentstation/sheetdiff/pkg/layout"
	"github.com/agentstation/sheetdiff/pkg/logging"
	"github.com/agentstation/sheetdiff/pkg/record"
	"github.com/agentstation/sheetdiff/pkg/report"
	"github.com/agentstation/sheetdiff/pkg/status"
)

// Reconciler compares two sources.
type Reconciler interface {
	// Reconcile compares the records of Source A and Source B. Records
	// must be in source order.
	Reconcile(ctx context.Context, a, b []record.Record) (*Result, error)

	// Layout returns the layout in use.
	Layout() *layout.Layout
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	layout  *layout.Layout
	now     utc.Time
	hasNow  bool
	ignored []string
}

// Option configures a Reconciler.
type Option func(*reconciler) error

// New creates a new Reconciler with options. Without WithReferenceTime the
// wall clock at each Reconcile call is used.
func New(opts ...Option) (Reconciler, error) {
	r := &reconciler{
		layout: layout.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if err := r.layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}

	return r, nil
}

// Layout returns the layout in use.
func (r *reconciler) Layout() *layout.Layout {
	return r.layout
}

// Reconcile runs the pipeline.
func (r *reconciler) Reconcile(ctx context.Context, a, b []record.Record) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := r.now
	if !r.hasNow {
		now = utc.Now()
	}

	logger := logging.FromContext(ctx)
	builder := NewResultBuilder(r.layout, now).WithRecordCounts(len(a), len(b))

	e := enrich.New(r.layout, status.NewClassifier(now))
	enrichSource := func(src record.Source, records []record.Record) []enrich.Entry {
		entries := e.Enrich(src, records)
		logging.FromContext(logging.WithSource(ctx, src.String())).Debug().
			Int("records", len(entries)).
			Msg("Records enriched")
		return entries
	}
	alignment := align.Align(
		enrichSource(record.SourceA, a),
		enrichSource(record.SourceB, b),
	)

	for _, ex := range alignment.Excluded {
		logging.FromContext(logging.WithSource(ctx, ex.Source.String())).Warn().
			Int("index", ex.Index).
			Str("identity", r.layout.Identity).
			Msg("Record without identifier excluded from comparison")
	}

	for _, g := range alignment.Groups {
		if !g.ManyToMany {
			continue
		}
		logging.FromContext(logging.WithKey(ctx, g.Key)).Debug().
			Int("records_a", len(g.A)).
			Int("records_b", len(g.B)).
			Msg("Many-to-many group")
	}

	logger.Debug().
		Int("groups", len(alignment.Groups)).
		Int("pairs", len(alignment.Pairs)).
		Int("many_to_many", alignment.ManyToManyGroups()).
		Msg("Records aligned")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	assembler := report.NewAssembler(r.layout, differ.New(r.layout, differ.WithIgnoredFields(r.ignored...)))
	rows := assembler.AssembleAll(alignment.Pairs)

	result := builder.
		WithAlignment(alignment).
		WithRows(rows).
		Build()

	logger.Debug().
		Int("rows", len(result.Rows)).
		Dur("duration", result.Metadata.Duration).
		Msg("Reconciliation completed")

	return result, nil
}

// WithLayout sets the comparison layout.
func WithLayout(l *layout.Layout) Option {
	return func(r *reconciler) error {
		if l == nil {
			return fmt.Errorf("layout cannot be nil")
		}
		r.layout = l
		return nil
	}
}

// WithReferenceTime fixes the instant end dates are compared against.
func WithReferenceTime(now utc.Time) Option {
	return func(r *reconciler) error {
		if now.Time.IsZero() {
			return fmt.Errorf("reference time cannot be zero")
		}
		r.now = now
		r.hasNow = true
		return nil
	}
}

// WithIgnoredFields excludes fields from the gap scan of every block.
func WithIgnoredFields(fields ...string) Option {
	return func(r *reconciler) error {
		r.ignored = append(r.ignored, fields...)
		return nil
	}
}
