package differ

import (
	"github.com/agentstation/sheetdiff/internal/matcher"
	"github.com/agentstation/sheetdiff/pkg/align"
	"github.com/agentstation/sheetdiff/pkg/enrich"
	"github.com/agentstation/sheetdiff/pkg/layout"
	"github.com/agentstation/sheetdiff/pkg/record"
)

// Differ compares the blocks of aligned pairs.
type Differ interface {
	// Block compares one block of a pair.
	Block(block layout.Block, pair align.Pair) BlockResult

	// Pair compares every block of the layout, in layout order.
	Pair(pair align.Pair) []BlockResult
}

// differ is the default implementation of Differ.
type differ struct {
	layout         *layout.Layout
	ignoreFields   map[string]bool
	ignorePatterns []*matcher.Set
}

// New creates a Differ for a layout.
func New(l *layout.Layout, opts ...Option) Differ {
	d := &differ{
		layout:       l,
		ignoreFields: make(map[string]bool),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Classify compares one field. Values are compared in their normalized
// string form only; a number and a string holding the same digits match.
func Classify(field string, a, b record.Value) FieldResult {
	r := FieldResult{Field: field, A: a, B: b}
	switch {
	case a.IsNull() && b.IsNull():
		r.Outcome = BothMissing
	case a.IsNull():
		r.Outcome = MissingInA
	case b.IsNull():
		r.Outcome = MissingInB
	case a.Normalized() == b.Normalized():
		r.Outcome = Match
	default:
		r.Outcome = Mismatch
	}
	return r
}

// Block compares one block. Secondary blocks are display-only: their fields
// are classified and the verdict is Unscanned. Otherwise the identity field
// gates the scan: when it is missing on either side the verdict is
// Unavailable and no field counts as offending. Neither the identity field
// nor the derived status column is scanned.
func (diff *differ) Block(block layout.Block, pair align.Pair) BlockResult {
	result := BlockResult{
		Block:  block,
		Fields: make([]FieldResult, len(block.Fields)),
	}

	for i, field := range block.Fields {
		result.Fields[i] = Classify(field, value(pair.A, field), value(pair.B, field))
	}

	if block.Kind == layout.KindSecondary {
		result.Verdict = Unscanned
		return result
	}

	identity := diff.layout.Identity
	if value(pair.A, identity).IsNull() || value(pair.B, identity).IsNull() {
		result.Verdict = Unavailable
		return result
	}

	for _, f := range result.Fields {
		if f.Field == identity || f.Field == diff.layout.StatusColumn || diff.ignored(f.Field) {
			continue
		}
		if f.Outcome.Offending() {
			result.Offending = append(result.Offending, f)
		}
	}

	if len(result.Offending) > 0 {
		result.Verdict = Gap
	} else {
		result.Verdict = Same
	}
	return result
}

// ignored reports whether a field is left out of the gap scan.
func (diff *differ) ignored(field string) bool {
	if diff.ignoreFields[field] {
		return true
	}
	for _, p := range diff.ignorePatterns {
		if p.Match(field) {
			return true
		}
	}
	return false
}

// Pair compares every block of the layout.
func (diff *differ) Pair(pair align.Pair) []BlockResult {
	results := make([]BlockResult, len(diff.layout.Blocks))
	for i, block := range diff.layout.Blocks {
		results[i] = diff.Block(block, pair)
	}
	return results
}

// value returns a field of an entry, null when the entry is absent.
func value(e *enrich.Entry, field string) record.Value {
	if e == nil {
		return record.Null()
	}
	return e.Record.Value(field)
}
