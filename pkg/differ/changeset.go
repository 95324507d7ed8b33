// Package differ classifies field values of an aligned pair and summarizes
// the outcomes of each block.
package differ

import (
	"github.com/agentstation/sheetdiff/pkg/layout"
	"github.com/agentstation/sheetdiff/pkg/record"
)

// Outcome is the classification of one field across a pair.
type Outcome uint8

const (
	// BothMissing indicates neither side has a value.
	BothMissing Outcome = iota
	// MissingInA indicates only Source B has a value.
	MissingInA
	// MissingInB indicates only Source A has a value.
	MissingInB
	// Match indicates both values normalize to the same string.
	Match
	// Mismatch indicates both values are present and differ.
	Mismatch
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case MissingInA:
		return "MissingInA"
	case MissingInB:
		return "MissingInB"
	case Match:
		return "Match"
	case Mismatch:
		return "Mismatch"
	default:
		return "BothMissing"
	}
}

// Offending reports whether the outcome makes a block a gap.
func (o Outcome) Offending() bool {
	return o == MissingInA || o == MissingInB || o == Mismatch
}

// Outcomes lists every outcome in declaration order.
func Outcomes() []Outcome {
	return []Outcome{BothMissing, MissingInA, MissingInB, Match, Mismatch}
}

// FieldResult is the comparison of one field. A and B hold the raw values,
// null when the side or the field is absent.
type FieldResult struct {
	Field   string
	A       record.Value
	B       record.Value
	Outcome Outcome
}

// Value returns the raw value of a side.
func (f FieldResult) Value(src record.Source) record.Value {
	if src == record.SourceB {
		return f.B
	}
	return f.A
}

// Verdict is the aggregate state of a block.
type Verdict uint8

const (
	// Unavailable means the identity field is missing on a side and no
	// field was scanned.
	Unavailable Verdict = iota
	// Gap means at least one scanned field is missing or mismatched.
	Gap
	// Same means every scanned field matches or is missing on both sides.
	Same
	// Unscanned is the verdict of display-only blocks. Their fields are
	// classified but never make the block a gap.
	Unscanned
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case Gap:
		return "Gap"
	case Same:
		return "Match"
	case Unscanned:
		return "Unscanned"
	default:
		return "Unavailable"
	}
}

// Scanned reports whether the verdict came from a gap scan.
func (v Verdict) Scanned() bool {
	return v != Unscanned
}

// Differs reports whether a scanned block failed to match.
func (v Verdict) Differs() bool {
	return v == Gap || v == Unavailable
}

// Label returns the block wording of the verdict.
func (v Verdict) Label(labels layout.Labels) string {
	switch v {
	case Gap:
		return labels.Gap
	case Same:
		return labels.Match
	case Unscanned:
		return ""
	default:
		return labels.Unavailable
	}
}

// Verdicts lists the verdicts of scanned blocks in declaration order.
func Verdicts() []Verdict {
	return []Verdict{Unavailable, Gap, Same}
}

// BlockResult is the comparison of one block of a pair.
type BlockResult struct {
	Block layout.Block

	// Fields holds one result per block field, in block order.
	Fields []FieldResult

	// Verdict aggregates the scanned fields.
	Verdict Verdict

	// Offending lists scanned fields that are missing on one side or
	// mismatched, in block order. Empty unless Verdict is Gap.
	Offending []FieldResult
}

// Field returns the result of a named field.
func (b BlockResult) Field(name string) (FieldResult, bool) {
	for _, f := range b.Fields {
		if f.Field == name {
			return f, true
		}
	}
	return FieldResult{}, false
}

// Tally counts the outcomes of the block fields.
func (b BlockResult) Tally() map[Outcome]int {
	counts := make(map[Outcome]int, len(Outcomes()))
	for _, f := range b.Fields {
		counts[f.Outcome]++
	}
	return counts
}
