package differ_test

import (
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/sheetdiff/pkg/align"
	"github.com/agentstation/sheetdiff/pkg/differ"
	"github.com/agentstation/sheetdiff/pkg/enrich"
	"github.com/agentstation/sheetdiff/pkg/layout"
	"github.com/agentstation/sheetdiff/pkg/record"
	"github.com/agentstation/sheetdiff/pkg/status"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		a    record.Value
		b    record.Value
		want differ.Outcome
	}{
		{"both null", record.Null(), record.Null(), differ.BothMissing},
		{"missing in a", record.Null(), record.String("x"), differ.MissingInA},
		{"missing in b", record.String("x"), record.Null(), differ.MissingInB},
		{"equal strings", record.String("foo"), record.String("foo"), differ.Match},
		{"trimmed equal", record.String(" foo "), record.String("foo"), differ.Match},
		{"number and string", record.Number(1), record.String("1"), differ.Match},
		{"decimal text differs", record.String("1.0"), record.String("1"), differ.Mismatch},
		{"case differs", record.String("Foo"), record.String("foo"), differ.Mismatch},
		{"empty string is present", record.String(""), record.Null(), differ.MissingInB},
		{"date and string", record.Date(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)), record.String("2024-01-02 00:00:00"), differ.Match},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := differ.Classify("f", tt.a, tt.b)
			assert.Equal(t, tt.want, got.Outcome)
			assert.Equal(t, "f", got.Field)
			assert.True(t, tt.a.Equal(got.A))
			assert.True(t, tt.b.Equal(got.B))
		})
	}
}

func TestClassifyExhaustive(t *testing.T) {
	values := []record.Value{record.Null(), record.String("a"), record.String("b"), record.Number(2)}
	for _, a := range values {
		for _, b := range values {
			o := differ.Classify("f", a, b).Outcome
			switch o {
			case differ.Match, differ.Mismatch:
				assert.True(t, a.Present() && b.Present())
			case differ.BothMissing:
				assert.True(t, a.IsNull() && b.IsNull())
			case differ.MissingInA:
				assert.True(t, a.IsNull() && b.Present())
			case differ.MissingInB:
				assert.True(t, a.Present() && b.IsNull())
			default:
				t.Fatalf("unexpected outcome %v", o)
			}
		}
	}
}

var fields = []string{"Noel", "Daytona", "field1", "field2"}

// pair aligns one record per side; a nil map leaves that side absent.
func pair(t *testing.T, a, b map[string]any) align.Pair {
	t.Helper()
	e := enrich.New(layout.Default(), status.NewClassifier(utc.New(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))))
	var ea, eb []enrich.Entry
	if a != nil {
		ea = e.Enrich(record.SourceA, []record.Record{record.FromMap(fields, a)})
	}
	if b != nil {
		eb = e.Enrich(record.SourceB, []record.Record{record.FromMap(fields, b)})
	}
	result := align.Align(ea, eb)
	require.Len(t, result.Pairs, 1)
	return result.Pairs[0]
}

func block() layout.Block {
	return layout.Block{Name: "B", Suffix: "B", Kind: layout.KindDetailed, Sides: layout.SidesBoth, Fields: []string{"Noel", "field1", "field2"}}
}

func TestBlockMatch(t *testing.T) {
	d := differ.New(layout.Default())
	p := pair(t,
		map[string]any{"Noel": "Y", "field1": "foo"},
		map[string]any{"Noel": "Y", "field1": "foo"},
	)

	got := d.Block(block(), p)
	assert.Equal(t, differ.Same, got.Verdict)
	assert.Empty(t, got.Offending)
	require.Len(t, got.Fields, 3)
	assert.Equal(t, differ.BothMissing, got.Fields[2].Outcome)
}

func TestBlockGap(t *testing.T) {
	d := differ.New(layout.Default())
	p := pair(t,
		map[string]any{"Noel": "Y", "field1": "foo", "field2": "x"},
		map[string]any{"Noel": "Y", "field1": "bar"},
	)

	got := d.Block(block(), p)
	assert.Equal(t, differ.Gap, got.Verdict)
	require.Len(t, got.Offending, 2)
	assert.Equal(t, "field1", got.Offending[0].Field)
	assert.Equal(t, differ.Mismatch, got.Offending[0].Outcome)
	assert.Equal(t, "field2", got.Offending[1].Field)
	assert.Equal(t, differ.MissingInB, got.Offending[1].Outcome)

	counts := got.Tally()
	assert.Equal(t, 1, counts[differ.Match])
	assert.Equal(t, 1, counts[differ.Mismatch])
	assert.Equal(t, 1, counts[differ.MissingInB])
}

func TestBlockIdentityExcludedFromScan(t *testing.T) {
	d := differ.New(layout.Default())
	p := pair(t,
		map[string]any{"Noel": "Y_1", "field1": "foo"},
		map[string]any{"Noel": "Y_2", "field1": "foo"},
	)

	got := d.Block(block(), p)
	assert.Equal(t, differ.Same, got.Verdict)
	f, ok := got.Field("Noel")
	require.True(t, ok)
	assert.Equal(t, differ.Mismatch, f.Outcome)
}

func TestBlockMissingSideIsUnavailable(t *testing.T) {
	d := differ.New(layout.Default())
	p := pair(t, map[string]any{"Noel": "Z", "field1": "foo"}, nil)

	got := d.Block(block(), p)
	assert.Equal(t, differ.Unavailable, got.Verdict)
	assert.Empty(t, got.Offending)
	f, ok := got.Field("field1")
	require.True(t, ok)
	assert.Equal(t, differ.MissingInB, f.Outcome)
}

func TestBlockSecondaryIsUnscanned(t *testing.T) {
	d := differ.New(layout.Default())
	p := pair(t,
		map[string]any{"Noel": "Y"},
		map[string]any{"Noel": "Y", "field1": "only in b"},
	)

	secondary := layout.Block{Name: "S", Kind: layout.KindSecondary, Sides: layout.SidesB, Fields: []string{"field1", "field2"}}
	got := d.Block(secondary, p)
	assert.Equal(t, differ.Unscanned, got.Verdict)
	assert.False(t, got.Verdict.Scanned())
	assert.False(t, got.Verdict.Differs())
	assert.Empty(t, got.Offending)

	f, ok := got.Field("field1")
	require.True(t, ok)
	assert.Equal(t, differ.MissingInA, f.Outcome)
}

func TestBlockStatusColumnNotScanned(t *testing.T) {
	d := differ.New(layout.Default())
	p := pair(t,
		map[string]any{"Noel": "Y", "Daytona": "closed"},
		map[string]any{"Noel": "Y", "Daytona": "open"},
	)

	identity := layout.Block{Name: "I", Suffix: "I", Kind: layout.KindIdentity, Sides: layout.SidesBoth, Fields: []string{"Noel", "Status"}}
	got := d.Block(identity, p)
	assert.Equal(t, differ.Same, got.Verdict)

	f, ok := got.Field("Status")
	require.True(t, ok)
	assert.Equal(t, differ.Mismatch, f.Outcome)
}

func TestBlockIgnoredFields(t *testing.T) {
	d := differ.New(layout.Default(), differ.WithIgnoredFields("field1"))
	p := pair(t,
		map[string]any{"Noel": "Y", "field1": "foo"},
		map[string]any{"Noel": "Y", "field1": "bar"},
	)

	got := d.Block(block(), p)
	assert.Equal(t, differ.Same, got.Verdict)
	f, _ := got.Field("field1")
	assert.Equal(t, differ.Mismatch, f.Outcome)
}

func TestBlockIgnoredPatterns(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    differ.Verdict
	}{
		{"glob", "field*", differ.Same},
		{"regex", "/^f.*1$/", differ.Same},
		{"no match", "other*", differ.Gap},
		{"bad glob falls back to exact name", "[field1", differ.Gap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := differ.New(layout.Default(), differ.WithIgnoredFields(tt.pattern))
			p := pair(t,
				map[string]any{"Noel": "Y", "field1": "foo"},
				map[string]any{"Noel": "Y", "field1": "bar"},
			)
			assert.Equal(t, tt.want, d.Block(block(), p).Verdict)
		})
	}
}

func TestBlockAggregateConsistency(t *testing.T) {
	d := differ.New(layout.Default())
	values := []any{nil, "a", "b"}
	for _, va := range values {
		for _, vb := range values {
			p := pair(t,
				map[string]any{"Noel": "K", "field1": va},
				map[string]any{"Noel": "K", "field1": vb},
			)
			got := d.Block(block(), p)
			offending := false
			for _, f := range got.Fields {
				if f.Field != "Noel" && f.Outcome.Offending() {
					offending = true
				}
			}
			assert.Equal(t, !offending, got.Verdict == differ.Same, "a=%v b=%v", va, vb)
		}
	}
}

func TestPairFollowsLayoutOrder(t *testing.T) {
	l := layout.Default()
	d := differ.New(l)
	p := pair(t, map[string]any{"Noel": "K"}, map[string]any{"Noel": "K"})

	results := d.Pair(p)
	require.Len(t, results, len(l.Blocks))
	for i, r := range results {
		assert.Equal(t, l.Blocks[i].Name, r.Block.Name)
		assert.Len(t, r.Fields, len(l.Blocks[i].Fields))
	}
}

func TestVerdictLabel(t *testing.T) {
	labels := layout.DefaultLabels(layout.KindIdentity)
	assert.Equal(t, "Missing Core Data", differ.Unavailable.Label(labels))
	assert.Equal(t, "GAP", differ.Gap.Label(labels))
	assert.Equal(t, "MATCH", differ.Same.Label(labels))
	assert.Equal(t, "Match", differ.Same.String())
	assert.Equal(t, "", differ.Unscanned.Label(labels))
	assert.Equal(t, "Unscanned", differ.Unscanned.String())
	assert.True(t, differ.Gap.Differs())
	assert.True(t, differ.Unavailable.Differs())
	assert.False(t, differ.Same.Differs())
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "BothMissing", differ.BothMissing.String())
	assert.Equal(t, "MissingInA", differ.MissingInA.String())
	assert.Equal(t, "MissingInB", differ.MissingInB.String())
	assert.Equal(t, "Match", differ.Match.String())
	assert.Equal(t, "Mismatch", differ.Mismatch.String())
}
