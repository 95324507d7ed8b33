package report

import (
	"fmt"
	"strings"

	"github.com/agentstation/sheetdiff/pkg/align"
	"github.com/agentstation/sheetdiff/pkg/differ"
	"github.com/agentstation/sheetdiff/pkg/enrich"
	"github.com/agentstation/sheetdiff/pkg/layout"
	"github.com/agentstation/sheetdiff/pkg/record"
)

const (
	notApplicable = "N/A"
	noDifferences = "No differences"
	diffPrefix    = "Diff columns: "
	manyToMany    = "many-to-many"
	oneToOne      = "one-one"
	missingState  = "Missing"
)

// commentCount returns the number of comment columns of a block kind.
func commentCount(kind layout.Kind) int {
	switch kind {
	case layout.KindIdentity:
		return 5
	case layout.KindDetailed:
		return 3
	default:
		return 0
	}
}

// comments builds the comment texts of a block in column order.
func (a *Assembler) comments(res differ.BlockResult, pair align.Pair) []string {
	labels := res.Block.Resolved()
	switch res.Block.Kind {
	case layout.KindIdentity:
		return []string{
			a.activity(pair),
			a.cardinality(pair),
			res.Verdict.Label(labels),
			a.detail(res),
			a.pairDetail(pair),
		}
	case layout.KindDetailed:
		return []string{
			a.presence(pair),
			res.Verdict.Label(labels),
			a.detail(res),
		}
	default:
		return nil
	}
}

// activity reports the state of each side, Missing for an absent side.
func (a *Assembler) activity(pair align.Pair) string {
	state := func(e *enrich.Entry) string {
		if e == nil {
			return missingState
		}
		return e.Activity.String()
	}
	return fmt.Sprintf("%s %s, %s %s",
		a.layout.A.Name, state(pair.A),
		a.layout.B.Name, state(pair.B))
}

// cardinality reports the pairing shape. The many-to-many flag overrides
// the presence of either side.
func (a *Assembler) cardinality(pair align.Pair) string {
	switch {
	case pair.ManyToMany:
		return manyToMany
	case pair.A == nil:
		return "missing in " + a.layout.A.Name
	case pair.B == nil:
		return "missing in " + a.layout.B.Name
	default:
		return oneToOne
	}
}

// presence reports which side lacks the pair.
func (a *Assembler) presence(pair align.Pair) string {
	switch {
	case pair.A == nil:
		return "Missing in " + a.layout.A.Name
	case pair.B == nil:
		return "Missing in " + a.layout.B.Name
	default:
		return "Both present"
	}
}

// detail lists the offending fields of a block.
func (a *Assembler) detail(res differ.BlockResult) string {
	switch res.Verdict {
	case differ.Unavailable:
		return notApplicable
	case differ.Same:
		return noDifferences
	}

	shortA, shortB := a.layout.A.Short, a.layout.B.Short
	parts := make([]string, len(res.Offending))
	for i, f := range res.Offending {
		switch f.Outcome {
		case differ.MissingInA:
			parts[i] = fmt.Sprintf("%s [%s missing, %s present]", f.Field, shortA, shortB)
		case differ.MissingInB:
			parts[i] = fmt.Sprintf("%s [%s present, %s missing]", f.Field, shortA, shortB)
		default:
			parts[i] = fmt.Sprintf("%s [%s=%s, %s=%s]", f.Field, shortA, f.A.Normalized(), shortB, f.B.Normalized())
		}
	}
	return diffPrefix + strings.Join(parts, ", ")
}

// pairDetail names the identifiers of the pair and its position in the
// key group.
func (a *Assembler) pairDetail(pair align.Pair) string {
	id := a.layout.Identity
	side := func(src record.Source) string {
		label := a.layout.Label(src).Name
		e := pair.Side(src)
		if e == nil {
			return label + " missing"
		}
		return fmt.Sprintf("%s %s=%s", label, id, e.Raw.Normalized())
	}
	return fmt.Sprintf("Row %d: %s, %s", pair.Index+1, side(record.SourceA), side(record.SourceB))
}
