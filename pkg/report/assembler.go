package report

import (
	"github.com/agentstation/sheetdiff/pkg/align"
	"github.com/agentstation/sheetdiff/pkg/differ"
	"github.com/agentstation/sheetdiff/pkg/layout"
	"github.com/agentstation/sheetdiff/pkg/record"
)

// Assembler turns compared pairs into rows.
type Assembler struct {
	layout *layout.Layout
	differ differ.Differ
}

// NewAssembler returns an assembler for a layout.
func NewAssembler(l *layout.Layout, d differ.Differ) *Assembler {
	return &Assembler{layout: l, differ: d}
}

// Assemble compares every block of the pair and concatenates the block rows
// in layout order.
func (a *Assembler) Assemble(pair align.Pair) Row {
	results := a.differ.Pair(pair)
	row := Row{
		Key:        pair.Key,
		Index:      pair.Index,
		ManyToMany: pair.ManyToMany,
		Blocks:     make([]BlockRow, len(results)),
	}
	for i, res := range results {
		row.Blocks[i] = a.block(res, pair)
	}
	return row
}

// AssembleAll assembles pairs in order.
func (a *Assembler) AssembleAll(pairs []align.Pair) []Row {
	rows := make([]Row, len(pairs))
	for i, p := range pairs {
		rows[i] = a.Assemble(p)
	}
	return rows
}

func (a *Assembler) block(res differ.BlockResult, pair align.Pair) BlockRow {
	b := res.Block
	row := BlockRow{Block: b, Verdict: res.Verdict}
	row.Cells = append(row.Cells, Cell{Column: b.Name, Kind: CellSeparator})

	for _, src := range []record.Source{record.SourceA, record.SourceB} {
		if !b.Sides.Includes(src) {
			continue
		}
		for _, f := range res.Fields {
			row.Cells = append(row.Cells, Cell{
				Column:  a.layout.Column(src, f.Field),
				Kind:    CellValue,
				Source:  src,
				Field:   f.Field,
				Value:   f.Value(src),
				Outcome: f.Outcome,
			})
		}
	}

	for i, text := range a.comments(res, pair) {
		row.Cells = append(row.Cells, Cell{
			Column: b.CommentColumn(i + 1),
			Kind:   CellComment,
			Text:   text,
		})
	}
	return row
}
