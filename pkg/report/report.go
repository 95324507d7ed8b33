// Package report assembles the compared blocks of each aligned pair into
// output rows: one separator cell per block, the value cells of each
// contributing source, and the block comments.
package report

import (
	"github.com/agentstation/sheetdiff/pkg/differ"
	"github.com/agentstation/sheetdiff/pkg/layout"
	"github.com/agentstation/sheetdiff/pkg/record"
)

// CellKind tells a renderer how to treat a cell.
type CellKind uint8

// Cell kinds.
const (
	// CellSeparator starts a block and never holds a value.
	CellSeparator CellKind = iota
	// CellValue holds a raw source value.
	CellValue
	// CellComment holds comment text.
	CellComment
)

// Cell is one output column of a row.
type Cell struct {
	Column string
	Kind   CellKind

	// Source, Field, Value and Outcome are set on value cells.
	Source  record.Source
	Field   string
	Value   record.Value
	Outcome differ.Outcome

	// Text is set on comment cells.
	Text string
}

// Interface returns the cell content as a plain Go scalar.
func (c Cell) Interface() any {
	switch c.Kind {
	case CellValue:
		return c.Value.Interface()
	case CellComment:
		return c.Text
	default:
		return nil
	}
}

// BlockRow is the part of a row belonging to one block.
type BlockRow struct {
	Block   layout.Block
	Verdict differ.Verdict
	Cells   []Cell
}

// Columns returns the column names in order.
func (b BlockRow) Columns() []string {
	cols := make([]string, len(b.Cells))
	for i, c := range b.Cells {
		cols[i] = c.Column
	}
	return cols
}

// Values returns the cell contents in order.
func (b BlockRow) Values() []any {
	vals := make([]any, len(b.Cells))
	for i, c := range b.Cells {
		vals[i] = c.Interface()
	}
	return vals
}

// Comment returns the text of a comment column.
func (b BlockRow) Comment(column string) (string, bool) {
	for _, c := range b.Cells {
		if c.Kind == CellComment && c.Column == column {
			return c.Text, true
		}
	}
	return "", false
}

// Comments returns the comment texts in column order.
func (b BlockRow) Comments() []string {
	var out []string
	for _, c := range b.Cells {
		if c.Kind == CellComment {
			out = append(out, c.Text)
		}
	}
	return out
}

// Row is one aligned pair rendered across every block. Rows are not
// modified after assembly.
type Row struct {
	Key        string
	Index      int
	ManyToMany bool
	Blocks     []BlockRow
}

// Columns returns the column names of every block in order.
func (r Row) Columns() []string {
	var cols []string
	for _, b := range r.Blocks {
		cols = append(cols, b.Columns()...)
	}
	return cols
}

// Values returns the cell contents of every block in order.
func (r Row) Values() []any {
	var vals []any
	for _, b := range r.Blocks {
		vals = append(vals, b.Values()...)
	}
	return vals
}

// Cells returns the cells of every block in order.
func (r Row) Cells() []Cell {
	var cells []Cell
	for _, b := range r.Blocks {
		cells = append(cells, b.Cells...)
	}
	return cells
}

// Block returns the block row with the given block name.
func (r Row) Block(name string) (BlockRow, bool) {
	for _, b := range r.Blocks {
		if b.Block.Name == name {
			return b, true
		}
	}
	return BlockRow{}, false
}

// Header returns the column names shared by every row of a layout.
func Header(l *layout.Layout) []string {
	var cols []string
	for _, b := range l.Blocks {
		cols = append(cols, BlockHeader(l, b)...)
	}
	return cols
}

// BlockHeader returns the column names of one block.
func BlockHeader(l *layout.Layout, b layout.Block) []string {
	cols := []string{b.Name}
	for _, src := range []record.Source{record.SourceA, record.SourceB} {
		if !b.Sides.Includes(src) {
			continue
		}
		for _, f := range b.Fields {
			cols = append(cols, l.Column(src, f))
		}
	}
	for i := 1; i <= commentCount(b.Kind); i++ {
		cols = append(cols, b.CommentColumn(i))
	}
	return cols
}
