package xlsx

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/sheetdiff/pkg/constants"
	"github.com/agentstation/sheetdiff/pkg/errors"
	"github.com/agentstation/sheetdiff/pkg/layout"
	"github.com/agentstation/sheetdiff/pkg/logging"
	"github.com/agentstation/sheetdiff/pkg/record"
	"github.com/agentstation/sheetdiff/pkg/report"
)

// pairCommentColumn is the position of the pair detail among the comments
// of an identity block.
const pairCommentColumn = 5

// maxSheetName is the longest sheet name a workbook accepts.
const maxSheetName = 31

// Writer renders rows into a workbook.
type Writer struct {
	layout *layout.Layout
}

// NewWriter returns a writer for rows built with the layout.
func NewWriter(l *layout.Layout) *Writer {
	return &Writer{layout: l}
}

// Write saves a workbook with a combined sheet, one sheet per block and a
// legend.
func (w *Writer) Write(ctx context.Context, path string, rows []report.Row) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	st := newStyles(f)
	first := f.GetSheetName(0)
	if err := f.SetSheetName(first, constants.ComparisonSheet); err != nil {
		return errors.NewSheetError(path, constants.ComparisonSheet, "", err)
	}

	combined := make([][]report.Cell, len(rows))
	for i, row := range rows {
		combined[i] = row.Cells()
	}
	if err := w.table(f, st, constants.ComparisonSheet, report.Header(w.layout), combined); err != nil {
		return errors.NewSheetError(path, constants.ComparisonSheet, "", err)
	}

	for i, b := range w.layout.Blocks {
		name := sheetName(b.Name)
		if _, err := f.NewSheet(name); err != nil {
			return errors.NewSheetError(path, name, "", err)
		}
		cells := make([][]report.Cell, len(rows))
		for r, row := range rows {
			if i < len(row.Blocks) {
				cells[r] = row.Blocks[i].Cells
			}
		}
		if err := w.table(f, st, name, report.BlockHeader(w.layout, b), cells); err != nil {
			return errors.NewSheetError(path, name, "", err)
		}
	}

	if err := w.legend(f, st); err != nil {
		return errors.NewSheetError(path, constants.LegendSheet, "", err)
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return errors.WrapIO("save", path, err)
	}

	logging.FromContext(ctx).Debug().
		Str("path", path).
		Int("rows", len(rows)).
		Int("sheets", len(f.GetSheetList())).
		Msg("Report written")
	return nil
}

// table writes a header and rows of cells, styles every cell and sizes
// the columns.
func (w *Writer) table(f *excelize.File, st *styles, sheet string, header []string, rows [][]report.Cell) error {
	widths := make([]int, len(header))

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
		widths[i] = utf8.RuneCountInString(h)
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return err
	}
	if err := styleRange(f, st, sheet, 1, 1, len(header), headerStyle()); err != nil {
		return err
	}

	for r, cells := range rows {
		rowNum := r + 2
		values := make([]any, len(cells))
		for i, c := range cells {
			values[i] = cellValue(c)
		}
		if err := f.SetSheetRow(sheet, cellName(1, rowNum), &values); err != nil {
			return err
		}

		kind, comment := layout.Kind(""), 0
		for i, c := range cells {
			var k styleKey
			switch c.Kind {
			case report.CellSeparator:
				k = separatorStyle()
				kind, comment = w.blockKind(c.Column), 0
			case report.CellComment:
				comment++
				k = commentStyle(kind == layout.KindIdentity && comment == pairCommentColumn)
			default:
				k = valueStyle(c.Source, c.Outcome, w.paired(cells, c))
			}
			if err := styleRange(f, st, sheet, rowNum, i+1, i+1, k); err != nil {
				return err
			}
			if i < len(widths) {
				widths[i] = max(widths[i], displayWidth(c))
			}
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, ColumnWidth(width)); err != nil {
			return err
		}
	}
	return nil
}

// legend writes the color and border legend sheet.
func (w *Writer) legend(f *excelize.File, st *styles) error {
	sheet := constants.LegendSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	if err := f.SetCellValue(sheet, "A1", "Color / Border Legend"); err != nil {
		return err
	}
	if err := styleRange(f, st, sheet, 1, 1, 1, styleKey{bold: true, fontSize: 14}); err != nil {
		return err
	}

	a, b := w.layout.A.Name, w.layout.B.Name
	entries := []struct {
		label, desc string
		style       styleKey
	}{
		{a + " (Green)", "All " + a + " columns", styleKey{fill: colorSourceA}},
		{b + " (Blue)", "All " + b + " columns", styleKey{fill: colorSourceB}},
		{"Missing (Red)", "Cell is missing data on one side, or on both", styleKey{fill: colorMissing}},
		{"Match (Purple border)", "Both sides present and same => MATCH", styleKey{border: colorMatch}},
		{"Mismatch (Orange border)", "Both sides present but different, or one side missing => GAP", styleKey{border: colorGap}},
		{"Pair comment (Yellow)", "Row-level detail of the aligned pair", styleKey{fill: colorPair}},
		{"Dark Gray Column", "Block separator: " + strings.Join(w.blockNames(), " / "), styleKey{fill: colorSeparator, fontColor: colorWhite}},
	}

	for i, e := range entries {
		row := i + 3
		values := []any{e.label, e.desc, "Sample"}
		if err := f.SetSheetRow(sheet, cellName(1, row), &values); err != nil {
			return err
		}
		sample := e.style
		sample.bold = true
		if err := styleRange(f, st, sheet, row, 3, 3, sample); err != nil {
			return err
		}
	}

	for col, width := range map[string]float64{"A": 28, "B": 60, "C": 12} {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

// paired reports whether the row also holds the other source's column for
// the field of a value cell.
func (w *Writer) paired(cells []report.Cell, c report.Cell) bool {
	other := w.layout.Column(c.Source.Other(), c.Field)
	for _, o := range cells {
		if o.Kind == report.CellValue && o.Column == other {
			return true
		}
	}
	return false
}

func (w *Writer) blockKind(name string) layout.Kind {
	if b, ok := w.layout.Block(name); ok {
		return b.Kind
	}
	return ""
}

func (w *Writer) blockNames() []string {
	names := make([]string, len(w.layout.Blocks))
	for i, b := range w.layout.Blocks {
		names[i] = b.Name
	}
	return names
}

// ColumnWidth bounds a content length to a column width.
func ColumnWidth(length int) float64 {
	return float64(min(constants.MaxColumnWidth, max(constants.MinColumnWidth, length+constants.ColumnPadding)))
}

// cellValue returns the content written for a cell. Dates are written as
// text so the cell style does not hide their number format.
func cellValue(c report.Cell) any {
	if c.Kind == report.CellValue && c.Value.Kind() == record.KindDate {
		return c.Value.String()
	}
	return c.Interface()
}

func displayWidth(c report.Cell) int {
	switch c.Kind {
	case report.CellValue:
		return utf8.RuneCountInString(c.Value.String())
	case report.CellComment:
		return utf8.RuneCountInString(c.Text)
	default:
		return 0
	}
}

func styleRange(f *excelize.File, st *styles, sheet string, row, fromCol, toCol int, k styleKey) error {
	id, err := st.id(k)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cellName(fromCol, row), cellName(toCol, row), id)
}

// cellName converts 1-based coordinates to a cell reference. Coordinates
// are always positive here, so the error is impossible.
func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// sheetName makes a block name usable as a sheet name.
func sheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, name)
	if utf8.RuneCountInString(name) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}
	return name
}
