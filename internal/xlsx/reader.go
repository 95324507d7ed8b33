// Package xlsx reads source sheets from a workbook into records and writes
// reconciliation rows back as a styled workbook.
package xlsx

import (
	"context"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/agentstation/sheetdiff/pkg/errors"
	"github.com/agentstation/sheetdiff/pkg/logging"
	"github.com/agentstation/sheetdiff/pkg/record"
)

// Sheet is one source sheet read into records.
type Sheet struct {
	Name    string
	Header  []string
	Records []record.Record

	// BlankRows counts rows with no value in any column. They are skipped.
	BlankRows int
}

// Reader reads sheets from one workbook.
type Reader struct {
	path string
	file *excelize.File
}

// Open opens a workbook for reading.
func Open(path string) (*Reader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	return &Reader{path: path, file: f}, nil
}

// Close releases the workbook.
func (r *Reader) Close() error {
	return r.file.Close()
}

// Sheets returns the sheet names in workbook order.
func (r *Reader) Sheets() []string {
	return r.file.GetSheetList()
}

// ReadSheet reads a sheet. The first row is the header; header names are
// trimmed and NFC-normalized. Cells keep their displayed text, so leading
// zeros and formatted dates survive. Blank cells become null values.
// Every name in required must appear in the header.
func (r *Reader) ReadSheet(ctx context.Context, name string, required ...string) (*Sheet, error) {
	if !r.hasSheet(name) {
		return nil, errors.NewSheetError(r.path, name, "sheet not found", errors.NewNotFoundError("sheet", name))
	}

	rows, err := r.file.GetRows(name)
	if err != nil {
		return nil, errors.NewSheetError(r.path, name, "", err)
	}
	if len(rows) == 0 {
		return nil, errors.NewSheetError(r.path, name, "sheet has no header row", errors.ErrEmptySheet)
	}

	sheet := &Sheet{Name: name, Header: normalizeHeader(rows[0])}

	for _, col := range required {
		if !slices.Contains(sheet.Header, col) {
			return nil, errors.NewMissingColumnError(r.path, name, col)
		}
	}

	for _, row := range rows[1:] {
		values, blank := rowValues(row, len(sheet.Header))
		if blank {
			sheet.BlankRows++
			continue
		}
		sheet.Records = append(sheet.Records, record.FromRow(sheet.Header, values))
	}

	logging.FromContext(ctx).Debug().
		Str("path", r.path).
		Str("sheet", name).
		Int("columns", len(sheet.Header)).
		Int("records", len(sheet.Records)).
		Int("blank_rows", sheet.BlankRows).
		Msg("Sheet read")

	return sheet, nil
}

func (r *Reader) hasSheet(name string) bool {
	return slices.Contains(r.file.GetSheetList(), name)
}

// normalizeHeader trims and NFC-normalizes header names.
func normalizeHeader(cells []string) []string {
	header := make([]string, len(cells))
	for i, c := range cells {
		header[i] = norm.NFC.String(strings.TrimSpace(c))
	}
	return header
}

// rowValues converts cell text to values, padding to width. Cells beyond
// the header are dropped.
func rowValues(row []string, width int) ([]record.Value, bool) {
	values := make([]record.Value, width)
	blank := true
	for i := 0; i < width; i++ {
		if i >= len(row) || row[i] == "" {
			values[i] = record.Null()
			continue
		}
		values[i] = record.String(row[i])
		blank = false
	}
	return values, blank
}
