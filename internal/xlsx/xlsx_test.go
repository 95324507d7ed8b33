package xlsx_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/sheetdiff/internal/xlsx"
	"github.com/agentstation/sheetdiff/pkg/errors"
	"github.com/agentstation/sheetdiff/pkg/layout"
	"github.com/agentstation/sheetdiff/pkg/reconcile"
	"github.com/agentstation/sheetdiff/pkg/record"
)

// workbook writes a workbook with the given sheets and returns its path.
func workbook(t *testing.T, sheets map[string][][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			r := row
			require.NoError(t, f.SetSheetRow(name, cell, &r))
		}
	}

	path := filepath.Join(t.TempDir(), "input.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadSheet(t *testing.T) {
	path := workbook(t, map[string][][]any{
		"Coco Coco": {
			{" Noel ", "Daytona", "Pizza"},
			{"0001_A", "open", "x"},
			{nil, nil, nil},
			{"0002", "", "y"},
		},
		"Empty": {},
	})

	r, err := xlsx.Open(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	assert.Contains(t, r.Sheets(), "Coco Coco")

	sheet, err := r.ReadSheet(context.Background(), "Coco Coco", "Noel")
	require.NoError(t, err)
	assert.Equal(t, []string{"Noel", "Daytona", "Pizza"}, sheet.Header)
	require.Len(t, sheet.Records, 2)
	assert.Equal(t, 1, sheet.BlankRows)

	first := sheet.Records[0]
	assert.Equal(t, "0001_A", first.Value("Noel").String())
	assert.Equal(t, record.KindString, first.Value("Noel").Kind())

	second := sheet.Records[1]
	assert.True(t, second.Value("Daytona").IsNull())
	assert.Equal(t, "y", second.Value("Pizza").String())
}

func TestReadSheetErrors(t *testing.T) {
	path := workbook(t, map[string][][]any{
		"Data":  {{"Noel"}, {"A"}},
		"Blank": {},
	})

	r, err := xlsx.Open(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	t.Run("missing sheet", func(t *testing.T) {
		_, err := r.ReadSheet(context.Background(), "Nope")
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
		var sheetErr *errors.SheetError
		assert.ErrorAs(t, err, &sheetErr)
		var notFound *errors.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "sheet", notFound.Resource)
		assert.Equal(t, "Nope", notFound.ID)
	})

	t.Run("missing column", func(t *testing.T) {
		_, err := r.ReadSheet(context.Background(), "Data", "Noel", "Daytona")
		require.Error(t, err)
		assert.True(t, errors.IsMissingColumn(err))
		assert.Contains(t, err.Error(), "Daytona")
	})

	t.Run("empty sheet", func(t *testing.T) {
		_, err := r.ReadSheet(context.Background(), "Blank")
		assert.ErrorIs(t, err, errors.ErrEmptySheet)
	})
}

func TestOpenMissingFile(t *testing.T) {
	_, err := xlsx.Open(filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestWriteReport(t *testing.T) {
	l := layout.Default()
	rec, err := reconcile.New(reconcile.WithReferenceTime(utc.New(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, err)

	names := []string{"Noel", "Pizza", "Right"}
	result, err := rec.Reconcile(context.Background(),
		[]record.Record{
			record.FromMap(names, map[string]any{"Noel": "K", "Pizza": "a"}),
			record.FromMap(names, map[string]any{"Noel": "M", "Pizza": "same"}),
		},
		[]record.Record{
			record.FromMap(names, map[string]any{"Noel": "K"}),
			record.FromMap(names, map[string]any{"Noel": "M", "Pizza": "same", "Right": "r"}),
		},
	)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, xlsx.NewWriter(l).Write(context.Background(), path, result.Rows))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Comparison", "BLOC 1", "BLOC 2", "BLOC 3", "Legend"}, f.GetSheetList())

	rows, err := f.GetRows("Comparison")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "BLOC 1", rows[0][0])
	assert.Equal(t, "Table1_Noel", rows[0][1])
	assert.Equal(t, "K", rows[1][1])

	b2, err := f.GetRows("BLOC 2")
	require.NoError(t, err)
	require.Len(t, b2, 3)
	header := b2[0]
	assert.Equal(t, "Comment3_B2", header[len(header)-1])
	assert.Equal(t, "Diff columns: Pizza [T1 present, T2 missing]", b2[1][len(b2[1])-1])
	assert.Equal(t, "No differences", b2[2][len(b2[2])-1])

	// Pizza is missing in Table2 for key K: red fill on the Table2 cell.
	col := -1
	for i, h := range header {
		if h == "Table2_Pizza" {
			col = i + 1
		}
	}
	require.Positive(t, col)
	cell, err := excelize.CoordinatesToCellName(col, 2)
	require.NoError(t, err)
	styleID, err := f.GetCellStyle("BLOC 2", cell)
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotEmpty(t, style.Fill.Color)
	assert.True(t, strings.HasSuffix(strings.ToUpper(style.Fill.Color[0]), "FFC7CE"), style.Fill.Color[0])
	require.NotEmpty(t, style.Border)
	assert.True(t, strings.HasSuffix(strings.ToUpper(style.Border[0].Color), "FFA500"), style.Border[0].Color)

	legend, err := f.GetRows("Legend")
	require.NoError(t, err)
	assert.Equal(t, "Color / Border Legend", legend[0][0])
	assert.Equal(t, "Table1 (Green)", legend[2][0])
}

func TestColumnWidth(t *testing.T) {
	assert.Equal(t, 10.0, xlsx.ColumnWidth(0))
	assert.Equal(t, 12.0, xlsx.ColumnWidth(10))
	assert.Equal(t, 50.0, xlsx.ColumnWidth(200))
}
