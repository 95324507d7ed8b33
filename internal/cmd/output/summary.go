package output

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	md "github.com/nao1215/markdown"

	"github.com/agentstation/sheetdiff/internal/cmd/emoji"
	"github.com/agentstation/sheetdiff/pkg/reconcile"
)

// Summary is the printable outcome of a comparison.
type Summary struct {
	SourceA       string                     `json:"source_a" yaml:"source_a"`
	SourceB       string                     `json:"source_b" yaml:"source_b"`
	Report        string                     `json:"report,omitempty" yaml:"report,omitempty"`
	ReferenceTime string                     `json:"reference_time" yaml:"reference_time"`
	Duration      string                     `json:"duration" yaml:"duration"`
	Stats         reconcile.ResultStatistics `json:"stats" yaml:"stats"`
	Keys          []KeySummary               `json:"keys,omitempty" yaml:"keys,omitempty"`
}

// KeySummary describes one primary key group.
type KeySummary struct {
	Key        string `json:"key" yaml:"key"`
	RecordsA   int    `json:"records_a" yaml:"records_a"`
	RecordsB   int    `json:"records_b" yaml:"records_b"`
	ManyToMany bool   `json:"many_to_many" yaml:"many_to_many"`
	Gaps       int    `json:"gaps" yaml:"gaps"`
}

// NewSummary builds a Summary from a reconciliation result. The report path
// is recorded when the result was written to a workbook.
func NewSummary(result *reconcile.Result, reportPath string) Summary {
	s := Summary{
		SourceA:       result.Layout.A.Name,
		SourceB:       result.Layout.B.Name,
		Report:        reportPath,
		ReferenceTime: result.Metadata.ReferenceTime.Time.Format(time.RFC3339),
		Duration:      result.Metadata.Duration.Round(time.Millisecond).String(),
		Stats:         result.Metadata.Stats,
	}

	gaps := make(map[string]int)
	for _, row := range result.Rows {
		for _, b := range row.Blocks {
			if b.Verdict.Differs() {
				gaps[row.Key]++
			}
		}
	}

	for _, g := range result.Alignment.Groups {
		s.Keys = append(s.Keys, KeySummary{
			Key:        g.Key,
			RecordsA:   len(g.A),
			RecordsB:   len(g.B),
			ManyToMany: g.ManyToMany,
			Gaps:       gaps[g.Key],
		})
	}
	return s
}

// Clean reports whether every scanned block of every row matched.
func (s Summary) Clean() bool {
	for _, b := range s.Stats.Blocks {
		if b.Gap > 0 || b.Unavailable > 0 {
			return false
		}
	}
	return true
}

// BlocksTable returns the verdict counts per block.
func (s Summary) BlocksTable() Data {
	rows := make([][]string, 0, len(s.Stats.Blocks))
	for _, b := range s.Stats.Blocks {
		rows = append(rows, []string{
			b.Name,
			strconv.Itoa(b.Match),
			strconv.Itoa(b.Gap),
			strconv.Itoa(b.Unavailable),
		})
	}
	return Data{
		Headers:         []string{"Block", "Match", "Gap", "Unavailable"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignRight},
	}
}

// RecordsTable returns the record and row counts.
func (s Summary) RecordsTable() Data {
	st := s.Stats
	rows := [][]string{
		{s.SourceA + " records", strconv.Itoa(st.RecordsA)},
		{s.SourceB + " records", strconv.Itoa(st.RecordsB)},
		{s.SourceA + " excluded", strconv.Itoa(st.ExcludedA)},
		{s.SourceB + " excluded", strconv.Itoa(st.ExcludedB)},
		{"Keys", strconv.Itoa(st.Groups)},
		{"Many-to-many keys", strconv.Itoa(st.ManyToManyGroups)},
		{"Rows", strconv.Itoa(st.Rows)},
		{"Missing in " + s.SourceA, strconv.Itoa(st.MissingInA)},
		{"Missing in " + s.SourceB, strconv.Itoa(st.MissingInB)},
	}
	return Data{
		Headers:         []string{"Count", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// KeysTable returns one line per primary key.
func (s Summary) KeysTable() Data {
	rows := make([][]string, 0, len(s.Keys))
	for _, k := range s.Keys {
		m2m := ""
		if k.ManyToMany {
			m2m = emoji.Warning
		}
		rows = append(rows, []string{
			k.Key,
			strconv.Itoa(k.RecordsA),
			strconv.Itoa(k.RecordsB),
			m2m,
			strconv.Itoa(k.Gaps),
		})
	}
	return Data{
		Headers:         []string{"Key", s.SourceA, s.SourceB, "M:N", "Gaps"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignCenter, AlignRight},
	}
}

// Tables returns the tables printed for a format. Wide output adds the
// per-key table.
func (s Summary) Tables(format Format) []Data {
	tables := []Data{s.RecordsTable(), s.BlocksTable()}
	if format == FormatWide {
		tables = append(tables, s.KeysTable())
	}
	return tables
}

// Verdict returns a one-line outcome, colored unless noColor is set.
func (s Summary) Verdict(noColor bool) string {
	var c *color.Color
	var msg string
	if s.Clean() {
		c = color.New(color.FgGreen)
		msg = fmt.Sprintf("%s All %d rows match", emoji.Success, s.Stats.Rows)
	} else {
		c = color.New(color.FgYellow)
		gaps := 0
		for _, b := range s.Stats.Blocks {
			gaps += b.Gap + b.Unavailable
		}
		msg = fmt.Sprintf("%s %d block verdicts differ across %d rows", emoji.Warning, gaps, s.Stats.Rows)
	}
	if noColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c.Sprint(msg)
}

func (s Summary) markdown(doc *md.Markdown) {
	doc.H1("Reconciliation Summary")
	doc.PlainTextf("%s vs %s, reference time %s.", md.Bold(s.SourceA), md.Bold(s.SourceB), s.ReferenceTime).LF()
	if s.Report != "" {
		doc.PlainTextf("Report written to %s.", md.Code(s.Report)).LF()
	}

	for _, d := range []Data{
		withTitle(s.RecordsTable(), "Records"),
		withTitle(s.BlocksTable(), "Blocks"),
		withTitle(s.KeysTable(), "Keys"),
	} {
		markdownTable(doc, d)
	}
}

func withTitle(d Data, title string) Data {
	d.Title = title
	return d
}

// Write prints a summary in the requested format.
func Write(w io.Writer, s Summary, format Format) error {
	switch format {
	case FormatJSON, FormatYAML, FormatMarkdown:
		return NewFormatter(format).Format(w, s)
	default:
		return NewFormatter(FormatTable).Format(w, s.Tables(format))
	}
}
