package reconcile

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/sheetdiff/pkg/align"
	"github.com/agentstation/sheetdiff/pkg/differ"
	"github.com/agentstation/sheetdiff/pkg/layout"
	"github.com/agentstation/sheetdiff/pkg/record"
	"github.com/agentstation/sheetdiff/pkg/report"
)

// Result represents the outcome of a reconciliation
type Result struct {
	// Rows holds one row per aligned pair, in key order then pair order
	Rows []report.Row

	// Alignment holds the groups, pairs and excluded records
	Alignment *align.Alignment

	// Layout used to build the rows
	Layout *layout.Layout

	// Metadata about the run
	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the reconciliation process
type ResultMetadata struct {
	// ReferenceTime end dates were compared against
	ReferenceTime utc.Time `json:"reference_time" yaml:"reference_time"`

	StartTime time.Time     `json:"start_time" yaml:"start_time"`
	EndTime   time.Time     `json:"end_time" yaml:"end_time"`
	Duration  time.Duration `json:"duration" yaml:"duration"`

	Stats ResultStatistics `json:"stats" yaml:"stats"`
}

// ResultStatistics contains counts about the reconciliation
type ResultStatistics struct {
	RecordsA int `json:"records_a" yaml:"records_a"`
	RecordsB int `json:"records_b" yaml:"records_b"`

	// Records left out because their identifier was blank
	ExcludedA int `json:"excluded_a" yaml:"excluded_a"`
	ExcludedB int `json:"excluded_b" yaml:"excluded_b"`

	Groups           int `json:"groups" yaml:"groups"`
	ManyToManyGroups int `json:"many_to_many_groups" yaml:"many_to_many_groups"`
	Rows             int `json:"rows" yaml:"rows"`

	// Rows with one side absent
	MissingInA int `json:"missing_in_a" yaml:"missing_in_a"`
	MissingInB int `json:"missing_in_b" yaml:"missing_in_b"`

	Blocks []BlockStatistics `json:"blocks" yaml:"blocks"`
}

// BlockStatistics counts the verdicts of one block across all rows
type BlockStatistics struct {
	Name        string `json:"name" yaml:"name"`
	Unavailable int    `json:"unavailable" yaml:"unavailable"`
	Gap         int    `json:"gap" yaml:"gap"`
	Match       int    `json:"match" yaml:"match"`
}

// Excluded returns the total number of excluded records
func (s ResultStatistics) Excluded() int {
	return s.ExcludedA + s.ExcludedB
}

// HasGaps returns true if any scanned block of any row is not a match
func (r *Result) HasGaps() bool {
	for _, b := range r.Metadata.Stats.Blocks {
		if b.Gap > 0 || b.Unavailable > 0 {
			return true
		}
	}
	return false
}

// Summary returns a human-readable summary of the result
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	msg := fmt.Sprintf("Compared %d %s and %d %s records into %d rows across %d keys",
		s.RecordsA, r.Layout.A.Name, s.RecordsB, r.Layout.B.Name, s.Rows, s.Groups)
	if s.ManyToManyGroups > 0 {
		msg += fmt.Sprintf(", %d many-to-many", s.ManyToManyGroups)
	}
	if s.Excluded() > 0 {
		msg += fmt.Sprintf(", %d excluded without identifier", s.Excluded())
	}
	return msg + "."
}

// Report generates a detailed plain-text report of the reconciliation
func (r *Result) Report() string {
	s := r.Metadata.Stats
	var b strings.Builder

	fmt.Fprintf(&b, `
Reconciliation Report
=====================
Reference time: %s
Duration: %s

Records:
--------
%s: %d (%d excluded)
%s: %d (%d excluded)
Keys: %d
Many-to-many keys: %d
Rows: %d
Missing in %s: %d
Missing in %s: %d

`, r.Metadata.ReferenceTime.Time.Format(time.RFC3339), r.Metadata.Duration,
		r.Layout.A.Name, s.RecordsA, s.ExcludedA,
		r.Layout.B.Name, s.RecordsB, s.ExcludedB,
		s.Groups, s.ManyToManyGroups, s.Rows,
		r.Layout.A.Name, s.MissingInA,
		r.Layout.B.Name, s.MissingInB)

	if len(s.Blocks) > 0 {
		b.WriteString("Blocks:\n-------\n")
		for _, blk := range s.Blocks {
			fmt.Fprintf(&b, "%s: %d match, %d gap, %d unavailable\n", blk.Name, blk.Match, blk.Gap, blk.Unavailable)
		}
		b.WriteString("\n")
	}

	if len(r.Alignment.Excluded) > 0 {
		fmt.Fprintf(&b, "Excluded (%d):\n--------------\n", len(r.Alignment.Excluded))
		for _, ex := range r.Alignment.Excluded {
			fmt.Fprintf(&b, "%s row %d\n", r.Layout.Label(ex.Source).Name, ex.Index+1)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// ResultBuilder helps construct Result objects
type ResultBuilder struct {
	result *Result
}

// NewResultBuilder creates a new ResultBuilder
func NewResultBuilder(l *layout.Layout, now utc.Time) *ResultBuilder {
	return &ResultBuilder{
		result: &Result{
			Layout:    l,
			Alignment: &align.Alignment{},
			Metadata: ResultMetadata{
				ReferenceTime: now,
				StartTime:     time.Now(),
			},
		},
	}
}

// WithRecordCounts sets the number of input records per source
func (b *ResultBuilder) WithRecordCounts(a, bCount int) *ResultBuilder {
	b.result.Metadata.Stats.RecordsA = a
	b.result.Metadata.Stats.RecordsB = bCount
	return b
}

// WithAlignment sets the alignment
func (b *ResultBuilder) WithAlignment(a *align.Alignment) *ResultBuilder {
	b.result.Alignment = a
	return b
}

// WithRows sets the assembled rows
func (b *ResultBuilder) WithRows(rows []report.Row) *ResultBuilder {
	b.result.Rows = rows
	return b
}

// Build computes the statistics and returns the Result
func (b *ResultBuilder) Build() *Result {
	r := b.result
	s := &r.Metadata.Stats

	s.ExcludedA = r.Alignment.ExcludedFrom(record.SourceA)
	s.ExcludedB = r.Alignment.ExcludedFrom(record.SourceB)
	s.Groups = len(r.Alignment.Groups)
	s.ManyToManyGroups = r.Alignment.ManyToManyGroups()
	s.Rows = len(r.Rows)

	for _, p := range r.Alignment.Pairs {
		switch {
		case p.A == nil:
			s.MissingInA++
		case p.B == nil:
			s.MissingInB++
		}
	}

	// display-only blocks carry no verdict and get no statistics
	s.Blocks = make([]BlockStatistics, 0, len(r.Layout.Blocks))
	index := make(map[string]int, len(r.Layout.Blocks))
	for _, blk := range r.Layout.Blocks {
		if blk.Kind == layout.KindSecondary {
			continue
		}
		index[blk.Name] = len(s.Blocks)
		s.Blocks = append(s.Blocks, BlockStatistics{Name: blk.Name})
	}
	for _, row := range r.Rows {
		for _, br := range row.Blocks {
			i, ok := index[br.Block.Name]
			if !ok || !br.Verdict.Scanned() {
				continue
			}
			switch br.Verdict {
			case differ.Gap:
				s.Blocks[i].Gap++
			case differ.Same:
				s.Blocks[i].Match++
			default:
				s.Blocks[i].Unavailable++
			}
		}
	}

	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	return r
}
