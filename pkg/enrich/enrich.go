// Package enrich derives the keys and activity state of each source record.
// Records are never modified: every Entry carries a derived copy.
package enrich

import (
	"github.com/agentstation/sheetdiff/pkg/keys"
	"github.com/agentstation/sheetdiff/pkg/layout"
	"github.com/agentstation/sheetdiff/pkg/record"
	"github.com/agentstation/sheetdiff/pkg/status"
)

// Entry is a record annotated with its composite key and activity state.
type Entry struct {
	Source record.Source
	// Index is the zero-based position of the record in its source.
	Index int
	// Raw is the identifier value as read.
	Raw      record.Value
	Key      keys.Key
	Activity status.State
	// Record is the source record with the status column set.
	Record record.Record
}

// Enricher applies the key normalizer and the status classifier using the
// field names of a layout.
type Enricher struct {
	identity     string
	separator    string
	statusText   string
	statusDate   string
	statusColumn string
	classifier   status.Classifier
}

// New returns an enricher for the layout.
func New(l *layout.Layout, c status.Classifier) *Enricher {
	return &Enricher{
		identity:     l.Identity,
		separator:    l.Separator,
		statusText:   l.StatusText,
		statusDate:   l.StatusDate,
		statusColumn: l.StatusColumn,
		classifier:   c,
	}
}

// Entry enriches a single record.
func (e *Enricher) Entry(src record.Source, index int, r record.Record) Entry {
	raw := r.Value(e.identity)
	state := e.classifier.Classify(r.Value(e.statusText), r.Value(e.statusDate))

	derived := r
	if e.statusColumn != "" {
		derived = r.With(e.statusColumn, record.String(state.String()))
	}

	return Entry{
		Source:   src,
		Index:    index,
		Raw:      raw,
		Key:      keys.Split(raw, e.separator),
		Activity: state,
		Record:   derived,
	}
}

// Enrich enriches records in input order.
func (e *Enricher) Enrich(src record.Source, records []record.Record) []Entry {
	out := make([]Entry, len(records))
	for i, r := range records {
		out[i] = e.Entry(src, i, r)
	}
	return out
}
