package enrich_test

import (
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/sheetdiff/pkg/enrich"
	"github.com/agentstation/sheetdiff/pkg/layout"
	"github.com/agentstation/sheetdiff/pkg/record"
	"github.com/agentstation/sheetdiff/pkg/status"
)

var now = utc.New(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))

func TestEnrich(t *testing.T) {
	e := enrich.New(layout.Default(), status.NewClassifier(now))
	names := []string{"Noel", "Daytona", "Elastic Daytona"}

	records := []record.Record{
		record.FromMap(names, map[string]any{"Noel": " AB12_0001 ", "Daytona": "Open"}),
		record.FromMap(names, map[string]any{"Noel": "CD34", "Daytona": "Closed"}),
		record.FromMap(names, map[string]any{"Noel": nil, "Elastic Daytona": "2024-01-01"}),
	}

	entries := e.Enrich(record.SourceB, records)
	require.Len(t, entries, 3)

	first := entries[0]
	assert.Equal(t, record.SourceB, first.Source)
	assert.Equal(t, 0, first.Index)
	assert.Equal(t, "AB12", first.Key.Primary)
	assert.Equal(t, "0001", first.Key.Secondary)
	assert.Equal(t, status.Active, first.Activity)
	assert.Equal(t, "Active", first.Record.Value("Status").String())
	assert.Equal(t, " AB12_0001 ", first.Raw.String())

	assert.Equal(t, status.Inactive, entries[1].Activity)
	assert.False(t, entries[1].Key.HasSecondary)

	assert.False(t, entries[2].Key.Valid)
	assert.Equal(t, status.Inactive, entries[2].Activity)
	assert.Equal(t, 2, entries[2].Index)
}

func TestEnrichDoesNotModifySource(t *testing.T) {
	e := enrich.New(layout.Default(), status.NewClassifier(now))
	r := record.FromMap([]string{"Noel", "Status"}, map[string]any{"Noel": "X", "Status": "stale"})

	entry := e.Entry(record.SourceA, 0, r)

	assert.Equal(t, "stale", r.Value("Status").String())
	assert.Equal(t, "Active", entry.Record.Value("Status").String())
	assert.Equal(t, []string{"Noel", "Status"}, entry.Record.Names())
}

func TestEnrichCustomSeparator(t *testing.T) {
	l := layout.Default()
	l.Separator = "-"
	e := enrich.New(l, status.NewClassifier(now))

	entry := e.Entry(record.SourceA, 0, record.FromMap([]string{"Noel"}, map[string]any{"Noel": "A_B-C"}))
	assert.Equal(t, "A_B", entry.Key.Primary)
	assert.Equal(t, "C", entry.Key.Secondary)
}
