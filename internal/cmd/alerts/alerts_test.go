package alerts_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/sheetdiff/internal/cmd/alerts"
	"github.com/agentstation/sheetdiff/internal/cmd/output"
)

func TestAlertString(t *testing.T) {
	a := alerts.NewError("compare failed").WithError(errors.New("sheet missing"))
	assert.Equal(t, "✗ compare failed: sheet missing", a.String())
	assert.Equal(t, "✓ done", alerts.NewSuccess("done").String())
}

func TestFormatWriterPlain(t *testing.T) {
	var buf bytes.Buffer
	w := alerts.NewFormatWriter(&buf, output.FormatTable)

	alert := alerts.NewWarning("2 records excluded").WithDetails("Table1 row 4", "Table2 row 7")
	require.NoError(t, w.WriteAlert(alert))

	assert.Equal(t, "! 2 records excluded\n   Table1 row 4\n   Table2 row 7\n", buf.String())
}

func TestFormatWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	w := alerts.NewFormatWriter(&buf, output.FormatJSON)
	require.NoError(t, w.WriteAlert(alerts.NewInfo("report written")))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "info", decoded["level"])
	assert.Equal(t, "report written", decoded["message"])
	assert.NotContains(t, decoded, "timestamp")
}

func TestFormatWriterYAML(t *testing.T) {
	var buf bytes.Buffer
	w := alerts.NewFormatWriter(&buf, output.FormatYAML)
	require.NoError(t, w.WriteAlert(alerts.NewSuccess("ok")))
	assert.Contains(t, buf.String(), "level: success")
}

func TestDiscardWriter(t *testing.T) {
	assert.NoError(t, alerts.DiscardWriter.WriteAlert(alerts.NewError("ignored")))
}
