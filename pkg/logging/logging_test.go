package logging_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/sheetdiff/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	tl := logging.CaptureLoggingForTest(t)

	logging.Debug().Msg("debug message")
	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")
	logging.Error().Msg("error message")

	tl.AssertContains(t, "info message")
	assert.Equal(t, 4, tl.Count())
}

func TestContextLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithSource(ctx, "B")
	ctx = logging.WithSheet(ctx, "Coco Coco Land")
	ctx = logging.WithKey(ctx, "AB12")
	ctx = logging.WithOperation(ctx, "align")
	ctx = logging.WithError(ctx, errors.New("boom"))
	ctx = logging.WithFields(ctx, map[string]any{"rows": 3, "strict": true})

	logging.Ctx(ctx).Info().Msg("test message")

	tl.AssertContains(t, `"source":"B"`)
	tl.AssertContains(t, `"sheet":"Coco Coco Land"`)
	tl.AssertContains(t, `"key":"AB12"`)
	tl.AssertContains(t, `"operation":"align"`)
	tl.AssertContains(t, `"error":"boom"`)
	tl.AssertContains(t, `"rows":3`)
	tl.AssertContains(t, "test message")
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))

	ctx := logging.WithLogger(context.Background(), nil)
	assert.Same(t, logging.Default(), logging.FromContext(ctx))

	ctx = logging.WithError(context.Background(), nil)
	assert.Same(t, logging.Default(), logging.FromContext(ctx))
}

func TestNewLoggerFromConfig(t *testing.T) {
	original := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		logging.SetDefault(original)
		zerolog.SetGlobalLevel(originalLevel)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg := logging.DefaultConfig()
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "auto", cfg.Format)
		assert.Equal(t, "stderr", cfg.Output)
		assert.False(t, cfg.AddCaller)
	})

	t.Run("file output with fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sheetdiff.log")
		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:  "debug",
			Format: "json",
			Output: path,
			Fields: map[string]any{"run": "nightly"},
		})
		logger.Debug().Msg("written to file")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "written to file")
		assert.Contains(t, string(content), `"run":"nightly"`)
		assert.Contains(t, string(content), `"caller"`)
	})

	t.Run("level filters events", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "warn.log")
		logging.Configure(&logging.Config{Level: "warn", Format: "json", Output: path})

		logging.Info().Msg("hidden")
		logging.Warn().Msg("shown")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(content), "hidden")
		assert.Contains(t, string(content), "shown")
	})

	t.Run("discard output", func(t *testing.T) {
		logger := logging.NewLoggerFromConfig(&logging.Config{Level: "info", Output: "discard"})
		logger.Info().Msg("nowhere")
	})
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SHEETDIFF_LOG_LEVEL", "debug")
	t.Setenv("SHEETDIFF_LOG_FORMAT", "json")
	t.Setenv("SHEETDIFF_LOG_FIELDS", "team=ops, env = prod")

	cfg := logging.ConfigFromEnv()
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.Equal(t, map[string]any{"team": "ops", "env": "prod"}, cfg.Fields)
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	tl.Logger.Info().Msg("message 1")
	tl.Logger.Error().Msg("message 2")

	tl.AssertContains(t, "message 1")
	tl.AssertNotContains(t, "message 3")
	assert.Equal(t, 2, tl.Count())

	tl.Clear()
	assert.Equal(t, 0, tl.Count())
	assert.Empty(t, tl.Lines())
}
