package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/acgen/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.DebugLevel))

	logging.Default().Info().Msg("info message")
	log.Warn().Msg("warning message")

	output := buf.String()
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warning message")
}

func TestNewLoggerFromConfig(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	t.Run("file output in json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "acgen.log")
		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:  "debug",
			Format: "json",
			Output: path,
		})
		logger.Info().Str("shell", "bash").Msg("written")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"shell":"bash"`)
		assert.Contains(t, string(content), `"level":"info"`)
	})

	t.Run("level filters lower events", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := logging.NewLoggerFromConfig(&logging.Config{Level: "error", Format: "json", Output: "discard"})
		logger = logger.Output(buf)

		logger.Info().Msg("info")
		logger.Error().Msg("error")

		assert.NotContains(t, buf.String(), `"level":"info"`)
		assert.Contains(t, buf.String(), `"level":"error"`)
	})

	t.Run("default fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fields.log")
		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:  "info",
			Format: "json",
			Output: path,
			Fields: map[string]string{"bin": "mycli", "operation": "create"},
		})
		logger.Info().Msg("hello")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"bin":"mycli","operation":"create"`)
	})

	t.Run("unknown level means info", func(t *testing.T) {
		logger := logging.NewLoggerFromConfig(&logging.Config{Level: "loud", Output: "discard"})
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

		logger = logging.NewLoggerFromConfig(&logging.Config{Level: "WARNING", Output: "discard"})
		assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		assert.NotPanics(t, func() { logging.NewLoggerFromConfig(nil) })
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.False(t, cfg.AddCaller)
}

func TestActivityLogger(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	zerolog.SetGlobalLevel(zerolog.ErrorLevel)

	buf := &bytes.Buffer{}
	logger := logging.NewActivityLogger(buf)
	logger.Log().Str("shell", "zsh").Msg("generated")

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, `"shell":"zsh"`)
	assert.Contains(t, line, `"time":`)
}

func TestContextLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithBin(ctx, "mycli")
	ctx = logging.WithShell(ctx, "fish")
	ctx = logging.WithOperation(ctx, "create")

	logging.FromContext(ctx).Info().Msg("test message")

	tl.AssertContains(t, `"bin":"mycli"`)
	tl.AssertContains(t, `"shell":"fish"`)
	tl.AssertContains(t, `"operation":"create"`)
	tl.AssertContains(t, "test message")
	require.Equal(t, 1, tl.Count())
	entry := tl.Entries()[0]
	assert.Equal(t, "fish", entry["shell"])
	assert.Equal(t, "info", entry["level"])
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is part of the contract
	assert.Same(t, logging.Default(), logging.FromContext(nil))
}
