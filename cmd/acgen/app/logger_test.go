package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{name: "default", config: &Config{}, expected: "info"},
		{name: "verbose sets debug", config: &Config{Verbose: true}, expected: "debug"},
		{name: "quiet sets warn", config: &Config{Quiet: true}, expected: "warn"},
		{name: "quiet wins over verbose", config: &Config{Verbose: true, Quiet: true}, expected: "warn"},
		{name: "log-level overrides verbose", config: &Config{LogLevel: "error", Verbose: true}, expected: "error"},
		{name: "log-level overrides quiet", config: &Config{LogLevel: "trace", Quiet: true}, expected: "trace"},
		{name: "invalid log-level falls back to info", config: &Config{LogLevel: "loud"}, expected: "info"},
		{name: "LOG_LEVEL applies without flags", config: &Config{DefaultLogLevel: "error"}, expected: "error"},
		{name: "verbose overrides LOG_LEVEL", config: &Config{DefaultLogLevel: "error", Verbose: true}, expected: "debug"},
		{name: "invalid LOG_LEVEL falls back to info", config: &Config{DefaultLogLevel: "chatty"}, expected: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, determineLogLevel(tt.config))
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(&Config{LogLevel: "warn", LogOutput: "discard"})
	assert.Equal(t, "warn", logger.GetLevel().String())
}
