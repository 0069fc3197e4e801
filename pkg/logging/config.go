package logging

import (
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/acgen/pkg/constants"
)

// Config describes a logger.
type Config struct {
	// Level is trace, debug, info, warn or error. Anything else means info.
	Level string

	// Format is auto, json or console. auto picks console for a terminal.
	Format string

	// Output is stderr, stdout, discard or a file path opened for append.
	Output string

	NoColor   bool
	AddCaller bool

	// Fields are attached to every entry, in key order.
	Fields map[string]string
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() *Config {
	return &Config{
		Level:   "info",
		Format:  "auto",
		Output:  "stderr",
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}

// NewLoggerFromConfig creates a logger and makes its level zerolog's global level.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	ctx := zerolog.New(formatWriter(openOutput(cfg.Output), cfg.Format, cfg.NoColor)).
		Level(level).
		With().
		Timestamp()
	if cfg.AddCaller {
		ctx = ctx.Caller()
	}
	for _, key := range slices.Sorted(maps.Keys(cfg.Fields)) {
		ctx = ctx.Str(key, cfg.Fields[key])
	}
	return ctx.Logger()
}

// openOutput resolves an output name. A file that cannot be opened falls back to stderr.
func openOutput(name string) io.Writer {
	switch strings.ToLower(name) {
	case "", "stderr":
		return os.Stderr
	case "stdout":
		return os.Stdout
	case "discard", "none":
		return io.Discard
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return os.Stderr
	}
	return f
}

func formatWriter(out io.Writer, format string, noColor bool) io.Writer {
	switch strings.ToLower(format) {
	case "console", "pretty":
	case "", "auto":
		if f, ok := out.(*os.File); !ok || !isTerminal(f) {
			return out
		}
	default:
		return out
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: noColor}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "warning":
		return zerolog.WarnLevel
	case "trace", "debug", "info", "warn", "error":
		l, _ := zerolog.ParseLevel(strings.ToLower(level))
		return l
	}
	return zerolog.InfoLevel
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
