package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the output encoding of a logger.
type Format string

const (
	// FormatJSON emits one JSON object per record. Default in services.
	FormatJSON Format = "json"

	// FormatText emits logfmt-style key=value records.
	FormatText Format = "text"

	// FormatConsole is a human-oriented alias of FormatText, kept so configs
	// written for interactive use read naturally.
	FormatConsole Format = "console"
)

// Config controls logger construction. The zero value produces an info-level
// text logger on stderr.
type Config struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string

	// Format is one of json, text, console. Empty means text.
	Format string

	// AddSource includes the file:line of the logging call in each record.
	AddSource bool

	// Output receives the encoded records. Nil means os.Stderr.
	Output io.Writer
}

// New builds a logger from cfg. Unknown levels and formats are configuration
// errors, not silent fallbacks.
func New(cfg Config) (*slog.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	format, err := parseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler), nil
}

// Component returns a child logger tagged with a component name. A nil
// logger falls back to the process default so components stay usable in
// tests that never build one.
func Component(logger *slog.Logger, name string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("component", name)
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q (valid: debug, info, warn, error)", s)
	}
}

func parseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "console":
		return FormatConsole, nil
	default:
		return "", fmt.Errorf("unknown log format %q (valid: json, text, console)", s)
	}
}
