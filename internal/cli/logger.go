package cli

import (
	"io"

	"github.com/rs/zerolog"
)

// NewLogger builds the logger passed to every component. format is "json"
// or "text"; anything else falls back to defaultFormat.
func NewLogger(cfg LoggingConfig, defaultFormat string, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	format := cfg.Format
	if format != "json" && format != "text" {
		format = defaultFormat
	}

	if format == "text" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
