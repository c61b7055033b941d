package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/iconidentify/vidgrab/internal/config"
)

// newLogger builds the process logger. "json" is meant for log shippers,
// "text" for a human at a terminal.
func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.Level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	switch cfg.Format {
	case "text":
		handler := charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.Level(level),
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "vidgrab",
		})
		return slog.New(handler), nil
	default:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})), nil
	}
}
