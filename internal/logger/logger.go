package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/Adrixx117/Investments/internal/config"

	"github.com/charmbracelet/log"
)

// New builds the application logger from cfg, writing to stderr.
func New(cfg config.LogConfig) *log.Logger {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, cfg config.LogConfig) *log.Logger {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	invalidLevel := err != nil
	if invalidLevel {
		level = log.InfoLevel
	}

	var formatter log.Formatter
	switch strings.ToLower(cfg.Format) {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		formatter = log.TextFormatter
	}

	l := log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	if invalidLevel {
		l.Warn("invalid log level, defaulting to info", "configured", cfg.Level)
	}
	return l
}
