package app

import (
	"io"
	"os"
	"strings"
	"time"

	"joinup/internal/config"

	"github.com/rs/zerolog"
)

// NewLogger builds the root logger: console output in development, JSON
// otherwise.
func NewLogger(cfg config.AppConfig) zerolog.Logger {
	return newLogger(cfg, os.Stdout)
}

func newLogger(cfg config.AppConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.LogLevel)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := w
	if isDevelopment(cfg.Environment) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("app", cfg.AppName).
		Logger()
}

func isDevelopment(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
