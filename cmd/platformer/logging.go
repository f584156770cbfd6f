package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

// newLogger creates a logger writing to w with the standard prefix.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "platformer",
		Level:           level,
	})
}

// openFileLogger logs to ~/.platformer/platformer.log, since the terminal
// belongs to the game while it runs. It falls back to discarding output.
func openFileLogger() (*log.Logger, func()) {
	base := config.BaseDir()
	if base == "" {
		return newLogger(io.Discard, log.InfoLevel), func() {}
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return newLogger(io.Discard, log.InfoLevel), func() {}
	}
	f, err := os.OpenFile(filepath.Join(base, "platformer.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return newLogger(io.Discard, log.InfoLevel), func() {}
	}
	return newLogger(f, log.DebugLevel), func() { f.Close() }
}
