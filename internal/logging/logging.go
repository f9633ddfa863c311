// Package logging wires log/slog to a file-backed handler. The TUI owns
// stdout, so nothing may ever log there.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/log"
)

// Setup replaces the default slog logger with a charmbracelet/log handler
// writing to path (or the user cache directory when path is empty) and
// returns a function that flushes and closes the log file.
func Setup(path string, debugLevel bool) (func(), error) {
	if path == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolving log location: %w", err)
		}
		dir := filepath.Join(cacheDir, "jiratui")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		path = filepath.Join(dir, "jiratui.log")
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	level := log.InfoLevel
	if debugLevel {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(file, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
	slog.SetDefault(slog.New(handler))

	return func() { file.Close() }, nil
}

// RecoverPanic logs a panic with its stack trace and writes a crash file
// next to the working directory before running cleanup.
func RecoverPanic(name string, cleanup func()) {
	if r := recover(); r != nil {
		slog.Error("panic", "in", name, "value", r)

		timestamp := time.Now().Format("20060102-150405")
		filename := fmt.Sprintf("jiratui-panic-%s-%s.log", name, timestamp)
		if file, err := os.Create(filename); err == nil {
			fmt.Fprintf(file, "panic in %s: %v\n\n%s\n", name, r, debug.Stack())
			file.Close()
			slog.Info("panic details written", "path", filename)
		}

		if cleanup != nil {
			cleanup()
		}
	}
}
