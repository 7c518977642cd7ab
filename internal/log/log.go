// Package log provides category-tagged structured logging for zerodrill.
//
// The TUI owns stdout and stderr, so log output goes to a file (or any
// writer in tests). Before Init is called all log calls are discarded,
// which keeps library packages safe to use from tests without setup.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Category tags every record with the subsystem that produced it.
type Category string

const (
	CatApp    Category = "app"
	CatConfig Category = "config"
	CatDrill  Category = "drill"
	CatSpeech Category = "speech"
	CatUI     Category = "ui"
)

var (
	mu     sync.RWMutex
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	file   *os.File
)

// Init opens (or creates) the log file at path and routes all subsequent
// log calls to it at the given level. The parent directory is created if
// missing. Calling Init again closes the previous file.
func Init(path string, level slog.Leveler) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		file.Close()
	}
	file = f
	logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return nil
}

// InitWriter routes log output to w. Used by tests and the headless runner.
func InitWriter(w io.Writer, level slog.Leveler) {
	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Close flushes and closes the log file if one is open.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return err
}

// ParseLevel maps a config string to a slog level. Unknown values fall
// back to info so a typo in the config never silences errors.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs at debug level under the given category.
func Debug(cat Category, msg string, args ...any) {
	current().Debug(msg, append([]any{"cat", string(cat)}, args...)...)
}

// Info logs at info level under the given category.
func Info(cat Category, msg string, args ...any) {
	current().Info(msg, append([]any{"cat", string(cat)}, args...)...)
}

// Warn logs at warn level under the given category.
func Warn(cat Category, msg string, args ...any) {
	current().Warn(msg, append([]any{"cat", string(cat)}, args...)...)
}

// Error logs at error level under the given category.
func Error(cat Category, msg string, args ...any) {
	current().Error(msg, append([]any{"cat", string(cat)}, args...)...)
}

// ErrorErr logs err at error level with the standard "error" key.
func ErrorErr(cat Category, msg string, err error, args ...any) {
	kv := append([]any{"cat", string(cat), "error", err}, args...)
	current().Error(msg, kv...)
}
