// Package logging sets up the application log file.
package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

// DefaultDir returns ~/.arbor/logs
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".arbor", "logs"), nil
}

// Init opens ~/.arbor/logs/arbor.log and installs a text logger at level as the
// slog default. The returned closer releases the file.
func Init(level slog.Level) (*slog.Logger, io.Closer, error) {
	logDir, err := DefaultDir()
	if err != nil {
		return nil, nil, err
	}
	return InitDir(logDir, level)
}

// InitDir is Init with an explicit directory
func InitDir(logDir string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, nil, err
	}

	file, err := os.OpenFile(filepath.Join(logDir, "arbor.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	logger := New(file, level)
	slog.SetDefault(logger)

	// Route the standard log package to the same file
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags)

	return logger, file, nil
}

// New returns a text logger writing to w
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
