// Package logging builds the zerolog loggers used across glowboard.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/glowboard/internal/config"
)

// DebugLogFile is where the TUI writes logs when started with --debug.
const DebugLogFile = "glowboard-debug.log"

// New constructs a zerolog logger based on config settings.
// Defaults to warn level, console format and stderr when fields are empty.
// The returned closer is nil unless the logger writes to a file.
func New(cfg config.LoggingConfig, version string) (*zerolog.Logger, io.Closer, error) {
	level := zerolog.WarnLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level))); err == nil && cfg.Level != "" {
		level = parsed
	}

	output := io.Writer(os.Stderr)
	var closer io.Closer
	isFile := false

	switch strings.ToLower(strings.TrimSpace(cfg.Output)) {
	case "stdout":
		output = os.Stdout
	case "file":
		if cfg.FilePath == "" {
			return nil, nil, fmt.Errorf("logging.output=file requires logging.file_path")
		}
		file, err := openAppend(cfg.FilePath)
		if err != nil {
			return nil, nil, err
		}
		output = file
		closer = file
		isFile = true
	}

	if format := strings.ToLower(strings.TrimSpace(cfg.Format)); format == "" || format == "console" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339, NoColor: isFile}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	base := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("app", "glowboard").
		Str("version", version).
		Logger()

	return &base, closer, nil
}

// NewDebugFile returns a debug-level JSON logger appending to path.
// The TUI owns the terminal, so its logs can only go to a file.
func NewDebugFile(path, version string) (*zerolog.Logger, io.Closer, error) {
	return New(config.LoggingConfig{
		Level:    "debug",
		Format:   "json",
		Output:   "file",
		FilePath: path,
	}, version)
}

// Nop returns a logger that discards everything.
func Nop() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func openAppend(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}
