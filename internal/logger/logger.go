// Package logger provides the process-wide structured logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Global logger instance
var defaultLogger *slog.Logger

// LogLevel represents the logging level
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Config holds logger configuration
type Config struct {
	Level     LogLevel
	Format    string // "text" or "json"
	Output    io.Writer
	AddSource bool
}

// DefaultConfig returns the default logger configuration
func DefaultConfig() Config {
	return Config{
		Level:  LevelWarn,
		Format: "text",
		Output: os.Stderr,
	}
}

// ParseLevel maps a level name from config or flags onto a LogLevel.
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// Init initializes the global logger with the given configuration
func Init(cfg Config) error {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     toSlogLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	case "", "text":
		handler = slog.NewTextHandler(output, opts)
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)

	return nil
}

func toSlogLevel(level LogLevel) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Debug(msg, args...)
	}
}

// Info logs an info message
func Info(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Info(msg, args...)
	}
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Warn(msg, args...)
	}
}

// Error logs an error message
func Error(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Error(msg, args...)
	}
}

// With returns a new logger with the given attributes
func With(args ...any) *slog.Logger {
	if defaultLogger != nil {
		return defaultLogger.With(args...)
	}
	return slog.Default().With(args...)
}

// LogPhase logs the start of an expansion phase
func LogPhase(phase string, file string) {
	Debug("Starting phase", "phase", phase, "file", file)
}

// LogExpansion logs the outcome of expanding one class block
func LogExpansion(file string, class string, generated int, skipped int) {
	Info("Expanded class", "file", file, "class", class, "bridges", generated, "skipped", skipped)
}
