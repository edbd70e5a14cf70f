package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go-tawk/config"
)

// Logger is a thin wrapper over slog with printf-style helpers.
// The zero value logs through slog.Default().
type Logger struct {
	l *slog.Logger
}

func NewLogger(cfg *config.Config) (*Logger, error) {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg *config.Config, w io.Writer) (*Logger, error) {
	if cfg == nil {
		return &Logger{l: slog.New(slog.NewTextHandler(w, nil))}, nil
	}

	level, err := parseLevel(cfg.LoggerMode.Level)
	if err != nil {
		return nil, err
	}

	var handler slog.Handler
	if cfg.IsDevelopment() {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return &Logger{l: slog.New(handler)}, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("logger: unknown level %q", s)
	}
}

func (lg Logger) base() *slog.Logger {
	if lg.l == nil {
		return slog.Default()
	}
	return lg.l
}

// With returns a child logger carrying the given attributes.
func (lg Logger) With(args ...any) *Logger {
	return &Logger{l: lg.base().With(args...)}
}

// Slog exposes the underlying logger for libraries that accept one.
func (lg Logger) Slog() *slog.Logger { return lg.base() }

func (lg Logger) Debug(msg string, args ...any) { lg.base().Debug(msg, args...) }
func (lg Logger) Info(msg string, args ...any)  { lg.base().Info(msg, args...) }
func (lg Logger) Warn(msg string, args ...any)  { lg.base().Warn(msg, args...) }
func (lg Logger) Error(msg string, args ...any) { lg.base().Error(msg, args...) }

func (lg Logger) Debugf(format string, args ...any) {
	lg.base().Debug(fmt.Sprintf(format, args...))
}

func (lg Logger) Infof(format string, args ...any) {
	lg.base().Info(fmt.Sprintf(format, args...))
}

func (lg Logger) Warnf(format string, args ...any) {
	lg.base().Warn(fmt.Sprintf(format, args...))
}

func (lg Logger) Errorf(format string, args ...any) {
	lg.base().Error(fmt.Sprintf(format, args...))
}

// Enabled reports whether debug output would be written; callers use it to
// skip building expensive log arguments.
func (lg Logger) Enabled(level slog.Level) bool {
	return lg.base().Enabled(context.Background(), level)
}
