// Package slogger provides the structured logger used across glyphgen.
package slogger

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Logger is the logging interface used throughout the module. It is a
// thin structured facade compatible with slog-style key-value pairs.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)

	// With returns a Logger with the key-value pairs added to every entry.
	With(keysAndValues ...any) Logger
}

// Level is the minimum level a logger emits.
type Level slog.Level

const (
	LevelDebug Level = Level(slog.LevelDebug)
	LevelInfo  Level = Level(slog.LevelInfo)
	LevelWarn  Level = Level(slog.LevelWarn)
	LevelError Level = Level(slog.LevelError)
)

var DefaultLevel = LevelWarn

// LevelFromString converts a level name to a Level, falling back to
// DefaultLevel for unknown names.
func LevelFromString(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return DefaultLevel
	}
}

type slogLogger struct {
	logger *slog.Logger
}

// New returns a Logger writing colorized output to stderr. Color is
// disabled automatically when stderr is not a terminal.
func New(level Level) Logger {
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		TimeFormat: time.Kitchen,
		Level:      slog.Level(level),
	})
	return &slogLogger{logger: slog.New(handler)}
}

func (l *slogLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *slogLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *slogLogger) Warn(msg string, keysAndValues ...any) {
	l.logger.Warn(msg, keysAndValues...)
}

func (l *slogLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *slogLogger) With(keysAndValues ...any) Logger {
	return &slogLogger{logger: l.logger.With(keysAndValues...)}
}
