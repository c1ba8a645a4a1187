// Package logger provides a simple structured logging facade over slog.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults for the optional file sink.
const (
	defaultMaxSizeMB  = 50
	defaultMaxBackups = 3
)

// Logger defines the logging interface used across the pipeline.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Field)
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
	Fatal(ctx context.Context, msg string, fields ...Field)

	Named(name string) Logger
}

// Field is a key-value pair for structured logging.
type Field struct {
	Key   string
	Value any
}

// Field constructors.
func String(key, val string) Field          { return Field{Key: key, Value: val} }
func Int(key string, val int) Field         { return Field{Key: key, Value: val} }
func Int64(key string, val int64) Field     { return Field{Key: key, Value: val} }
func Float64(key string, val float64) Field { return Field{Key: key, Value: val} }
func Any(key string, val any) Field         { return Field{Key: key, Value: val} }
func Error(err error) Field                 { return Field{Key: "error", Value: err} }

// settings collects Init options before the handler is built.
type settings struct {
	level slog.Level
	out   io.Writer
	json  bool
}

// Option applies a configuration option to Init.
type Option func(*settings) error

// WithLevelString sets the minimum level from its string form.
// Accepts debug, info, warn/warning, error (case-insensitive).
func WithLevelString(level string) Option {
	return func(s *settings) error {
		l, err := parseLevel(level)
		if err != nil {
			return err
		}
		s.level = l
		return nil
	}
}

// WithRotatingFile sends output to a size-rotated log file instead of
// stdout.
func WithRotatingFile(path string) Option {
	return func(s *settings) error {
		if path == "" {
			return fmt.Errorf("log file path must not be empty")
		}
		s.out = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    defaultMaxSizeMB,
			MaxBackups: defaultMaxBackups,
		}
		return nil
	}
}

// WithOutput redirects log output to the given writer.
func WithOutput(w io.Writer) Option {
	return func(s *settings) error {
		if w == nil {
			return fmt.Errorf("output writer must not be nil")
		}
		s.out = w
		return nil
	}
}

// WithJSONFormat emits records as JSON instead of logfmt-style text.
func WithJSONFormat() Option {
	return func(s *settings) error {
		s.json = true
		return nil
	}
}

// slogLogger implements Logger.
type slogLogger struct {
	l *slog.Logger
}

func (l *slogLogger) Named(name string) Logger {
	return &slogLogger{l: l.l.WithGroup(name)}
}

func (l *slogLogger) log(ctx context.Context, level slog.Level, msg string, fields []Field) {
	attrs := make([]slog.Attr, len(fields))
	for i, f := range fields {
		attrs[i] = slog.Any(f.Key, f.Value)
	}
	l.l.LogAttrs(ctx, level, msg, attrs...)
}

func (l *slogLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelDebug, msg, fields)
}

func (l *slogLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelInfo, msg, fields)
}

func (l *slogLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelWarn, msg, fields)
}

func (l *slogLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelError, msg, fields)
}

func (l *slogLogger) Fatal(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelError, msg, fields)
	os.Exit(1)
}

var global Logger

// Init builds the global logger. Defaults: info level, text format,
// stdout.
func Init(opts ...Option) error {
	s := settings{level: slog.LevelInfo, out: os.Stdout}
	for _, opt := range opts {
		if err := opt(&s); err != nil {
			return err
		}
	}

	ho := &slog.HandlerOptions{Level: s.level}
	var h slog.Handler
	if s.json {
		h = slog.NewJSONHandler(s.out, ho)
	} else {
		h = slog.NewTextHandler(s.out, ho)
	}
	global = &slogLogger{l: slog.New(h)}
	return nil
}

// Get returns the global logger. Init must be called first.
func Get() Logger {
	if global == nil {
		panic("logger not initialized; call logger.Init first")
	}
	return global
}

// Named returns a named child of the global logger.
func Named(name string) Logger { return Get().Named(name) }

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level: %s", level)
}
