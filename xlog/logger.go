package xlog

import (
	"context"
	"encoding/hex"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(NewText(LevelInfo))
}

func Debug(msg string, fields ...slog.Attr) {
	Default().Debug(msg, fields...)
}

func Info(msg string, fields ...slog.Attr) {
	Default().Info(msg, fields...)
}

func Warn(msg string, fields ...slog.Attr) {
	Default().Warn(msg, fields...)
}
func Error(msg string, fields ...slog.Attr) {
	Default().Error(msg, fields...)
}

type Logger struct {
	json bool
	out  io.Writer
	s    *slog.Logger
}

const (
	LevelDebug slog.Level = slog.LevelDebug
	LevelInfo  slog.Level = slog.LevelInfo
	LevelWarn  slog.Level = slog.LevelWarn
	LevelError slog.Level = slog.LevelError
)

var (
	Int     = slog.Int
	Any     = slog.Any
	Bool    = slog.Bool
	Int64   = slog.Int64
	Uint64  = slog.Uint64
	String  = slog.String
	Float64 = slog.Float64
)

func Err(e error) slog.Attr {
	return slog.Any("error", e)
}

// Hex logs p as a lowercase hex string.
func Hex(key string, p []byte) slog.Attr {
	return slog.String(key, hex.EncodeToString(p))
}

// Offset is the byte position of a value in its buffer.
func Offset(n int) slog.Attr {
	return slog.Int("offset", n)
}

// Kind is the wire type of a value.
func Kind(k string) slog.Attr {
	return slog.String("kind", k)
}

// Index is the position of a value in its script.
func Index(i int) slog.Attr {
	return slog.Int("index", i)
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else
// is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func With(args ...any) *Logger {
	return Default().With(args...)
}
func WithLevel(level slog.Level) *Logger {
	return Default().WithLevel(level)
}

// NewText logs to stderr; stdout is left for command output.
func NewText(level slog.Level) *Logger {
	return NewTextTo(os.Stderr, level)
}
func NewJSON(level slog.Level) *Logger {
	return NewJSONTo(os.Stderr, level)
}
func NewTextTo(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{s: slog.New(handler), out: w, json: false}
}
func NewJSONTo(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{s: slog.New(handler), out: w, json: true}
}

func Default() *Logger {
	return defaultLogger.Load()
}
func SetDefault(l *Logger) {
	defaultLogger.Store(l)
}
func (l *Logger) With(args ...any) *Logger {
	return &Logger{s: l.s.With(args...), out: l.out, json: l.json}
}
func (l *Logger) WithLevel(level slog.Level) *Logger {
	if l.json {
		return NewJSONTo(l.out, level)
	}
	return NewTextTo(l.out, level)
}
func (l *Logger) Enabled(level slog.Level) bool {
	return l.s.Enabled(context.Background(), level)
}
func (l *Logger) Debug(msg string, fields ...slog.Attr) {
	l.s.LogAttrs(context.Background(), slog.LevelDebug, msg, fields...)
}

func (l *Logger) Info(msg string, fields ...slog.Attr) {
	l.s.LogAttrs(context.Background(), slog.LevelInfo, msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...slog.Attr) {
	l.s.LogAttrs(context.Background(), slog.LevelWarn, msg, fields...)
}
func (l *Logger) Error(msg string, fields ...slog.Attr) {
	l.s.LogAttrs(context.Background(), slog.LevelError, msg, fields...)
}
