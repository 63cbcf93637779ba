package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	UserKey      contextKey = "user"
	ServiceKey   contextKey = "service"
)

var defaultLogger *slog.Logger

func init() {
	opts := &slog.HandlerOptions{Level: parseLevel(os.Getenv("LOG_LEVEL"))}
	defaultLogger = slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// Options configures Setup. An empty File logs to stdout only.
type Options struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Setup replaces the default logger. The returned closer flushes the file sink.
func Setup(o Options) io.Closer {
	var (
		w      io.Writer = os.Stdout
		closer io.Closer = nopCloser{}
	)
	if o.File != "" {
		lj := &lumberjack.Logger{
			Filename:   o.File,
			MaxSize:    orDefault(o.MaxSizeMB, 50),
			MaxBackups: orDefault(o.MaxBackups, 5),
			MaxAge:     orDefault(o.MaxAgeDays, 28),
			Compress:   true,
		}
		w = io.MultiWriter(os.Stdout, lj)
		closer = lj
	}
	SetDefault(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(o.Level)})))
	return closer
}

// SetDefault swaps the package logger, mainly for tests.
func SetDefault(l *slog.Logger) {
	defaultLogger = l
	slog.SetDefault(l)
}

func Default() *slog.Logger {
	return defaultLogger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func orDefault(v, d int) int {
	if v <= 0 {
		return d
	}
	return v
}

func WithContext(ctx context.Context) *slog.Logger {
	logger := defaultLogger

	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		logger = logger.With("request_id", requestID)
	}
	if user := ctx.Value(UserKey); user != nil {
		logger = logger.With("user", user)
	}
	if service := ctx.Value(ServiceKey); service != nil {
		logger = logger.With("service", service)
	}
	return logger
}

func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

func InfoContext(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Info(msg, args...)
}

func ErrorContext(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Error(msg, args...)
}

func DebugContext(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Debug(msg, args...)
}

func WarnContext(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Warn(msg, args...)
}
