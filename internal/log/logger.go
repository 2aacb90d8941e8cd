// Package log wraps log/slog with the output formats and context plumbing
// used across the service. Requests carry correlation and request IDs in
// the context and loggers pick them up via the *Context methods.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/clustertune/reportd/internal/config"
)

// ContextKey is the key type used for logging values stored in a context.
type ContextKey string

const (
	CorrelationIDKey ContextKey = "correlation_id"
	RequestIDKey     ContextKey = "request_id"
)

// Logger is a thin wrapper around slog.Logger that knows how to pull
// correlation and request IDs out of a context.
type Logger struct {
	handler slog.Handler
	logger  *slog.Logger
}

// newHandler builds the slog handler for the requested format and level.
// Anything that is not JSON gets the coloured console format.
func newHandler(w io.Writer, format config.LogFormat, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return newConsoleHandler(w, opts)
}

func wrap(h slog.Handler) *Logger {
	return &Logger{handler: h, logger: slog.New(h)}
}

// NewLogger builds a Logger from the application configuration, writing
// to stdout.
func NewLogger(cfg config.AppConfig) *Logger {
	return wrap(newHandler(os.Stdout, cfg.LogFormat(), levelFromString(cfg.LogLevel())))
}

// NewLoggerWithWriter builds a Logger that writes to w. The MCP stdio
// transport uses this to keep log output off stdout.
func NewLoggerWithWriter(w io.Writer, format config.LogFormat, level string) *Logger {
	return wrap(newHandler(w, format, levelFromString(level)))
}

func levelFromString(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Handler returns the underlying slog.Handler.
func (l *Logger) Handler() slog.Handler { return l.handler }

// Slog returns the underlying slog.Logger.
func (l *Logger) Slog() *slog.Logger { return l.logger }

// With returns a Logger that includes the given attributes on every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{handler: l.handler, logger: l.logger.With(args...)}
}

// WithContext returns a Logger carrying whatever correlation and request
// IDs are present in ctx. When neither is set it returns the receiver.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	var attrs []any
	if id := CorrelationID(ctx); id != "" {
		attrs = append(attrs, "correlation_id", id)
	}
	if id := RequestID(ctx); id != "" {
		attrs = append(attrs, "request_id", id)
	}
	if len(attrs) == 0 {
		return l
	}
	return l.With(attrs...)
}

func (l *Logger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).logger.Debug(msg, args...)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).logger.Info(msg, args...)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).logger.Warn(msg, args...)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).logger.Error(msg, args...)
}

// WithCorrelationID stores a correlation ID in the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

// WithRequestID stores a request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// CorrelationID returns the correlation ID from ctx, or "".
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(CorrelationIDKey).(string)
	return id
}

// RequestID returns the request ID from ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// SetDefault installs l as the global slog default.
func (l *Logger) SetDefault() {
	slog.SetDefault(l.logger)
}

var pkgLogger = wrap(newConsoleHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

// Default returns the package-level logger.
func Default() *Logger { return pkgLogger }

// SetDefaultLogger replaces the package-level logger and the slog default.
func SetDefaultLogger(l *Logger) {
	pkgLogger = l
	l.SetDefault()
}

// Configure builds a Logger from cfg and installs it as the default.
func Configure(cfg config.AppConfig) *Logger {
	l := NewLogger(cfg)
	SetDefaultLogger(l)
	return l
}
