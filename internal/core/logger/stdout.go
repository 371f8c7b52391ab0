package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"
)

type StdoutLogger struct {
	logger *slog.Logger
}

func initStdoutLogger(serviceName string, jsonOutput bool, level LogLevel) (Logger, error) {
	return newStdoutLogger(os.Stdout, serviceName, jsonOutput, level), nil
}

func newStdoutLogger(w io.Writer, serviceName string, jsonOutput bool, level LogLevel) *StdoutLogger {
	opts := &slog.HandlerOptions{
		Level:     toSlogLevel(level),
		AddSource: !jsonOutput,
	}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &StdoutLogger{
		logger: slog.New(handler.WithAttrs([]slog.Attr{
			slog.String("service", serviceName),
		})),
	}
}

func toSlogLevel(level LogLevel) slog.Level {
	switch level {
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError, LogLevelFatal:
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

func (l *StdoutLogger) Log(ctx context.Context, entry LogEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	keys := make([]string, 0, len(entry.Attributes))
	for key := range entry.Attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	attrs := make([]any, 0, len(keys)*2+2)
	for _, key := range keys {
		attrs = append(attrs, key, entry.Attributes[key])
	}
	if entry.Error != nil {
		attrs = append(attrs, "error", entry.Error.Error())
	}

	switch entry.Level {
	case LogLevelDebug:
		l.logger.DebugContext(ctx, entry.Message, attrs...)
	case LogLevelInfo:
		l.logger.InfoContext(ctx, entry.Message, attrs...)
	case LogLevelWarn:
		l.logger.WarnContext(ctx, entry.Message, attrs...)
	case LogLevelError:
		l.logger.ErrorContext(ctx, entry.Message, attrs...)
	case LogLevelFatal:
		l.logger.ErrorContext(ctx, entry.Message, attrs...)
		exit(1)
	}
}

func (l *StdoutLogger) Shutdown(context.Context) error {
	return nil
}
