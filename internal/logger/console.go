package logger

import (
	"context"
	"io"
	"os"
	"time"

	"Product_Catalog/internal/models"

	"github.com/rs/zerolog"
)

// ConsoleLogger implements the Service interface on top of zerolog
type ConsoleLogger struct {
	log zerolog.Logger
}

// NewConsoleLogger creates a JSON logger writing to stdout at the given level
func NewConsoleLogger(level string) Service {
	return NewConsoleLoggerWithWriter(os.Stdout, level)
}

// NewConsoleLoggerWithWriter creates a JSON logger writing to out
func NewConsoleLoggerWithWriter(out io.Writer, level string) Service {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	l := zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
	return NewZerologLogger(l)
}

// NewZerologLogger wraps an existing zerolog logger, e.g. zerolog.Nop() in tests
func NewZerologLogger(l zerolog.Logger) Service {
	return &ConsoleLogger{log: l}
}

// ParseLevel maps a level name to zerolog, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// LogInfo logs an informational message
func (l *ConsoleLogger) LogInfo(ctx context.Context, operation, message string, metadata map[string]interface{}) {
	l.write(ctx, l.log.Info(), operation, "", metadata).Msg(message)
}

// LogSuccess logs a successful operation
func (l *ConsoleLogger) LogSuccess(ctx context.Context, operation, targetName, message string, metadata map[string]interface{}) {
	l.write(ctx, l.log.Info(), operation, targetName, metadata).Msg(message)
}

// LogError logs an error; low severity is emitted as a warning
func (l *ConsoleLogger) LogError(ctx context.Context, operation, targetName, message string, err error, severity models.LogSeverity, metadata map[string]interface{}) {
	event := l.log.Error()
	if severity == models.LogSeverityLow {
		event = l.log.Warn()
	}
	l.write(ctx, event, operation, targetName, metadata).
		Str("severity", string(severity)).
		Err(err).
		Msg(message)
}

// Close is a no-op; zerolog writes synchronously
func (l *ConsoleLogger) Close() error {
	return nil
}

func (l *ConsoleLogger) write(ctx context.Context, event *zerolog.Event, operation, targetName string, metadata map[string]interface{}) *zerolog.Event {
	logEvent := GetLogEvent(ctx)

	event = event.
		Str("operation", operation).
		Str("process_id", logEvent.ProcessID).
		Str("process_type", string(logEvent.ProcessType))

	if targetName != "" {
		event = event.Str("target_name", targetName)
	}
	if logEvent.ClientIP != "" {
		event = event.Str("client_ip", logEvent.ClientIP)
	}
	if len(metadata) > 0 {
		event = event.Fields(metadata)
	}
	return event
}
