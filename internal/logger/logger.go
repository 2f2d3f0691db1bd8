package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger. Besides structured field logging it offers
// printf-style methods, so it can be handed to the calculation engine.
type Logger struct {
	zlog zerolog.Logger
}

// New creates a Logger for the given environment. Development output is a
// coloured console at debug level; anything else is JSON at info level.
func New(env string) *Logger {
	var output io.Writer = os.Stdout
	level := zerolog.InfoLevel

	if env == "development" {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		level = zerolog.DebugLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339

	return NewWithWriter(output, level)
}

// NewCLI creates a console logger on stderr so command output on stdout
// stays clean. Debug enables debug-level messages.
func NewCLI(debug bool) *Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return NewWithWriter(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}, level)
}

// NewWithWriter creates a logger writing to w at the given level
func NewWithWriter(w io.Writer, level zerolog.Level) *Logger {
	return &Logger{
		zlog: zerolog.New(w).Level(level).With().Timestamp().Logger(),
	}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// Debug logs a debug message with optional fields
func (l *Logger) Debug(msg string, fields map[string]any) {
	withFields(l.zlog.Debug(), fields).Msg(msg)
}

// Info logs an info message with optional fields
func (l *Logger) Info(msg string, fields map[string]any) {
	withFields(l.zlog.Info(), fields).Msg(msg)
}

// Warn logs a warning message with optional fields
func (l *Logger) Warn(msg string, fields map[string]any) {
	withFields(l.zlog.Warn(), fields).Msg(msg)
}

// Error logs an error message with an error and optional fields
func (l *Logger) Error(msg string, err error, fields map[string]any) {
	withFields(l.zlog.Error().Err(err), fields).Msg(msg)
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...any) {
	l.zlog.Debug().Msg(fmt.Sprintf(format, args...))
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...any) {
	l.zlog.Info().Msg(fmt.Sprintf(format, args...))
}

// Warnf logs a formatted warning
func (l *Logger) Warnf(format string, args ...any) {
	l.zlog.Warn().Msg(fmt.Sprintf(format, args...))
}

// Errorf logs a formatted error
func (l *Logger) Errorf(format string, args ...any) {
	l.zlog.Error().Msg(fmt.Sprintf(format, args...))
}

// With creates a child logger with additional context fields
func (l *Logger) With(fields map[string]any) *Logger {
	ctx := l.zlog.With()
	for key, value := range fields {
		ctx = ctx.Interface(key, value)
	}
	return &Logger{zlog: ctx.Logger()}
}

// WithRequestID creates a child logger with a request ID field
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		zlog: l.zlog.With().Str("request_id", requestID).Logger(),
	}
}

// GetZerolog returns the underlying zerolog.Logger
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zlog
}

func withFields(event *zerolog.Event, fields map[string]any) *zerolog.Event {
	for key, value := range fields {
		event = event.Interface(key, value)
	}
	return event
}
