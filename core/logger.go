package core

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Logger defines the logging interface used throughout the package.
// Arguments after msg are alternating key/value pairs, as with log/slog.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NewLogrusLogger returns a Logger adapter for logrus.FieldLogger.
func NewLogrusLogger(l logrus.FieldLogger) Logger {
	return &logrusLoggerAdapter{l}
}

type logrusLoggerAdapter struct{ l logrus.FieldLogger }

func (l *logrusLoggerAdapter) Debug(msg string, args ...any) { l.with(args).Debug(msg) }
func (l *logrusLoggerAdapter) Info(msg string, args ...any)  { l.with(args).Info(msg) }
func (l *logrusLoggerAdapter) Warn(msg string, args ...any)  { l.with(args).Warn(msg) }
func (l *logrusLoggerAdapter) Error(msg string, args ...any) { l.with(args).Error(msg) }

func (l *logrusLoggerAdapter) with(args []any) logrus.FieldLogger {
	if len(args) == 0 {
		return l.l
	}
	return l.l.WithFields(Fields(args))
}

// Fields converts alternating key/value pairs into logrus.Fields. A key that
// is not a string is formatted with %v; a trailing key without a value is
// recorded under "!BADKEY", as log/slog does.
func Fields(args []any) logrus.Fields {
	fields := make(logrus.Fields, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			fields["!BADKEY"] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		fields[key] = args[i+1]
	}
	return fields
}

func defaultLogger() Logger {
	return NewLogrusLogger(logrus.StandardLogger())
}
