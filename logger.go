package oidcbearer

import (
	"log/slog"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"github.com/binkhq/go-oidc-bearer/core"
)

// NewLogrusLogger returns a core.Logger adapter for logrus.FieldLogger.
// This is the logger used when none is configured.
func NewLogrusLogger(l logrus.FieldLogger) core.Logger {
	return core.NewLogrusLogger(l)
}

// NewZapLogger returns a core.Logger adapter for zap.Logger.
func NewZapLogger(l *zap.Logger) core.Logger {
	return &zapLoggerAdapter{l.Sugar()}
}

type zapLoggerAdapter struct{ l *zap.SugaredLogger }

func (z *zapLoggerAdapter) Debug(msg string, args ...any) { z.l.Debugw(msg, args...) }
func (z *zapLoggerAdapter) Info(msg string, args ...any)  { z.l.Infow(msg, args...) }
func (z *zapLoggerAdapter) Warn(msg string, args ...any)  { z.l.Warnw(msg, args...) }
func (z *zapLoggerAdapter) Error(msg string, args ...any) { z.l.Errorw(msg, args...) }

// NewZerologLogger returns a core.Logger adapter for zerolog.Logger.
func NewZerologLogger(l zerolog.Logger) core.Logger {
	return &zerologLoggerAdapter{l}
}

type zerologLoggerAdapter struct{ l zerolog.Logger }

func (z *zerologLoggerAdapter) Debug(msg string, args ...any) {
	z.l.Debug().Fields(fields(args)).Msg(msg)
}
func (z *zerologLoggerAdapter) Info(msg string, args ...any) {
	z.l.Info().Fields(fields(args)).Msg(msg)
}
func (z *zerologLoggerAdapter) Warn(msg string, args ...any) {
	z.l.Warn().Fields(fields(args)).Msg(msg)
}
func (z *zerologLoggerAdapter) Error(msg string, args ...any) {
	z.l.Error().Fields(fields(args)).Msg(msg)
}

func fields(args []any) map[string]any {
	return map[string]any(core.Fields(args))
}

// NewSlogLogger returns l as a core.Logger; *slog.Logger already has the
// right method set.
func NewSlogLogger(l *slog.Logger) core.Logger {
	return l
}
