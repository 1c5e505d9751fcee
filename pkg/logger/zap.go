package logger

import (
	"context"

	"github.com/Gunvolt24/jobboard/pkg/ctxmeta"
	"go.uber.org/zap"
)

type ZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	isProd bool
}

func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if isProd {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, nil, err
	}

	return Wrap(logger, isProd), func() error { return logger.Sync() }, nil
}

// Wrap — обёртка над готовым *zap.Logger (в тестах — zaptest/observer).
func Wrap(logger *zap.Logger, isProd bool) *ZapLogger {
	return &ZapLogger{
		base:   logger,
		sugar:  logger.Sugar(),
		isProd: isProd,
	}
}

// with — добавляет request_id, principal и trace_id из контекста, если они там есть.
func (z *ZapLogger) with(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		return z.sugar
	}
	s := z.sugar
	if id, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		s = s.With("request_id", id)
	}
	if who, ok := ctxmeta.PrincipalFromContext(ctx); ok {
		s = s.With("principal", who)
	}
	if id, ok := ctxmeta.TraceIDFromContext(ctx); ok {
		s = s.With("trace_id", id)
	}
	return s
}

func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.with(ctx).Infof(format, args...)
}
func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Warnf(format, args...)
}
func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Errorf(format, args...)
}

func (z *ZapLogger) Base() *zap.Logger           { return z.base }
func (z *ZapLogger) Sugared() *zap.SugaredLogger { return z.sugar }
