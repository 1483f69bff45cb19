package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/ctxmeta"
)

// Проверка, что ZapLogger удовлетворяет интерфейсу логгера приложения.
var _ ports.Logger = (*ZapLogger)(nil)

// ZapLogger — ports.Logger поверх zap; метаданные из ctx (request_id, origin, trace_id)
// добавляются к каждой записи полями.
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

	return Wrap(logger, isProd)
}

// Wrap — обёртка над готовым *zap.Logger (тесты, CLI с собственной конфигурацией).
func Wrap(base *zap.Logger, isProd bool) (*ZapLogger, func() error, error) {
	loggerWrap := &ZapLogger{
		base:   base,
		sugar:  base.Sugar(),
		isProd: isProd,
	}

	cleanup := func() error { return loggerWrap.base.Sync() }
	return loggerWrap, cleanup, nil
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

func (z *ZapLogger) with(ctx context.Context) *zap.SugaredLogger {
	if fields := ctxmeta.LogFields(ctx); len(fields) > 0 {
		return z.sugar.With(fields...)
	}
	return z.sugar
}
