// Package log provides a context-aware structured logger backed by zap.
package log

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap/zapcore"
)

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
)

const componentKey = "component"

type Logger interface {
	// Debug logs message in the debug level, attributes from the context are included.
	Debug(ctx context.Context, message string)
	// Info logs message in the info level, attributes from the context are included.
	Info(ctx context.Context, message string)
	// Warn logs message in the warning level, attributes from the context are included.
	Warn(ctx context.Context, message string)
	// Error logs message in the error level, attributes from the context are included.
	Error(ctx context.Context, message string)

	Debugf(ctx context.Context, template string, args ...any)
	Infof(ctx context.Context, template string, args ...any)
	Warnf(ctx context.Context, template string, args ...any)
	Errorf(ctx context.Context, template string, args ...any)

	// With returns a child logger, the attributes are added to each message.
	With(attrs ...attribute.KeyValue) Logger
	// WithComponent returns a child logger, nested components are joined by a dot.
	WithComponent(component string) Logger

	Sync() error
}

type ctxAttrsKey struct{}

// ContextWith returns a context with the attributes, they are added to each message logged with the context.
func ContextWith(ctx context.Context, attrs ...attribute.KeyValue) context.Context {
	all := append(attributesFrom(ctx), attrs...)
	return context.WithValue(ctx, ctxAttrsKey{}, all)
}

func attributesFrom(ctx context.Context) []attribute.KeyValue {
	if ctx == nil {
		return nil
	}
	attrs, _ := ctx.Value(ctxAttrsKey{}).([]attribute.KeyValue)
	out := make([]attribute.KeyValue, len(attrs))
	copy(out, attrs)
	return out
}
