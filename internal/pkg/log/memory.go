package log

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap/zapcore"
)

// MemoryLogger is a temporary logger used before the target logger is configured.
// Messages are stored in memory and copied to the target logger by CopyLogsTo.
type MemoryLogger struct {
	store     *memoryStore
	attrs     []attribute.KeyValue
	component string
}

type memoryStore struct {
	lock    sync.Mutex
	entries []memoryEntry
}

type memoryEntry struct {
	level     zapcore.Level
	message   string
	attrs     []attribute.KeyValue
	component string
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{store: &memoryStore{}}
}

func (l *MemoryLogger) Debug(ctx context.Context, message string) {
	l.log(ctx, DebugLevel, message)
}

func (l *MemoryLogger) Info(ctx context.Context, message string) {
	l.log(ctx, InfoLevel, message)
}

func (l *MemoryLogger) Warn(ctx context.Context, message string) {
	l.log(ctx, WarnLevel, message)
}

func (l *MemoryLogger) Error(ctx context.Context, message string) {
	l.log(ctx, ErrorLevel, message)
}

func (l *MemoryLogger) Debugf(ctx context.Context, template string, args ...any) {
	l.log(ctx, DebugLevel, fmt.Sprintf(template, args...))
}

func (l *MemoryLogger) Infof(ctx context.Context, template string, args ...any) {
	l.log(ctx, InfoLevel, fmt.Sprintf(template, args...))
}

func (l *MemoryLogger) Warnf(ctx context.Context, template string, args ...any) {
	l.log(ctx, WarnLevel, fmt.Sprintf(template, args...))
}

func (l *MemoryLogger) Errorf(ctx context.Context, template string, args ...any) {
	l.log(ctx, ErrorLevel, fmt.Sprintf(template, args...))
}

func (l *MemoryLogger) With(attrs ...attribute.KeyValue) Logger {
	clone := *l
	clone.attrs = append(append([]attribute.KeyValue(nil), l.attrs...), attrs...)
	return &clone
}

func (l *MemoryLogger) WithComponent(component string) Logger {
	clone := *l
	if clone.component == "" {
		clone.component = component
	} else {
		clone.component += "." + component
	}
	return &clone
}

func (l *MemoryLogger) Sync() error {
	return nil
}

// CopyLogsTo writes all stored messages to the target logger, in the original order.
func (l *MemoryLogger) CopyLogsTo(target Logger) {
	l.store.lock.Lock()
	defer l.store.lock.Unlock()

	ctx := context.Background()
	for _, entry := range l.store.entries {
		logger := target
		if entry.component != "" {
			logger = logger.WithComponent(entry.component)
		}
		if len(entry.attrs) > 0 {
			logger = logger.With(entry.attrs...)
		}
		switch entry.level {
		case DebugLevel:
			logger.Debug(ctx, entry.message)
		case InfoLevel:
			logger.Info(ctx, entry.message)
		case WarnLevel:
			logger.Warn(ctx, entry.message)
		default:
			logger.Error(ctx, entry.message)
		}
	}
	l.store.entries = nil
}

func (l *MemoryLogger) log(ctx context.Context, level zapcore.Level, message string) {
	attrs := append(append([]attribute.KeyValue(nil), l.attrs...), attributesFrom(ctx)...)

	l.store.lock.Lock()
	defer l.store.lock.Unlock()
	l.store.entries = append(l.store.entries, memoryEntry{level: level, message: message, attrs: attrs, component: l.component})
}
