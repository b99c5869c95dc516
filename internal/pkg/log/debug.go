// nolint:forbidigo // allow usage of the "zap" package
package log

import (
	"bufio"
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"
)

// DebugLogger keeps all messages in memory, it is used in tests.
type DebugLogger struct {
	Logger
	buffer *syncBuffer
}

type syncBuffer struct {
	lock sync.Mutex
	buf  strings.Builder
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.buf.Reset()
}

func NewDebugLogger() *DebugLogger {
	buffer := &syncBuffer{}
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "message",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: "  ",
	})
	core := zapcore.NewCore(encoder, zapcore.AddSync(buffer), DebugLevel)
	return &DebugLogger{Logger: loggerFromZapCore(core), buffer: buffer}
}

func (l *DebugLogger) Truncate() {
	l.buffer.Reset()
}

// AllMessages returns all lines, each line starts with the level, eg. "WARN  message".
func (l *DebugLogger) AllMessages() string {
	return l.buffer.String()
}

func (l *DebugLogger) DebugMessages() string {
	return l.messages(DebugLevel)
}

func (l *DebugLogger) InfoMessages() string {
	return l.messages(InfoLevel)
}

func (l *DebugLogger) WarnMessages() string {
	return l.messages(WarnLevel)
}

func (l *DebugLogger) ErrorMessages() string {
	return l.messages(ErrorLevel)
}

func (l *DebugLogger) messages(level zapcore.Level) string {
	prefix := level.CapitalString() + "  "
	var out strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(l.buffer.String()))
	for scanner.Scan() {
		if line := scanner.Text(); strings.HasPrefix(line, prefix) {
			out.WriteString(line)
			out.WriteString("\n")
		}
	}
	return out.String()
}
