package errors

import (
	"fmt"
	"runtime"
	"strings"
)

type FormatConfig struct {
	// WithStack adds the place where the error was created to each message.
	WithStack bool
	// WithUnwrap writes also errors wrapped by Wrap/Wrapf.
	WithUnwrap bool
}

type FormatOption func(c *FormatConfig)

func FormatWithStack() FormatOption {
	return func(c *FormatConfig) {
		c.WithStack = true
	}
}

func FormatWithUnwrap() FormatOption {
	return func(c *FormatConfig) {
		c.WithUnwrap = true
	}
}

// Format error to string, nested and multi errors are rendered as a bullet list.
func Format(err error, opts ...FormatOption) string {
	w := newWriter(opts...)
	w.WriteError(err)
	return w.String()
}

func formatMessage(msg string, trace StackTrace, config FormatConfig) string {
	if config.WithStack && len(trace) > 0 {
		frame := trace[0]
		if fn := runtime.FuncForPC(frame); fn != nil {
			file, line := fn.FileLine(frame)
			msg = fmt.Sprintf("%s [%s:%d]", msg, file, line)
		}
	}
	return msg
}

func formatPrefix(prefix string) string {
	return strings.TrimRight(prefix, ".,:") + ":"
}
