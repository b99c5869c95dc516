package errors

import (
	"bufio"
	"fmt"
	"strings"
)

const (
	Indent = "  "
	Bullet = "- "
)

type writer struct {
	config FormatConfig
	out    strings.Builder
}

func newWriter(opts ...FormatOption) *writer {
	config := FormatConfig{}
	for _, o := range opts {
		o(&config)
	}
	return &writer{config: config}
}

func (w *writer) WriteError(err error) {
	w.writeErrorLevel(0, err, nil)
}

func (w *writer) writeErrorLevel(level int, err error, trace StackTrace) {
	if err == nil {
		panic("error cannot be nil")
	}

	if v, ok := err.(stackTracer); ok { // nolint: errorlint
		trace = v.StackTrace()
	}

	// nolint: errorlint
	switch v := err.(type) {
	case nestedErrorGetter:
		w.writeNestedError(level, v.MainError(), v.WrappedErrors(), trace)
	case multiErrorGetter:
		w.writeErrorsList(level, v.WrappedErrors())
	case *withStack:
		w.writeErrorLevel(level, v.error, trace)
	case *wrappedError:
		if w.config.WithUnwrap && v.err != nil {
			w.write(formatPrefix(fmt.Sprintf("%s (%T)", formatMessage(v.msg, trace, w.config), v)))
			w.writeNewLine()
			w.writeIndent(level)
			w.write(Bullet)
			w.writeErrorLevel(level+1, v.err, nil)
			return
		}
		w.writeMessage(level, formatMessage(v.msg, trace, w.config))
	default:
		w.writeMessage(level, formatMessage(v.Error(), trace, w.config))
	}
}

func (w *writer) writeNestedError(level int, main error, errs []error, trace StackTrace) {
	mainWriter := w.clone()
	mainWriter.writeErrorLevel(level, main, trace)
	mainStr := mainWriter.String()

	if len(errs) == 0 {
		w.write(mainStr)
		return
	}

	subWriter := w.clone()
	subWriter.writeErrorsList(level, errs)
	subStr := subWriter.String()

	// Short single error is written on the same line as the prefix
	w.write(formatPrefix(mainStr))
	if len(errs) > 1 || len(mainStr)+len(subStr) > 60 || strings.Contains(subStr, "\n") {
		w.writeNewLine()
		if len(errs) == 1 {
			w.writeIndent(level)
			w.write(Bullet)
			w.writeErrorLevel(level+1, errs[0], nil)
		} else {
			w.writeErrorsList(level, errs)
		}
	} else {
		w.write(" ")
		w.write(subStr)
	}
}

func (w *writer) writeErrorsList(level int, errs []error) {
	bullets := len(errs) > 1
	last := len(errs) - 1
	for i, err := range errs {
		if bullets {
			w.writeIndent(level)
			w.write(Bullet)
		}
		w.writeErrorLevel(level+1, err, nil)
		if i != last {
			w.writeNewLine()
		}
	}
}

// writeMessage aligns all lines of a multi-line message.
func (w *writer) writeMessage(level int, msg string) {
	scanner := bufio.NewScanner(strings.NewReader(msg))
	scanner.Scan()
	w.write(scanner.Text())
	for scanner.Scan() {
		w.writeNewLine()
		w.writeIndent(level)
		w.write(scanner.Text())
	}
}

func (w *writer) writeIndent(level int) {
	w.write(strings.Repeat(Indent, level))
}

func (w *writer) writeNewLine() {
	w.write("\n")
}

func (w *writer) write(s string) {
	_, _ = w.out.WriteString(s)
}

func (w *writer) String() string {
	return w.out.String()
}

func (w *writer) clone() *writer {
	return &writer{config: w.config}
}
