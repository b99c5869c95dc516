package log

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/keboola/go-utils/pkg/wildcards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestDebugLogger_Levels(t *testing.T) {
	t.Parallel()

	logger := NewDebugLogger()
	ctx := context.Background()
	logger.Debug(ctx, "Debug msg")
	logger.Infof(ctx, "Info %s", "msg")
	logger.Warn(ctx, "Warn msg")
	logger.Error(ctx, "Error msg")

	assert.Equal(t, "DEBUG  Debug msg\n", logger.DebugMessages())
	assert.Equal(t, "INFO  Info msg\n", logger.InfoMessages())
	assert.Equal(t, "WARN  Warn msg\n", logger.WarnMessages())
	assert.Equal(t, "ERROR  Error msg\n", logger.ErrorMessages())
	assert.Equal(t, "DEBUG  Debug msg\nINFO  Info msg\nWARN  Warn msg\nERROR  Error msg\n", logger.AllMessages())

	logger.Truncate()
	assert.Empty(t, logger.AllMessages())
}

func TestDebugLogger_Attributes(t *testing.T) {
	t.Parallel()

	logger := NewDebugLogger()
	ctx := ContextWith(context.Background(), attribute.String("dataflow.id", "123"))

	logger.
		WithComponent("model").
		WithComponent("dataflow").
		With(attribute.Int("triggers", 2)).
		Info(ctx, "Loaded.")

	wildcards.Assert(t, `INFO  Loaded.  {"triggers": 2, "dataflow.id": "123", "component": "model.dataflow"}`, strings.TrimSpace(logger.AllMessages()))
}

func TestCliLogger_Streams(t *testing.T) {
	t.Parallel()

	stdout := &strings.Builder{}
	stderr := &strings.Builder{}
	logger := NewCliLogger(stdout, stderr, nil, false)

	ctx := context.Background()
	logger.Debug(ctx, "Debug msg")
	logger.Info(ctx, "Info msg")
	logger.Warn(ctx, "Warn msg")
	logger.Error(ctx, "Error msg")

	// Debug is hidden without the verbose flag
	assert.Equal(t, "Info msg\n", stdout.String())
	assert.Equal(t, "Warn msg\nError msg\n", stderr.String())
}

func TestCliLogger_Verbose(t *testing.T) {
	t.Parallel()

	stdout := &strings.Builder{}
	stderr := &strings.Builder{}
	logger := NewCliLogger(stdout, stderr, nil, true)

	ctx := context.Background()
	logger.Debug(ctx, "Debug msg")
	logger.Info(ctx, "Info msg")
	logger.Warn(ctx, "Warn msg")

	assert.Equal(t, "DEBUG  Debug msg\nINFO  Info msg\n", stdout.String())
	assert.Equal(t, "WARN  Warn msg\n", stderr.String())
}

func TestCliLogger_File(t *testing.T) {
	t.Parallel()

	filePath := filepath.Join(t.TempDir(), "log-file.txt")
	file, err := NewLogFile(filePath)
	require.NoError(t, err)
	assert.False(t, file.IsTemp())

	logger := NewCliLogger(&strings.Builder{}, &strings.Builder{}, file, false)
	ctx := context.Background()
	logger.Debug(ctx, "Debug msg")
	logger.Warn(ctx, "Warn msg")
	require.NoError(t, file.TearDown(false))

	content, err := os.ReadFile(filePath)
	require.NoError(t, err)
	expected := `
{"level":"debug","time":"%s","message":"Debug msg"}
{"level":"warn","time":"%s","message":"Warn msg"}
`
	wildcards.Assert(t, strings.TrimSpace(expected), strings.TrimSpace(string(content)))
}

func TestNopLogger(t *testing.T) {
	t.Parallel()

	logger := NewNopLogger()
	logger.WithComponent("foo").Info(context.Background(), "nothing")
	assert.NoError(t, logger.Sync())
}

func TestMemoryLogger(t *testing.T) {
	t.Parallel()

	mem := NewMemoryLogger()
	ctx := context.Background()
	mem.Debug(ctx, "Debug message.")
	mem.Infof(ctx, "Info %s.", "message")
	mem.
		WithComponent("c1").
		With(attribute.String("key1", "value1")).
		WithComponent("c2").
		Warn(ContextWith(ctx, attribute.String("key2", "value2")), "Warn message.")

	target := NewDebugLogger()
	mem.CopyLogsTo(target)

	expected := `
DEBUG  Debug message.
INFO  Info message.
WARN  Warn message.  {"key1": "value1", "key2": "value2", "component": "c1.c2"}
`
	assert.Equal(t, strings.TrimLeft(expected, "\n"), target.AllMessages())

	// Messages are copied only once
	target.Truncate()
	mem.CopyLogsTo(target)
	assert.Empty(t, target.AllMessages())
}
