package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keboola/kbc-conform/internal/pkg/encoding/json"
	"github.com/keboola/kbc-conform/internal/pkg/env"
)

const workingDir = "/work"

type testResult struct {
	exitCode int
	stdout   string
	stderr   string
}

func runCommand(t *testing.T, files map[string]string, args ...string) testResult {
	t.Helper()

	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, workingDir+"/"+path, []byte(content), 0o644))
	}

	var stdout, stderr bytes.Buffer
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC))
	root := NewRootCommand(&stdout, &stderr, env.Empty(), fs, WithClock(clock))
	root.SetArgs(append([]string{"--working-dir", workingDir}, args...))

	exitCode := root.Execute(context.Background())
	return testResult{exitCode: exitCode, stdout: stdout.String(), stderr: stderr.String()}
}

func TestScheduleCommand_Text(t *testing.T) {
	t.Parallel()
	result := runCommand(t, map[string]string{
		"schedule.json": `{"scheduleExpression": "0 9 * * *", "timezone": "UTC"}`,
	}, "schedule", "schedule.json")

	assert.Equal(t, 0, result.exitCode, result.stderr)
	assert.Contains(t, result.stdout, "cron")
	assert.Contains(t, result.stdout, "DAILY")
	assert.Contains(t, result.stdout, "0 9 * * *")
	assert.Contains(t, result.stdout, "2026-10-20T09:00:00Z")
	assert.Contains(t, result.stdout, "Schedule: every day at 09:00")
}

func TestScheduleCommand_JSON(t *testing.T) {
	t.Parallel()
	result := runCommand(t, map[string]string{
		"schedule.json": `{"advancedScheduleJson": {"frequency": "WEEKLY"}, "timezone": "Europe/Prague"}`,
	}, "schedule", "schedule.json", "--output", "json")
	require.Equal(t, 0, result.exitCode, result.stderr)

	out, err := json.DecodeMap([]byte(result.stdout))
	require.NoError(t, err)
	assert.Equal(t, []string{"kind", "frequency", "timezone", "description", "advancedScheduleJson"}, out.Keys())
	assert.Equal(t, "advanced", out.GetOrNil("kind"))
	assert.Equal(t, "WEEKLY", out.GetOrNil("frequency"))
	assert.Equal(t, "Europe/Prague", out.GetOrNil("timezone"))
	assert.Contains(t, result.stdout, "  \"advancedScheduleJson\": {\n    \"frequency\": \"WEEKLY\"\n  }\n}\n")
}

func TestScheduleCommand_Malformed(t *testing.T) {
	t.Parallel()
	result := runCommand(t, map[string]string{
		"schedule.json": `[1, 2]`,
	}, "schedule", "schedule.json")

	assert.Equal(t, 1, result.exitCode)
	assert.Contains(t, result.stderr, `file "/work/schedule.json" is not a valid JSON object`)
}

func TestScheduleCommand_MissingFile(t *testing.T) {
	t.Parallel()
	result := runCommand(t, nil, "schedule", "missing.json")
	assert.Equal(t, 1, result.exitCode)
	assert.Contains(t, result.stderr, `cannot read file "/work/missing.json"`)
}

func TestTriggersCommand_Text(t *testing.T) {
	t.Parallel()
	result := runCommand(t, map[string]string{
		"dataflow.json": `
{
  "id": "123",
  "name": "Daily load",
  "triggerSettings": {
    "triggers": [
      {"id": "t1", "title": "Morning", "events": [{"type": "SCHEDULE", "schedule": {"expression": "0 9 * * *"}}]},
      {"id": "t2", "events": [{"type": "DATASET_UPDATED", "datasetId": "in.c-main.orders"}, {"type": "FOO"}]}
    ]
  }
}`,
	}, "triggers", "dataflow.json")

	assert.Equal(t, 0, result.exitCode, result.stderr)
	assert.Contains(t, result.stdout, "Morning")
	assert.Contains(t, result.stdout, "Schedule: every day at 09:00")
	assert.Contains(t, result.stdout, "Dataset `in.c-main.orders` updated")
	assert.Contains(t, result.stdout, `Triggers of dataflow "123": 2`)
	assert.Contains(t, result.stderr, `Skipped invalid trigger entry "triggers[t2].events[1]": unknown event type "FOO"`)
}

func TestTriggersCommand_JSON(t *testing.T) {
	t.Parallel()
	result := runCommand(t, map[string]string{
		"dataflow.json": `{"id": "123", "triggerSettings": {"triggers": [{"id": "t1", "events": [{"type": "SCHEDULE", "schedule": {"frequency": "MANUAL"}}]}, 5]}}`,
	}, "triggers", "dataflow.json", "-o", "json")
	require.Equal(t, 0, result.exitCode, result.stderr)

	out, err := json.DecodeMap([]byte(result.stdout))
	require.NoError(t, err)
	assert.Equal(t, "123", out.GetOrNil("dataflow"))
	assert.Equal(t, true, out.GetOrNil("hasSettings"))
	assert.Equal(t, true, out.GetOrNil("hasSchedules"))

	triggers, ok := out.GetOrNil("triggers").([]any)
	require.True(t, ok)
	assert.Len(t, triggers, 1)

	invalid, ok := out.GetOrNil("invalid").([]any)
	require.True(t, ok)
	require.Len(t, invalid, 1)
	entry, ok := invalid[0].(*orderedmap.OrderedMap)
	require.True(t, ok)
	assert.Equal(t, "triggers[1]", entry.GetOrNil("path"))
}

func TestTriggersCommand_NoSettings(t *testing.T) {
	t.Parallel()
	result := runCommand(t, map[string]string{
		"dataflow.json": `{"id": "123"}`,
	}, "triggers", "dataflow.json")

	assert.Equal(t, 0, result.exitCode, result.stderr)
	assert.Equal(t, "Dataflow \"123\" has no trigger settings.\n", result.stdout)
}

func TestTriggersCommand_InvalidSettings(t *testing.T) {
	t.Parallel()
	result := runCommand(t, map[string]string{
		"dataflow.json": `{"id": "123", "triggerSettings": "foo"}`,
	}, "triggers", "dataflow.json")

	assert.Equal(t, 1, result.exitCode)
	assert.Contains(t, result.stderr, `invalid trigger settings of dataflow "123"`)
}

func TestPropertyListCommand(t *testing.T) {
	t.Parallel()
	result := runCommand(t, nil, "property", "list")
	assert.Equal(t, 0, result.exitCode, result.stderr)
	assert.Contains(t, result.stdout, "warehouse")
	assert.Contains(t, result.stdout, "warehouseName")
	assert.Contains(t, result.stdout, "workGroup")

	result = runCommand(t, nil, "property", "list", "-o", "json")
	require.Equal(t, 0, result.exitCode, result.stderr)
	var out []map[string]any
	require.NoError(t, json.DecodeString(result.stdout, &out))
	require.NotEmpty(t, out)
	names := make([]string, 0, len(out))
	for _, item := range out {
		names = append(names, item["name"].(string))
	}
	assert.Contains(t, names, "warehouse")
	assert.IsIncreasing(t, names)
}

func TestPropertyReadCommand(t *testing.T) {
	t.Parallel()
	files := map[string]string{
		"snowflake.json": `{"id": "1", "componentId": "keboola.ex-db-snowflake", "configuration": {"warehouseName": "COMPUTE_WH"}}`,
		"bigquery.json":  `{"id": "2", "componentId": "keboola.ex-google-bigquery-v2", "configuration": {"sql": "SELECT 1"}}`,
	}

	// Found
	result := runCommand(t, files, "property", "read", "warehouse", "snowflake.json")
	assert.Equal(t, 0, result.exitCode, result.stderr)
	assert.Equal(t, "COMPUTE_WH\n", result.stdout)

	// Not supported by the provider
	result = runCommand(t, files, "property", "read", "warehouse", "bigquery.json")
	assert.Equal(t, 0, result.exitCode, result.stderr)
	assert.Contains(t, result.stdout, `Property "warehouse" is not supported by the provider "keboola.ex-google-bigquery-v2".`)

	// Not set
	result = runCommand(t, files, "property", "read", "role", "snowflake.json")
	assert.Equal(t, 0, result.exitCode, result.stderr)
	assert.Contains(t, result.stdout, `Property "role" (attribute "roleName") is not set.`)

	// JSON
	result = runCommand(t, files, "property", "read", "query", "bigquery.json", "-o", "json")
	require.Equal(t, 0, result.exitCode, result.stderr)
	var out map[string]any
	require.NoError(t, json.DecodeString(result.stdout, &out))
	assert.Equal(t, map[string]any{
		"property":  "query",
		"provider":  "keboola.ex-google-bigquery-v2",
		"attribute": "sql",
		"found":     true,
		"value":     "SELECT 1",
	}, out)

	// Unknown property
	result = runCommand(t, files, "property", "read", "foo", "snowflake.json")
	assert.Equal(t, 1, result.exitCode)
	assert.Contains(t, result.stderr, `property "foo" not found`)
}

func TestRootCommand_InvalidOutput(t *testing.T) {
	t.Parallel()
	result := runCommand(t, nil, "property", "list", "-o", "yaml")
	assert.Equal(t, 1, result.exitCode)
	assert.Contains(t, result.stderr, `"output"`)
}
