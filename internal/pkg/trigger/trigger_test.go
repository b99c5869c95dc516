package trigger

import (
	"strings"
	"testing"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keboola/kbc-conform/internal/pkg/encoding/json"
	"github.com/keboola/kbc-conform/internal/pkg/schedule"
)

func parentFromJSON(t *testing.T, data string) *orderedmap.OrderedMap {
	t.Helper()
	m, err := json.DecodeMap([]byte(data))
	require.NoError(t, err)
	return m
}

func TestFromRaw_ThreeStates(t *testing.T) {
	t.Parallel()
	ref := ParentRef{Kind: "dataflow", ID: "123"}

	// No section
	s, err := FromRaw(parentFromJSON(t, `{"id": "123"}`), ref)
	require.NoError(t, err)
	assert.Nil(t, s)
	s, err = FromRaw(parentFromJSON(t, `{"triggerSettings": null}`), ref)
	require.NoError(t, err)
	assert.Nil(t, s)
	s, err = FromRaw(nil, ref)
	require.NoError(t, err)
	assert.Nil(t, s)

	// Section without triggers
	for _, data := range []string{`{"triggerSettings": {}}`, `{"triggerSettings": {"triggers": []}}`, `{"triggerSettings": {"triggers": null}}`} {
		s, err = FromRaw(parentFromJSON(t, data), ref)
		require.NoError(t, err)
		require.NotNil(t, s, data)
		assert.Equal(t, 0, s.Len())
		assert.NotNil(t, s.Triggers)
		assert.False(t, s.HasAnySchedules())
		assert.Equal(t, `Triggers of dataflow "123": none`, s.String())
	}

	// Populated
	s, err = FromRaw(parentFromJSON(t, `{"triggerSettings": {"triggers": [{"id": "t1", "events": []}]}}`), ref)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 1, s.Len())
}

func TestFromRaw_WrongTypes(t *testing.T) {
	t.Parallel()
	ref := ParentRef{Kind: "dataflow", ID: "123"}

	_, err := FromRaw(parentFromJSON(t, `{"triggerSettings": "foo"}`), ref)
	require.Error(t, err)
	assert.Equal(t, `invalid trigger settings of dataflow "123": expected an object, found "string"`, err.Error())

	_, err = FromRaw(parentFromJSON(t, `{"triggerSettings": {"triggers": {}}}`), ref)
	require.Error(t, err)
	assert.Equal(t, `invalid trigger settings of dataflow "123": "triggers" must be a list, found "*orderedmap.OrderedMap"`, err.Error())
}

func TestFromRaw_ScheduleAndDatasetTriggers(t *testing.T) {
	t.Parallel()
	parent := parentFromJSON(t, `
{
  "id": "123",
  "triggerSettings": {
    "zoneId": "UTC",
    "triggers": [
      {
        "id": "t1",
        "title": "Daily",
        "events": [{"type": "SCHEDULE", "schedule": {"hour": 9, "minute": 0, "frequency": "DAILY"}}]
      },
      {
        "id": "t2",
        "title": "On input",
        "events": [{"type": "dataset_updated", "datasetId": "input-123"}]
      }
    ]
  }
}
`)

	s, err := FromRaw(parent, ParentRef{Kind: "dataflow", ID: "123"})
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "UTC", s.ZoneID)
	assert.Empty(t, s.AllInvalid())

	scheduleTriggers := s.ScheduleTriggers()
	require.Len(t, scheduleTriggers, 1)
	assert.Equal(t, "t1", scheduleTriggers[0].ID)

	datasetTriggers := s.DatasetTriggers()
	require.Len(t, datasetTriggers, 1)
	assert.Equal(t, "t2", datasetTriggers[0].ID)

	assert.True(t, s.HasAnySchedules())

	t1, found := s.Get("t1")
	require.True(t, found)
	event, ok := t1.Events[0].(*ScheduleEvent)
	require.True(t, ok)
	cronLike, ok := event.Schedule.(*schedule.CronLike)
	require.True(t, ok)
	assert.Equal(t, "0 9 * * *", cronLike.Expression())
	assert.Equal(t, "UTC", cronLike.Timezone())
	assert.Equal(t, 9, *cronLike.Hour())
	assert.Nil(t, t1.Conditions)

	t2, found := s.Get("t2")
	require.True(t, found)
	dataset, ok := t2.Events[0].(*DatasetUpdatedEvent)
	require.True(t, ok)
	assert.Equal(t, "input-123", dataset.DatasetID)
	assert.Equal(t, ChangeModeAnyUpdate, dataset.Mode)

	_, found = s.Get("missing")
	assert.False(t, found)

	expected := `
Triggers of dataflow "123": 2
- Trigger "Daily": Schedule: every day at 09:00 (UTC)
- Trigger "On input": Dataset ` + "`input-123`" + ` updated
`
	assert.Equal(t, strings.TrimSpace(expected), s.String())
}

func TestFromRaw_InvalidEntriesAreIsolated(t *testing.T) {
	t.Parallel()
	parent := parentFromJSON(t, `
{
  "triggerSettings": {
    "triggers": [
      "foo",
      {"title": "No ID"},
      {
        "id": "t1",
        "events": [
          {"type": "FOO"},
          {"type": "DATASET_UPDATED"},
          123,
          {"type": "DATASET_UPDATED", "datasetId": "in", "triggerOnDataChanged": true},
          {"type": "SCHEDULE", "schedule": "bar"},
          {"type": "SCHEDULE"}
        ],
        "conditions": [
          {"type": "rowCount", "expression": "> 100"},
          {"type": "time", "operator": "or", "expression": "after 08:00"},
          {"type": "x", "operator": "XOR"}
        ]
      },
      {"id": "t1"},
      {"id": "t2", "events": {}}
    ]
  }
}
`)

	s, err := FromRaw(parent, ParentRef{Kind: "dataflow"})
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	var settingsErrs []string
	for _, e := range s.Invalid {
		settingsErrs = append(settingsErrs, e.Error())
	}
	assert.Equal(t, []string{
		`triggers[0]: expected an object, found "string"`,
		`triggers[1]: missing "id"`,
		`triggers[3]: duplicate trigger id "t1"`,
		`triggers[4]: "events" must be a list, found "*orderedmap.OrderedMap"`,
	}, settingsErrs)
	assert.Equal(t, "foo", s.Invalid[0].Raw)

	t1 := s.Triggers[0]
	var triggerErrs []string
	for _, e := range t1.Invalid {
		triggerErrs = append(triggerErrs, e.Error())
	}
	assert.Equal(t, []string{
		`events[0]: unknown event type "FOO"`,
		`events[1]: missing "datasetId"`,
		`events[2]: expected an object, found "float64"`,
		`events[4]: "schedule" must be an object, found "string"`,
		`conditions[2]: unknown operator "XOR"`,
	}, triggerErrs)

	require.Len(t, t1.Events, 2)
	assert.Equal(t, ChangeModeDataChanged, t1.Events[0].(*DatasetUpdatedEvent).Mode)
	assert.False(t, t1.Events[1].(*ScheduleEvent).HasSchedule())
	assert.False(t, s.HasAnySchedules())
	assert.Empty(t, s.ScheduleTriggers())

	require.Len(t, t1.Conditions, 2)
	assert.Equal(t, OperatorAnd, t1.Conditions[0].Operator)
	assert.Equal(t, OperatorOr, t1.Conditions[1].Operator)
	assert.Equal(t, "Trigger \"t1\": Dataset `in` data changed; Schedule: not set if rowCount: > 100 OR time: after 08:00", t1.String())

	assert.Len(t, s.AllInvalid(), 9)
	assert.Equal(t, "triggers[t1].events[0]", s.AllInvalid()[4].Path())
	assert.Contains(t, s.String(), "Skipped invalid entries: 9")
}

func TestTrigger_ZeroEvents(t *testing.T) {
	t.Parallel()
	s, err := FromSection(map[string]any{"triggers": []any{map[string]any{"id": "t1", "title": "Empty"}}}, ParentRef{})
	require.NoError(t, err)
	t1, found := s.Get("t1")
	require.True(t, found)
	assert.NotNil(t, t1.Events)
	assert.Empty(t, t1.Events)
	assert.False(t, t1.IsScheduleOnly())
	assert.False(t, t1.HasDatasets())
	assert.Equal(t, `Trigger "Empty": no events`, t1.String())
	assert.Empty(t, s.ScheduleTriggers())
	assert.Empty(t, s.DatasetTriggers())
}

func TestTrigger_MixedEvents(t *testing.T) {
	t.Parallel()
	s, err := FromSection(map[string]any{"triggers": []any{map[string]any{
		"id": "t1",
		"events": []any{
			map[string]any{"type": "SCHEDULE", "schedule": map[string]any{"expression": "*/15 * * * *"}},
			map[string]any{"type": "DATASET_UPDATED", "datasetId": "in", "changeMode": "on_any_update"},
		},
	}}}, ParentRef{Kind: "dataflow", ID: "1"})
	require.NoError(t, err)
	assert.Empty(t, s.ScheduleTriggers())
	assert.Len(t, s.DatasetTriggers(), 1)
	assert.True(t, s.HasAnySchedules())
}

func TestEvent_RawIsKept(t *testing.T) {
	t.Parallel()
	raw := map[string]any{"type": "DATASET_UPDATED", "datasetId": "in", "extra": "value"}
	s, err := FromSection(map[string]any{"triggers": []any{map[string]any{"id": "t1", "events": []any{raw}}}}, ParentRef{})
	require.NoError(t, err)
	event := s.Triggers[0].Events[0]
	assert.Equal(t, raw, event.Raw().ToMap())

	// Copy
	event.Raw().Set("datasetId", "changed")
	v, _ := event.Raw().Get("datasetId")
	assert.Equal(t, "in", v)
}

func TestParentRef_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "unknown parent", ParentRef{}.String())
	assert.Equal(t, "dataflow", ParentRef{Kind: "dataflow"}.String())
	assert.Equal(t, `"1"`, ParentRef{ID: "1"}.String())
	assert.Equal(t, `dataflow "1"`, ParentRef{Kind: "dataflow", ID: "1"}.String())
}
