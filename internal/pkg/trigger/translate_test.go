package trigger

import (
	"testing"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keboola/kbc-conform/internal/pkg/schedule"
	"github.com/keboola/kbc-conform/internal/pkg/utils"
)

func TestTranslateSchedule(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name     string
		block    map[string]any
		zoneID   string
		expected map[string]any
	}{
		{
			name:     "verbatim expression",
			block:    map[string]any{"expression": " 0  9 * * * ", "timezone": "Europe/Prague"},
			zoneID:   "UTC",
			expected: map[string]any{"scheduleExpression": " 0  9 * * * ", "timezone": "Europe/Prague"},
		},
		{
			name:     "top-level expression key",
			block:    map[string]any{"scheduleExpression": "manual"},
			expected: map[string]any{"scheduleExpression": "manual"},
		},
		{
			name:     "advanced",
			block:    map[string]any{"advancedScheduleJson": map[string]any{"a": 1}, "hour": 9},
			expected: map[string]any{"advancedScheduleJson": map[string]any{"a": 1}, "hour": 9},
		},
		{
			name:     "keyword frequency",
			block:    map[string]any{"frequency": "once", "hour": 9.0},
			zoneID:   "UTC",
			expected: map[string]any{"scheduleExpression": "ONCE", "timezone": "UTC", "hour": 9},
		},
		{
			name:     "daily",
			block:    map[string]any{"frequency": "DAILY", "hour": 9, "minute": 30},
			expected: map[string]any{"scheduleExpression": "30 9 * * *", "hour": 9, "minute": 30},
		},
		{
			name:     "daily without fields",
			block:    map[string]any{"frequency": "DAILY"},
			expected: map[string]any{"scheduleExpression": "0 0 * * *"},
		},
		{
			name:     "weekly",
			block:    map[string]any{"frequency": "WEEKLY", "hour": "6", "daysOfWeek": []any{"Monday", "FRI"}},
			expected: map[string]any{"scheduleExpression": "0 6 * * MON,FRI", "hour": 6},
		},
		{
			name:     "monthly",
			block:    map[string]any{"frequency": "MONTHLY", "daysOfMonth": []any{1.0, 15.0}},
			expected: map[string]any{"scheduleExpression": "0 0 1,15 * *"},
		},
		{
			name:     "quartz fields",
			block:    map[string]any{"second": 0, "minute": 15, "hour": "?", "dayOfMonth": "?", "month": "january", "dayOfWeek": "*"},
			expected: map[string]any{"scheduleExpression": "15 * * JAN *", "minute": 15},
		},
		{
			name:     "seconds",
			block:    map[string]any{"second": 30, "minute": 0, "hour": 9},
			expected: map[string]any{"scheduleExpression": "30 0 9 * * *", "minute": 0, "hour": 9},
		},
		{
			name:     "minutely",
			block:    map[string]any{"frequency": "minutely"},
			expected: map[string]any{"scheduleExpression": "* * * * *"},
		},
		{
			name:     "start date",
			block:    map[string]any{"frequency": "ONCE", "startDate": "2024-05-01T09:00:00Z"},
			expected: map[string]any{"scheduleExpression": "ONCE", "scheduleStartDate": "2024-05-01T09:00:00Z"},
		},
		{
			name:     "nothing",
			block:    map[string]any{"foo": "bar"},
			zoneID:   "UTC",
			expected: map[string]any{"timezone": "UTC"},
		},
	}

	for _, c := range cases {
		block, ok := utils.AsOrderedMap(c.block)
		require.True(t, ok)
		assert.Equal(t, c.expected, TranslateSchedule(block, c.zoneID).ToMap(), c.name)
	}
}

func TestTranslateSchedule_Classified(t *testing.T) {
	t.Parallel()
	cases := []struct {
		block       map[string]any
		kind        schedule.Kind
		description string
	}{
		{map[string]any{}, schedule.KindSimple, "Schedule: manual"},
		{map[string]any{"frequency": "ONCE", "hour": 9}, schedule.KindSimple, "Schedule: once at 09:00"},
		{map[string]any{"frequency": "WEEKLY", "hour": 9, "minute": 30, "daysOfWeek": []any{"MONDAY", "FRIDAY"}}, schedule.KindCron, "Schedule: every Monday, Friday at 09:30"},
		{map[string]any{"frequency": "MONTHLY", "hour": 6, "dayOfMonth": 1}, schedule.KindCron, "Schedule: on day 1 of every month at 06:00"},
		{map[string]any{"advancedScheduleJson": `{"frequency": "daily"}`}, schedule.KindAdvanced, "Schedule: advanced (daily)"},
	}

	for _, c := range cases {
		block, _ := utils.AsOrderedMap(c.block)
		s, err := schedule.FromRaw(TranslateSchedule(block, ""))
		require.NoError(t, err)
		assert.Equal(t, c.kind, s.Kind(), c.description)
		assert.Equal(t, c.description, s.String())
	}
}

func TestTranslateSchedule_NumericStrings(t *testing.T) {
	t.Parallel()
	block, _ := utils.AsOrderedMap(map[string]any{"frequency": "DAILY", "hour": "9", "minute": "30"})
	translated := TranslateSchedule(block, "")
	assert.Equal(t, map[string]any{"scheduleExpression": "30 9 * * *", "hour": 9, "minute": 30}, translated.ToMap())

	s, err := schedule.FromRaw(translated)
	require.NoError(t, err)
	cronLike, ok := s.(*schedule.CronLike)
	require.True(t, ok)
	require.NotNil(t, cronLike.Hour())
	require.NotNil(t, cronLike.Minute())
	assert.Equal(t, 9, *cronLike.Hour())
	assert.Equal(t, 30, *cronLike.Minute())
	assert.Equal(t, "Schedule: every day at 09:30", s.String())
}

func TestTranslateSchedule_Nil(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, TranslateSchedule(nil, "UTC").Len())
	assert.Equal(t, 0, TranslateSchedule(orderedmap.New(), "").Len())
}
