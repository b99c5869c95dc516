package trigger

import (
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/cast"

	"github.com/keboola/kbc-conform/internal/pkg/schedule"
	"github.com/keboola/kbc-conform/internal/pkg/utils"
)

// cronField is one field of the generated cron expression.
type cronField struct {
	keys  []string
	names map[string]string
}

// nolint: gochecknoglobals
var (
	fieldSecond     = cronField{keys: []string{"second"}}
	fieldMinute     = cronField{keys: []string{"minute"}}
	fieldHour       = cronField{keys: []string{"hour"}}
	fieldDayOfMonth = cronField{keys: []string{"dayOfMonth", "daysOfMonth"}}
	fieldMonth      = cronField{keys: []string{"month"}, names: shortNames(
		"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december",
	)}
	fieldDayOfWeek = cronField{keys: []string{"dayOfWeek", "daysOfWeek"}, names: shortNames(
		"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
	)}
)

// TranslateSchedule converts a schedule block embedded in a trigger event to the top-level schedule payload,
// which is then classified by schedule.FromRaw.
//
// The cadence expression is taken, in priority order, from:
//   - "expression" or "scheduleExpression", verbatim,
//   - "advancedScheduleJson", copied, so the schedule is classified as advanced,
//   - "frequency" MANUAL or ONCE,
//   - cron fields "second", "minute", "hour", "dayOfMonth", "month", "dayOfWeek" => "minute hour dom month dow".
//
// Missing cron fields default to "0 * * * *", the "frequency" DAILY, WEEKLY, MONTHLY or MINUTELY adjusts the defaults.
// A non-zero second is prepended as a seconds field. Quartz "?" is converted to "*".
// The timezone is taken from the block, or from the settings zone.
func TranslateSchedule(block *orderedmap.OrderedMap, zoneID string) *orderedmap.OrderedMap {
	out := orderedmap.New()
	if block == nil {
		return out
	}

	frequency := schedule.Frequency(strings.ToUpper(strings.TrimSpace(cast.ToString(block.GetOrNil("frequency")))))
	switch {
	case nonEmpty(block, "expression"):
		out.Set(schedule.KeyExpression, block.GetOrNil("expression"))
	case nonEmpty(block, schedule.KeyExpression):
		out.Set(schedule.KeyExpression, block.GetOrNil(schedule.KeyExpression))
	case nonEmpty(block, schedule.KeyAdvanced):
		out.Set(schedule.KeyAdvanced, utils.CloneValue(block.GetOrNil(schedule.KeyAdvanced)))
	case frequency == schedule.FrequencyManual || frequency == schedule.FrequencyOnce:
		out.Set(schedule.KeyExpression, frequency.String())
	default:
		if expr, ok := cronExpression(block, frequency); ok {
			out.Set(schedule.KeyExpression, expr)
		}
	}

	if tz := cast.ToString(block.GetOrNil(schedule.KeyTimezone)); strings.TrimSpace(tz) != "" {
		out.Set(schedule.KeyTimezone, tz)
	} else if zoneID != "" {
		out.Set(schedule.KeyTimezone, zoneID)
	}

	for _, key := range []string{schedule.KeyHour, schedule.KeyMinute} {
		if v, ok := schedule.IntValue(block.GetOrNil(key)); ok {
			out.Set(key, v)
		}
	}

	for _, key := range []string{schedule.KeyStartDate, "startDate"} {
		if nonEmpty(block, key) {
			out.Set(schedule.KeyStartDate, block.GetOrNil(key))
			break
		}
	}

	return out
}

func cronExpression(block *orderedmap.OrderedMap, frequency schedule.Frequency) (string, bool) {
	fields := []cronField{fieldMinute, fieldHour, fieldDayOfMonth, fieldMonth, fieldDayOfWeek}
	defaults := []string{"0", "*", "*", "*", "*"}
	hasCadence := true
	switch frequency {
	case schedule.FrequencyMinutely:
		defaults[0] = "*"
	case schedule.FrequencyHourly:
	case schedule.FrequencyDaily:
		defaults[1] = "0"
	case schedule.FrequencyWeekly:
		defaults[1], defaults[4] = "0", "0"
	case schedule.FrequencyMonthly:
		defaults[1], defaults[2] = "0", "1"
	default:
		hasCadence = false
	}

	found := false
	parts := make([]string, 0, len(fields)+1)
	for i, f := range fields {
		value, ok := f.value(block)
		if ok {
			found = true
		} else {
			value = defaults[i]
		}
		parts = append(parts, value)
	}

	if second, ok := fieldSecond.value(block); ok {
		found = true
		if second != "0" {
			parts = append([]string{second}, parts...)
		}
	}

	if !found && !hasCadence {
		return "", false
	}
	return strings.Join(parts, " "), true
}

// value returns the field as a cron field string, a list is joined by commas.
func (f cronField) value(block *orderedmap.OrderedMap) (string, bool) {
	for _, key := range f.keys {
		v, found := block.Get(key)
		if !found || utils.IsEmptyValue(v) {
			continue
		}

		var parts []string
		if list, ok := utils.AsSlice(v); ok {
			for _, item := range list {
				if part := f.part(item); part != "" {
					parts = append(parts, part)
				}
			}
		} else if part := f.part(v); part != "" {
			parts = append(parts, part)
		}

		if len(parts) > 0 {
			return strings.Join(parts, ","), true
		}
	}
	return "", false
}

func (f cronField) part(v any) string {
	str, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	str = strings.TrimSpace(str)
	if str == "?" {
		return "*"
	}
	if short, found := f.names[strings.ToLower(str)]; found {
		return short
	}
	return str
}

func shortNames(names ...string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		out[name] = strings.ToUpper(name[:3])
	}
	return out
}

func nonEmpty(block *orderedmap.OrderedMap, key string) bool {
	v, found := block.Get(key)
	return found && !utils.IsEmptyValue(v)
}
