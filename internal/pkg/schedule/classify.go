package schedule

import (
	"bytes"
	"strings"
	"time"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/relvacode/iso8601"
	"github.com/spf13/cast"
	"github.com/umisama/go-regexpcache"

	"github.com/keboola/kbc-conform/internal/pkg/encoding/json"
	"github.com/keboola/kbc-conform/internal/pkg/utils"
	"github.com/keboola/kbc-conform/internal/pkg/utils/errors"
)

// Classify returns the kind of the schedule without constructing it.
func Classify(raw any) (Kind, error) {
	values, ok := utils.AsOrderedMap(raw)
	if !ok {
		return "", &MalformedScheduleError{Value: raw}
	}
	kind, _ := classify(values)
	return kind, nil
}

// FromRaw classifies the raw schedule and constructs the matching variant.
func FromRaw(raw any) (Schedule, error) {
	values, ok := utils.AsOrderedMap(raw)
	if !ok {
		return nil, &MalformedScheduleError{Value: raw}
	}

	// The schedule owns its copy of the payload
	values = values.Clone()

	kind, keyword := classify(values)
	switch kind {
	case KindAdvanced:
		return newAdvanced(values), nil
	case KindCron:
		expr, _ := values.Get(KeyExpression)
		return newCronLike(cast.ToString(expr), timingFrom(values)), nil
	default:
		return &Simple{frequency: keyword, timing: timingFrom(values)}, nil
	}
}

// FromJSON decodes a JSON value and classifies it, a valid JSON which is not an object is a malformed schedule.
func FromJSON(data []byte) (Schedule, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		var value any
		if err := json.Decode(data, &value); err != nil {
			return nil, errors.PrefixError(err, "invalid schedule")
		}
		return nil, &MalformedScheduleError{Value: value}
	}

	values, err := json.DecodeMap(data)
	if err != nil {
		return nil, errors.PrefixError(err, "invalid schedule")
	}
	return FromRaw(values)
}

// MustFromRaw is FromRaw which panics on an error.
func MustFromRaw(raw any) Schedule {
	s, err := FromRaw(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// NormalizeExpression trims the expression, collapses inner white space and converts it to upper case.
func NormalizeExpression(expr string) string {
	expr = regexpcache.MustCompile(`\s+`).ReplaceAllString(strings.TrimSpace(expr), " ")
	return strings.ToUpper(expr)
}

// IsKeyword returns true if the expression is a primitive cadence keyword "manual" or "once".
func IsKeyword(expr string) bool {
	switch Frequency(NormalizeExpression(expr)) {
	case FrequencyManual, FrequencyOnce:
		return true
	default:
		return false
	}
}

// classify returns the kind and, for the Simple kind, the keyword frequency.
func classify(values *orderedmap.OrderedMap) (Kind, Frequency) {
	// 1. Advanced block has the highest priority
	if advanced, found := values.Get(KeyAdvanced); found && !utils.IsEmptyValue(advanced) {
		return KindAdvanced, ""
	}

	// 2. Cadence expression
	if raw, found := values.Get(KeyExpression); found && raw != nil {
		if expr, err := cast.ToStringE(raw); err == nil {
			switch normalized := Frequency(NormalizeExpression(expr)); normalized {
			case "":
				// fallback
			case FrequencyManual, FrequencyOnce:
				return KindSimple, normalized
			default:
				return KindCron, ""
			}
		}
	}

	// 3. No recognizable schedule means manual
	return KindSimple, FrequencyManual
}

func timingFrom(values *orderedmap.OrderedMap) timing {
	t := timing{raw: values}
	if v, found := values.Get(KeyTimezone); found && v != nil {
		t.timezone = cast.ToString(v)
	}
	t.hour = intField(values, KeyHour)
	t.minute = intField(values, KeyMinute)
	t.startDate = startDate(values)
	return t
}

// intField reads a number or a numeric string, other values are ignored.
func intField(values *orderedmap.OrderedMap, key string) *int {
	v, found := values.Get(key)
	if !found || utils.IsEmptyValue(v) {
		return nil
	}
	out, ok := IntValue(v)
	if !ok {
		return nil
	}
	return &out
}

// IntValue converts a number or a numeric string, eg. "09", to int.
func IntValue(v any) (int, bool) {
	switch value := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		// "09" is a decimal number, not an octal one
		value = strings.TrimLeft(strings.TrimSpace(value), "0")
		if value == "" {
			value = "0"
		}
		v = value
	}
	out, err := cast.ToIntE(v)
	return out, err == nil
}

// startDate is used only for display and the next run, an invalid date is ignored.
func startDate(values *orderedmap.OrderedMap) *time.Time {
	for _, key := range []string{KeyStartDate, keyStartDate2} {
		v, found := values.Get(key)
		if !found {
			continue
		}
		str, ok := v.(string)
		if !ok || strings.TrimSpace(str) == "" {
			continue
		}
		if t, err := iso8601.ParseString(strings.TrimSpace(str)); err == nil {
			return &t
		}
	}
	return nil
}
