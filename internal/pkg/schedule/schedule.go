// Package schedule classifies raw schedule payloads into one of the canonical schedule shapes.
//
// A payload is classified in priority order:
//   - an advanced block "advancedScheduleJson" => Advanced,
//   - a "scheduleExpression" with a keyword "manual" or "once" => Simple, any other expression => CronLike,
//   - otherwise => Simple "manual".
package schedule

import (
	"fmt"
	"time"

	"github.com/keboola/go-utils/pkg/orderedmap"
)

const (
	KeyAdvanced   = "advancedScheduleJson"
	KeyExpression = "scheduleExpression"
	KeyTimezone   = "timezone"
	KeyHour       = "hour"
	KeyMinute     = "minute"
	KeyStartDate  = "scheduleStartDate"
	keyStartDate2 = "startDate"
)

const (
	KindSimple   Kind = "simple"
	KindCron     Kind = "cron"
	KindAdvanced Kind = "advanced"
)

const (
	FrequencyManual   Frequency = "MANUAL"
	FrequencyOnce     Frequency = "ONCE"
	FrequencyMinutely Frequency = "MINUTELY"
	FrequencyHourly   Frequency = "HOURLY"
	FrequencyDaily    Frequency = "DAILY"
	FrequencyWeekly   Frequency = "WEEKLY"
	FrequencyMonthly  Frequency = "MONTHLY"
	FrequencyCustom   Frequency = "CUSTOM"
	FrequencyAdvanced Frequency = "ADVANCED"
)

// Kind discriminates the schedule variant.
type Kind string

// Frequency is a categorical cadence of the schedule.
type Frequency string

// Schedule is one of *Simple, *CronLike, *Advanced.
// The variant never changes, a changed raw payload must be classified again.
type Schedule interface {
	Kind() Kind
	Frequency() Frequency
	Timezone() string
	// Raw returns a copy of the raw payload the schedule was built from.
	Raw() *orderedmap.OrderedMap
	String() string
	isSchedule()
}

// MalformedScheduleError is returned if the raw schedule is not a mapping.
type MalformedScheduleError struct {
	Value any
}

func (e *MalformedScheduleError) Error() string {
	if e.Value == nil {
		return "malformed schedule: expected an object, found null"
	}
	return fmt.Sprintf(`malformed schedule: expected an object, found "%T"`, e.Value)
}

func (k Kind) String() string {
	return string(k)
}

func (f Frequency) String() string {
	return string(f)
}

// IsKnown returns true if the value is one of the defined frequencies.
func (f Frequency) IsKnown() bool {
	switch f {
	case FrequencyManual, FrequencyOnce, FrequencyMinutely, FrequencyHourly, FrequencyDaily,
		FrequencyWeekly, FrequencyMonthly, FrequencyCustom, FrequencyAdvanced:
		return true
	default:
		return false
	}
}

// timing holds fields attached to the Simple and CronLike variants.
type timing struct {
	timezone  string
	hour      *int
	minute    *int
	startDate *time.Time
	raw       *orderedmap.OrderedMap
}

func (t timing) Timezone() string {
	return t.timezone
}

// Hour returns the explicit hour, nil if not set.
func (t timing) Hour() *int {
	return copyInt(t.hour)
}

// Minute returns the explicit minute, nil if not set.
func (t timing) Minute() *int {
	return copyInt(t.minute)
}

// StartDate returns the date from which the schedule is active, nil if not set.
func (t timing) StartDate() *time.Time {
	if t.startDate == nil {
		return nil
	}
	v := *t.startDate
	return &v
}

func (t timing) Raw() *orderedmap.OrderedMap {
	return t.raw.Clone()
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
