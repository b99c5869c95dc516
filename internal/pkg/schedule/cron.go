package schedule

import (
	"fmt"
	"math/bits"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/keboola/kbc-conform/internal/pkg/utils/errors"
)

// starBit marks a field specified by "*" or "?", see cron.SpecSchedule.
const starBit = 1 << 63

// nolint: gochecknoglobals
var parser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// CronLike schedule is defined by a cadence expression, optionally with an explicit hour, minute and timezone.
// The expression is stored verbatim, it may not be a valid cron expression.
type CronLike struct {
	timing
	expression string
	cadence    cadence
}

// cadence is derived from the parsed expression.
type cadence struct {
	frequency   Frequency
	description string
}

func newCronLike(expression string, t timing) *CronLike {
	return &CronLike{timing: t, expression: expression, cadence: deriveCadence(expression)}
}

func (s *CronLike) isSchedule() {}

func (s *CronLike) Kind() Kind {
	return KindCron
}

// Expression returns the expression exactly as it was found in the raw payload.
func (s *CronLike) Expression() string {
	return s.expression
}

// Frequency is derived from the expression, it is CUSTOM if the expression cannot be parsed or is irregular.
func (s *CronLike) Frequency() Frequency {
	return s.cadence.frequency
}

// Valid returns true if the expression is a parseable cron expression.
func (s *CronLike) Valid() bool {
	_, err := parser.Parse(strings.TrimSpace(s.expression))
	return err == nil
}

// Next returns the first run strictly after the time, the start date is respected.
// The expression is evaluated in the schedule timezone, UTC by default.
func (s *CronLike) Next(after time.Time) (time.Time, error) {
	expr := strings.TrimSpace(s.expression)
	if !strings.HasPrefix(expr, "TZ=") && !strings.HasPrefix(expr, "CRON_TZ=") {
		tz := s.timezone
		if tz == "" {
			tz = "UTC"
		}
		expr = "CRON_TZ=" + tz + " " + expr
	}

	sched, err := parser.Parse(expr)
	if err != nil {
		return time.Time{}, errors.PrefixErrorf(err, `cannot evaluate expression "%s"`, s.expression)
	}

	if s.startDate != nil && after.Before(*s.startDate) {
		after = s.startDate.Add(-time.Nanosecond)
	}

	next := sched.Next(after)
	if next.IsZero() {
		return time.Time{}, errors.Errorf(`expression "%s" has no next run after "%s"`, s.expression, after.Format(time.RFC3339))
	}
	return next, nil
}

func (s *CronLike) String() string {
	return "Schedule: " + s.cadence.description + timezoneSuffix(s.timezone)
}

func deriveCadence(expression string) cadence {
	fallback := cadence{frequency: FrequencyCustom, description: fmt.Sprintf(`cron "%s"`, expression)}

	sched, err := parser.Parse(strings.TrimSpace(expression))
	if err != nil {
		return fallback
	}

	switch v := sched.(type) {
	case *cron.SpecSchedule:
		if c, ok := specCadence(v); ok {
			return c
		}
	case cron.ConstantDelaySchedule:
		if c, ok := delayCadence(v.Delay); ok {
			return c
		}
	}
	return fallback
}

func specCadence(s *cron.SpecSchedule) (cadence, bool) {
	if second, ok := single(s.Second); !ok || second != 0 {
		return cadence{}, false
	}
	if !isAll(s.Month, 1, 12) {
		return cadence{}, false
	}

	everyDay := isAll(s.Dom, 1, 31) && isAll(s.Dow, 0, 6)
	minute, singleMinute := single(s.Minute)
	hour, singleHour := single(s.Hour)

	switch {
	case everyDay && isAll(s.Hour, 0, 23) && isAll(s.Minute, 0, 59):
		return cadence{frequency: FrequencyMinutely, description: "every minute"}, true
	case everyDay && isAll(s.Hour, 0, 23) && singleMinute:
		return cadence{frequency: FrequencyHourly, description: fmt.Sprintf("every hour at minute %d", minute)}, true
	case everyDay && isAll(s.Hour, 0, 23):
		if step, ok := evenStep(s.Minute, 60); ok {
			return cadence{frequency: FrequencyMinutely, description: fmt.Sprintf("every %d minutes", step)}, true
		}
	case everyDay && singleHour && singleMinute:
		return cadence{frequency: FrequencyDaily, description: "every day at " + clock(hour, minute)}, true
	case s.Dom&starBit != 0 && singleHour && singleMinute:
		return cadence{frequency: FrequencyWeekly, description: fmt.Sprintf("every %s at %s", weekdays(s.Dow), clock(hour, minute))}, true
	case s.Dow&starBit != 0 && singleHour && singleMinute:
		if day, ok := single(s.Dom); ok {
			return cadence{frequency: FrequencyMonthly, description: fmt.Sprintf("on day %d of every month at %s", day, clock(hour, minute))}, true
		}
	}
	return cadence{}, false
}

func delayCadence(delay time.Duration) (cadence, bool) {
	switch {
	case delay == time.Minute:
		return cadence{frequency: FrequencyMinutely, description: "every minute"}, true
	case delay < time.Hour && delay%time.Minute == 0:
		return cadence{frequency: FrequencyMinutely, description: fmt.Sprintf("every %d minutes", delay/time.Minute)}, true
	case delay == time.Hour:
		return cadence{frequency: FrequencyHourly, description: "every hour"}, true
	case delay == 24*time.Hour:
		return cadence{frequency: FrequencyDaily, description: "every day"}, true
	default:
		return cadence{}, false
	}
}

func isAll(field uint64, min, max uint) bool {
	return field&^starBit == rangeBits(min, max)
}

func rangeBits(min, max uint) uint64 {
	return ^(^uint64(0) << (max + 1)) & (^uint64(0) << min)
}

// single returns the value if exactly one value is set in the field.
func single(field uint64) (int, bool) {
	field &^= starBit
	if bits.OnesCount64(field) != 1 {
		return 0, false
	}
	return bits.TrailingZeros64(field), true
}

// evenStep detects "*/step" fields, eg. minutes 0,15,30,45.
func evenStep(field uint64, size int) (int, bool) {
	field &^= starBit
	count := bits.OnesCount64(field)
	if count < 2 || size%count != 0 || field&1 == 0 {
		return 0, false
	}
	step := size / count
	for v := 0; v < size; v += step {
		if field&(1<<uint(v)) == 0 {
			return 0, false
		}
	}
	return step, true
}

func weekdays(field uint64) string {
	var names []string
	for d := 0; d <= 6; d++ {
		if field&(1<<uint(d)) != 0 {
			names = append(names, time.Weekday(d).String())
		}
	}
	return strings.Join(names, ", ")
}

func clock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

func valueOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func timezoneSuffix(tz string) string {
	if tz == "" {
		return ""
	}
	return " (" + tz + ")"
}
