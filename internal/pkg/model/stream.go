package model

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/keboola/go-client/pkg/keboola"
	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/keboola/kbc-conform/internal/pkg/conformed"
	"github.com/keboola/kbc-conform/internal/pkg/schedule"
	"github.com/keboola/kbc-conform/internal/pkg/typedconfig"
	"github.com/keboola/kbc-conform/internal/pkg/utils/errors"
)

// Stream is a data source configuration with an optional schedule.
type Stream struct {
	ID            keboola.ConfigID          `json:"id" validate:"required"`
	Name          string                    `json:"name"`
	ComponentID   keboola.ComponentID       `json:"componentId" validate:"required"`
	Configuration typedconfig.Configuration `json:"-"`
	// Schedule is nil if the stream has no schedule section.
	Schedule schedule.Schedule `json:"-"`
	registry *conformed.Registry
	raw      *orderedmap.OrderedMap
}

// NewStream builds the stream from the raw payload, properties are resolved by the registry or by the default registry if nil.
func NewStream(ctx context.Context, raw any, registry *conformed.Registry) (*Stream, error) {
	values, err := rawObject(KindStream, raw)
	if err != nil {
		return nil, err
	}
	if registry == nil {
		registry = conformed.Default()
	}

	s := &Stream{
		ID:          keboola.ConfigID(stringValue(values, "id")),
		Name:        stringValue(values, "name"),
		ComponentID: keboola.ComponentID(stringValue(values, "componentId")),
		registry:    registry,
		raw:         values,
	}

	if err := entityValidator.Validate(ctx, s); err != nil {
		return nil, errors.PrefixErrorf(err, `invalid %s "%s"`, KindStream, s.ID)
	}

	errs := errors.NewMultiError()

	cfg, err := typedconfig.New(s.ComponentID, values.GetOrNil("configuration"))
	if err != nil {
		errs.Append(err)
	}
	s.Configuration = cfg

	if rawSchedule, found := values.Get("schedule"); found && rawSchedule != nil {
		if s.Schedule, err = schedule.FromRaw(rawSchedule); err != nil {
			errs.Append(err)
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, errors.PrefixErrorf(err, `invalid %s "%s"`, KindStream, s.ID)
	}
	return s, nil
}

func (s *Stream) Raw() *orderedmap.OrderedMap {
	return s.raw.Clone()
}

// Property reads the conformed property, found is false if the provider does not support it or it is not set.
func (s *Stream) Property(name string) (any, bool) {
	return s.registry.ReadFrom(name, s.Configuration)
}

func (s *Stream) PropertyString(name string) (string, bool) {
	return s.registry.ReadString(name, s.Configuration)
}

// Properties returns all set conformed properties, sorted by name.
func (s *Stream) Properties() *orderedmap.OrderedMap {
	out := orderedmap.New()
	for _, p := range s.registry.Properties() {
		if value, found := s.Property(p.Name); found {
			out.Set(p.Name, value)
		}
	}
	return out
}

// NextRun returns the next scheduled run after the current time of the clock.
// Found is false for a stream without a schedule, for a manual schedule, and for an already passed "once" schedule.
func (s *Stream) NextRun(clock clockwork.Clock) (next time.Time, found bool, err error) {
	now := clock.Now()
	switch v := s.Schedule.(type) {
	case *schedule.CronLike:
		next, err = v.Next(now)
		if err != nil {
			return time.Time{}, false, err
		}
		return next, true, nil
	case *schedule.Simple:
		if v.Frequency() != schedule.FrequencyOnce || v.StartDate() == nil {
			return time.Time{}, false, nil
		}
		next = *v.StartDate()
		if hour := v.Hour(); hour != nil {
			minute := 0
			if m := v.Minute(); m != nil {
				minute = *m
			}
			next = time.Date(next.Year(), next.Month(), next.Day(), *hour, minute, 0, 0, next.Location())
		}
		if !next.After(now) {
			return time.Time{}, false, nil
		}
		return next, true, nil
	default:
		return time.Time{}, false, nil
	}
}
