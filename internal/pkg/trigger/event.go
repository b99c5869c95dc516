package trigger

import (
	"fmt"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/keboola/kbc-conform/internal/pkg/schedule"
)

const (
	EventKindSchedule       EventKind = "SCHEDULE"
	EventKindDatasetUpdated EventKind = "DATASET_UPDATED"
)

const (
	ChangeModeAnyUpdate   ChangeMode = "ON_ANY_UPDATE"
	ChangeModeDataChanged ChangeMode = "ON_DATA_CHANGED"
)

// EventKind discriminates the event variant.
type EventKind string

// ChangeMode defines which dataset change fires the event.
type ChangeMode string

// Event is one of *ScheduleEvent, *DatasetUpdatedEvent.
type Event interface {
	Kind() EventKind
	// Raw returns a copy of the raw event entry.
	Raw() *orderedmap.OrderedMap
	String() string
	isEvent()
}

// ScheduleEvent fires when the schedule elapses.
type ScheduleEvent struct {
	// Schedule is nil if the entry has no schedule data.
	Schedule schedule.Schedule
	raw      *orderedmap.OrderedMap
}

// DatasetUpdatedEvent fires when the dataset changes.
type DatasetUpdatedEvent struct {
	DatasetID string
	Mode      ChangeMode
	raw       *orderedmap.OrderedMap
}

func (k EventKind) String() string {
	return string(k)
}

func (m ChangeMode) String() string {
	return string(m)
}

func (e *ScheduleEvent) isEvent() {}

func (e *ScheduleEvent) Kind() EventKind {
	return EventKindSchedule
}

func (e *ScheduleEvent) Raw() *orderedmap.OrderedMap {
	return e.raw.Clone()
}

// HasSchedule returns true if the event carries a schedule.
func (e *ScheduleEvent) HasSchedule() bool {
	return e.Schedule != nil
}

func (e *ScheduleEvent) String() string {
	if e.Schedule == nil {
		return "Schedule: not set"
	}
	return e.Schedule.String()
}

func (e *DatasetUpdatedEvent) isEvent() {}

func (e *DatasetUpdatedEvent) Kind() EventKind {
	return EventKindDatasetUpdated
}

func (e *DatasetUpdatedEvent) Raw() *orderedmap.OrderedMap {
	return e.raw.Clone()
}

func (e *DatasetUpdatedEvent) String() string {
	if e.Mode == ChangeModeDataChanged {
		return fmt.Sprintf("Dataset `%s` data changed", e.DatasetID)
	}
	return fmt.Sprintf("Dataset `%s` updated", e.DatasetID)
}
