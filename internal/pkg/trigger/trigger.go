// Package trigger composes triggers from schedule and dataset events.
//
// Settings are parsed from the "triggerSettings" section of a parent entity, eg. a dataflow.
// An absent section means no settings, an empty section means settings without triggers.
// A malformed trigger, event or condition entry is skipped and kept as an InvalidEntry.
package trigger

import (
	"fmt"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
)

// Trigger is a named set of events with optional conditions.
type Trigger struct {
	ID    string
	Title string
	// Events are never nil, a trigger without events is valid.
	Events []Event
	// Conditions are nil if the trigger has no conditions section.
	Conditions []*Condition
	// Invalid contains skipped event and condition entries.
	Invalid []InvalidEntry
	raw     *orderedmap.OrderedMap
}

// InvalidEntry is a skipped malformed entry, the raw value is kept for display.
type InvalidEntry struct {
	Section string
	Index   int
	Raw     any
	Err     error
}

func (e InvalidEntry) Path() string {
	return fmt.Sprintf("%s[%d]", e.Section, e.Index)
}

func (e InvalidEntry) Error() string {
	return e.Path() + ": " + e.Err.Error()
}

func (t *Trigger) Raw() *orderedmap.OrderedMap {
	return t.raw.Clone()
}

// ScheduleEvents returns schedule events of the trigger.
func (t *Trigger) ScheduleEvents() (out []*ScheduleEvent) {
	for _, e := range t.Events {
		if v, ok := e.(*ScheduleEvent); ok {
			out = append(out, v)
		}
	}
	return out
}

// DatasetEvents returns dataset events of the trigger.
func (t *Trigger) DatasetEvents() (out []*DatasetUpdatedEvent) {
	for _, e := range t.Events {
		if v, ok := e.(*DatasetUpdatedEvent); ok {
			out = append(out, v)
		}
	}
	return out
}

// IsScheduleOnly returns true if the trigger has at least one event and all events are schedule events.
func (t *Trigger) IsScheduleOnly() bool {
	return len(t.Events) > 0 && len(t.ScheduleEvents()) == len(t.Events)
}

// HasDatasets returns true if any event references a dataset.
func (t *Trigger) HasDatasets() bool {
	return len(t.DatasetEvents()) > 0
}

// HasSchedule returns true if any event carries a schedule.
func (t *Trigger) HasSchedule() bool {
	for _, e := range t.ScheduleEvents() {
		if e.HasSchedule() {
			return true
		}
	}
	return false
}

// Name returns the title, or the ID if the title is empty.
func (t *Trigger) Name() string {
	if t.Title != "" {
		return t.Title
	}
	return t.ID
}

func (t *Trigger) String() string {
	var events []string
	for _, e := range t.Events {
		events = append(events, e.String())
	}

	out := fmt.Sprintf("Trigger %q: ", t.Name())
	if len(events) == 0 {
		out += "no events"
	} else {
		out += strings.Join(events, "; ")
	}
	if len(t.Conditions) > 0 {
		out += " if " + describeConditions(t.Conditions)
	}
	return out
}
