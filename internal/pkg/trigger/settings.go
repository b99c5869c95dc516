package trigger

import (
	"fmt"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
)

// ParentRef identifies the entity which owns the settings, it is used for display only.
type ParentRef struct {
	Kind string
	ID   string
}

// Settings is an ordered collection of triggers.
type Settings struct {
	Triggers []*Trigger
	Parent   ParentRef
	// ZoneID is the default timezone of the embedded schedules.
	ZoneID string
	// Invalid contains skipped trigger entries.
	Invalid []InvalidEntry
	raw     *orderedmap.OrderedMap
}

func (r ParentRef) String() string {
	switch {
	case r.Kind == "" && r.ID == "":
		return "unknown parent"
	case r.ID == "":
		return r.Kind
	case r.Kind == "":
		return fmt.Sprintf("%q", r.ID)
	default:
		return fmt.Sprintf("%s %q", r.Kind, r.ID)
	}
}

func (s *Settings) Raw() *orderedmap.OrderedMap {
	return s.raw.Clone()
}

func (s *Settings) Len() int {
	return len(s.Triggers)
}

// Get returns the trigger by ID, found is false if there is no such trigger.
func (s *Settings) Get(id string) (*Trigger, bool) {
	for _, t := range s.Triggers {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// ScheduleTriggers returns triggers which have events and all of them are schedule events.
func (s *Settings) ScheduleTriggers() (out []*Trigger) {
	for _, t := range s.Triggers {
		if t.IsScheduleOnly() {
			out = append(out, t)
		}
	}
	return out
}

// DatasetTriggers returns triggers with at least one dataset event.
func (s *Settings) DatasetTriggers() (out []*Trigger) {
	for _, t := range s.Triggers {
		if t.HasDatasets() {
			out = append(out, t)
		}
	}
	return out
}

// HasAnySchedules returns true if any trigger has a populated schedule.
func (s *Settings) HasAnySchedules() bool {
	for _, t := range s.Triggers {
		if t.HasSchedule() {
			return true
		}
	}
	return false
}

// AllInvalid returns skipped entries of the settings and of all triggers, trigger entries are prefixed by the trigger path.
func (s *Settings) AllInvalid() []InvalidEntry {
	out := append([]InvalidEntry(nil), s.Invalid...)
	for _, t := range s.Triggers {
		for _, e := range t.Invalid {
			e.Section = fmt.Sprintf("triggers[%s].%s", t.ID, e.Section)
			out = append(out, e)
		}
	}
	return out
}

func (s *Settings) String() string {
	var b strings.Builder
	if len(s.Triggers) == 0 {
		b.WriteString(fmt.Sprintf("Triggers of %s: none", s.Parent))
	} else {
		b.WriteString(fmt.Sprintf("Triggers of %s: %d", s.Parent, len(s.Triggers)))
		for _, t := range s.Triggers {
			b.WriteString("\n- " + t.String())
		}
	}
	if n := len(s.AllInvalid()); n > 0 {
		b.WriteString(fmt.Sprintf("\nSkipped invalid entries: %d", n))
	}
	return b.String()
}
