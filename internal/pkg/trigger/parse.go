package trigger

import (
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/cast"

	"github.com/keboola/kbc-conform/internal/pkg/schedule"
	"github.com/keboola/kbc-conform/internal/pkg/utils"
	"github.com/keboola/kbc-conform/internal/pkg/utils/errors"
)

const (
	KeySettings   = "triggerSettings"
	keyTriggers   = "triggers"
	keyZoneID     = "zoneId"
	keyID         = "id"
	keyTitle      = "title"
	keyEvents     = "events"
	keyConditions = "conditions"
	keyType       = "type"
	keySchedule   = "schedule"
	keyDatasetID  = "datasetId"
	keyChangeMode = "changeMode"
	keyOnChanged  = "triggerOnDataChanged"
	keyOperator   = "operator"
	keyExpression = "expression"
)

// FromRaw parses trigger settings from the parent entity.
// It returns nil, nil if the parent has no settings section.
// An error is returned only if the section or its triggers list has a wrong type,
// malformed entries are skipped, see InvalidEntry.
func FromRaw(parent *orderedmap.OrderedMap, ref ParentRef) (*Settings, error) {
	if parent == nil {
		return nil, nil
	}
	section, found := parent.Get(KeySettings)
	if !found || section == nil {
		return nil, nil
	}
	return FromSection(section, ref)
}

// FromSection parses the content of the settings section.
func FromSection(section any, ref ParentRef) (*Settings, error) {
	values, ok := utils.AsOrderedMap(section)
	if !ok {
		return nil, errors.Errorf(`invalid trigger settings of %s: expected an object, found "%T"`, ref, section)
	}

	s := &Settings{Triggers: []*Trigger{}, Parent: ref, raw: values.Clone()}
	if v, found := values.Get(keyZoneID); found && v != nil {
		s.ZoneID = strings.TrimSpace(cast.ToString(v))
	}

	rawTriggers, found := values.Get(keyTriggers)
	if !found || rawTriggers == nil {
		return s, nil
	}
	entries, ok := utils.AsSlice(rawTriggers)
	if !ok {
		return nil, errors.Errorf(`invalid trigger settings of %s: "%s" must be a list, found "%T"`, ref, keyTriggers, rawTriggers)
	}

	ids := make(map[string]bool)
	for i, entry := range entries {
		t, err := parseTrigger(entry, s.ZoneID)
		if err == nil && ids[t.ID] {
			err = errors.Errorf(`duplicate trigger id "%s"`, t.ID)
		}
		if err != nil {
			s.Invalid = append(s.Invalid, InvalidEntry{Section: keyTriggers, Index: i, Raw: utils.CloneValue(entry), Err: err})
			continue
		}
		ids[t.ID] = true
		s.Triggers = append(s.Triggers, t)
	}

	return s, nil
}

func parseTrigger(entry any, zoneID string) (*Trigger, error) {
	values, ok := utils.AsOrderedMap(entry)
	if !ok {
		return nil, errors.Errorf(`expected an object, found "%T"`, entry)
	}
	values = values.Clone()

	t := &Trigger{Events: []Event{}, raw: values}
	t.ID = stringValue(values, keyID)
	if t.ID == "" {
		return nil, errors.Errorf(`missing "%s"`, keyID)
	}
	t.Title = stringValue(values, keyTitle)

	events, err := listValue(values, keyEvents)
	if err != nil {
		return nil, err
	}
	for i, entry := range events {
		event, err := parseEvent(entry, zoneID)
		if err != nil {
			t.Invalid = append(t.Invalid, InvalidEntry{Section: keyEvents, Index: i, Raw: utils.CloneValue(entry), Err: err})
			continue
		}
		t.Events = append(t.Events, event)
	}

	conditions, err := listValue(values, keyConditions)
	if err != nil {
		return nil, err
	}
	if conditions != nil {
		t.Conditions = []*Condition{}
	}
	for i, entry := range conditions {
		condition, err := parseCondition(entry)
		if err != nil {
			t.Invalid = append(t.Invalid, InvalidEntry{Section: keyConditions, Index: i, Raw: utils.CloneValue(entry), Err: err})
			continue
		}
		t.Conditions = append(t.Conditions, condition)
	}

	return t, nil
}

func parseEvent(entry any, zoneID string) (Event, error) {
	values, ok := utils.AsOrderedMap(entry)
	if !ok {
		return nil, errors.Errorf(`expected an object, found "%T"`, entry)
	}
	values = values.Clone()

	switch kind := EventKind(strings.ToUpper(stringValue(values, keyType))); kind {
	case EventKindSchedule:
		return parseScheduleEvent(values, zoneID)
	case EventKindDatasetUpdated:
		return parseDatasetEvent(values)
	case "":
		return nil, errors.Errorf(`missing event "%s"`, keyType)
	default:
		return nil, errors.Errorf(`unknown event type "%s"`, kind)
	}
}

func parseScheduleEvent(values *orderedmap.OrderedMap, zoneID string) (*ScheduleEvent, error) {
	e := &ScheduleEvent{raw: values}

	block, found := values.Get(keySchedule)
	if !found || block == nil {
		return e, nil
	}
	blockMap, ok := utils.AsOrderedMap(block)
	if !ok {
		return nil, errors.Errorf(`"%s" must be an object, found "%T"`, keySchedule, block)
	}

	s, err := schedule.FromRaw(TranslateSchedule(blockMap, zoneID))
	if err != nil {
		return nil, err
	}
	e.Schedule = s
	return e, nil
}

func parseDatasetEvent(values *orderedmap.OrderedMap) (*DatasetUpdatedEvent, error) {
	e := &DatasetUpdatedEvent{raw: values, Mode: ChangeModeAnyUpdate}

	e.DatasetID = stringValue(values, keyDatasetID)
	if e.DatasetID == "" {
		return nil, errors.Errorf(`missing "%s"`, keyDatasetID)
	}

	if mode := strings.ToUpper(stringValue(values, keyChangeMode)); mode != "" {
		switch ChangeMode(mode) {
		case ChangeModeAnyUpdate, ChangeModeDataChanged:
			e.Mode = ChangeMode(mode)
		default:
			return nil, errors.Errorf(`unknown change mode "%s"`, mode)
		}
	} else if v, found := values.Get(keyOnChanged); found && cast.ToBool(v) {
		e.Mode = ChangeModeDataChanged
	}

	return e, nil
}

func parseCondition(entry any) (*Condition, error) {
	values, ok := utils.AsOrderedMap(entry)
	if !ok {
		return nil, errors.Errorf(`expected an object, found "%T"`, entry)
	}
	values = values.Clone()

	c := &Condition{raw: values, Operator: OperatorAnd}
	c.Type = stringValue(values, keyType)
	if c.Type == "" {
		return nil, errors.Errorf(`missing condition "%s"`, keyType)
	}
	c.Expression = stringValue(values, keyExpression)

	if op := strings.ToUpper(stringValue(values, keyOperator)); op != "" {
		switch Operator(op) {
		case OperatorAnd, OperatorOr:
			c.Operator = Operator(op)
		default:
			return nil, errors.Errorf(`unknown operator "%s"`, op)
		}
	}
	return c, nil
}

// stringValue returns a trimmed scalar value, empty string for a missing or non-scalar value.
func stringValue(values *orderedmap.OrderedMap, key string) string {
	v, found := values.Get(key)
	if !found || v == nil {
		return ""
	}
	str, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(str)
}

// listValue returns nil for a missing or null value, and an error for a value which is not a list.
func listValue(values *orderedmap.OrderedMap, key string) ([]any, error) {
	v, found := values.Get(key)
	if !found || v == nil {
		return nil, nil
	}
	list, ok := utils.AsSlice(v)
	if !ok {
		return nil, errors.Errorf(`"%s" must be a list, found "%T"`, key, v)
	}
	if list == nil {
		list = []any{}
	}
	return list, nil
}
