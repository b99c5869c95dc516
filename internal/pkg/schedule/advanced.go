package schedule

import (
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/cast"

	"github.com/keboola/kbc-conform/internal/pkg/encoding/json"
	"github.com/keboola/kbc-conform/internal/pkg/utils"
)

// Advanced schedule is an opaque structured block, it is not reducible to a single expression.
// The block and the whole payload are kept verbatim, hour, minute and timezone are read from them.
type Advanced struct {
	raw       *orderedmap.OrderedMap
	frequency Frequency
}

func newAdvanced(raw *orderedmap.OrderedMap) *Advanced {
	s := &Advanced{raw: raw, frequency: FrequencyAdvanced}
	if block := s.blockMap(); block != nil {
		for _, key := range []string{"frequency", "type"} {
			if v, found := block.Get(key); found {
				if f := Frequency(strings.ToUpper(strings.TrimSpace(cast.ToString(v)))); f.IsKnown() {
					s.frequency = f
					break
				}
			}
		}
	}
	return s
}

func (s *Advanced) isSchedule() {}

func (s *Advanced) Kind() Kind {
	return KindAdvanced
}

// Frequency is read from the "frequency" or "type" key of the block, ADVANCED if not known.
func (s *Advanced) Frequency() Frequency {
	return s.frequency
}

// Timezone from the payload, or from the block.
func (s *Advanced) Timezone() string {
	if v, found := s.raw.Get(KeyTimezone); found && v != nil {
		return cast.ToString(v)
	}
	if block := s.blockMap(); block != nil {
		if v, found := block.Get(KeyTimezone); found && v != nil {
			return cast.ToString(v)
		}
	}
	return ""
}

func (s *Advanced) Hour() *int {
	return intField(s.raw, KeyHour)
}

func (s *Advanced) Minute() *int {
	return intField(s.raw, KeyMinute)
}

// Block returns a copy of the advanced block, an object or a JSON string, as it was found in the payload.
func (s *Advanced) Block() any {
	v, _ := s.raw.Get(KeyAdvanced)
	return utils.CloneValue(v)
}

// Payload returns a copy of the whole raw payload.
func (s *Advanced) Payload() *orderedmap.OrderedMap {
	return s.raw.Clone()
}

func (s *Advanced) Raw() *orderedmap.OrderedMap {
	return s.Payload()
}

func (s *Advanced) String() string {
	if s.frequency == FrequencyAdvanced {
		return "Schedule: advanced"
	}
	return "Schedule: advanced (" + strings.ToLower(s.frequency.String()) + ")"
}

// blockMap returns the block as an object, a JSON string is decoded, nil if it is not an object.
func (s *Advanced) blockMap() *orderedmap.OrderedMap {
	v, _ := s.raw.Get(KeyAdvanced)
	if str, ok := v.(string); ok {
		m, err := json.DecodeMap([]byte(str))
		if err != nil {
			return nil
		}
		return m
	}
	m, _ := utils.AsOrderedMap(v)
	return m
}
