package utils

import (
	"sort"
	"strings"

	"github.com/keboola/go-utils/pkg/deepcopy"
	"github.com/keboola/go-utils/pkg/orderedmap"
)

// AsOrderedMap converts a raw JSON object to the OrderedMap.
// Keys of a plain map are sorted, so the result is deterministic.
// The OrderedMap is returned as it is, it is not cloned.
func AsOrderedMap(value any) (*orderedmap.OrderedMap, bool) {
	switch v := value.(type) {
	case *orderedmap.OrderedMap:
		if v == nil {
			return nil, false
		}
		return v, true
	case orderedmap.OrderedMap:
		return &v, true
	case map[string]any:
		if v == nil {
			return nil, false
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := orderedmap.New()
		for _, k := range keys {
			out.Set(k, v[k])
		}
		return out, true
	default:
		return nil, false
	}
}

// AsSlice converts a raw JSON array to a slice.
func AsSlice(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, v != nil
	case []*orderedmap.OrderedMap:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, item)
		}
		return out, v != nil
	case []map[string]any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, item)
		}
		return out, v != nil
	default:
		return nil, false
	}
}

// IsEmptyValue returns true for nil and for a string with white space only.
func IsEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}

// CloneValue returns a deep copy of a raw JSON value.
func CloneValue(value any) any {
	if value == nil {
		return nil
	}
	return deepcopy.Copy(value)
}
