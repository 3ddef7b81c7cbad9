package model

import (
	"sort"
	"strconv"
	"strings"
)

// NestedStructures is the fixed set of structure names whose fields live one
// level below the top of the extracted-data object. Their fields are
// addressed as "<structure>.<key>".
var NestedStructures = []string{
	"land_registry",
	"building_permit",
	"shared_building",
}

// IsNestedStructure reports whether the key names a known nested structure
func IsNestedStructure(key string) bool {
	for _, s := range NestedStructures {
		if s == key {
			return true
		}
	}
	return false
}

// ExtractedData is the raw bag of fields extracted from the session's
// documents: scalar values at the top level plus the known nested structures.
// It is treated as read-only input to reconciliation.
type ExtractedData map[string]any

// TopLevelKeys returns the top-level keys in stable order. Keys whose value
// is an object are excluded: object-valued entries are reachable only through
// the nested-structure pass, which prevents counting a block twice.
func (d ExtractedData) TopLevelKeys() []string {
	keys := make([]string, 0, len(d))
	for key, value := range d {
		if IsNestedStructure(key) {
			continue
		}
		if _, ok := value.(map[string]any); ok {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Nested returns the fields of a known nested structure with keys in stable
// order. A missing or non-object structure yields a nil map.
func (d ExtractedData) Nested(structure string) (map[string]any, []string) {
	obj, ok := d[structure].(map[string]any)
	if !ok {
		return nil, nil
	}

	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return obj, keys
}

// ScalarString renders a scalar field value for display. The second return
// is false when the value is absent, empty, or not a scalar.
func ScalarString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return "", false
		}
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}
