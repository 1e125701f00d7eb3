package model

import (
	"encoding/json"
	"strconv"
)

// RawField is one cell of a source record as delivered by the list API.
// Value holds decoded JSON (string, float64, bool, []any, map[string]any or nil).
// Text is the pre-rendered display text some field types carry.
type RawField struct {
	Key   string
	Value any
	Text  string
}

// RawRecord is one list row before normalization.
type RawRecord struct {
	ID     string
	Fields []RawField
}

// IsEmptyValue reports whether a decoded JSON value is falsy: nil, "", 0, false or an
// empty list/object.
func IsEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case float64:
		return val == 0
	case int:
		return val == 0
	case int64:
		return val == 0
	case bool:
		return !val
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	case json.RawMessage:
		return len(val) == 0 || string(val) == "null"
	default:
		return false
	}
}

// ValueText renders a decoded JSON value for comparison with human-readable text:
// strings as-is, integral numbers without a fraction, everything else as compact JSON.
func ValueText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
