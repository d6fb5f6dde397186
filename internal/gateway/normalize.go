package gateway

import (
	"encoding/json"
	"strconv"
	"strings"
)

// blankSentinel replaces any attribute no alias could populate. Downstream
// code and composed replies rely on it; fields are never left empty.
const blankSentinel = "N/A"

// pickList locates the logical array inside an upstream payload. The payload
// may be the array itself or an object nesting it under one of several key
// names; candidates are tried in priority order and the first non-empty list
// wins. Elements that are JSON-encoded strings are decoded a second time, and
// elements that still fail to decode to an object are dropped.
func pickList(payload any, candidates ...string) []map[string]any {
	switch v := payload.(type) {
	case []any:
		return decodeElements(v)
	case map[string]any:
		for _, key := range candidates {
			if raw, ok := v[key]; ok {
				if list, ok := raw.([]any); ok {
					if items := decodeElements(list); len(items) > 0 {
						return items
					}
				}
			}
		}
	}
	return nil
}

func decodeElements(list []any) []map[string]any {
	items := make([]map[string]any, 0, len(list))
	for _, el := range list {
		switch v := el.(type) {
		case map[string]any:
			items = append(items, v)
		case string:
			// Double-encoded element: the array slot holds a JSON
			// object serialized as a string.
			var obj map[string]any
			if err := json.Unmarshal([]byte(v), &obj); err == nil {
				items = append(items, obj)
			}
		}
	}
	return items
}

// firstString returns the first non-empty string value among the aliased
// keys, or the blank sentinel.
func firstString(obj map[string]any, aliases ...string) string {
	for _, key := range aliases {
		if s := stringValue(obj[key]); s != "" {
			return s
		}
	}
	return blankSentinel
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// intFrom normalizes a numeric or numeric-looking value to an int. Upstream
// reference fields arrive as JSON numbers or as digit strings.
func intFrom(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// firstInt returns the first value among the aliased keys that normalizes to
// an int, or 0.
func firstInt(obj map[string]any, aliases ...string) int {
	for _, key := range aliases {
		if n, ok := intFrom(obj[key]); ok {
			return n
		}
	}
	return 0
}

// stringList accepts either a JSON array of strings or one comma-separated
// string.
func stringList(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, el := range t {
			if s := stringValue(el); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		parts := strings.Split(t, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
