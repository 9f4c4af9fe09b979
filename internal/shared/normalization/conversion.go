package normalization

import (
	"encoding/json"
	"strconv"
	"strings"
)

// AsString trims string values and renders numeric identifiers without exponent noise.
func AsString(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case json.Number:
		return typed.String()
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	default:
		return ""
	}
}

// StringMap keeps the string-convertible entries of an arbitrary JSON object.
func StringMap(value any) map[string]string {
	typed, ok := value.(map[string]any)
	if !ok || len(typed) == 0 {
		return nil
	}
	out := make(map[string]string, len(typed))
	for key, raw := range typed {
		if s := AsString(raw); s != "" {
			out[key] = s
		}
	}
	return out
}
