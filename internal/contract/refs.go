package contract

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Grist Ref and RefList cells arrive in many shapes depending on the
// export path: plain numbers, ["L", id, ...] arrays, JSON-encoded strings,
// {id: ...} records, or free text containing a row id. These helpers
// normalize all of them to canonical string ids ("7"), empty meaning no
// reference.

var digitsPattern = regexp.MustCompile(`\d+`)

// ParseRefID extracts a single row reference from a cell value. Returns
// an empty string when the cell holds no usable reference.
func ParseRefID(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case bool:
		return ""
	case int:
		return positiveID(int64(v))
	case int32:
		return positiveID(int64(v))
	case int64:
		return positiveID(v)
	case float64:
		if math.IsNaN(v) {
			return ""
		}
		return positiveID(int64(v))
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return positiveID(n)
		}
		if f, err := v.Float64(); err == nil {
			return positiveID(int64(f))
		}
		return ""
	case map[string]any:
		for _, key := range []string{"id", "rowId", "record", "value"} {
			if inner, ok := v[key]; ok {
				return ParseRefID(inner)
			}
		}
		return ""
	case []any:
		// Grist RefLists and some API payloads use ["L", id, ...] or
		// [id, label]; skip the leading type marker when present.
		for _, item := range v {
			if s, ok := item.(string); ok && s == "L" {
				continue
			}
			if id := ParseRefID(item); id != "" {
				return id
			}
		}
		return ""
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return ""
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return positiveID(n)
		}
		if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
			var parsed any
			if err := json.Unmarshal([]byte(s), &parsed); err == nil {
				return ParseRefID(parsed)
			}
		}
		if m := digitsPattern.FindString(s); m != "" {
			if n, err := strconv.ParseInt(m, 10, 64); err == nil {
				return positiveID(n)
			}
		}
		return ""
	default:
		return ""
	}
}

// ParseRefList extracts every row reference from a RefList cell value, in
// order, dropping anything unparseable.
func ParseRefList(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		var ids []string
		for _, item := range v {
			if s, ok := item.(string); ok && s == "L" {
				continue
			}
			if id := ParseRefID(item); id != "" {
				ids = append(ids, id)
			}
		}
		return ids
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		if strings.HasPrefix(s, "[") {
			var arr []any
			if err := json.Unmarshal([]byte(s), &arr); err == nil {
				return ParseRefList(arr)
			}
		}
		var ids []string
		for _, m := range digitsPattern.FindAllString(s, -1) {
			if n, err := strconv.ParseInt(m, 10, 64); err == nil {
				if id := positiveID(n); id != "" {
					ids = append(ids, id)
				}
			}
		}
		return ids
	default:
		if id := ParseRefID(value); id != "" {
			return []string{id}
		}
		return nil
	}
}

func positiveID(n int64) string {
	if n <= 0 {
		return ""
	}
	return strconv.FormatInt(n, 10)
}
