package content

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// maxDepth bounds recursion into wrapper objects.
const maxDepth = 6

// Fields is the field source of a record. Lookups take several candidate
// keys because the same field appears as Title, title or school_name
// depending on how the content type was modelled.
type Fields map[string]any

// Raw returns the first present, non-null value among keys. Exact matches win
// over case-insensitive ones.
func (f Fields) Raw(keys ...string) any {
	for _, k := range keys {
		if v, ok := f[k]; ok && v != nil {
			return v
		}
	}
	for _, k := range keys {
		for name, v := range f {
			if v != nil && strings.EqualFold(name, k) {
				return v
			}
		}
	}
	return nil
}

// Has reports whether any key holds a non-null value.
func (f Fields) Has(keys ...string) bool {
	return f.Raw(keys...) != nil
}

// String returns a trimmed string, formatting numbers and booleans.
func (f Fields) String(keys ...string) string {
	switch v := f.Raw(keys...).(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Int parses integer fields given as numbers or numeric strings.
func (f Fields) Int(keys ...string) (int, bool) {
	switch v := f.Raw(keys...).(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	default:
		return 0, false
	}
}

// Bool parses booleans given as JSON booleans or "true"/"false" strings.
func (f Fields) Bool(keys ...string) (bool, bool) {
	switch v := f.Raw(keys...).(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return b, err == nil
	default:
		return false, false
	}
}

var timeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// Time parses date and datetime fields; unparseable values are the zero time.
func (f Fields) Time(keys ...string) time.Time {
	s := f.String(keys...)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Order returns the ordering hint, or DefaultOrder when missing.
func (f Fields) Order() int {
	if n, ok := f.Int("order", "Order", "sort_order"); ok {
		return n
	}
	return DefaultOrder
}
