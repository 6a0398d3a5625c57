package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// truthyTokens are the strings accepted as boolean true, compared lowercased.
var truthyTokens = map[string]bool{
	"1":    true,
	"true": true,
	"sim":  true,
	"yes":  true,
	"y":    true,
	"on":   true,
}

// IsTruthyToken reports whether s is one of the accepted true tokens,
// ignoring case and surrounding whitespace.
func IsTruthyToken(s string) bool {
	return truthyTokens[strings.ToLower(strings.TrimSpace(s))]
}

// CoerceBool converts an override value to a boolean. Booleans pass through,
// strings and numbers go through the token rule, anything else is false.
func CoerceBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return IsTruthyToken(b)
	}
	if f, ok := CoerceNumber(v); ok {
		return IsTruthyToken(FormatNumber(f))
	}
	return false
}

// CoerceNumber accepts numeric-typed values only. Numeric strings are
// rejected.
func CoerceNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// CoerceString stringifies any non-nil value.
func CoerceString(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case bool:
		return strconv.FormatBool(s), true
	}
	if f, ok := CoerceNumber(v); ok {
		return FormatNumber(f), true
	}
	return fmt.Sprint(v), true
}

// FormatNumber prints a number with the fewest digits that round-trip,
// e.g. 180 -> "180", 5.2 -> "5.2".
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// timestampLayouts are tried in order. Layouts without an offset are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 instant. On failure the raw string is
// kept for display and Valid is false.
func ParseTimestamp(raw string) Timestamp {
	s := strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t, Raw: raw, Valid: true}
		}
	}
	return Timestamp{Raw: raw}
}

// coerceStrings converts a sequence override to strings. Non-sequence values
// are rejected.
func coerceStrings(v any) ([]string, bool) {
	switch seq := v.(type) {
	case []string:
		return append([]string(nil), seq...), true
	case []any:
		out := make([]string, 0, len(seq))
		for _, item := range seq {
			if s, ok := CoerceString(item); ok {
				out = append(out, s)
			}
		}
		return out, true
	}
	return nil, false
}

// coercePasses converts a sequence of {sat, t, ang} objects. Elements that are
// not objects are skipped; missing members are left empty.
func coercePasses(v any) ([]Pass, bool) {
	switch seq := v.(type) {
	case []Pass:
		return append([]Pass(nil), seq...), true
	case []map[string]any:
		out := make([]Pass, 0, len(seq))
		for _, m := range seq {
			out = append(out, passFromMap(m))
		}
		return out, true
	case []any:
		out := make([]Pass, 0, len(seq))
		for _, item := range seq {
			switch m := item.(type) {
			case map[string]any:
				out = append(out, passFromMap(m))
			case map[string]string:
				out = append(out, Pass{SatelliteID: m["sat"], TimestampLabel: m["t"], IncidenceAngle: m["ang"]})
			}
		}
		return out, true
	}
	return nil, false
}

func passFromMap(m map[string]any) Pass {
	str := func(key string) string {
		s, _ := CoerceString(m[key])
		return s
	}
	return Pass{SatelliteID: str("sat"), TimestampLabel: str("t"), IncidenceAngle: str("ang")}
}
