package normalize

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// RawRecord is a listing as it comes out of a store or fixture: snake_case
// SQL columns, camelCase API JSON or a mix of both.
type RawRecord = map[string]any

// Candidate is one attempt at reading a logical field: a raw key and the
// coercion that turns its value into T. Coerce reports false when the
// value does not count as present.
type Candidate[T any] struct {
	Key    string
	Coerce func(any) (T, bool)
}

// First evaluates chain in order and returns the first present value
func First[T any](raw RawRecord, chain []Candidate[T]) (T, bool) {
	for _, c := range chain {
		v, ok := lookup(raw, c.Key)
		if !ok {
			continue
		}
		if out, ok := c.Coerce(v); ok {
			return out, true
		}
	}
	var zero T
	return zero, false
}

// keys builds a chain that applies the same coercion to every key
func keys[T any](coerce func(any) (T, bool), names ...string) []Candidate[T] {
	chain := make([]Candidate[T], len(names))
	for i, n := range names {
		chain[i] = Candidate[T]{Key: n, Coerce: coerce}
	}
	return chain
}

// lookup resolves key in raw. Dotted keys walk nested objects, and keys
// missing at the top level are also looked up in an "attributes" object.
func lookup(raw RawRecord, key string) (any, bool) {
	if v, ok := raw[key]; ok && v != nil {
		return v, true
	}
	if strings.Contains(key, ".") {
		if v, ok := getNestedValue(raw, key); ok && v != nil {
			return v, true
		}
	}
	if attrs, ok := raw["attributes"].(map[string]any); ok {
		if v, ok := attrs[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func getNestedValue(m map[string]any, path string) (any, bool) {
	var current any = m
	for _, key := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// ParseNumber coerces v to a float. Strings have every character other
// than digits and dots stripped first, so "₹1,50,000" is 150000. Anything
// unparseable, NaN or infinite is 0.
func ParseNumber(v any) float64 {
	var n float64
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int32:
		n = float64(x)
	case int64:
		n = float64(x)
	case uint64:
		n = float64(x)
	case json.Number:
		return ParseNumber(x.String())
	case []byte:
		return ParseNumber(string(x))
	case string:
		cleaned := nonNumeric.ReplaceAllString(x, "")
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		n = f
	default:
		return 0
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// asNumber is present when the value is non-zero
func asNumber(v any) (float64, bool) {
	n := ParseNumber(v)
	return n, n != 0
}

// asInt is absent for values outside the int range
func asInt(v any) (int, bool) {
	n, ok := asNumber(v)
	if !ok || n < math.MinInt || n >= -math.MinInt {
		return 0, false
	}
	return int(n), true
}

var leadingDigits = regexp.MustCompile(`^\s*(\d+)`)

// asLeadingInt reads the leading integer of a string such as "5-10 years"
func asLeadingInt(v any) (int, bool) {
	s, ok := asText(v)
	if !ok {
		return 0, false
	}
	m := leadingDigits.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	return n, err == nil && n > 0
}

// asText accepts non-blank strings, byte slices and numbers
func asText(v any) (string, bool) {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case []byte:
		s = string(x)
	case json.Number:
		s = x.String()
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		s = strconv.Itoa(x)
	case int32:
		s = strconv.FormatInt(int64(x), 10)
	case int64:
		s = strconv.FormatInt(x, 10)
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// asBool accepts bools, "true"/"yes"/"1" style strings and numbers.
// Unrecognised strings are not present.
func asBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case []byte:
		return asBool(string(x))
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "yes", "y", "1", "available":
			return true, true
		case "false", "no", "n", "0", "not available":
			return false, true
		}
		return false, false
	case float64, float32, int, int32, int64, uint64, json.Number:
		return ParseNumber(x) != 0, true
	}
	return false, false
}

// asList accepts native sequences and JSON array strings
func asList(v any) ([]string, bool) {
	switch x := v.(type) {
	case []string:
		return cleanList(x), true
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := asText(item); ok {
				out = append(out, s)
			}
		}
		return out, true
	case []byte:
		return asList(string(x))
	case string:
		var parsed []any
		if err := json.Unmarshal([]byte(strings.TrimSpace(x)), &parsed); err != nil {
			return nil, false
		}
		return asList(parsed)
	}
	return nil, false
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// asTime accepts time values, RFC3339 and SQL datetime strings, and epoch
// seconds or milliseconds.
func asTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, !x.IsZero()
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return *x, !x.IsZero()
	case []byte:
		return asTime(string(x))
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return epoch(n)
		}
		return time.Time{}, false
	case float64, int, int64, json.Number:
		return epoch(ParseNumber(x))
	}
	return time.Time{}, false
}

func epoch(n float64) (time.Time, bool) {
	if n <= 0 {
		return time.Time{}, false
	}
	if n > 1e12 {
		return time.UnixMilli(int64(n)).UTC(), true
	}
	return time.Unix(int64(n), 0).UTC(), true
}
