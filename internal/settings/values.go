package settings

import (
	"strconv"
	"strings"
)

// Values is a settings mapping keyed by resolved field name. It is the shape
// of raw form input, of sanitizer output and of the persisted blob. Values
// loaded from storage went through JSON, so numbers may come back as float64;
// use the typed accessors instead of direct assertions.
type Values map[string]any

// Merge lays next over base: new values win, including explicit empties.
// Neither argument is modified.
func Merge(base, next Values) Values {
	out := make(Values, len(base)+len(next))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range next {
		out[k] = v
	}
	return out
}

// String returns the value under key as a string, or fallback when absent.
func (v Values) String(key, fallback string) string {
	raw, ok := v[key]
	if !ok {
		return fallback
	}
	return toString(raw)
}

// Int returns the value under key coerced to a non-negative int, or fallback
// when absent.
func (v Values) Int(key string, fallback int) int {
	raw, ok := v[key]
	if !ok {
		return fallback
	}
	return toInt(raw)
}

// Bool returns the value under key coerced to a boolean, or fallback when
// absent.
func (v Values) Bool(key string, fallback bool) bool {
	raw, ok := v[key]
	if !ok {
		return fallback
	}
	return toBool(raw)
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return ""
	}
}

// toInt coerces a value to a non-negative integer. Empty, nil, false and
// unparseable input all collapse to zero.
func toInt(v any) int {
	switch t := v.(type) {
	case int:
		if t < 0 {
			return 0
		}
		return t
	case int64:
		if t < 0 {
			return 0
		}
		return int(t)
	case float64:
		if t < 0 {
			return 0
		}
		return int(t)
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil || n < 0 {
			return 0
		}
		return n
	default:
		return 0
	}
}

func toBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "", "0", "false", "off", "no":
			return false
		default:
			return true
		}
	case nil:
		return false
	default:
		return false
	}
}
