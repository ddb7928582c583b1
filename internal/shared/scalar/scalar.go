// Package scalar coerces weakly-typed configuration values (whatever a YAML
// decoder or a host hands over) into the trimmed strings and integers the
// threshold builders work with.
package scalar

import (
	"strconv"
	"strings"
)

// String renders a scalar value as a trimmed string.
// It reports false for nil, for non-scalar values (maps, slices, structs)
// and for values that are empty after trimming.
func String(v any) (string, bool) {
	var s string
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		s = t
	case []byte:
		s = string(t)
	case bool:
		s = strconv.FormatBool(t)
	case int:
		s = strconv.Itoa(t)
	case int8:
		s = strconv.FormatInt(int64(t), 10)
	case int16:
		s = strconv.FormatInt(int64(t), 10)
	case int32:
		s = strconv.FormatInt(int64(t), 10)
	case int64:
		s = strconv.FormatInt(t, 10)
	case uint:
		s = strconv.FormatUint(uint64(t), 10)
	case uint8:
		s = strconv.FormatUint(uint64(t), 10)
	case uint16:
		s = strconv.FormatUint(uint64(t), 10)
	case uint32:
		s = strconv.FormatUint(uint64(t), 10)
	case uint64:
		s = strconv.FormatUint(t, 10)
	case float32:
		s = strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case interface{ String() string }:
		s = t.String()
	default:
		return "", false
	}

	s = strings.TrimSpace(s)
	return s, s != ""
}

// Int parses a decimal integer with an optional sign. The value must fit
// into 32 bits, which is the range thresholds were always authored in.
func Int(s string) (int, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

// Bool reads a boolean switch that may also hold the literal "default"
// (any case). Missing and "default" yield def; any other value is true
// only when it reads "true" regardless of case.
func Bool(v any, def bool) bool {
	s, ok := String(v)
	if !ok || strings.EqualFold(s, "default") {
		return def
	}
	return strings.EqualFold(s, "true")
}
