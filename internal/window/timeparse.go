package window

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// millisThreshold separates unix seconds from unix milliseconds. Seconds do
// not reach 10^12 until the year 33658.
const millisThreshold = 1e12

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// NormalizeTime converts a loosely typed time value to unix seconds.
//
// Numbers above 10^12 are treated as milliseconds. Digit-only strings are
// treated as numbers; other strings are parsed as dates (zone-less layouts are
// read as UTC). The second return value is false when nothing usable was
// given, in which case the caller omits the field.
func NormalizeTime(v any) (int64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case int:
		return fromInt(int64(t)), true
	case int64:
		return fromInt(t), true
	case int32:
		return fromInt(int64(t)), true
	case float64:
		return fromNumber(t)
	case float32:
		return fromNumber(float64(t))
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return fromInt(n), true
		}
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return fromNumber(f)
	case time.Time:
		if t.IsZero() {
			return 0, false
		}
		return t.Unix(), true
	case *time.Time:
		if t == nil {
			return 0, false
		}
		return NormalizeTime(*t)
	case string:
		return fromString(t)
	}
	return 0, false
}

func fromInt(n int64) int64 {
	if n > millisThreshold {
		return floorDiv(n, 1000)
	}
	return n
}

func fromNumber(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f > millisThreshold {
		f /= 1000
	}
	f = math.Floor(f)
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func fromString(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if isDigits(s) {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return fromInt(n), true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return fromNumber(f)
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.Unix(), true
		}
	}
	return 0, false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
