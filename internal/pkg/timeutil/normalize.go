package timeutil

import (
	"encoding/json"
	"strconv"
	"time"
)

// Timer is implemented by values that can hand out their instant, such
// as driver-level timestamp wrappers.
type Timer interface {
	Time() time.Time
}

// Millis is implemented by values exposing an epoch-milliseconds view.
type Millis interface {
	UnixMilli() int64
}

// ToInstant coerces a heterogeneous timestamp representation into a
// time.Time. Recognized shapes, tried in order:
//
//   - time.Time / *time.Time
//   - values implementing Timer
//   - values implementing Millis
//   - map with an epoch-seconds field ("seconds" or "_seconds", optional
//     "nanoseconds"/"_nanoseconds"), as produced by document-store exports
//   - numeric epoch milliseconds (int64, float64, json.Number)
//   - RFC3339 / RFC3339Nano strings
//
// The second return is false for unrecognized input. ToInstant never
// panics; partially migrated documents must not crash a read path.
func ToInstant(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	case Timer:
		return ToInstant(v.Time())
	case Millis:
		return epochMillis(v.UnixMilli())
	case map[string]any:
		return instantFromSecondsObject(v)
	case int64:
		return epochMillis(v)
	case int:
		return epochMillis(int64(v))
	case float64:
		return epochMillis(int64(v))
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return epochMillis(int64(f))
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, true
		}
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t, true
		}
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return epochMillis(n)
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// ToMillis coerces raw into epoch milliseconds. Unrecognized input yields
// 0, which callers must treat as "absent" rather than the Unix epoch.
func ToMillis(raw any) int64 {
	t, ok := ToInstant(raw)
	if !ok {
		return 0
	}
	return t.UnixMilli()
}

func epochMillis(ms int64) (time.Time, bool) {
	if ms <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}

func instantFromSecondsObject(m map[string]any) (time.Time, bool) {
	secs, ok := numberField(m, "seconds", "_seconds")
	if !ok {
		return time.Time{}, false
	}
	nanos, _ := numberField(m, "nanoseconds", "_nanoseconds")
	if secs <= 0 {
		return time.Time{}, false
	}
	return time.Unix(secs, nanos).UTC(), true
}

func numberField(m map[string]any, keys ...string) (int64, bool) {
	for _, key := range keys {
		v, present := m[key]
		if !present {
			continue
		}
		switch n := v.(type) {
		case int64:
			return n, true
		case int:
			return int64(n), true
		case float64:
			return int64(n), true
		case json.Number:
			if f, err := n.Float64(); err == nil {
				return int64(f), true
			}
		}
	}
	return 0, false
}
