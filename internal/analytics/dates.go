package analytics

import (
	"fmt"
	"math"
	"time"
)

// Timestamp is the store-native seconds/nanoseconds wrapper that records
// carry when they are reloaded from storage rather than freshly created.
type Timestamp struct {
	Seconds     int64 `json:"seconds"`
	Nanoseconds int32 `json:"nanoseconds"`
}

// Time converts the wrapper to a time.Time.
func (t Timestamp) Time() time.Time {
	return time.Unix(t.Seconds, int64(t.Nanoseconds))
}

// dateFormats are the accepted string shapes, tried in order.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NormalizeDate converts any accepted date representation to a time.Time.
// It accepts a native time.Time, the store timestamp wrapper, or a date
// string. This is the single place polymorphic dates are normalized;
// callers elsewhere work with time.Time only.
func NormalizeDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case *time.Time:
		if d == nil {
			return time.Time{}, fmt.Errorf("nil date")
		}
		return *d, nil
	case Timestamp:
		return d.Time(), nil
	case *Timestamp:
		if d == nil {
			return time.Time{}, fmt.Errorf("nil timestamp")
		}
		return d.Time(), nil
	case string:
		for _, layout := range dateFormats {
			if t, err := time.Parse(layout, d); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unparseable date %q", d)
	}
	return time.Time{}, fmt.Errorf("unsupported date type %T", v)
}

// DaysUntil returns the number of whole days from now until the calendar
// date of v: negative means overdue, 0 means due today, positive means days
// remaining. v may be any representation NormalizeDate accepts.
func DaysUntil(v any, now time.Time) (int, error) {
	t, err := NormalizeDate(v)
	if err != nil {
		return 0, err
	}
	return daysUntil(t, now), nil
}

func daysUntil(t, now time.Time) int {
	y, m, d := t.Date()
	target := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return int(math.Ceil(target.Sub(now).Hours() / 24))
}
