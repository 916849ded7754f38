package utils

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

const DateLayout = "2006-01-02"

// StartOfDay returns midnight of t's calendar date in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateOf converts t's calendar date (in t's location) to a DATE column value.
// The value is anchored at UTC midnight so drivers never shift it across a day boundary.
func DateOf(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func DateKey(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

// DayWindow returns [date 00:00, date+1 00:00) in loc for the calendar date of d.
func DayWindow(d time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, day := d.Date()
	start := time.Date(y, m, day, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

func ParseDateIn(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ParseLocalTime parses a terminal timestamp. Values carrying an offset are
// absolute; naive values are read as wall-clock time in loc.
func ParseLocalTime(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time string")
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006/01/02 15:04:05",
		"2006-01-02 15:04",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("failed to parse time: %v", s)
}

// ParseTimeOnDate combines the calendar date of baseDate with a "15:04" or
// "15:04:05" clock value, in baseDate's location.
func ParseTimeOnDate(baseDate time.Time, clock string) (time.Time, error) {
	var t time.Time
	var err error
	if len(clock) == 5 {
		t, err = time.Parse("15:04", clock)
	} else {
		t, err = time.Parse("15:04:05", clock)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock value %q: %w", clock, err)
	}
	y, m, d := baseDate.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, baseDate.Location()), nil
}
