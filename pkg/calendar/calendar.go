// Package calendar contains pure date/time helpers shared by the availability
// engine, the booking arbiter and the notification payload builder.
package calendar

import (
	"fmt"
	"time"
)

const (
	// DateLayout calendar date as accepted by the public API
	DateLayout = "2006-01-02"
	// ClockLayout local wall-clock time
	ClockLayout = "15:04"
)

// WallClock is a timestamp rendered in a particular location.
type WallClock struct {
	Date string // YYYY-MM-DD
	Time string // HH:MM
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching intervals (aEnd == bStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// AddMinutes returns start shifted by the given number of minutes.
func AddMinutes(start time.Time, minutes int) time.Time {
	return start.Add(time.Duration(minutes) * time.Minute)
}

// ToLocalWallClock renders ts in loc.
func ToLocalWallClock(ts time.Time, loc *time.Location) WallClock {
	local := ts.In(loc)
	return WallClock{
		Date: local.Format(DateLayout),
		Time: local.Format(ClockLayout),
	}
}

// ParseDate parses a YYYY-MM-DD calendar date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar: invalid date %q: %w", s, err)
	}
	return d, nil
}

// StartOfDay returns local midnight of the day containing ts.
func StartOfDay(ts time.Time, loc *time.Location) time.Time {
	local := ts.In(loc)
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DayBounds returns [midnight, next midnight) of the local day containing ts.
// AddDate keeps the bounds correct on DST transition days.
func DayBounds(ts time.Time, loc *time.Location) (time.Time, time.Time) {
	start := StartOfDay(ts, loc)
	return start, start.AddDate(0, 0, 1)
}
