package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func athens(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Athens")
	require.NoError(t, err)
	return loc
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2025, time.October, 13, 10, 0, 0, 0, time.UTC)
	at := func(min int) time.Time { return base.Add(time.Duration(min) * time.Minute) }

	tests := []struct {
		name         string
		aStart, aEnd time.Time
		bStart, bEnd time.Time
		want         bool
	}{
		{name: "identical", aStart: at(0), aEnd: at(75), bStart: at(0), bEnd: at(75), want: true},
		{name: "a ends where b starts", aStart: at(-75), aEnd: at(0), bStart: at(0), bEnd: at(75), want: false},
		{name: "b ends where a starts", aStart: at(75), aEnd: at(150), bStart: at(0), bEnd: at(75), want: false},
		{name: "partial from left", aStart: at(-15), aEnd: at(60), bStart: at(0), bEnd: at(75), want: true},
		{name: "contained", aStart: at(15), aEnd: at(30), bStart: at(0), bEnd: at(75), want: true},
		{name: "disjoint", aStart: at(120), aEnd: at(180), bStart: at(0), bEnd: at(75), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestAddMinutes(t *testing.T) {
	start := time.Date(2025, time.October, 13, 16, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.October, 13, 18, 0, 0, 0, time.UTC), AddMinutes(start, 75))
}

func TestToLocalWallClock(t *testing.T) {
	loc := athens(t)

	// 21:30 UTC is already the next day in Athens (UTC+3 in October)
	ts := time.Date(2025, time.October, 14, 21, 30, 0, 0, time.UTC)
	got := ToLocalWallClock(ts, loc)

	assert.Equal(t, WallClock{Date: "2025-10-15", Time: "00:30"}, got)
}

func TestDayBounds_DSTTransition(t *testing.T) {
	loc := athens(t)

	// 26 October 2025 is 25 hours long in Athens
	start, end := DayBounds(time.Date(2025, time.October, 26, 12, 0, 0, 0, loc), loc)

	assert.Equal(t, 25*time.Hour, end.Sub(start))
	assert.Equal(t, "2025-10-26", ToLocalWallClock(end.Add(-time.Nanosecond), loc).Date)
	assert.Equal(t, "2025-10-27", ToLocalWallClock(end, loc).Date)
}

func TestParseDate(t *testing.T) {
	loc := athens(t)

	d, err := ParseDate("2025-10-13", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d.Weekday())
	assert.Equal(t, loc, d.Location())

	_, err = ParseDate("13/10/2025", loc)
	assert.Error(t, err)
}

func TestGreekDate(t *testing.T) {
	loc := athens(t)
	ts := time.Date(2025, time.October, 15, 6, 30, 0, 0, time.UTC)

	assert.Equal(t, "Τετάρτη 15 Οκτωβρίου", GreekDate(ts, loc))
	assert.Equal(t, "09:30", GreekTime(ts, loc))
}
