package calendar

import (
	"fmt"
	"time"
)

var greekWeekdays = [...]string{
	time.Sunday:    "Κυριακή",
	time.Monday:    "Δευτέρα",
	time.Tuesday:   "Τρίτη",
	time.Wednesday: "Τετάρτη",
	time.Thursday:  "Πέμπτη",
	time.Friday:    "Παρασκευή",
	time.Saturday:  "Σάββατο",
}

// genitive case, as used after a day number
var greekMonths = [...]string{
	time.January:   "Ιανουαρίου",
	time.February:  "Φεβρουαρίου",
	time.March:     "Μαρτίου",
	time.April:     "Απριλίου",
	time.May:       "Μαΐου",
	time.June:      "Ιουνίου",
	time.July:      "Ιουλίου",
	time.August:    "Αυγούστου",
	time.September: "Σεπτεμβρίου",
	time.October:   "Οκτωβρίου",
	time.November:  "Νοεμβρίου",
	time.December:  "Δεκεμβρίου",
}

// GreekDate formats ts in loc as "Τετάρτη 15 Οκτωβρίου".
func GreekDate(ts time.Time, loc *time.Location) string {
	local := ts.In(loc)
	return fmt.Sprintf("%s %d %s", greekWeekdays[local.Weekday()], local.Day(), greekMonths[local.Month()])
}

// GreekTime formats ts in loc as a 24h "HH:MM".
func GreekTime(ts time.Time, loc *time.Location) string {
	return ts.In(loc).Format(ClockLayout)
}
