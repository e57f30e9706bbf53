package model

import "time"

// Slot templates are keyed by the Spanish day names the restaurant's seed
// data uses, in Sunday-first order. The index into this array matches Go's
// time.Weekday (Sunday == 0), so the derivation is a plain lookup.
var weekdayNames = [7]string{
	"Domingo",
	"Lunes",
	"Martes",
	"Miércoles",
	"Jueves",
	"Viernes",
	"Sábado",
}

// DateLayout is the wire format for reservation dates.
const DateLayout = "2006-01-02"

// WeekdayName returns the Spanish day name for the given date. Both the
// availability reads and the booking path derive weekdays through this
// function so calendar semantics cannot drift between them.
func WeekdayName(t time.Time) string {
	return weekdayNames[int(t.Weekday())]
}

// ParseDate parses a YYYY-MM-DD date string. The returned time is midnight
// UTC of that calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// IsWeekdayName reports whether s is one of the canonical day names. Slot
// template writes validate against this so availability lookups by derived
// weekday can never miss rows over a spelling variant.
func IsWeekdayName(s string) bool {
	for _, n := range weekdayNames {
		if n == s {
			return true
		}
	}
	return false
}
