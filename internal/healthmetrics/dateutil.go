// Package healthmetrics holds the pure scoring and grouping rules behind the
// health, diary, and training screens. Nothing here touches the database;
// callers fetch rows, normalize them, and pass plain values in.
package healthmetrics

import "time"

// DateLayout is the calendar-day format used on the wire and in the DB.
const DateLayout = "2006-01-02"

// LocalDateString formats t as YYYY-MM-DD using t's own location. Converting
// to UTC first would shift late-evening times onto the next day.
func LocalDateString(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseLocalDate parses a YYYY-MM-DD string as midnight in loc.
func ParseLocalDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

// Midnight returns the start of t's calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays shifts t by n calendar days. AddDate keeps the wall clock intact
// across DST changes, unlike adding multiples of 24h.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// SameDay reports whether a and b fall on the same calendar day, each read in
// its own location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysBetween returns the signed number of whole calendar days from a to b.
// Time of day is ignored. Both dates are projected onto UTC midnights so DST
// transitions cannot produce 23- or 25-hour days. Unix seconds are used
// instead of time.Duration, which saturates for spans over ~292 years.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int((ub.Unix() - ua.Unix()) / 86400)
}
