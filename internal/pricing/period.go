// Package pricing derives rental contract prices from the current form state.
//
// Every function in this package is pure: the same state always yields the same
// quote, so callers can recompute on each edit without caching.
package pricing

import "time"

// Period is the contract date range. Either bound may be unset while a form is
// still being filled in.
type Period struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// NewPeriod returns a complete period.
func NewPeriod(start, end time.Time) Period {
	return Period{Start: &start, End: &end}
}

// Complete reports whether both bounds are set.
func (p Period) Complete() bool {
	return p.Start != nil && p.End != nil
}

// Days returns the number of calendar days between start and end. Time of day
// is ignored, so 2024-01-01T23:00 to 2024-01-02T01:00 counts as one day.
// Incomplete or inverted periods yield 0.
func (p Period) Days() int {
	if !p.Complete() {
		return 0
	}
	s, e := dateOnly(*p.Start), dateOnly(*p.End)
	if !e.After(s) {
		return 0
	}
	return int(e.Sub(s) / (24 * time.Hour))
}

// Weeks returns the number of whole weeks in the period.
func (p Period) Weeks() int {
	return p.Days() / 7
}

// Months returns the number of whole calendar months in the period. A month is
// complete once the end date reaches the start's day of month, clamped to the
// last day for shorter months (Jan 31 to Feb 29 is one month).
func (p Period) Months() int {
	if !p.Complete() {
		return 0
	}
	s, e := dateOnly(*p.Start), dateOnly(*p.End)
	if !e.After(s) {
		return 0
	}

	months := (e.Year()-s.Year())*12 + int(e.Month()-s.Month())
	if addMonths(s, months).After(e) {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// dateOnly drops the clock and location, keeping the calendar date as seen in
// the value's own location.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// addMonths adds n calendar months, clamping the day to the target month's length.
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}
