// Package recurrence derives display-time occurrences for recurring
// calendar events. It never mutates stored events.
package recurrence

import "time"

// NextYearly returns the next anniversary of date at or after now,
// keeping the original month, day and time of day. Feb 29 dates roll
// to Mar 1 in non-leap years, matching time.Date normalization.
func NextYearly(date, now time.Time) time.Time {
	occ := time.Date(now.Year(), date.Month(), date.Day(),
		date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
	if occ.Before(now) {
		occ = time.Date(now.Year()+1, date.Month(), date.Day(),
			date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
	}
	return occ
}

// Project returns when the event next occurs: the date itself for
// one-off events, or the next yearly occurrence for recurring ones.
// The second return is false when the event is already past and does
// not recur.
func Project(date, now time.Time, recurring bool) (time.Time, bool) {
	if recurring {
		return NextYearly(date, now), true
	}
	if date.Before(now) {
		return time.Time{}, false
	}
	return date, true
}
