// Package workday counts billable leave days.
package workday

import "time"

const secondsPerDay = 24 * 60 * 60

// Count returns the number of days in the inclusive range [start, end] that
// fall on Monday through Friday. Only the calendar date of each argument
// matters. An inverted range counts as zero.
func Count(start, end time.Time) int {
	from := dateOf(start)
	to := dateOf(end)
	if to.Before(from) {
		return 0
	}

	// Unix seconds, not Sub: a Duration saturates past ~292 years.
	total := int((to.Unix()-from.Unix())/secondsPerDay) + 1
	weeks, rest := total/7, total%7

	count := weeks * 5
	wd := from.Weekday()
	for i := 0; i < rest; i++ {
		if d := (wd + time.Weekday(i)) % 7; d != time.Saturday && d != time.Sunday {
			count++
		}
	}
	return count
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
