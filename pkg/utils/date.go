package utils

import "time"

const DateLayout = "2006-01-02"

// DateRange returns (from, to) formatted as YYYY-MM-DD, where to is today
// and from is daysAgo days earlier. Used as the default news query window.
func DateRange(daysAgo int) (string, string) {
	to := time.Now()
	from := to.AddDate(0, 0, -daysAgo)
	return from.Format(DateLayout), to.Format(DateLayout)
}
