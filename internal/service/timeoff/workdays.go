package timeoff

import "time"

// BusinessDays counts the weekdays (Mon-Fri) in [start, end] inclusive.
// Both bounds count when they fall on a weekday.
func BusinessDays(start, end time.Time) float64 {
	if start.After(end) {
		return 0
	}
	var days float64
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}
