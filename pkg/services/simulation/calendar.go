package simulation

import "time"

// MonthLabels returns n short month names starting at start, wrapping after December.
func MonthLabels(start time.Month, n int) []string {
	if start < time.January || start > time.December {
		start = time.January
	}
	labels := make([]string, n)
	for i := range labels {
		m := time.Month((int(start)-1+i)%12 + 1)
		labels[i] = m.String()[:3]
	}
	return labels
}
