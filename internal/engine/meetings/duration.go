package meetings

import "time"

// defaultDurationMinutes is used when the start/end pair cannot produce a
// positive duration.
const defaultDurationMinutes = 60

var clockLayouts = []string{"15:04", "15:04:05"}

func parseClock(value string) (time.Time, bool) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ComputeDuration derives the meeting length in minutes from two clock
// strings. Unparseable input, or an end at or before the start, falls back
// to the default rather than storing a non-positive duration.
func ComputeDuration(startTime, endTime string) int {
	start, ok := parseClock(startTime)
	if !ok {
		return defaultDurationMinutes
	}
	end, ok := parseClock(endTime)
	if !ok {
		return defaultDurationMinutes
	}

	minutes := int(end.Sub(start).Minutes())
	if minutes <= 0 {
		return defaultDurationMinutes
	}
	return minutes
}
