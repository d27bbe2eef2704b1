package timetable

import (
	"regexp"
	"strconv"
	"time"
)

var legDurationRegex = regexp.MustCompile(`^\s*(?:(\d+)\s*h)?\s*(?:(\d+)\s*min)?\s*$`)

// LegDuration parses the textual durations of the older schema, "2 h 47 min",
// "3 h" or "56 min". Anything else is a zero duration.
func LegDuration(label string) time.Duration {
	matches := legDurationRegex.FindStringSubmatch(label)
	if matches == nil || (matches[1] == "" && matches[2] == "") {
		return 0
	}

	var duration time.Duration

	if matches[1] != "" {
		hours, _ := strconv.Atoi(matches[1])
		duration += time.Duration(hours) * time.Hour
	}
	if matches[2] != "" {
		minutes, _ := strconv.Atoi(matches[2])
		duration += time.Duration(minutes) * time.Minute
	}

	return duration
}
