package timetable

import (
	"fmt"
	"time"
)

// DelayMinutes returns how many whole minutes the expected time is behind the
// aimed time. Only late vehicles count as delayed, an on-time or early
// expected time reports no delay.
//
// Timestamps that fail to parse also report no delay. Realtime values are a
// display nicety, so a malformed one should not fail the whole search.
func DelayMinutes(aimed string, expected string) (int, bool) {
	if aimed == "" || expected == "" {
		return 0, false
	}

	aimedTime, err := time.Parse(time.RFC3339, aimed)
	if err != nil {
		return 0, false
	}
	expectedTime, err := time.Parse(time.RFC3339, expected)
	if err != nil {
		return 0, false
	}

	minutes := int(expectedTime.Sub(aimedTime) / time.Minute)
	if minutes <= 0 {
		return 0, false
	}

	return minutes, true
}

// FormatDelay renders a delay the way Swiss boards do, e.g. +5'
func FormatDelay(aimed string, expected string) string {
	minutes, delayed := DelayMinutes(aimed, expected)
	if !delayed {
		return ""
	}

	return fmt.Sprintf("+%d'", minutes)
}
