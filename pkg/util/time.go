package util

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

func AddTimeToDate(date time.Time, sourceTime time.Time) time.Time {
	newDateTime := time.Date(date.Year(), date.Month(), date.Day(), sourceTime.Hour(), sourceTime.Minute(), sourceTime.Second(), sourceTime.Nanosecond(), date.Location())

	return newDateTime
}

// CombineDateTime builds a local date time from optional YYYY-MM-DD and HH:MM
// strings, taking whichever part is missing from now.
func CombineDateTime(date string, clock string, now time.Time) (time.Time, error) {
	dateTime := now

	if date != "" {
		parsedDate, err := time.ParseInLocation(DateLayout, date, now.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
		}

		dateTime = AddTimeToDate(parsedDate, dateTime)
	}

	if clock != "" {
		parsedClock, err := time.Parse(ClockLayout, clock)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM", clock)
		}

		dateTime = AddTimeToDate(dateTime, parsedClock)
	}

	return dateTime, nil
}
