// Package dateutil implements the calendar arithmetic helpers bundled
// with the generator.
package dateutil

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
)

// ParseDate parses an ISO calendar date at midnight UTC.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return date, nil
}

// ParseClock parses a wall-clock time as an offset from midnight.
func ParseClock(value string) (time.Duration, error) {
	clock, err := time.Parse(ClockLayout, value)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM:SS", value)
	}

	offset := time.Duration(clock.Hour())*time.Hour +
		time.Duration(clock.Minute())*time.Minute +
		time.Duration(clock.Second())*time.Second
	return offset, nil
}

// DaysBetween counts the whole days between two dates, regardless of
// order.
func DaysBetween(a, b time.Time) int {
	diff := b.Sub(a)
	if diff < 0 {
		diff = -diff
	}
	return int(diff / (24 * time.Hour))
}

// WeeksBetween counts the full weeks between two dates.
func WeeksBetween(a, b time.Time) int {
	return DaysBetween(a, b) / 7
}

// ClockDifference returns the absolute difference between two clock
// offsets.
func ClockDifference(a, b time.Duration) time.Duration {
	diff := b - a
	if diff < 0 {
		diff = -diff
	}
	return diff
}

// CountSundays counts the Sundays from start through end, inclusive.
// A start after end counts nothing.
func CountSundays(start, end time.Time) int {
	count := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Sunday {
			count += 1
		}
	}
	return count
}

// WorkingDaysBetween counts the weekdays (Monday through Friday) from
// start through end, inclusive.
func WorkingDaysBetween(start, end time.Time) int {
	count := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		switch day.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count += 1
		}
	}
	return count
}
