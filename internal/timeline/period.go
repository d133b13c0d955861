// Package timeline implements the period bucketing, aggregation, and
// reconciliation logic behind the timeline and budget report endpoints.
// Everything in this package is a pure function over already-fetched
// in-memory data; persistence and authorization live in the service layer.
package timeline

import (
	"fmt"
	"time"
)

// Granularity is the bucket size for timeline aggregation.
type Granularity string

const (
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// Valid reports whether g is one of the supported granularities.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityWeek, GranularityMonth, GranularityYear:
		return true
	}
	return false
}

// PeriodStart snaps t back to the aligned start of its period: the Monday
// on or before t for weeks, day 1 of the month, or January 1 of the year.
func PeriodStart(t time.Time, g Granularity) time.Time {
	switch g {
	case GranularityWeek:
		// ISO weeks start on Monday; Go's Weekday starts on Sunday.
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, time.UTC)
	case GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case GranularityYear:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// KeyFor returns the canonical period key for the period containing t.
// Keys are date strings for weeks (the Monday), YYYY-MM for months, and
// YYYY for years, so two equal keys always denote the same period.
func KeyFor(t time.Time, g Granularity) string {
	start := PeriodStart(t, g)
	switch g {
	case GranularityMonth:
		return start.Format("2006-01")
	case GranularityYear:
		return start.Format("2006")
	}
	return start.Format("2006-01-02")
}

// Keys returns the ordered, gap-free sequence of period keys from the
// aligned start of start's period through end's period, inclusive. An
// inverted range yields an empty sequence, not an error. The sequence is a
// plain function of its inputs and can be regenerated identically.
func Keys(start, end time.Time, g Granularity) []string {
	if end.Before(start) {
		return nil
	}
	var keys []string
	for cursor := PeriodStart(start, g); !cursor.After(end); cursor = advance(cursor, g) {
		keys = append(keys, KeyFor(cursor, g))
	}
	return keys
}

func advance(t time.Time, g Granularity) time.Time {
	switch g {
	case GranularityWeek:
		return t.AddDate(0, 0, 7)
	case GranularityMonth:
		return t.AddDate(0, 1, 0)
	case GranularityYear:
		return t.AddDate(1, 0, 0)
	}
	return t.AddDate(0, 0, 1)
}

// StartOf parses a period key back into the period's start date.
func StartOf(key string, g Granularity) (time.Time, error) {
	switch g {
	case GranularityWeek:
		return time.Parse("2006-01-02", key)
	case GranularityMonth:
		return time.Parse("2006-01", key)
	case GranularityYear:
		return time.Parse("2006", key)
	}
	return time.Time{}, fmt.Errorf("unsupported granularity %q", g)
}

// EndOfPeriod returns the inclusive end boundary of the period identified
// by key: the Sunday of the week, the last calendar day of the month, or
// December 31 of the year, at end of day.
func EndOfPeriod(key string, g Granularity) (time.Time, error) {
	start, err := StartOf(key, g)
	if err != nil {
		return time.Time{}, err
	}

	var last time.Time
	switch g {
	case GranularityWeek:
		last = start.AddDate(0, 0, 6)
	case GranularityMonth:
		last = start.AddDate(0, 1, -1)
	case GranularityYear:
		last = time.Date(start.Year(), 12, 31, 0, 0, 0, 0, time.UTC)
	}

	return time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 59, 999999999, time.UTC), nil
}
