package insight

import (
	"fmt"
	"time"
)

// Granularity selects the calendar step for period bucketing.
type Granularity string

const (
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// StartOfWeek returns the ISO week start (Monday) of the given date,
// normalized to UTC midnight.
func StartOfWeek(t time.Time) time.Time {
	t = t.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday is 7 in ISO numbering
	}
	return time.Date(t.Year(), t.Month(), t.Day()-(weekday-1), 0, 0, 0, 0, time.UTC)
}

// StartOfMonth returns the first day of the month of the given date, UTC midnight.
func StartOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// StartOfDay truncates a timestamp to its UTC calendar date.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekKey returns the ISO week key for the week starting at weekStart,
// e.g. "2025-W03". The ISO year is used, which can differ from the calendar
// year around January 1st.
func WeekKey(weekStart time.Time) string {
	isoYear, isoWeek := weekStart.ISOWeek()
	return fmt.Sprintf("%d-W%02d", isoYear, isoWeek)
}

// MonthKey returns the calendar month key, e.g. "2025-03".
func MonthKey(monthStart time.Time) string {
	return monthStart.Format("2006-01")
}

// PeriodWindow is a single generated calendar bucket. Start and End are both
// inclusive calendar dates (UTC midnight).
type PeriodWindow struct {
	Key   string
	Start time.Time
	End   time.Time
}

// GeneratePeriodWindows produces the consecutive calendar buckets covering
// [rangeStart, rangeEnd] for the given granularity. Buckets never overlap, so
// any date within the range falls in exactly one window.
func GeneratePeriodWindows(rangeStart, rangeEnd time.Time, granularity Granularity) []PeriodWindow {
	if rangeEnd.Before(rangeStart) {
		return nil
	}

	var windows []PeriodWindow

	switch granularity {
	case GranularityMonth:
		current := StartOfMonth(rangeStart)
		for !current.After(rangeEnd) {
			windows = append(windows, PeriodWindow{
				Key:   MonthKey(current),
				Start: current,
				End:   current.AddDate(0, 1, -1),
			})
			current = current.AddDate(0, 1, 0)
		}
	default: // week
		current := StartOfWeek(rangeStart)
		for !current.After(rangeEnd) {
			windows = append(windows, PeriodWindow{
				Key:   WeekKey(current),
				Start: current,
				End:   current.AddDate(0, 0, 6),
			})
			current = current.AddDate(0, 0, 7)
		}
	}

	return windows
}

// Contains reports whether the given calendar date falls within the window.
// The date is normalized to UTC midnight before comparison.
func (w PeriodWindow) Contains(t time.Time) bool {
	day := StartOfDay(t)
	return !day.Before(w.Start) && !day.After(w.End)
}
