package schedule

import (
	"strings"
	"time"

	"github.com/CodebilityDev/codebility-plus-sub001/internal/model"
)

// Day describes one calendar date of a month.
type Day struct {
	Day       int          `json:"day"`
	Weekday   time.Weekday `json:"weekday"`
	Weekend   bool         `json:"weekend"`
	Scheduled bool         `json:"scheduled"`
}

// DaysInMonth returns the number of days in (year, month).
// Constructing the zeroth day of the following month lands on the last day.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DayOfWeek returns the weekday of (year, month, day) in the proleptic
// Gregorian calendar.
func DayOfWeek(year int, month time.Month, day int) time.Weekday {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday()
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(year int, month time.Month, day int) bool {
	wd := DayOfWeek(year, month, day)
	return wd == time.Saturday || wd == time.Sunday
}

// IsScheduledDay reports whether attendance is expected on the date.
// Without a configured schedule every weekday is scheduled and weekends are
// not; with one, only the listed weekdays are, regardless of weekend status.
func IsScheduledDay(year int, month time.Month, day int, sched *model.MeetingSchedule) bool {
	wd := DayOfWeek(year, month, day)
	if sched == nil || len(sched.Days) == 0 {
		return wd != time.Saturday && wd != time.Sunday
	}
	for _, name := range sched.Days {
		if strings.EqualFold(name, wd.String()) {
			return true
		}
	}
	return false
}

// MonthDays classifies every date of (year, month) against the schedule.
func MonthDays(year int, month time.Month, sched *model.MeetingSchedule) []Day {
	n := DaysInMonth(year, month)
	days := make([]Day, 0, n)
	for d := 1; d <= n; d++ {
		wd := DayOfWeek(year, month, d)
		days = append(days, Day{
			Day:       d,
			Weekday:   wd,
			Weekend:   wd == time.Saturday || wd == time.Sunday,
			Scheduled: IsScheduledDay(year, month, d, sched),
		})
	}
	return days
}
