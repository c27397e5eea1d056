package calendar

import (
	"time"

	"github.com/JoshuaKitai/Fitnessify/internal/model"
)

const DaysPerWeek = 7

// Epoch is the first tracked day; the oldest window is the Sunday on or
// before it.
var Epoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// WeekStart returns the Sunday on or before t as a civil date.
func WeekStart(t time.Time) time.Time {
	d := model.Day(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// GenerateWeeks lists every window from the current one back to the epoch
// window, most recent first, stepping by exactly seven days.
func GenerateWeeks(epoch, today time.Time) []time.Time {
	first := WeekStart(epoch)
	last := WeekStart(today)
	if last.Before(first) {
		return nil
	}
	weeks := make([]time.Time, 0, int(last.Sub(first).Hours()/24)/DaysPerWeek+1)
	for w := last; !w.Before(first); w = w.AddDate(0, 0, -DaysPerWeek) {
		weeks = append(weeks, w)
	}
	return weeks
}

// WeekDates returns the seven ISO dates of the window starting at start.
func WeekDates(start time.Time) []string {
	out := make([]string, DaysPerWeek)
	for i := range out {
		out[i] = model.FormatDay(start.AddDate(0, 0, i))
	}
	return out
}

// WeekEnd is the Saturday closing the window.
func WeekEnd(start time.Time) time.Time {
	return start.AddDate(0, 0, DaysPerWeek-1)
}
