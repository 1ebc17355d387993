package utils

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CalculateEndTime adds a fractional hour duration to an HH:MM start time.
// Returns the start time unchanged if its format is invalid.
func CalculateEndTime(startTime string, durationHours float64) string {
	const timeLayout = "15:04"
	t, err := time.Parse(timeLayout, startTime)
	if err != nil {
		return startTime
	}

	duration := time.Duration(durationHours * float64(time.Hour))
	return t.Add(duration).Format(timeLayout)
}

// WeekdayTitle renders a stored lowercase weekday for display ("monday" -> "Monday").
func WeekdayTitle(day string) string {
	return cases.Title(language.English).String(strings.ToLower(day))
}

// NextOccurrence calculates the next calendar date for a weekly course slot.
func NextOccurrence(dayOfWeek string, startTime string, now time.Time) time.Time {
	dayMap := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}

	targetDay, ok := dayMap[strings.ToLower(dayOfWeek)]
	if !ok {
		return now.AddDate(0, 0, 7)
	}

	start, err := time.Parse("15:04", startTime)
	if err != nil {
		start = time.Time{}
	}

	daysUntil := (int(targetDay) - int(now.Weekday()) + 7) % 7
	if daysUntil == 0 {
		todaySlot := time.Date(now.Year(), now.Month(), now.Day(),
			start.Hour(), start.Minute(), 0, 0, now.Location())
		if now.After(todaySlot) {
			daysUntil = 7
		}
	}

	next := now.AddDate(0, 0, daysUntil)
	return time.Date(next.Year(), next.Month(), next.Day(),
		start.Hour(), start.Minute(), 0, 0, now.Location())
}
