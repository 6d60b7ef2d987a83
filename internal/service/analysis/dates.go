package analysis

import (
	"strings"
	"time"
)

// Layouts the detector accepts from the model, in match order. The
// year-less layouts parse to year 0, which marks them for inference.
var (
	datedLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
		"January 2, 2006",
		"Jan 2, 2006",
		"2 January 2006",
	}
	yearlessLayouts = []string{
		"January 2T15:04:05",
		"January 2 15:04:05",
		"January 2",
		"Jan 2",
		"2 January",
		"01-02",
	}
)

// NormalizeEventDate applies the two date-inference rules to a raw model
// date, against an explicit reference instant:
//
//  1. A date with no year is assumed to fall in now's calendar year.
//  2. If that assumed date has already elapsed relative to now, the year
//     rolls forward by one.
//
// Dates that carry an explicit year pass through re-serialized; strings
// that parse under no known layout pass through untouched, leaving the
// validator to judge them.
func NormalizeEventDate(raw string, now time.Time) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return raw
	}

	for _, layout := range datedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return serialize(t, layoutHasTime(layout))
		}
	}

	for _, layout := range yearlessLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}

		inferred := time.Date(now.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, now.Location())
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if inferred.Before(today) {
			inferred = inferred.AddDate(1, 0, 0)
		}
		return serialize(inferred, layoutHasTime(layout))
	}

	return raw
}

func layoutHasTime(layout string) bool {
	return strings.Contains(layout, "15:04")
}

func serialize(t time.Time, withTime bool) string {
	if withTime {
		return t.Format("2006-01-02T15:04:05")
	}
	return t.Format("2006-01-02")
}
