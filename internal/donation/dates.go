package donation

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DateLayout is the wire format of pickup dates
const DateLayout = "2006-01-02"

var yyyymmddPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// formatYYYYMMDD formats t using its own calendar fields, no UTC conversion
func formatYYYYMMDD(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// startOfDay returns midnight of t's calendar day in t's location
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// addDays moves by calendar days so DST changes never shift the date
func addDays(t time.Time, days int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+days, 0, 0, 0, 0, t.Location())
}

// parseYYYYMMDD parses a strict YYYY-MM-DD string into midnight in loc.
// Dates that do not exist (2026-02-30, month 13) are rejected instead of
// rolling over into the next month.
func parseYYYYMMDD(text string, loc *time.Location) (time.Time, bool) {
	m := yyyymmddPattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	parsed := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if parsed.Year() != year || int(parsed.Month()) != month || parsed.Day() != day {
		return time.Time{}, false
	}
	return parsed, true
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
