package donation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailablePickupDates(t *testing.T) {
	today := time.Date(2026, 2, 10, 12, 0, 0, 0, time.Local)

	dates := AvailablePickupDates(today, 4)

	assert.Equal(t, []string{"2026-02-13", "2026-02-16", "2026-02-17", "2026-02-18"}, dates)
}

func TestAvailablePickupDates_Count(t *testing.T) {
	today := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

	assert.Empty(t, AvailablePickupDates(today, 0))
	assert.Empty(t, AvailablePickupDates(today, -5))
	assert.Len(t, AvailablePickupDates(today, DefaultPickupDateCount), DefaultPickupDateCount)
	assert.Len(t, AvailablePickupDates(today, 1), 1)
}

func TestIsPickupDateAvailable(t *testing.T) {
	today := time.Date(2026, 2, 10, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		date string
		want bool
	}{
		{"first bookable friday", "2026-02-13", true},
		{"following monday", "2026-02-16", true},
		{"too early", "2026-02-12", false},
		{"today", "2026-02-10", false},
		{"saturday", "2026-02-14", false},
		{"sunday", "2026-02-15", false},
		{"not a date", "not-a-date", false},
		{"empty", "", false},
		{"day overflow", "2026-02-30", false},
		{"month overflow", "2026-13-01", false},
		{"day 32", "2026-03-32", false},
		{"missing padding", "2026-3-2", false},
		{"trailing text", "2026-02-16T10:00", false},
		{"far future", "2030-06-03", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPickupDateAvailable(tt.date, today))
		})
	}
}

func TestPickupPolicy_Consistency(t *testing.T) {
	locations := []*time.Location{time.UTC, time.Local}
	if berlin, err := time.LoadLocation("Europe/Berlin"); err == nil {
		locations = append(locations, berlin)
	}

	policies := []PickupPolicy{DefaultPickupPolicy, {ExcludeHolidays: true}}

	for _, loc := range locations {
		start := time.Date(2026, 1, 1, 23, 30, 0, 0, loc)
		for day := 0; day < 400; day++ {
			today := start.AddDate(0, 0, day)
			for _, policy := range policies {
				dates := policy.AvailableDates(today, 10)
				require.Len(t, dates, 10, "today=%s", today)

				var prev time.Time
				for i, d := range dates {
					require.True(t, policy.IsAvailable(d, today), "date %s rejected for today=%s", d, today)

					parsed, ok := parseYYYYMMDD(d, loc)
					require.True(t, ok)
					require.False(t, isWeekend(parsed), "weekend date %s", d)
					if i > 0 {
						require.True(t, parsed.After(prev), "dates not increasing: %v", dates)
					}
					prev = parsed
				}
			}
		}
	}
}

func TestPickupPolicy_ExcludeHolidays(t *testing.T) {
	// Tuesday before Easter 2026: Karfreitag 04-03 and Ostermontag 04-06
	today := time.Date(2026, 3, 31, 9, 0, 0, 0, time.UTC)
	withHolidays := PickupPolicy{ExcludeHolidays: true}

	assert.Equal(t, []string{"2026-04-03", "2026-04-06"}, DefaultPickupPolicy.AvailableDates(today, 2))
	assert.Equal(t, []string{"2026-04-07", "2026-04-08"}, withHolidays.AvailableDates(today, 2))

	assert.True(t, DefaultPickupPolicy.IsAvailable("2026-04-03", today))
	assert.False(t, withHolidays.IsAvailable("2026-04-03", today))
	assert.False(t, withHolidays.IsAvailable("2026-04-06", today))
	assert.True(t, withHolidays.IsAvailable("2026-04-07", today))
}

func TestPickupPolicy_Deterministic(t *testing.T) {
	today := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, AvailablePickupDates(today, 15), AvailablePickupDates(today, 15))
}

func TestLowerSaxonyHolidays(t *testing.T) {
	holidays := LowerSaxonyHolidays(2026)

	want := map[string]string{
		"2026-01-01": "Neujahr",
		"2026-04-03": "Karfreitag",
		"2026-04-06": "Ostermontag",
		"2026-05-01": "Tag der Arbeit",
		"2026-05-14": "Christi Himmelfahrt",
		"2026-05-25": "Pfingstmontag",
		"2026-10-03": "Tag der Deutschen Einheit",
		"2026-10-31": "Reformationstag",
		"2026-12-25": "1. Weihnachtstag",
		"2026-12-26": "2. Weihnachtstag",
	}
	assert.Equal(t, want, holidays)

	_, ok := LowerSaxonyHolidays(2017)["2017-10-31"]
	assert.False(t, ok, "Reformationstag was not a regular holiday before 2018")
}

func TestParseYYYYMMDD(t *testing.T) {
	parsed, ok := parseYYYYMMDD("2024-02-29", time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), parsed)

	_, ok = parseYYYYMMDD("2025-02-29", time.UTC)
	assert.False(t, ok)
}

func TestFormatYYYYMMDD(t *testing.T) {
	assert.Equal(t, "2026-02-03", formatYYYYMMDD(time.Date(2026, 2, 3, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "0999-12-01", formatYYYYMMDD(time.Date(999, 12, 1, 0, 0, 0, 0, time.UTC)))
}
