package donation

import "time"

// LowerSaxonyHolidays returns the public holidays of Lower Saxony, where
// the office is located, keyed by YYYY-MM-DD
func LowerSaxonyHolidays(year int) map[string]string {
	holidays := map[string]string{
		civilDate(year, time.January, 1):   "Neujahr",
		civilDate(year, time.May, 1):       "Tag der Arbeit",
		civilDate(year, time.October, 3):   "Tag der Deutschen Einheit",
		civilDate(year, time.December, 25): "1. Weihnachtstag",
		civilDate(year, time.December, 26): "2. Weihnachtstag",
	}

	// Reformationstag is a statutory holiday in Lower Saxony since 2018
	if year >= 2018 {
		holidays[civilDate(year, time.October, 31)] = "Reformationstag"
	}

	easter := easterSunday(year)
	movable := []struct {
		offset int
		name   string
	}{
		{-2, "Karfreitag"},
		{1, "Ostermontag"},
		{39, "Christi Himmelfahrt"},
		{50, "Pfingstmontag"},
	}
	for _, h := range movable {
		holidays[formatYYYYMMDD(easter.AddDate(0, 0, h.offset))] = h.name
	}

	return holidays
}

// easterSunday computes Easter Sunday with the Meeus/Jones/Butcher algorithm
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func civilDate(year int, month time.Month, day int) string {
	return formatYYYYMMDD(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}
