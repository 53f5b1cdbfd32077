package donation

import "time"

const (
	// PickupLeadDays is the minimum number of calendar days between
	// today and a pickup
	PickupLeadDays = 3

	// DefaultPickupDateCount is how many dates the form offers
	DefaultPickupDateCount = 30

	minScanDays = 30
)

// PickupPolicy decides which calendar days can be booked for a pickup.
// The zero value accepts every weekday at least PickupLeadDays ahead.
type PickupPolicy struct {
	// ExcludeHolidays also rejects Lower Saxony public holidays
	ExcludeHolidays bool
}

// DefaultPickupPolicy is the weekday-only policy without holiday handling
var DefaultPickupPolicy = PickupPolicy{}

// AvailablePickupDates lists up to count bookable dates for today using
// the default policy
func AvailablePickupDates(today time.Time, count int) []string {
	return DefaultPickupPolicy.AvailableDates(today, count)
}

// IsPickupDateAvailable reports whether date can be booked for today
// using the default policy
func IsPickupDateAvailable(date string, today time.Time) bool {
	return DefaultPickupPolicy.IsAvailable(date, today)
}

// AvailableDates walks forward from the earliest bookable day and collects
// up to count bookable dates in chronological order. The scan is capped at
// max(count*3, 30) days.
func (p PickupPolicy) AvailableDates(today time.Time, count int) []string {
	result := []string{}
	if count <= 0 {
		return result
	}

	current := p.earliest(today)
	maxDays := max(count*3, minScanDays)

	for checked := 0; len(result) < count && checked < maxDays; checked++ {
		if p.bookable(current) {
			result = append(result, formatYYYYMMDD(current))
		}
		current = addDays(current, 1)
	}

	return result
}

// IsAvailable fails closed: unparseable dates, weekends, excluded holidays
// and days before the lead time are all unavailable
func (p PickupPolicy) IsAvailable(date string, today time.Time) bool {
	parsed, ok := parseYYYYMMDD(date, today.Location())
	if !ok {
		return false
	}
	if !p.bookable(parsed) {
		return false
	}
	return !parsed.Before(p.earliest(today))
}

func (p PickupPolicy) earliest(today time.Time) time.Time {
	return addDays(startOfDay(today), PickupLeadDays)
}

// bookable checks the calendar-only part of the policy; both AvailableDates
// and IsAvailable go through it
func (p PickupPolicy) bookable(day time.Time) bool {
	if isWeekend(day) {
		return false
	}
	if p.ExcludeHolidays {
		if _, holiday := LowerSaxonyHolidays(day.Year())[formatYYYYMMDD(day)]; holiday {
			return false
		}
	}
	return true
}
