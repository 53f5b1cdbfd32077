package app

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/klabast/wb-services/kleiderspende/internal/donation"
	"github.com/klabast/wb-services/kleiderspende/internal/registration"
)

// reminderHour is the local hour of the reminder on the day before a pickup
const reminderHour = 18

// writeLine writes one CRLF terminated iCalendar line and logs any error
func writeLine(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format+"\r\n", args...); err != nil {
		log.Printf("Error writing to response: %v", err)
	}
}

// escapeText escapes an iCalendar TEXT value (RFC 5545 3.3.11)
func escapeText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)
	return r.Replace(s)
}

// GenerateAppointmentICS writes the pickup appointment as an iCalendar
// event spanning the booked time slot, with a reminder on the evening before
func GenerateAppointmentICS(w io.Writer, reg registration.PickupRegistration, loc *time.Location, now time.Time) error {
	start, end, err := appointmentWindow(reg, loc)
	if err != nil {
		return err
	}

	summary := fmt.Sprintf("Abholung Kleiderspende (%s)", reg.ClothingType)
	location := fmt.Sprintf("%s, %s %s", reg.Street, reg.PostalCode, reg.City)

	writeLine(w, "BEGIN:VCALENDAR")
	writeLine(w, "VERSION:2.0")
	writeLine(w, "PRODID:%s", ICSProductID)
	writeLine(w, "CALSCALE:GREGORIAN")
	writeLine(w, "METHOD:PUBLISH")
	writeLine(w, "BEGIN:VEVENT")
	writeLine(w, "UID:%s@kleiderspende", reg.ID)
	writeLine(w, "DTSTAMP:%s", now.UTC().Format("20060102T150405Z"))
	writeLine(w, "DTSTART:%s", start.UTC().Format("20060102T150405Z"))
	writeLine(w, "DTEND:%s", end.UTC().Format("20060102T150405Z"))
	writeLine(w, "SUMMARY:%s", escapeText(summary))
	writeLine(w, "DESCRIPTION:%s", escapeText(fmt.Sprintf("Spende für %s, Zeitfenster %s Uhr", reg.CrisisRegion, reg.PickupTimeSlot)))
	writeLine(w, "LOCATION:%s", escapeText(location))
	addReminder(w, start, loc, summary)
	writeLine(w, "END:VEVENT")
	writeLine(w, "END:VCALENDAR")
	return nil
}

// appointmentWindow resolves pickup date and time slot to absolute times in loc
func appointmentWindow(reg registration.PickupRegistration, loc *time.Location) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(donation.DateLayout, reg.PickupDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pickup date %q: %w", reg.PickupDate, err)
	}
	from, to, ok := reg.PickupTimeSlot.Hours()
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("unknown pickup time slot %q", reg.PickupTimeSlot)
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), from, 0, 0, 0, loc)
	end := time.Date(day.Year(), day.Month(), day.Day(), to, 0, 0, 0, loc)
	return start, end, nil
}

// addReminder adds a display alarm at reminderHour on the day before start.
// The trigger is relative to the event start, e.g. -PT16H for a 10:00 pickup.
func addReminder(w io.Writer, start time.Time, loc *time.Location, description string) {
	alarm := time.Date(start.Year(), start.Month(), start.Day()-1, reminderHour, 0, 0, 0, loc)
	before := start.Sub(alarm)
	if before <= 0 {
		return
	}

	hours := int(before.Hours())
	minutes := int(before.Minutes()) % 60

	writeLine(w, "BEGIN:VALARM")
	writeLine(w, "ACTION:DISPLAY")
	writeLine(w, "DESCRIPTION:Erinnerung: %s", escapeText(description))
	writeLine(w, "TRIGGER:-PT%dH%dM", hours, minutes)
	writeLine(w, "END:VALARM")
}
