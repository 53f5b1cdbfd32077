package donation

import (
	"time"

	"golang.org/x/text/language"
)

// DefaultLocale is used when no or an unparseable locale is given
const DefaultLocale = "de-DE"

type displayLayout struct {
	date string
	time string
}

// The first entry is the matcher's fallback
var (
	displayLocales = []language.Tag{
		language.MustParse("de-DE"),
		language.AmericanEnglish,
		language.BritishEnglish,
		language.MustParse("fr-FR"),
		language.MustParse("nl-NL"),
		language.MustParse("pl-PL"),
	}
	displayLayouts = []displayLayout{
		{date: "02.01.2006", time: "15:04"},
		{date: "01/02/2006", time: "03:04 PM"},
		{date: "02/01/2006", time: "15:04"},
		{date: "02/01/2006", time: "15:04"},
		{date: "02-01-2006", time: "15:04"},
		{date: "02.01.2006", time: "15:04"},
	}
	displayMatcher = language.NewMatcher(displayLocales)
)

// FormatDonationDate renders a Unix millisecond timestamp in the local time
// zone as "<date> <time>" for the given locale
func FormatDonationDate(timestampMillis int64, locale string) string {
	return FormatDonationTime(time.UnixMilli(timestampMillis), locale)
}

// FormatDonationTime renders t in its own location as "<date> <time>"
func FormatDonationTime(t time.Time, locale string) string {
	l := layoutFor(locale)
	return t.Format(l.date) + " " + t.Format(l.time)
}

func layoutFor(locale string) displayLayout {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return displayLayouts[0]
	}
	_, idx, _ := displayMatcher.Match(tag)
	if idx < 0 || idx >= len(displayLayouts) {
		return displayLayouts[0]
	}
	return displayLayouts[idx]
}
