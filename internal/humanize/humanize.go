// Package humanize formats instants and spans as locale-aware text for
// calendar documents: long dates ("January 10, 2024"), long date-times
// ("Wednesday, January 10, 2024 9:00 AM") and relative durations
// ("3 hours", "a day").
package humanize

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/goodsign/monday"
)

// layouts holds the long-date and long-datetime layouts of one language.
type layouts struct {
	date     string
	dateTime string
}

var languageLayouts = map[string]layouts{
	"en": {"January 2, 2006", "Monday, January 2, 2006 3:04 PM"},
	"pt": {"2 de January de 2006", "Monday, 2 de January de 2006 às 15:04"},
	"es": {"2 de January de 2006", "Monday, 2 de January de 2006 15:04"},
	"fr": {"2 January 2006", "Monday 2 January 2006 15:04"},
	"de": {"2. January 2006", "Monday, 2. January 2006 15:04"},
	"it": {"2 January 2006", "Monday 2 January 2006 15:04"},
	"nl": {"2 January 2006", "Monday 2 January 2006 15:04"},
}

// defaultRegion completes a bare language code into a monday locale.
var defaultRegion = map[string]string{
	"en": "US",
	"pt": "BR",
	"es": "ES",
	"fr": "FR",
	"de": "DE",
	"it": "IT",
	"nl": "NL",
}

// Formatter renders times for one resolved locale.
type Formatter struct {
	locale monday.Locale
	layout layouts
	words  units
}

// New resolves lang ("en", "pt-br", "pt_BR", "es") into a Formatter.
// Unknown languages fall back to US English.
func New(lang string) Formatter {
	base, locale := resolveLocale(lang)

	l, ok := languageLayouts[base]
	if !ok {
		l = languageLayouts["en"]
	}
	w, ok := unitWords[base]
	if !ok {
		w = unitWords["en"]
	}
	return Formatter{locale: locale, layout: l, words: w}
}

// Locale returns the resolved monday locale.
func (f Formatter) Locale() monday.Locale {
	return f.locale
}

// LongDate formats t as a long-form date, e.g. "January 10, 2024" or
// "10 de janeiro de 2024".
func (f Formatter) LongDate(t time.Time) string {
	return monday.Format(t, f.layout.date, f.locale)
}

// LongDateTime formats t with weekday, date and wall-clock time.
func (f Formatter) LongDateTime(t time.Time) string {
	return monday.Format(t, f.layout.dateTime, f.locale)
}

// Duration renders d as a rounded natural-language span. The sign of d is
// ignored.
//
// Thresholds:
//   - under 45s: a few seconds
//   - under 45m: a minute / N minutes
//   - under 22h: an hour / N hours
//   - under 26d: a day / N days
//   - under 11 months: a month / N months
//   - otherwise: a year / N years
func (f Formatter) Duration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	ms := float64(d.Milliseconds())

	seconds := round(ms / 1000)
	minutes := round(ms / 6e4)
	hours := round(ms / 36e5)
	days := round(ms / 864e5)
	months := round(ms / 864e5 * 4800 / 146097)
	years := round(ms / 864e5 * 400 / 146097)

	w := f.words
	switch {
	case seconds < 45:
		return w.fewSeconds
	case minutes <= 1:
		return w.minute
	case minutes < 45:
		return fmt.Sprintf(w.minutes, minutes)
	case hours <= 1:
		return w.hour
	case hours < 22:
		return fmt.Sprintf(w.hours, hours)
	case days <= 1:
		return w.day
	case days < 26:
		return fmt.Sprintf(w.days, days)
	case months <= 1:
		return w.month
	case months < 11:
		return fmt.Sprintf(w.months, months)
	case years <= 1:
		return w.year
	default:
		return fmt.Sprintf(w.years, years)
	}
}

func round(v float64) int {
	return int(math.Round(v))
}

// resolveLocale splits lang into its base language and the closest locale
// monday knows about.
func resolveLocale(lang string) (string, monday.Locale) {
	norm := strings.ReplaceAll(strings.TrimSpace(lang), "-", "_")
	base, region, _ := strings.Cut(norm, "_")
	base = strings.ToLower(base)
	region = strings.ToUpper(region)

	if region == "" {
		region = defaultRegion[base]
	}
	candidate := monday.Locale(base + "_" + region)
	if knownLocale(candidate) {
		return base, candidate
	}
	if r, ok := defaultRegion[base]; ok {
		return base, monday.Locale(base + "_" + r)
	}
	return "en", monday.LocaleEnUS
}

func knownLocale(l monday.Locale) bool {
	for _, known := range monday.ListLocales() {
		if known == l {
			return true
		}
	}
	return false
}
