package humanize

import (
	"testing"
	"time"

	"github.com/goodsign/monday"
	"github.com/stretchr/testify/assert"
)

func TestNewResolvesLocale(t *testing.T) {
	cases := map[string]monday.Locale{
		"en":    monday.LocaleEnUS,
		"EN-us": monday.LocaleEnUS,
		"pt-br": monday.LocalePtBR,
		"pt_BR": monday.LocalePtBR,
		"pt":    monday.LocalePtBR,
		"es":    monday.LocaleEsES,
		"":      monday.LocaleEnUS,
		"xx-yy": monday.LocaleEnUS,
	}
	for lang, want := range cases {
		assert.Equal(t, want, New(lang).Locale(), lang)
	}
}

func TestLongFormats(t *testing.T) {
	at := time.Date(2024, time.January, 10, 9, 5, 0, 0, time.UTC)

	en := New("en")
	assert.Equal(t, "January 10, 2024", en.LongDate(at))
	assert.Equal(t, "Wednesday, January 10, 2024 9:05 AM", en.LongDateTime(at))

	pt := New("pt-br")
	assert.Contains(t, pt.LongDate(at), "10 de ")
	assert.Contains(t, pt.LongDate(at), " de 2024")
	assert.NotContains(t, pt.LongDate(at), "January")
	assert.Contains(t, pt.LongDateTime(at), "às 09:05")
}

func TestDuration(t *testing.T) {
	en := New("en")
	cases := []struct {
		in   time.Duration
		want string
	}{
		{10 * time.Second, "a few seconds"},
		{44 * time.Second, "a few seconds"},
		{45 * time.Second, "a minute"},
		{89 * time.Second, "a minute"},
		{90 * time.Second, "2 minutes"},
		{44 * time.Minute, "44 minutes"},
		{45 * time.Minute, "an hour"},
		{150 * time.Minute, "3 hours"},
		{21 * time.Hour, "21 hours"},
		{22 * time.Hour, "a day"},
		{-36 * time.Hour, "2 days"},
		{25 * 24 * time.Hour, "25 days"},
		{26 * 24 * time.Hour, "a month"},
		{100 * 24 * time.Hour, "3 months"},
		{330 * 24 * time.Hour, "a year"},
		{800 * 24 * time.Hour, "2 years"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, en.Duration(c.in), c.in.String())
	}

	assert.Equal(t, "3 horas", New("pt-br").Duration(3*time.Hour))
	assert.Equal(t, "un día", New("es").Duration(24*time.Hour))
	assert.Equal(t, "3 hours", New("klingon").Duration(3*time.Hour))
}
