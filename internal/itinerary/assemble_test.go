package itinerary

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hellocal/internal/humanize"
	"hellocal/internal/model"
)

func TestAssemble(t *testing.T) {
	en := humanize.New("en")
	resolved := Resolved{Template: "itinerary", Lang: "en"}
	opts := Options{Source: "trip.ics"}

	bracket := func() *model.Event {
		return event("Trip",
			time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 13, 17, 0, 0, 0, time.UTC),
			DefaultBracketTag)
	}

	t.Run("keys events by tag and lists days", func(t *testing.T) {
		events := []*model.Event{bracket(), event("Flight", time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC), time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC), "")}
		Sequence(events, en)

		view, err := Assemble(events, resolved, "Carl", opts, en)
		require.NoError(t, err)

		assert.Equal(t, "en", view.Lang)
		assert.Equal(t, "itinerary", view.Template)
		assert.Equal(t, "Carl", view.ClientName)
		assert.Same(t, events[0], view.Tagged[DefaultBracketTag])
		assert.Same(t, events[1], view.Tagged["event-2"])
		assert.Equal(t, []string{"January 10, 2024", "January 11, 2024", "January 12, 2024"}, view.Days)

		ctx := view.Context()
		assert.Equal(t, "January 10, 2024", ctx["day1"])
		assert.Equal(t, "January 11, 2024", ctx["day2"])
		assert.Equal(t, "January 12, 2024", ctx["day3"])
		assert.NotContains(t, ctx, "day4")
		assert.Equal(t, "Carl", ctx["client_name"])
	})

	t.Run("duplicate tag keeps the later event", func(t *testing.T) {
		first := event("Hotel A", time.Date(2024, 1, 10, 14, 0, 0, 0, time.UTC), time.Date(2024, 1, 11, 11, 0, 0, 0, time.UTC), "hotel")
		second := event("Hotel B", time.Date(2024, 1, 11, 14, 0, 0, 0, time.UTC), time.Date(2024, 1, 12, 11, 0, 0, 0, time.UTC), "hotel")
		events := []*model.Event{bracket(), first, second}
		Sequence(events, en)

		view, err := Assemble(events, resolved, "", opts, en)
		require.NoError(t, err)
		assert.Same(t, second, view.Tagged["hotel"])
		assert.Len(t, view.Events, 3)
	})

	t.Run("missing bracket event", func(t *testing.T) {
		events := []*model.Event{event("Flight", time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC), time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC), "")}
		Sequence(events, en)

		_, err := Assemble(events, resolved, "", opts, en)

		var target *MissingBracketEventError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, DefaultBracketTag, target.Tag)
		assert.Equal(t, "trip.ics", target.Source)
	})

	t.Run("configurable bracket tag", func(t *testing.T) {
		b := bracket()
		b.Tag = "viagem"
		events := []*model.Event{b}
		Sequence(events, en)

		view, err := Assemble(events, resolved, "", Options{BracketTag: "viagem"}, en)
		require.NoError(t, err)
		assert.Len(t, view.Days, 3)
	})

	t.Run("validation runs before bracket lookup", func(t *testing.T) {
		_, err := Assemble(nil, Resolved{}, "", opts, en)

		var target *EmptyCalendarError
		assert.True(t, errors.As(err, &target))
	})
}

func TestDayRange(t *testing.T) {
	t.Run("truncates partial days", func(t *testing.T) {
		start := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
		days, err := DayRange(start, time.Date(2024, 1, 13, 17, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.Len(t, days, 3)
		assert.True(t, days[0].Equal(start))
		assert.True(t, days[2].Equal(start.AddDate(0, 0, 2)))
	})

	t.Run("less than a day", func(t *testing.T) {
		start := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
		days, err := DayRange(start, start.Add(23*time.Hour))
		require.NoError(t, err)
		assert.Empty(t, days)
	})

	t.Run("reversed range", func(t *testing.T) {
		start := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
		days, err := DayRange(start, start.Add(-72*time.Hour))
		require.NoError(t, err)
		assert.Empty(t, days)
	})

	t.Run("keeps wall clock across DST", func(t *testing.T) {
		lisbon, err := time.LoadLocation("Europe/Lisbon")
		require.NoError(t, err)
		start := time.Date(2024, 3, 30, 9, 0, 0, 0, lisbon)

		days, err := DayRange(start, time.Date(2024, 4, 2, 9, 0, 0, 0, lisbon))
		require.NoError(t, err)
		require.Len(t, days, 2)
		assert.Equal(t, 9, days[1].Hour())
		assert.Equal(t, 31, days[1].Day())
	})
}

func TestValidate(t *testing.T) {
	one := []*model.Event{{Summary: "x"}}

	var empty *EmptyCalendarError
	assert.True(t, errors.As(Validate(&model.CalendarView{Template: "t", Lang: "en"}, "a.ics"), &empty))

	var noTemplate *MissingTemplateError
	err := Validate(&model.CalendarView{Events: one, Lang: "en"}, "a.ics")
	assert.True(t, errors.As(err, &noTemplate))
	assert.Contains(t, err.Error(), "a.ics")

	var noLang *MissingLanguageError
	assert.True(t, errors.As(Validate(&model.CalendarView{Events: one, Template: "t"}, "a.ics"), &noLang))

	assert.NoError(t, Validate(&model.CalendarView{Events: one, Template: "t", Lang: "en"}, "a.ics"))
}

func TestResolvedFold(t *testing.T) {
	r := Resolved{Template: "cal-default", Lang: "en"}
	r = r.Fold(Normalized{Template: "itinerary"})
	r = r.Fold(Normalized{Lang: "pt-br"})
	r = r.Fold(Normalized{})
	assert.Equal(t, Resolved{Template: "itinerary", Lang: "pt-br"}, r)
}
