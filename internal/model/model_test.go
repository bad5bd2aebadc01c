package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawEventLookup(t *testing.T) {
	ev := RawEvent{Properties: []RawProperty{
		{Name: "SUMMARY", Value: "Flight"},
		{Name: "DTSTART;TZID=Europe/Lisbon", Value: "20240110T090000"},
		{Name: "DTEND;TZID=Europe/Lisbon", Value: "20240110T120000"},
		{Name: "SUMMARY", Value: "ignored"},
	}}

	v, ok := ev.Get("SUMMARY")
	require.True(t, ok)
	assert.Equal(t, "Flight", v)

	_, ok = ev.Get("DTSTART")
	assert.False(t, ok, "Get matches whole names only")

	p, ok := ev.FindKey("DTSTART")
	require.True(t, ok)
	assert.Equal(t, "DTSTART;TZID=Europe/Lisbon", p.Name)
	assert.Equal(t, "20240110T090000", p.Value)

	_, ok = ev.FindKey("LOCATION")
	assert.False(t, ok)
}

func TestEventContext(t *testing.T) {
	e := &Event{
		Summary: "Flight",
		Start:   time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
		End:     time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
		Tag:     "flight1",
		Fields: map[string]string{
			"FlightNumber": "TP 101",
			"summary":      "shadowed",
		},
	}

	ctx := e.Context()
	assert.Equal(t, "TP 101", ctx["FlightNumber"])
	assert.Equal(t, "Flight", ctx["summary"])
	assert.Equal(t, "2024-01-10T09:00:00Z", ctx["start"])
	assert.NotContains(t, ctx, "wait_interval")

	e.WaitInterval = "2 hours"
	assert.Equal(t, "2 hours", e.Context()["wait_interval"])
}

func TestCalendarViewContext(t *testing.T) {
	trip := &Event{Summary: "Trip", Tag: "clientinfo", Sequence: 1}
	flight := &Event{Summary: "Flight", Tag: "flight1", Sequence: 2}
	v := &CalendarView{
		Lang:       "pt",
		Template:   "itinerary",
		ClientName: "Carl",
		Events:     []*Event{trip, flight},
		Tagged:     map[string]*Event{"clientinfo": trip, "flight1": flight},
		Days:       []string{"10 de janeiro de 2024", "11 de janeiro de 2024"},
	}

	ctx := v.Context()
	assert.Equal(t, "pt", ctx["lang"])
	assert.Equal(t, "itinerary", ctx["template"])
	assert.Equal(t, "Carl", ctx["client_name"])
	assert.Equal(t, "10 de janeiro de 2024", ctx["day1"])
	assert.Equal(t, "11 de janeiro de 2024", ctx["day2"])
	assert.NotContains(t, ctx, "day3")

	events, ok := ctx["events"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, events, 2)
	assert.Equal(t, "Trip", events[0]["summary"])
	assert.Equal(t, 2, events[1]["sequence"])

	tagged, ok := ctx["flight1"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Flight", tagged["summary"])
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, "day1", DayKey(1))
	assert.Equal(t, "day12", DayKey(12))
}
