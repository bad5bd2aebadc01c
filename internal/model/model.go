package model

import (
	"strconv"
	"strings"
	"time"
)

// RawProperty is one calendar property as produced by the ICS parser.
//
// Name is the flattened property name including its parameters, e.g.
// "DTSTART;TZID=Europe/Lisbon". Parameters are appended in name order.
type RawProperty struct {
	Name  string
	Value string
}

// RawEvent is an opaque VEVENT: its properties in file order.
type RawEvent struct {
	Properties []RawProperty
}

// Get returns the value of the first property whose name is exactly name.
func (e RawEvent) Get(name string) (string, bool) {
	return lookup(e.Properties, name)
}

// FindKey scans property names in file order and returns the first one
// containing marker as a substring.
func (e RawEvent) FindKey(marker string) (RawProperty, bool) {
	for _, p := range e.Properties {
		if strings.Contains(p.Name, marker) {
			return p, true
		}
	}
	return RawProperty{}, false
}

// RawCalendar is a single VCALENDAR block.
type RawCalendar struct {
	Properties []RawProperty
	Events     []RawEvent
}

// Get returns the value of a calendar-level property.
func (c RawCalendar) Get(name string) (string, bool) {
	return lookup(c.Properties, name)
}

func lookup(props []RawProperty, name string) (string, bool) {
	for _, p := range props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Event is a normalized calendar event ready to be placed in a view.
//
// Typed fields are filled by the normalizer and the sequencer. Fields holds
// the open set of keys parsed from the description ("Flight Number: TP 123"
// becomes Fields["FlightNumber"] = "TP 123").
type Event struct {
	Summary     string
	URL         string
	Location    string
	Description string

	StartTimezone string
	EndTimezone   string

	// StartTime / EndTime are "HH:MM" taken from the raw instant, empty for
	// date-only values.
	StartTime string
	EndTime   string

	Start time.Time
	End   time.Time

	Fields map[string]string

	Tag      string
	Sequence int

	StartDateHuman string
	EndDateHuman   string
	StartHuman     string
	EndHuman       string
	DurationHuman  string
	// WaitInterval is the humanized gap since the previous event ended.
	// Empty for the first event.
	WaitInterval string
}

// Context flattens the event into the map handed to templates.
// Description-derived keys are added first so typed fields always win.
func (e *Event) Context() map[string]any {
	ctx := make(map[string]any, len(e.Fields)+20)
	for k, v := range e.Fields {
		ctx[k] = v
	}

	ctx["summary"] = e.Summary
	ctx["url"] = e.URL
	ctx["location"] = e.Location
	ctx["description"] = e.Description
	ctx["start_timezone"] = e.StartTimezone
	ctx["end_timezone"] = e.EndTimezone
	ctx["start_time"] = e.StartTime
	ctx["end_time"] = e.EndTime
	ctx["start"] = e.Start.Format(time.RFC3339)
	ctx["end"] = e.End.Format(time.RFC3339)
	ctx["tag"] = e.Tag
	ctx["sequence"] = e.Sequence
	ctx["start_date_human"] = e.StartDateHuman
	ctx["end_date_human"] = e.EndDateHuman
	ctx["start_human"] = e.StartHuman
	ctx["end_human"] = e.EndHuman
	ctx["duration_human"] = e.DurationHuman
	if e.WaitInterval != "" {
		ctx["wait_interval"] = e.WaitInterval
	}
	return ctx
}

// CalendarView is the assembled view-model for one calendar file. It is
// built once by the itinerary package and must not be modified afterwards.
type CalendarView struct {
	Lang       string
	Template   string
	ClientName string

	// Events in chronological order.
	Events []*Event
	// Tagged maps each tag to its event. A later event with the same tag
	// replaces the earlier one.
	Tagged map[string]*Event

	// Days holds the long-form dates of the bracket range; Days[0] is day1.
	Days []string
}

// Context flattens the view into the map handed to templates:
// lang, template, client_name, one entry per tag, day1..dayN and the
// ordered events list.
func (v *CalendarView) Context() map[string]any {
	ctx := map[string]any{
		"lang":        v.Lang,
		"template":    v.Template,
		"client_name": v.ClientName,
	}

	list := make([]map[string]any, 0, len(v.Events))
	for _, e := range v.Events {
		list = append(list, e.Context())
	}
	ctx["events"] = list

	for tag, e := range v.Tagged {
		ctx[tag] = e.Context()
	}
	for i, d := range v.Days {
		ctx[DayKey(i+1)] = d
	}
	return ctx
}

// DayKey returns the view key for the i-th (1-based) day of the range.
func DayKey(i int) string {
	return "day" + strconv.Itoa(i)
}
