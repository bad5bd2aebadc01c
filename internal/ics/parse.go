package ics

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	ical "github.com/arran4/golang-ical"

	appLog "hellocal/internal/log"
	"hellocal/internal/model"
)

// Parse parses a single ICS payload into a RawCalendar.
//
//   - Property names are flattened with their parameters
//     ("DTSTART;TZID=Europe/Lisbon") so timezone qualifiers stay visible
//     to the normalizer.
//   - TEXT values (SUMMARY, DESCRIPTION, LOCATION, X-*) arrive unescaped;
//     golang-ical applies FromText while parsing.
//   - Only VEVENT components are kept. RRULEs are not expanded; a
//     recurring event is treated as its first occurrence.
func Parse(body []byte) (model.RawCalendar, error) {
	var out model.RawCalendar
	if len(bytes.TrimSpace(body)) == 0 {
		return out, errors.New("ics: empty calendar body")
	}

	cal, err := ical.ParseCalendarWithOptions(
		bytes.NewReader(body),
		ical.WithUnknownPropertyHandler(ical.AcceptUnknownPropertyHandler),
	)
	if err != nil {
		return out, fmt.Errorf("ics: parse calendar: %w", err)
	}

	for _, p := range cal.CalendarProperties {
		out.Properties = append(out.Properties, flatten(p.BaseProperty))
	}

	for _, ve := range cal.Events() {
		raw := model.RawEvent{Properties: make([]model.RawProperty, 0, len(ve.Properties))}
		for _, p := range ve.Properties {
			raw.Properties = append(raw.Properties, flatten(p.BaseProperty))
		}
		if ve.HasProperty(ical.ComponentPropertyRrule) {
			summary, _ := raw.Get(string(ical.PropertySummary))
			appLog.Warn("recurring event treated as a single occurrence", "summary", summary)
		}
		out.Events = append(out.Events, raw)
	}

	appLog.Debug("ics parse completed", "event_count", len(out.Events))
	return out, nil
}

// flatten renders a property as NAME;PARAM=v1,v2;PARAM=v with parameters in
// name order, the shape the normalizer scans for DTSTART/DTEND/TZID.
func flatten(bp ical.BaseProperty) model.RawProperty {
	if len(bp.ICalParameters) == 0 {
		return model.RawProperty{Name: bp.IANAToken, Value: bp.Value}
	}

	keys := make([]string, 0, len(bp.ICalParameters))
	for k := range bp.ICalParameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(bp.IANAToken)
	for _, k := range keys {
		b.WriteString(";")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(strings.Join(bp.ICalParameters[k], ","))
	}
	return model.RawProperty{Name: b.String(), Value: bp.Value}
}
