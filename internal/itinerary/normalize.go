package itinerary

import (
	"strings"
	"time"
	_ "time/tzdata" // TZID lookups must not depend on the host zoneinfo

	"hellocal/internal/model"
)

const (
	startMarker = "DTSTART"
	endMarker   = "DTEND"
	tzidMarker  = "TZID="

	propSummary     = "SUMMARY"
	propURL         = "URL"
	propLocation    = "LOCATION"
	propDescription = "DESCRIPTION"
	propTemplate    = "X-TEMPLATE"
	propLang        = "X-LANG"
	propTag         = "X-CARLTAG"
)

// Normalized is one event after normalization together with the
// template/lang overrides it carries. Empty strings mean "not set".
type Normalized struct {
	Event    *model.Event
	Template string
	Lang     string
}

// Normalize converts a raw VEVENT into an Event.
//
// The start and end properties are the first property names containing
// "DTSTART" and "DTEND". Their zone is the TZID parameter of that name;
// values ending in "Z" are UTC and values with neither use floating.
// A nil floating location means time.Local.
func Normalize(raw model.RawEvent, floating *time.Location) (Normalized, error) {
	summary := propertyValue(raw, propSummary)

	startProp, ok := raw.FindKey(startMarker)
	if !ok {
		return Normalized{}, &MissingTimeFieldError{Summary: summary, Field: startMarker}
	}
	endProp, ok := raw.FindKey(endMarker)
	if !ok {
		return Normalized{}, &MissingTimeFieldError{Summary: summary, Field: endMarker}
	}

	ev := &model.Event{
		Summary:       summary,
		URL:           propertyValue(raw, propURL),
		Location:      propertyValue(raw, propLocation),
		StartTimezone: timezoneOf(startProp.Name),
		EndTimezone:   timezoneOf(endProp.Name),
		StartTime:     clockOf(startProp.Value),
		EndTime:       clockOf(endProp.Value),
	}

	var err error
	if ev.Start, err = parseInstant(startProp.Value, ev.StartTimezone, floating); err != nil {
		return Normalized{}, &InvalidTimeError{Summary: summary, Property: startProp.Name, Value: startProp.Value, Err: err}
	}
	if ev.End, err = parseInstant(endProp.Value, ev.EndTimezone, floating); err != nil {
		return Normalized{}, &InvalidTimeError{Summary: summary, Property: endProp.Name, Value: endProp.Value, Err: err}
	}

	desc := propertyValue(raw, propDescription)
	if strings.TrimSpace(desc) == "" {
		return Normalized{}, &MissingDescriptionError{Summary: summary}
	}
	ev.Description = desc
	ev.Fields = ParseMetadata(desc)
	ev.Tag = strings.TrimSpace(propertyValue(raw, propTag))

	return Normalized{
		Event:    ev,
		Template: strings.TrimSpace(propertyValue(raw, propTemplate)),
		Lang:     strings.TrimSpace(propertyValue(raw, propLang)),
	}, nil
}

// propertyValue returns the value of name, with or without parameters
// ("LOCATION" matches "LOCATION;LANGUAGE=pt").
func propertyValue(raw model.RawEvent, name string) string {
	for _, p := range raw.Properties {
		if p.Name == name || strings.HasPrefix(p.Name, name+";") {
			return p.Value
		}
	}
	return ""
}

// timezoneOf extracts the TZID parameter from a flattened property name.
func timezoneOf(name string) string {
	_, tz, ok := strings.Cut(name, tzidMarker)
	if !ok {
		return ""
	}
	tz, _, _ = strings.Cut(tz, ";")
	return strings.Trim(tz, `"`)
}

// clockOf returns "HH:MM" from a value like 20240110T093000, or "" for a
// date-only value.
func clockOf(value string) string {
	_, clock, ok := strings.Cut(value, "T")
	if !ok || len(clock) < 4 {
		return ""
	}
	return clock[:2] + ":" + clock[2:4]
}

func parseInstant(value, tzid string, floating *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)

	if strings.HasSuffix(value, "Z") {
		return time.Parse("20060102T150405Z", value)
	}

	loc := floating
	if tzid != "" {
		l, err := time.LoadLocation(tzid)
		if err != nil {
			return time.Time{}, err
		}
		loc = l
	}
	if loc == nil {
		loc = time.Local
	}

	if strings.Contains(value, "T") {
		return time.ParseInLocation("20060102T150405", value, loc)
	}
	return time.ParseInLocation("20060102", value, loc)
}
