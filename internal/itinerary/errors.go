package itinerary

import "fmt"

// MissingTimeFieldError is returned when an event has no DTSTART-like or
// DTEND-like property.
type MissingTimeFieldError struct {
	Summary string
	Field   string // "DTSTART" or "DTEND"
}

func (e *MissingTimeFieldError) Error() string {
	return fmt.Sprintf("event %q has no %s property", e.Summary, e.Field)
}

// InvalidTimeError is returned when an instant cannot be parsed or its
// TZID does not name a known zone.
type InvalidTimeError struct {
	Summary  string
	Property string
	Value    string
	Err      error
}

func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("event %q: invalid %s value %q: %v", e.Summary, e.Property, e.Value, e.Err)
}

func (e *InvalidTimeError) Unwrap() error {
	return e.Err
}

// MissingDescriptionError is returned for an event with an empty or absent
// DESCRIPTION.
type MissingDescriptionError struct {
	Summary string
}

func (e *MissingDescriptionError) Error() string {
	return fmt.Sprintf("no description for the event: %s", e.Summary)
}

// MissingTemplateError is returned when no X-TEMPLATE was found.
type MissingTemplateError struct {
	Source string
}

func (e *MissingTemplateError) Error() string {
	return fmt.Sprintf("the file %s has no x-template", e.Source)
}

// MissingLanguageError is returned when no X-LANG was found.
type MissingLanguageError struct {
	Source string
}

func (e *MissingLanguageError) Error() string {
	return fmt.Sprintf("the file %s has no x-lang", e.Source)
}

// EmptyCalendarError is returned when the calendar has no events.
type EmptyCalendarError struct {
	Source string
}

func (e *EmptyCalendarError) Error() string {
	return fmt.Sprintf("the file %s has no events", e.Source)
}

// MissingBracketEventError is returned when no event carries the bracket
// tag that defines the day range.
type MissingBracketEventError struct {
	Source string
	Tag    string
}

func (e *MissingBracketEventError) Error() string {
	return fmt.Sprintf("the file %s has no event tagged %q (X-CARLTAG) to define the day range", e.Source, e.Tag)
}
