package itinerary

import "hellocal/internal/model"

// Validate checks the preconditions a view must meet before rendering:
// at least one event, a template and a language, in that order.
func Validate(view *model.CalendarView, source string) error {
	if len(view.Events) == 0 {
		return &EmptyCalendarError{Source: source}
	}
	if view.Template == "" {
		return &MissingTemplateError{Source: source}
	}
	if view.Lang == "" {
		return &MissingLanguageError{Source: source}
	}
	return nil
}
