// Package itinerary turns a parsed calendar into the flat view-model that
// document templates are rendered against.
//
// The pipeline runs once per calendar:
//
//	Normalize (per event) -> Sequence -> Assemble (incl. Validate)
//
// Every failure is fatal and reported as one of the typed errors in
// errors.go.
package itinerary

import (
	"strings"
	"time"

	"hellocal/internal/humanize"
	"hellocal/internal/ics"
	appLog "hellocal/internal/log"
	"hellocal/internal/model"
)

// DefaultBracketTag tags the event whose start and end span the
// day1..dayN listing.
const DefaultBracketTag = "clientinfo"

// Options controls a single Parse.
type Options struct {
	// Source names the calendar in errors and logs (usually its path).
	Source string
	// BracketTag overrides DefaultBracketTag.
	BracketTag string
	// Location applies to instants without TZID or UTC marker.
	// Nil means time.Local.
	Location *time.Location
}

func (o Options) withDefaults() Options {
	if o.BracketTag == "" {
		o.BracketTag = DefaultBracketTag
	}
	if o.Source == "" {
		o.Source = "<calendar>"
	}
	return o
}

// ParseBytes parses ICS text and builds its view.
func ParseBytes(body []byte, opts Options) (*model.CalendarView, error) {
	cal, err := ics.Parse(body)
	if err != nil {
		return nil, err
	}
	return Parse(cal, opts)
}

// Parse builds the view of a parsed calendar.
//
// Calendar-level X-TEMPLATE / X-LANG act as defaults; events override
// them in file order, the last one winning.
func Parse(cal model.RawCalendar, opts Options) (*model.CalendarView, error) {
	opts = opts.withDefaults()

	var resolved Resolved
	if v, ok := cal.Get(propTemplate); ok {
		resolved.Template = strings.TrimSpace(v)
	}
	if v, ok := cal.Get(propLang); ok {
		resolved.Lang = strings.TrimSpace(v)
	}

	events := make([]*model.Event, 0, len(cal.Events))
	for _, raw := range cal.Events {
		n, err := Normalize(raw, opts.Location)
		if err != nil {
			return nil, err
		}
		resolved = resolved.Fold(n)
		events = append(events, n.Event)
	}

	f := humanize.New(resolved.Lang)
	Sequence(events, f)

	clientName, _ := cal.Get("X-WR-CALNAME")
	view, err := Assemble(events, resolved, clientName, opts, f)
	if err != nil {
		return nil, err
	}

	appLog.Info("calendar view assembled",
		"source", opts.Source,
		"events", len(view.Events),
		"template", view.Template,
		"lang", view.Lang,
		"days", len(view.Days),
	)
	return view, nil
}
