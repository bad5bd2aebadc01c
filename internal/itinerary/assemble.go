package itinerary

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"hellocal/internal/humanize"
	appLog "hellocal/internal/log"
	"hellocal/internal/model"
)

// Resolved is the template/lang pair folded across a calendar.
type Resolved struct {
	Template string
	Lang     string
}

// Fold applies the overrides carried by n, last one wins.
func (r Resolved) Fold(n Normalized) Resolved {
	if n.Template != "" {
		r.Template = n.Template
	}
	if n.Lang != "" {
		r.Lang = n.Lang
	}
	return r
}

// Assemble builds the view from sequenced events.
//
// Events are keyed by tag; when two events share a tag the later one
// replaces the earlier and a warning is logged. The view is validated
// before the day range is computed from the event tagged opts.BracketTag.
func Assemble(events []*model.Event, r Resolved, clientName string, opts Options, f humanize.Formatter) (*model.CalendarView, error) {
	opts = opts.withDefaults()

	view := &model.CalendarView{
		Lang:       r.Lang,
		Template:   r.Template,
		ClientName: clientName,
		Events:     events,
		Tagged:     make(map[string]*model.Event, len(events)),
	}

	for _, e := range events {
		if e.Tag == "" {
			continue
		}
		if prev, dup := view.Tagged[e.Tag]; dup {
			appLog.Warn("duplicate event tag; later event replaces earlier one",
				"source", opts.Source,
				"tag", e.Tag,
				"replaced", prev.Summary,
				"by", e.Summary,
			)
		}
		view.Tagged[e.Tag] = e
	}

	if err := Validate(view, opts.Source); err != nil {
		return nil, err
	}

	bracket, ok := view.Tagged[opts.BracketTag]
	if !ok {
		return nil, &MissingBracketEventError{Source: opts.Source, Tag: opts.BracketTag}
	}

	days, err := DayRange(bracket.Start, bracket.End)
	if err != nil {
		return nil, fmt.Errorf("itinerary: day range of %q: %w", opts.BracketTag, err)
	}
	for _, d := range days {
		view.Days = append(view.Days, f.LongDate(d))
	}

	return view, nil
}

// DayRange returns one instant per whole day between start and end:
// start, start+1d, ... for trunc((end-start)/24h) days. A range shorter
// than a day, or reversed, is empty.
func DayRange(start, end time.Time) ([]time.Time, error) {
	n := int(end.Sub(start) / (24 * time.Hour))
	if n <= 0 {
		return nil, nil
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: start,
		Count:   n,
	})
	if err != nil {
		return nil, err
	}
	return rule.All(), nil
}
