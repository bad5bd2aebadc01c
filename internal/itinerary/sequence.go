package itinerary

import (
	"sort"
	"strconv"

	"hellocal/internal/humanize"
	"hellocal/internal/model"
)

// DefaultTag is the tag given to an untagged event at 1-based position seq.
func DefaultTag(seq int) string {
	return "event-" + strconv.Itoa(seq)
}

// Sequence sorts events by start (stable), numbers them from 1, tags
// untagged ones and fills the humanized fields using f.
func Sequence(events []*model.Event, f humanize.Formatter) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})

	var prev *model.Event
	for i, e := range events {
		e.Sequence = i + 1
		if e.Tag == "" {
			e.Tag = DefaultTag(e.Sequence)
		}

		e.StartDateHuman = f.LongDate(e.Start)
		e.EndDateHuman = f.LongDate(e.End)
		e.StartHuman = f.LongDateTime(e.Start)
		e.EndHuman = f.LongDateTime(e.End)
		e.DurationHuman = f.Duration(e.End.Sub(e.Start))

		e.WaitInterval = ""
		if prev != nil {
			e.WaitInterval = f.Duration(e.Start.Sub(prev.End))
		}
		prev = e
	}
}
