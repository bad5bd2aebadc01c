package itinerary

import (
	"hellocal/internal/model"
)

// rawEvent builds a RawEvent from name/value pairs, keeping their order.
func rawEvent(kv ...string) model.RawEvent {
	var ev model.RawEvent
	for i := 0; i+1 < len(kv); i += 2 {
		ev.Properties = append(ev.Properties, model.RawProperty{Name: kv[i], Value: kv[i+1]})
	}
	return ev
}

func utcEvent(summary, start, end, description string, extra ...string) model.RawEvent {
	kv := []string{
		"SUMMARY", summary,
		"DTSTART", start,
		"DTEND", end,
		"DESCRIPTION", description,
	}
	return rawEvent(append(kv, extra...)...)
}
