// Package ics serializes a visible event window to an iCalendar feed.
package ics

import (
	ical "github.com/arran4/golang-ical"

	"github.com/halcyra/cadence/internal/domain/event"
)

const prodID = "-//cadence//event tracker//EN"

// Export renders the given events (base events plus expanded instances, as
// produced by the view pipeline) as an iCalendar document.
func Export(events []event.Event) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)

	for _, e := range events {
		ve := cal.AddEvent(e.ID)
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.AllDay {
			ve.SetAllDayStartAt(e.Start)
			ve.SetAllDayEndAt(e.End)
		} else {
			ve.SetStartAt(e.Start)
			ve.SetEndAt(e.End)
		}
		ve.SetDtStampTime(e.Start)
	}

	return cal.Serialize()
}
