// Package ics serializes the schedule collection as iCalendar data so
// entries can be handed to other calendar clients.
package ics

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"focuscal/internal/model"
)

// Export writes entries to w as a VCALENDAR. Each entry becomes one VEVENT
// whose UID is derived from the entry id. Entries with unparseable instants
// abort the export; the persisted collection should never contain them.
func Export(entries []model.ScheduleEntry, w io.Writer) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	stamp := time.Now().UTC()

	for _, e := range entries {
		start, err := e.StartInstant()
		if err != nil {
			return fmt.Errorf("entry %d: %w", e.ID, err)
		}
		end, err := e.DueInstant()
		if err != nil {
			return fmt.Errorf("entry %d: %w", e.ID, err)
		}

		ev := cal.AddEvent(fmt.Sprintf("focuscal-%d", e.ID))
		ev.SetSummary(e.Name)
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}
		ev.SetStartAt(start)
		ev.SetEndAt(end)
		// DTSTAMP records when this calendar data was produced, not when
		// the event happens.
		ev.SetDtStampTime(stamp)
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}
