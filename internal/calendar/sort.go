package calendar

import (
	"sort"
	"time"

	"focuscal/internal/model"
)

// SortedByStartDesc returns a copy of entries ordered by combined start
// instant, most recent first, as the list view presents them. The sort is
// stable so entries sharing an instant keep their collection order. Entries
// whose start cannot be parsed sink to the end.
func SortedByStartDesc(entries []model.ScheduleEntry) []model.ScheduleEntry {
	out := make([]model.ScheduleEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return startOf(out[i]).After(startOf(out[j]))
	})
	return out
}

func startOf(e model.ScheduleEntry) time.Time {
	t, err := e.StartInstant()
	if err != nil {
		return time.Time{}
	}
	return t
}
