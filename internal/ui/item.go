package ui

import (
	"fmt"

	"focuscal/internal/model"
)

// entryItem wraps a ScheduleEntry to satisfy the list.DefaultItem interface.
type entryItem struct {
	entry model.ScheduleEntry
	// taskLabel is the resolved name of the linked task, empty when the
	// entry is not linked.
	taskLabel string
}

func (i entryItem) Title() string {
	return fmt.Sprintf("%s  %s %s ~ %s %s",
		i.entry.Name,
		i.entry.StartDate, i.entry.StartTime,
		i.entry.DueDate, i.entry.DueTime,
	)
}

func (i entryItem) Description() string {
	desc := i.entry.Description
	if i.taskLabel != "" {
		if desc != "" {
			desc += "  "
		}
		desc += "[" + i.taskLabel + "]"
	}
	return desc
}

func (i entryItem) FilterValue() string {
	return i.entry.Name
}
