package model

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the canonical YYYY-MM-DD form used everywhere an entry is
// matched against a calendar cell. Entries and cells must go through the
// same formatter or string equality stops standing in for date equality.
const DateLayout = "2006-01-02"

// TimeLayout is the wall-clock form stored in StartTime / DueTime.
const TimeLayout = "15:04"

// instantLayout combines the two for whole-instant comparisons.
const instantLayout = DateLayout + " " + TimeLayout

// DateString formats t in the canonical YYYY-MM-DD form.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// ScheduleEntry is a single calendar commitment. Date and time components are
// kept as separate strings because the grid engines match and render them
// independently.
type ScheduleEntry struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	TaskID      *int   `json:"task_id,omitempty"`
	CreatedAt   string `json:"created_at"`
	StartDate   string `json:"start_date"`
	StartTime   string `json:"start_time"`
	DueDate     string `json:"due_date"`
	DueTime     string `json:"due_time"`
}

// StartInstant parses start_date + start_time as a single local timestamp.
func (e ScheduleEntry) StartInstant() (time.Time, error) {
	return time.ParseInLocation(instantLayout, e.StartDate+" "+e.StartTime, time.Local)
}

// DueInstant parses due_date + due_time as a single local timestamp.
func (e ScheduleEntry) DueInstant() (time.Time, error) {
	return time.ParseInLocation(instantLayout, e.DueDate+" "+e.DueTime, time.Local)
}

// StartMinutes returns the start time as minutes from midnight.
func (e ScheduleEntry) StartMinutes() (int, error) {
	return clockMinutes(e.StartTime)
}

// DueMinutes returns the due time as minutes from midnight.
func (e ScheduleEntry) DueMinutes() (int, error) {
	return clockMinutes(e.DueTime)
}

func clockMinutes(clock string) (int, error) {
	t, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// EntryDraft carries the caller-supplied fields for a create or update.
// The store assigns ID and CreatedAt.
type EntryDraft struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	TaskID      *int   `json:"task_id,omitempty" yaml:"task_id,omitempty"`
	StartDate   string `json:"start_date" yaml:"start_date"`
	StartTime   string `json:"start_time" yaml:"start_time"`
	DueDate     string `json:"due_date" yaml:"due_date"`
	DueTime     string `json:"due_time" yaml:"due_time"`
}

// ErrInvalidDraft wraps all draft validation failures.
var ErrInvalidDraft = errors.New("invalid schedule entry")

// Validate rejects drafts that are missing required fields, carry malformed
// date/time strings, or end before they start. A rejected draft must leave
// the collection untouched, so the store calls this before mutating anything.
func (d EntryDraft) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDraft)
	}
	for _, f := range []struct{ name, value, layout string }{
		{"start_date", d.StartDate, DateLayout},
		{"due_date", d.DueDate, DateLayout},
		{"start_time", d.StartTime, TimeLayout},
		{"due_time", d.DueTime, TimeLayout},
	} {
		if f.value == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidDraft, f.name)
		}
		if _, err := time.Parse(f.layout, f.value); err != nil {
			return fmt.Errorf("%w: %s %q is malformed", ErrInvalidDraft, f.name, f.value)
		}
	}
	start, _ := time.ParseInLocation(instantLayout, d.StartDate+" "+d.StartTime, time.Local)
	due, _ := time.ParseInLocation(instantLayout, d.DueDate+" "+d.DueTime, time.Local)
	if due.Before(start) {
		return fmt.Errorf("%w: due %s %s is before start %s %s",
			ErrInvalidDraft, d.DueDate, d.DueTime, d.StartDate, d.StartTime)
	}
	return nil
}

// DraftFrom copies the mutable fields of an existing entry into a draft,
// typically to prefill an edit form.
func DraftFrom(e ScheduleEntry) EntryDraft {
	return EntryDraft{
		Name:        e.Name,
		Description: e.Description,
		TaskID:      e.TaskID,
		StartDate:   e.StartDate,
		StartTime:   e.StartTime,
		DueDate:     e.DueDate,
		DueTime:     e.DueTime,
	}
}
