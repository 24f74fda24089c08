package model

import "time"

// Task statuses as stored in the registry.
const (
	TaskPending = "pending"
	TaskActive  = "active"
	TaskDone    = "done"
)

// Task is a record in the task registry. Schedule entries reference tasks
// only by ID; the registry is a separate table and the schedule store never
// writes to it.
type Task struct {
	ID          int
	Name        string
	Description *string
	Status      string
	CreatedAt   time.Time
	DueDate     *string
	// TargetExecutable, when set, names the program the focus agent watches
	// while this task is active.
	TargetExecutable *string
}

// IsDueToday returns true if the task's due date is today.
func (t Task) IsDueToday() bool {
	if t.DueDate == nil {
		return false
	}
	return *t.DueDate == time.Now().Format(DateLayout)
}

// IsOverdue returns true if the task is past its due date and not done.
func (t Task) IsOverdue() bool {
	if t.DueDate == nil || t.Status == TaskDone {
		return false
	}
	return *t.DueDate < time.Now().Format(DateLayout)
}
