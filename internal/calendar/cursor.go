package calendar

import "time"

// Granularity is the calendar zoom level a view renders at.
type Granularity int

const (
	Day Granularity = iota
	Week
	Month
	List
)

// String returns the label shown in the view switcher.
func (g Granularity) String() string {
	switch g {
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	case List:
		return "list"
	default:
		return "unknown"
	}
}

// Cursor is the navigation state of the calendar: the reference date being
// displayed and the active granularity. It is never persisted; a fresh
// cursor starts at today in week view.
type Cursor struct {
	Date time.Time
	Gran Granularity
}

// NewCursor returns the startup navigation state.
func NewCursor(now time.Time) Cursor {
	return Cursor{Date: midnight(now), Gran: Week}
}

// SetGranularity switches the zoom level, keeping the reference date. When
// entering month view the date snaps to the first of the month, matching
// how month navigation is anchored.
func (c *Cursor) SetGranularity(g Granularity) {
	c.Gran = g
	if g == Month {
		c.Date = time.Date(c.Date.Year(), c.Date.Month(), 1, 0, 0, 0, 0, c.Date.Location())
	}
}

// Prev moves the reference date back by one unit of the active granularity.
func (c *Cursor) Prev() { c.shift(-1) }

// Next moves the reference date forward by one unit of the active granularity.
func (c *Cursor) Next() { c.shift(1) }

// Today resets the reference date to the current day, or to the first of
// the current month in month view. List view ignores the reference date but
// resets it anyway so a later granularity switch starts from today.
func (c *Cursor) Today(now time.Time) {
	switch c.Gran {
	case Month:
		c.Date = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		c.Date = midnight(now)
	}
}

func (c *Cursor) shift(dir int) {
	switch c.Gran {
	case Day:
		c.Date = c.Date.AddDate(0, 0, dir)
	case Week:
		c.Date = c.Date.AddDate(0, 0, 7*dir)
	case Month:
		// Anchor to the first of the month so month-length differences and
		// year rollover cannot skip or repeat a month.
		c.Date = time.Date(c.Date.Year(), c.Date.Month(), 1, 0, 0, 0, 0, c.Date.Location()).AddDate(0, dir, 0)
	case List:
		// List view shows everything; there is nothing to shift.
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
