package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"focuscal/internal/model"
)

func TestCursorNavigation(t *testing.T) {
	now := time.Date(2025, time.November, 9, 14, 30, 0, 0, time.Local)

	t.Run("fresh cursor is today at week granularity", func(t *testing.T) {
		c := NewCursor(now)
		assert.Equal(t, Week, c.Gran)
		assert.Equal(t, "2025-11-09", model.DateString(c.Date))
	})

	t.Run("day shifts by one day", func(t *testing.T) {
		c := NewCursor(now)
		c.SetGranularity(Day)
		c.Next()
		assert.Equal(t, "2025-11-10", model.DateString(c.Date))
		c.Prev()
		c.Prev()
		assert.Equal(t, "2025-11-08", model.DateString(c.Date))
	})

	t.Run("week shifts by seven days", func(t *testing.T) {
		c := NewCursor(now)
		c.Next()
		assert.Equal(t, "2025-11-16", model.DateString(c.Date))
		c.Prev()
		c.Prev()
		assert.Equal(t, "2025-11-02", model.DateString(c.Date))
	})

	t.Run("month shifts handle length and year rollover", func(t *testing.T) {
		c := Cursor{Date: time.Date(2025, time.December, 31, 0, 0, 0, 0, time.Local)}
		c.SetGranularity(Month)
		assert.Equal(t, "2025-12-01", model.DateString(c.Date))
		c.Next()
		assert.Equal(t, "2026-01-01", model.DateString(c.Date))
		c.Prev()
		c.Prev()
		assert.Equal(t, "2025-11-01", model.DateString(c.Date))
	})

	t.Run("today resets the reference date", func(t *testing.T) {
		c := NewCursor(now)
		c.SetGranularity(Month)
		c.Next()
		c.Next()
		c.Today(now)
		assert.Equal(t, "2025-11-01", model.DateString(c.Date))

		c.SetGranularity(Day)
		c.Prev()
		c.Today(now)
		assert.Equal(t, "2025-11-09", model.DateString(c.Date))
	})

	t.Run("list granularity ignores shifts", func(t *testing.T) {
		c := NewCursor(now)
		c.SetGranularity(List)
		before := c.Date
		c.Next()
		c.Prev()
		assert.Equal(t, before, c.Date)
	})

	t.Run("today in list view still resets the date", func(t *testing.T) {
		c := Cursor{Date: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local), Gran: List}
		c.Today(now)
		assert.Equal(t, "2025-11-09", model.DateString(c.Date))
	})
}

func TestSortedByStartDesc(t *testing.T) {
	entries := []model.ScheduleEntry{
		entry(1, "b", "2025-01-02", "10:00", "2025-01-02", "11:00"),
		entry(2, "a", "2025-01-01", "10:00", "2025-01-01", "11:00"),
		entry(3, "c", "2025-01-03", "09:00", "2025-01-03", "10:00"),
	}

	t.Run("most recent start first", func(t *testing.T) {
		got := SortedByStartDesc(entries)
		ids := []int{got[0].ID, got[1].ID, got[2].ID}
		assert.Equal(t, []int{3, 1, 2}, ids)
	})

	t.Run("input order is preserved for identical instants", func(t *testing.T) {
		ties := []model.ScheduleEntry{
			entry(10, "first", "2025-01-02", "10:00", "2025-01-02", "11:00"),
			entry(11, "second", "2025-01-02", "10:00", "2025-01-02", "12:00"),
		}
		got := SortedByStartDesc(ties)
		assert.Equal(t, 10, got[0].ID)
		assert.Equal(t, 11, got[1].ID)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		SortedByStartDesc(entries)
		assert.Equal(t, 1, entries[0].ID)
	})
}
