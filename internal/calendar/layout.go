// Package calendar holds the pure time-grid math shared by the day, week and
// month views: converting entry time spans into pixel geometry, building the
// month grid, and navigating the reference date. Nothing here mutates state
// or performs I/O, so every function is deterministic for a given input.
package calendar

import (
	"time"

	"focuscal/internal/model"
)

// One visual hour, in pixels, per granularity.
const (
	DayHourHeight  = 60.0
	WeekHourHeight = 40.0
)

// weekHeaderHours shifts every week-view block down by one hour-height so
// blocks clear the weekday header row. The original dashboard bakes this
// into the week view's pixel math and the exported geometry keeps parity
// with it.
const weekHeaderHours = 1

// Block is the screen geometry for one entry inside a day column.
type Block struct {
	Entry  model.ScheduleEntry
	Top    float64
	Height float64
}

// DayColumn is one day of a week grid: the date plus its laid-out blocks.
type DayColumn struct {
	Date   time.Time
	Blocks []Block
}

// DayLayout returns blocks for every entry visible on the given date, using
// the day-view hour height. An entry is visible when its start date or its
// due date equals the date; a multi-day entry therefore appears on its first
// and last day but not on the days in between.
func DayLayout(entries []model.ScheduleEntry, date time.Time) []Block {
	day := model.DateString(date)
	var blocks []Block
	for _, e := range entries {
		if e.StartDate != day && e.DueDate != day {
			continue
		}
		b, ok := block(e, 0, DayHourHeight)
		if !ok {
			continue
		}
		blocks = append(blocks, b)
	}
	return blocks
}

// CurrentTimeOffset returns the vertical position of the current-time line
// in a day view. Callers render it only when the displayed date is the real
// today, refreshing once a minute.
func CurrentTimeOffset(now time.Time) float64 {
	minutes := now.Hour()*60 + now.Minute()
	return float64(minutes)/60*DayHourHeight - 1
}

// WeekStart returns the most recent Sunday on or before anchor, at midnight.
func WeekStart(anchor time.Time) time.Time {
	d := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// WeekLayout lays out the 7-day window beginning at the Sunday on/before
// anchor. Each day bucket holds the entries starting on that day, positioned
// with the week-view hour height.
func WeekLayout(entries []model.ScheduleEntry, anchor time.Time) [7]DayColumn {
	start := WeekStart(anchor)
	var week [7]DayColumn
	for i := range week {
		day := start.AddDate(0, 0, i)
		week[i].Date = day
		dayStr := model.DateString(day)
		for _, e := range entries {
			if e.StartDate != dayStr {
				continue
			}
			b, ok := block(e, weekHeaderHours*60, WeekHourHeight)
			if !ok {
				continue
			}
			week[i].Blocks = append(week[i].Blocks, b)
		}
	}
	return week
}

// block computes top/height for one entry. Entries with malformed clock
// strings are skipped rather than rendered at a bogus position.
func block(e model.ScheduleEntry, shiftMinutes int, hourHeight float64) (Block, bool) {
	start, err := e.StartMinutes()
	if err != nil {
		return Block{}, false
	}
	end, err := e.DueMinutes()
	if err != nil {
		return Block{}, false
	}
	start += shiftMinutes
	end += shiftMinutes
	return Block{
		Entry:  e,
		Top:    float64(start) / 60 * hourHeight,
		Height: float64(end-start) / 60 * hourHeight,
	}, true
}
