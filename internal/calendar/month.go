package calendar

import (
	"time"

	"focuscal/internal/model"
)

// CellMonth tells which month a grid cell belongs to relative to the month
// being displayed.
type CellMonth int

const (
	PrevMonth CellMonth = iota - 1
	CurrentMonth
	NextMonth
)

// MonthCell is one cell of the month grid.
type MonthCell struct {
	Date    time.Time
	Month   CellMonth
	Today   bool
	Holiday string // holiday name, empty when the cell is not a holiday
	Entries []model.ScheduleEntry
}

// Holiday is a fixed-date national holiday.
type Holiday struct {
	Month time.Month
	Day   int
	Name  string
}

// Holidays is the fixed table the month grid marks in red.
var Holidays = []Holiday{
	{time.January, 1, "신정"},
	{time.March, 1, "삼일절"},
	{time.May, 5, "어린이날"},
	{time.June, 6, "현충일"},
	{time.August, 15, "광복절"},
	{time.October, 3, "개천절"},
	{time.October, 9, "한글날"},
	{time.December, 25, "성탄절"},
}

func holidayName(m time.Month, day int) string {
	for _, h := range Holidays {
		if h.Month == m && h.Day == day {
			return h.Name
		}
	}
	return ""
}

// MonthLayout builds the month grid for year/month: the full month plus
// leading previous-month days back to Sunday and trailing next-month days
// out to Saturday, so the result length is always a multiple of 7.
//
// The today flag is set only when the grid shows the month today falls in;
// holiday names are attached to current-month cells only. Entries land in
// the cell matching their start date.
func MonthLayout(entries []model.ScheduleEntry, year int, month time.Month, today time.Time) []MonthCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()
	last := time.Date(year, month, daysInMonth, 0, 0, 0, 0, today.Location())

	showingToday := today.Year() == year && today.Month() == month

	byStart := make(map[string][]model.ScheduleEntry)
	for _, e := range entries {
		byStart[e.StartDate] = append(byStart[e.StartDate], e)
	}

	var cells []MonthCell
	appendCell := func(date time.Time, cm CellMonth) {
		cell := MonthCell{
			Date:    date,
			Month:   cm,
			Entries: byStart[model.DateString(date)],
		}
		if cm == CurrentMonth {
			cell.Today = showingToday && date.Day() == today.Day()
			cell.Holiday = holidayName(date.Month(), date.Day())
		}
		cells = append(cells, cell)
	}

	for i := int(first.Weekday()); i > 0; i-- {
		appendCell(first.AddDate(0, 0, -i), PrevMonth)
	}
	for d := 0; d < daysInMonth; d++ {
		appendCell(first.AddDate(0, 0, d), CurrentMonth)
	}
	for i := 1; i <= 6-int(last.Weekday()); i++ {
		appendCell(last.AddDate(0, 0, i), NextMonth)
	}
	return cells
}
