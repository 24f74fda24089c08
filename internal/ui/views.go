package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"focuscal/internal/calendar"
	"focuscal/internal/model"
)

var koreanWeekdays = [7]string{"일", "월", "화", "수", "목", "금", "토"}

func weekdayStyle(d time.Weekday, holiday bool) lipgloss.Style {
	switch {
	case d == time.Sunday || holiday:
		return sundayStyle
	case d == time.Saturday:
		return saturdayStyle
	default:
		return lipgloss.NewStyle()
	}
}

// renderDay draws the 24-hour timeline for the cursor date. Entries sit at
// the rows the layout engine puts them on; one row equals one hour height.
func (m Model) renderDay() string {
	date := m.cursor.Date
	now := m.now()
	isToday := model.DateString(date) == model.DateString(now)

	header := fmt.Sprintf("%d년 %d월 %d일 (%s)",
		date.Year(), int(date.Month()), date.Day(), koreanWeekdays[date.Weekday()])
	title := weekdayStyle(date.Weekday(), false).Bold(true).Render(header)

	blocks := calendar.DayLayout(m.entries, date)

	// One text row per hour; labels land on the block's start row and a
	// bar marks the covered rows below it.
	labels := make([]string, 24)
	covered := make([]bool, 24)
	for _, b := range blocks {
		startRow := int(b.Top / calendar.DayHourHeight)
		endRow := int((b.Top + b.Height - 1) / calendar.DayHourHeight)
		if startRow < 0 || startRow > 23 {
			continue
		}
		label := fmt.Sprintf("%s~%s %s", b.Entry.StartTime, b.Entry.DueTime, b.Entry.Name)
		if labels[startRow] != "" {
			labels[startRow] += "  " + label
		} else {
			labels[startRow] = label
		}
		for r := startRow; r <= endRow && r < 24; r++ {
			covered[r] = true
		}
	}

	nowRow := -1
	if isToday {
		nowRow = int((calendar.CurrentTimeOffset(now) + 1) / calendar.DayHourHeight)
	}

	var sb strings.Builder
	sb.WriteString(title + "\n\n")
	for h := 0; h < 24; h++ {
		gutter := fmt.Sprintf("%02d:00", h)
		if h == nowRow {
			gutter = nowStyle.Render(gutter + " ▶")
		} else {
			gutter = statusStyle.Render(gutter + "  ")
		}
		bar := "│"
		if covered[h] {
			bar = entryBarStyle.Render("┃")
		}
		line := gutter + " " + bar
		if labels[h] != "" {
			line += " " + entryTitleStyle.Render(labels[h])
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

// renderWeek draws the Sunday-to-Saturday columns around the cursor date.
func (m Model) renderWeek() string {
	week := calendar.WeekLayout(m.entries, m.cursor.Date)
	today := model.DateString(m.now())

	colWidth := 16
	if m.width > 0 {
		if w := (m.width - 8) / 7; w > 10 {
			colWidth = w
		}
	}

	cols := make([]string, 0, 7)
	for _, day := range week {
		head := fmt.Sprintf("%s %d/%d",
			koreanWeekdays[day.Date.Weekday()], int(day.Date.Month()), day.Date.Day())
		headStyle := weekdayStyle(day.Date.Weekday(), false).Bold(true)
		if model.DateString(day.Date) == today {
			headStyle = headStyle.Underline(true)
		}

		lines := []string{headStyle.Render(runewidth.FillRight(head, colWidth))}
		for _, b := range day.Blocks {
			label := b.Entry.StartTime + " " + b.Entry.Name
			lines = append(lines, entryTitleStyle.Render(runewidth.Truncate(label, colWidth-1, "…")))
		}
		cols = append(cols, strings.Join(lines, "\n"))
	}

	sun := calendar.WeekStart(m.cursor.Date)
	sat := sun.AddDate(0, 0, 6)
	title := titleStyle.Render(fmt.Sprintf("%s ~ %s", model.DateString(sun), model.DateString(sat)))
	return title + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// renderMonth draws the month grid: leading/trailing days faded, today
// inverted, Sundays and holidays red, Saturdays blue.
func (m Model) renderMonth() string {
	date := m.cursor.Date
	cells := calendar.MonthLayout(m.entries, date.Year(), date.Month(), m.now())

	cellWidth := 12
	cellHeight := 3

	renderCell := func(c calendar.MonthCell) string {
		num := fmt.Sprintf("%2d", c.Date.Day())
		style := weekdayStyle(c.Date.Weekday(), c.Holiday != "")
		if c.Month != calendar.CurrentMonth {
			style = fadedStyle
		}
		if c.Today {
			style = style.Reverse(true)
		}
		lines := []string{style.Render(num) + holidaySuffix(c)}
		for _, e := range c.Entries {
			if len(lines) >= cellHeight {
				break
			}
			lines = append(lines, entryTitleStyle.Render(runewidth.Truncate(e.Name, cellWidth-1, "…")))
		}
		for len(lines) < cellHeight {
			lines = append(lines, "")
		}
		for i, l := range lines {
			lines[i] = runewidth.FillRight(l, cellWidth)
		}
		return strings.Join(lines, "\n")
	}

	var rows []string
	headerCells := make([]string, 7)
	for i, wd := range koreanWeekdays {
		headerCells[i] = weekdayStyle(time.Weekday(i), false).Bold(true).
			Render(runewidth.FillRight(wd, cellWidth))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, headerCells...))

	for i := 0; i < len(cells); i += 7 {
		week := make([]string, 7)
		for j := 0; j < 7; j++ {
			week[j] = renderCell(cells[i+j])
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, week...))
	}

	title := titleStyle.Render(fmt.Sprintf("%d년 %d월", date.Year(), int(date.Month())))
	return title + "\n\n" + strings.Join(rows, "\n")
}

func holidaySuffix(c calendar.MonthCell) string {
	if c.Holiday == "" {
		return ""
	}
	return " " + sundayStyle.Render(c.Holiday)
}
