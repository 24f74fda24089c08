package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"focuscal/internal/model"
)

func digitsOnly(s string) error {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("digits only")
		}
	}
	return nil
}

type dateInput struct {
	fields [3]textinput.Model // 0:YYYY, 1:MM, 2:DD
	focus  int
}

func newDateInput() dateInput {
	placeholders := [3]string{"YYYY", "MM", "DD"}
	charLimits := [3]int{4, 2, 2}

	var fields [3]textinput.Model
	for i := 0; i < 3; i++ {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = charLimits[i]
		ti.Width = charLimits[i] + 2
		ti.Validate = digitsOnly
		fields[i] = ti
	}

	return dateInput{fields: fields}
}

func (d *dateInput) Focus() {
	d.focus = 0
	d.fields[0].Focus()
	d.fields[1].Blur()
	d.fields[2].Blur()
}

func (d *dateInput) Blur() {
	for i := range d.fields {
		d.fields[i].Blur()
	}
}

func (d *dateInput) SetValue(date string) {
	parts := strings.SplitN(date, "-", 3)
	for i := 0; i < 3; i++ {
		if i < len(parts) {
			d.fields[i].SetValue(parts[i])
		} else {
			d.fields[i].SetValue("")
		}
	}
}

func (d *dateInput) Value() (string, error) {
	now := time.Now()

	yyyy := strings.TrimSpace(d.fields[0].Value())
	mm := strings.TrimSpace(d.fields[1].Value())
	dd := strings.TrimSpace(d.fields[2].Value())

	if yyyy == "" {
		yyyy = fmt.Sprintf("%04d", now.Year())
	}
	if mm == "" {
		mm = fmt.Sprintf("%02d", int(now.Month()))
	}
	if dd == "" {
		return "", fmt.Errorf("day is required")
	}

	dateStr := fmt.Sprintf("%s-%s-%s", yyyy, padLeft(mm, 2), padLeft(dd, 2))

	if _, err := time.Parse(model.DateLayout, dateStr); err != nil {
		return "", fmt.Errorf("invalid date: %s", dateStr)
	}

	return dateStr, nil
}

func padLeft(s string, length int) string {
	for len(s) < length {
		s = "0" + s
	}
	return s
}

func (d *dateInput) IsEmpty() bool {
	return d.fields[0].Value() == "" && d.fields[1].Value() == "" && d.fields[2].Value() == ""
}

func (d *dateInput) focusField(idx int) tea.Cmd {
	d.focus = idx
	var cmds []tea.Cmd
	for i := range d.fields {
		if i == idx {
			cmds = append(cmds, d.fields[i].Focus())
		} else {
			d.fields[i].Blur()
		}
	}
	return tea.Batch(cmds...)
}

func (d dateInput) Update(msg tea.Msg) (dateInput, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "right":
			if d.focus < 2 {
				cmd := d.focusField(d.focus + 1)
				return d, cmd
			}
			return d, nil
		case "shift+tab", "left":
			if d.focus > 0 {
				cmd := d.focusField(d.focus - 1)
				return d, cmd
			}
			return d, nil
		}
	}

	var cmd tea.Cmd
	d.fields[d.focus], cmd = d.fields[d.focus].Update(msg)
	return d, cmd
}

func (d dateInput) View() string {
	return d.fields[0].View() + " - " + d.fields[1].View() + " - " + d.fields[2].View()
}

// timeInput is the HH:MM sibling of dateInput.
type timeInput struct {
	fields [2]textinput.Model // 0:HH, 1:MM
	focus  int
}

func newTimeInput() timeInput {
	placeholders := [2]string{"HH", "MM"}

	var fields [2]textinput.Model
	for i := 0; i < 2; i++ {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 2
		ti.Width = 4
		ti.Validate = digitsOnly
		fields[i] = ti
	}

	return timeInput{fields: fields}
}

func (ti *timeInput) Focus() {
	ti.focus = 0
	ti.fields[0].Focus()
	ti.fields[1].Blur()
}

func (ti *timeInput) Blur() {
	for i := range ti.fields {
		ti.fields[i].Blur()
	}
}

func (ti *timeInput) SetValue(clock string) {
	parts := strings.SplitN(clock, ":", 2)
	for i := 0; i < 2; i++ {
		if i < len(parts) {
			ti.fields[i].SetValue(parts[i])
		} else {
			ti.fields[i].SetValue("")
		}
	}
}

func (ti *timeInput) Value() (string, error) {
	hh := strings.TrimSpace(ti.fields[0].Value())
	mm := strings.TrimSpace(ti.fields[1].Value())

	if hh == "" {
		return "", fmt.Errorf("hour is required")
	}
	if mm == "" {
		mm = "00"
	}

	clock := padLeft(hh, 2) + ":" + padLeft(mm, 2)
	if _, err := time.Parse(model.TimeLayout, clock); err != nil {
		return "", fmt.Errorf("invalid time: %s", clock)
	}
	return clock, nil
}

func (ti *timeInput) focusField(idx int) tea.Cmd {
	ti.focus = idx
	var cmds []tea.Cmd
	for i := range ti.fields {
		if i == idx {
			cmds = append(cmds, ti.fields[i].Focus())
		} else {
			ti.fields[i].Blur()
		}
	}
	return tea.Batch(cmds...)
}

func (ti timeInput) Update(msg tea.Msg) (timeInput, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "right":
			if ti.focus < 1 {
				cmd := ti.focusField(ti.focus + 1)
				return ti, cmd
			}
			return ti, nil
		case "shift+tab", "left":
			if ti.focus > 0 {
				cmd := ti.focusField(ti.focus - 1)
				return ti, cmd
			}
			return ti, nil
		}
	}

	var cmd tea.Cmd
	ti.fields[ti.focus], cmd = ti.fields[ti.focus].Update(msg)
	return ti, cmd
}

func (ti timeInput) View() string {
	return ti.fields[0].View() + " : " + ti.fields[1].View()
}
