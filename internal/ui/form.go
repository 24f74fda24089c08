package ui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"focuscal/internal/model"
)

type formField int

const (
	fieldName formField = iota
	fieldDesc
	fieldStartDate
	fieldStartTime
	fieldDueDate
	fieldDueTime
)

const lastField = fieldDueTime

// entryForm is the add/edit form: a name input, a description area and
// segmented date/time inputs for the start and due instants.
type entryForm struct {
	name      textinput.Model
	desc      textarea.Model
	startDate dateInput
	startTime timeInput
	dueDate   dateInput
	dueTime   timeInput
	focus     formField
}

func newEntryForm() entryForm {
	name := textinput.New()
	name.Placeholder = "Schedule name..."
	name.CharLimit = 256

	desc := textarea.New()
	desc.Placeholder = "Description..."
	desc.CharLimit = 4096
	desc.SetHeight(3)

	return entryForm{
		name:      name,
		desc:      desc,
		startDate: newDateInput(),
		startTime: newTimeInput(),
		dueDate:   newDateInput(),
		dueTime:   newTimeInput(),
	}
}

// SetDraft prefills the form, typically for an edit.
func (f *entryForm) SetDraft(d model.EntryDraft) {
	f.name.SetValue(d.Name)
	f.desc.SetValue(d.Description)
	f.startDate.SetValue(d.StartDate)
	f.startTime.SetValue(d.StartTime)
	f.dueDate.SetValue(d.DueDate)
	f.dueTime.SetValue(d.DueTime)
}

// Draft collects the form values. Segmented inputs report their own parse
// errors; full draft validation happens in the store.
func (f *entryForm) Draft() (model.EntryDraft, error) {
	var d model.EntryDraft
	var err error

	d.Name = f.name.Value()
	d.Description = f.desc.Value()

	if d.StartDate, err = f.startDate.Value(); err != nil {
		return model.EntryDraft{}, err
	}
	if d.StartTime, err = f.startTime.Value(); err != nil {
		return model.EntryDraft{}, err
	}
	if d.DueDate, err = f.dueDate.Value(); err != nil {
		return model.EntryDraft{}, err
	}
	if d.DueTime, err = f.dueTime.Value(); err != nil {
		return model.EntryDraft{}, err
	}
	return d, nil
}

// Focus puts the cursor on the name field.
func (f *entryForm) Focus() tea.Cmd {
	f.focus = fieldName
	return f.focusCurrent()
}

// OnLastField reports whether the focus sits on the final field, where
// enter submits instead of advancing.
func (f *entryForm) OnLastField() bool {
	return f.focus == lastField
}

// Next advances the focus to the following field.
func (f *entryForm) Next() tea.Cmd {
	if f.focus < lastField {
		f.focus++
	}
	return f.focusCurrent()
}

// Prev moves the focus to the previous field.
func (f *entryForm) Prev() tea.Cmd {
	if f.focus > fieldName {
		f.focus--
	}
	return f.focusCurrent()
}

func (f *entryForm) focusCurrent() tea.Cmd {
	f.name.Blur()
	f.desc.Blur()
	f.startDate.Blur()
	f.startTime.Blur()
	f.dueDate.Blur()
	f.dueTime.Blur()

	switch f.focus {
	case fieldName:
		return f.name.Focus()
	case fieldDesc:
		return f.desc.Focus()
	case fieldStartDate:
		f.startDate.Focus()
	case fieldStartTime:
		f.startTime.Focus()
	case fieldDueDate:
		f.dueDate.Focus()
	case fieldDueTime:
		f.dueTime.Focus()
	}
	return nil
}

func (f entryForm) Update(msg tea.Msg) (entryForm, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldDesc:
		f.desc, cmd = f.desc.Update(msg)
	case fieldStartDate:
		f.startDate, cmd = f.startDate.Update(msg)
	case fieldStartTime:
		f.startTime, cmd = f.startTime.Update(msg)
	case fieldDueDate:
		f.dueDate, cmd = f.dueDate.Update(msg)
	case fieldDueTime:
		f.dueTime, cmd = f.dueTime.Update(msg)
	}
	return f, cmd
}

func (f entryForm) View() string {
	label := func(field formField, text string) string {
		if f.focus == field {
			return focusedLabelStyle.Render("> " + text)
		}
		return statusStyle.Render("  " + text)
	}

	return label(fieldName, "Name") + "\n" + "  " + f.name.View() + "\n\n" +
		label(fieldDesc, "Description") + "\n" + f.desc.View() + "\n\n" +
		label(fieldStartDate, "Start date") + "  " + f.startDate.View() + "\n" +
		label(fieldStartTime, "Start time") + "  " + f.startTime.View() + "\n" +
		label(fieldDueDate, "Due date") + "    " + f.dueDate.View() + "\n" +
		label(fieldDueTime, "Due time") + "    " + f.dueTime.View()
}
