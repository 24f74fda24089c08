package ui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"focuscal/internal/bridge"
	"focuscal/internal/calendar"
	"focuscal/internal/model"
)

type appState int

const (
	stateCalendar appState = iota
	stateForm
	stateConfirmDelete
)

var (
	appStyle          = lipgloss.NewStyle().Padding(1, 2)
	titleStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	confirmStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	focusedLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	sundayStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	saturdayStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	fadedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	nowStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	entryBarStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	entryTitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	overlayStyle      = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color("203")).
				Padding(2, 6).
				Bold(true)
)

// Repository is the schedule backend the calendar reads and mutates.
// Both the local store and the HTTP client satisfy it.
type Repository interface {
	List() ([]model.ScheduleEntry, error)
	Get(id int) (model.ScheduleEntry, error)
	Add(draft model.EntryDraft) (model.ScheduleEntry, error)
	Update(id int, draft model.EntryDraft) (model.ScheduleEntry, error)
	Remove(id int) error
}

// TaskLabeler resolves an optional task link into a display label.
type TaskLabeler interface {
	LabelFor(taskID *int) string
}

type noLabels struct{}

func (noLabels) LabelFor(*int) string { return "" }

type extraKeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Copy   key.Binding
	Prev   key.Binding
	Next   key.Binding
	Today  key.Binding
	Views  key.Binding
}

func newExtraKeyMap() extraKeyMap {
	return extraKeyMap{
		Add: key.NewBinding(
			key.WithKeys("a", "n"),
			key.WithHelp("a/n", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter/e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		Prev: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev"),
		),
		Next: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Views: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "day/week/month/list"),
		),
	}
}

type Model struct {
	state    appState
	cursor   calendar.Cursor
	entries  []model.ScheduleEntry
	repo     Repository
	tasks    TaskLabeler
	notifier bridge.Notifier
	events   <-chan bridge.Event
	list     list.Model
	form     entryForm
	keys     extraKeyMap
	log      *zap.Logger
	clock    func() time.Time
	editID   *int
	overlay  bool
	err      error
	width    int
	height   int
}

type entriesLoadedMsg []model.ScheduleEntry
type errMsg struct{ error }
type clockTickMsg time.Time
type interventionMsg bridge.Event

// Option adjusts the model outside of its required collaborators.
type Option func(*Model)

// WithEvents feeds focus-break interventions into the calendar.
func WithEvents(events <-chan bridge.Event) Option {
	return func(m *Model) { m.events = events }
}

// WithNotifier routes weak interventions to an OS notifier.
func WithNotifier(n bridge.Notifier) Option {
	return func(m *Model) { m.notifier = n }
}

// WithClock overrides the wall clock.
func WithClock(clock func() time.Time) Option {
	return func(m *Model) { m.clock = clock }
}

// WithLogger attaches a logger for background failures.
func WithLogger(log *zap.Logger) Option {
	return func(m *Model) { m.log = log }
}

func New(repo Repository, tasks TaskLabeler, opts ...Option) Model {
	keys := newExtraKeyMap()

	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "focuscal"
	l.Styles.Title = titleStyle
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("schedule", "schedules")
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Copy}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Copy, keys.Prev, keys.Next, keys.Today, keys.Views}
	}

	m := Model{
		state:    stateCalendar,
		repo:     repo,
		tasks:    tasks,
		notifier: bridge.NopNotifier{},
		list:     l,
		form:     newEntryForm(),
		keys:     keys,
		log:      zap.NewNop(),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if tasks == nil {
		m.tasks = noLabels{}
	}
	m.cursor = calendar.NewCursor(m.clock())
	return m
}

func (m Model) now() time.Time { return m.clock() }

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadEntries}
	if m.events != nil {
		cmds = append(cmds, m.waitForIntervention)
	}
	if m.clockTickArmed() {
		cmds = append(cmds, tickClock())
	}
	return tea.Batch(cmds...)
}

func (m Model) loadEntries() tea.Msg {
	entries, err := m.repo.List()
	if err != nil {
		return errMsg{err}
	}
	return entriesLoadedMsg(entries)
}

func (m Model) waitForIntervention() tea.Msg {
	ev, ok := <-m.events
	if !ok {
		return nil
	}
	return interventionMsg(ev)
}

func tickClock() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

// clockTickArmed reports whether the minute tick should run: only the day
// view of the real today moves the current-time marker.
func (m Model) clockTickArmed() bool {
	return m.cursor.Gran == calendar.Day &&
		model.DateString(m.cursor.Date) == model.DateString(m.now())
}

func (m Model) refreshList() Model {
	sorted := calendar.SortedByStartDesc(m.entries)
	items := make([]list.Item, len(sorted))
	for i, e := range sorted {
		items[i] = entryItem{entry: e, taskLabel: m.tasks.LabelFor(e.TaskID)}
	}
	m.list.SetItems(items)
	return m
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := appStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		return m, nil

	case entriesLoadedMsg:
		m.entries = []model.ScheduleEntry(msg)
		m.err = nil
		return m.refreshList(), nil

	case errMsg:
		m.err = msg.error
		return m, nil

	case clockTickMsg:
		if m.clockTickArmed() {
			return m, tickClock()
		}
		return m, nil

	case interventionMsg:
		ev := bridge.Event(msg)
		switch ev.Kind {
		case bridge.KindOverlay:
			m.overlay = true
		case bridge.KindNotification:
			if err := m.notifier.Notify("focuscal", "집중 시간입니다. 일정으로 돌아가세요."); err != nil {
				m.log.Warn("notify failed", zap.Error(err))
			}
		}
		return m, m.waitForIntervention
	}

	if m.overlay {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
			m.overlay = false
		}
		return m, nil
	}

	switch m.state {
	case stateCalendar:
		return m.updateCalendar(msg)
	case stateForm:
		return m.updateForm(msg)
	case stateConfirmDelete:
		return m.updateConfirm(msg)
	}

	return m, nil
}

func (m Model) selectedEntry() (model.ScheduleEntry, bool) {
	item, ok := m.list.SelectedItem().(entryItem)
	if !ok {
		return model.ScheduleEntry{}, false
	}
	return item.entry, true
}

func (m Model) updateCalendar(msg tea.Msg) (tea.Model, tea.Cmd) {
	inList := m.cursor.Gran == calendar.List
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !(inList && m.list.SettingFilter()) {
		switch keyMsg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1":
			m.cursor.SetGranularity(calendar.Day)
			if m.clockTickArmed() {
				return m, tickClock()
			}
			return m, nil
		case "2":
			m.cursor.SetGranularity(calendar.Week)
			return m, nil
		case "3":
			m.cursor.SetGranularity(calendar.Month)
			return m, nil
		case "4":
			m.cursor.SetGranularity(calendar.List)
			return m, nil
		case "h", "left":
			if !inList {
				m.cursor.Prev()
				return m, nil
			}
		case "l", "right":
			if !inList {
				m.cursor.Next()
				return m, nil
			}
		case "t":
			m.cursor.Today(m.now())
			if m.clockTickArmed() {
				return m, tickClock()
			}
			return m, nil
		case "a", "n":
			m.state = stateForm
			m.editID = nil
			m.form = newEntryForm()
			date := model.DateString(m.cursor.Date)
			m.form.SetDraft(model.EntryDraft{StartDate: date, DueDate: date})
			return m, m.form.Focus()
		case "enter", "e":
			if entry, ok := m.selectedEntry(); inList && ok {
				m.state = stateForm
				id := entry.ID
				m.editID = &id
				m.form = newEntryForm()
				m.form.SetDraft(model.DraftFrom(entry))
				return m, m.form.Focus()
			}
		case "d":
			if _, ok := m.selectedEntry(); inList && ok {
				m.state = stateConfirmDelete
				return m, nil
			}
		case "y":
			if entry, ok := m.selectedEntry(); inList && ok {
				text := fmt.Sprintf("%s %s %s ~ %s %s",
					entry.Name, entry.StartDate, entry.StartTime, entry.DueDate, entry.DueTime)
				if err := clipboard.WriteAll(text); err != nil {
					m.err = err
				}
				return m, nil
			}
		}
	}

	if inList {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	draft, err := m.form.Draft()
	if err != nil {
		m.err = err
		return m, nil
	}
	if m.editID != nil {
		_, err = m.repo.Update(*m.editID, draft)
	} else {
		_, err = m.repo.Add(draft)
	}
	if err != nil {
		m.err = err
		return m, nil
	}
	m.state = stateCalendar
	m.editID = nil
	m.err = nil
	return m, m.loadEntries
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		onTextField := m.form.focus == fieldName || m.form.focus == fieldDesc
		switch keyMsg.String() {
		case "esc":
			m.state = stateCalendar
			m.editID = nil
			m.err = nil
			return m, nil
		case "ctrl+s":
			return m.submitForm()
		case "enter":
			if m.form.OnLastField() {
				return m.submitForm()
			}
			if m.form.focus != fieldDesc {
				return m, m.form.Next()
			}
		case "down":
			return m, m.form.Next()
		case "up":
			return m, m.form.Prev()
		case "tab":
			if onTextField {
				return m, m.form.Next()
			}
		case "shift+tab":
			if onTextField {
				return m, m.form.Prev()
			}
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y":
			if entry, ok := m.selectedEntry(); ok {
				if err := m.repo.Remove(entry.ID); err != nil {
					m.err = err
				}
			}
			m.state = stateCalendar
			return m, m.loadEntries
		case "n", "esc":
			m.state = stateCalendar
			return m, nil
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.overlay {
		box := overlayStyle.Render("집중 시간\n\n일정으로 돌아가세요.\n\n" +
			statusStyle.Render("esc: close"))
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
		}
		return box
	}

	var errView string
	if m.err != nil {
		errView = "\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}

	switch m.state {
	case stateForm:
		header := "New Schedule"
		if m.editID != nil {
			header = "Edit Schedule"
		}
		return appStyle.Render(
			titleStyle.Render(header) + "\n\n" +
				m.form.View() + "\n\n" +
				statusStyle.Render("enter: next • ctrl+s: save • esc: cancel") +
				errView,
		)
	case stateConfirmDelete:
		entry, _ := m.selectedEntry()
		return appStyle.Render(
			confirmStyle.Render("Delete Schedule?") + "\n\n" +
				"  " + entry.Name + "\n\n" +
				statusStyle.Render("y: delete • n/esc: cancel") +
				errView,
		)
	}

	var body string
	switch m.cursor.Gran {
	case calendar.Day:
		body = m.renderDay()
	case calendar.Week:
		body = m.renderWeek()
	case calendar.Month:
		body = m.renderMonth()
	case calendar.List:
		return appStyle.Render(m.list.View() + errView)
	}

	help := statusStyle.Render("1-4: view • h/l: move • t: today • a: add • q: quit")
	return appStyle.Render(body + "\n" + help + errView)
}
