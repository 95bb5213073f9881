package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/weeklit/internal/models"
	"github.com/julianstephens/weeklit/internal/theme"
	"github.com/julianstephens/weeklit/internal/todo"
	"github.com/julianstephens/weeklit/internal/tui/components/tasklist"
	"github.com/julianstephens/weeklit/internal/tui/components/weekchart"
	"github.com/julianstephens/weeklit/internal/utils"
)

type SessionState int

const (
	StateWeek SessionState = iota
	StateChart
	StateWeeks
	StateTaskForm
	StateRename
	StateConfirmDelete
)

// tabCount is the number of states reachable with tab.
const tabCount = 3

var tabTitles = [tabCount]string{"Week", "Chart", "Weeks"}

type TaskFormModel struct {
	Name     string
	Category string
	Status   models.TaskStatus
}

type RenameFormModel struct {
	Name string
}

type Model struct {
	todo           *todo.Store
	themes         *theme.Store
	state          SessionState
	keys           KeyMap
	help           help.Model
	styles         styles
	taskList       tasklist.Model
	chart          weekchart.Model
	form           *huh.Form
	taskForm       *TaskFormModel
	renameForm     *RenameFormModel
	editingTaskID  int // 0 while adding
	taskToDeleteID int
	selectedDay    int // offset into the current week, 0 = MON
	weekCursor     int
	status         string
	now            func() time.Time
	loc            *time.Location
	quitting       bool
	width          int
	height         int
}

type Option func(*Model)

// WithClock replaces time.Now when picking today's day.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithLocation sets the timezone used to decide which day is today.
func WithLocation(loc *time.Location) Option {
	return func(m *Model) { m.loc = loc }
}

func NewModel(store *todo.Store, themes *theme.Store, opts ...Option) Model {
	m := Model{
		todo:     store,
		themes:   themes,
		state:    StateWeek,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		styles:   newStyles(themes),
		taskList: tasklist.New(nil, 0, 0),
		chart:    weekchart.New(0, 0),
		now:      time.Now,
		loc:      time.Local,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.selectToday()
	m.refresh()
	return m
}

// selectToday points the day cursor at today when today is in the current
// week, otherwise at Monday.
func (m *Model) selectToday() {
	m.selectedDay = 0
	today := utils.ISODate(m.now().In(m.loc))
	for i, d := range m.todo.CurrentWeekDays() {
		if d.FullDate == today {
			m.selectedDay = i
			return
		}
	}
}

func (m Model) currentDay() (models.Day, bool) {
	days := m.todo.CurrentWeekDays()
	if m.selectedDay < 0 || m.selectedDay >= len(days) {
		return models.Day{}, false
	}
	return days[m.selectedDay], true
}

// refresh reloads the task list and chart from the store.
func (m *Model) refresh() {
	days := m.todo.CurrentWeekDays()
	if m.selectedDay >= len(days) {
		m.selectedDay = max(len(days)-1, 0)
	}

	var tasks []models.Task
	if d, ok := m.currentDay(); ok {
		tasks = m.todo.TasksForDay(d.ID)
	}
	m.taskList.SetTasks(tasks)

	bars := make([]weekchart.Day, len(days))
	for i, d := range days {
		bars[i] = weekchart.Day{Label: d.Name, Counts: m.todo.TaskCountsForDay(d.ID)}
	}
	m.chart.SetDays(bars)

	if n := len(m.todo.Weeks()); m.weekCursor >= n {
		m.weekCursor = max(n-1, 0)
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateWeek:
		keys = append(keys, m.keys.PrevWeek, m.keys.NextWeek)
		keys = append(keys, m.taskList.Keys()...)
	case StateWeeks:
		keys = append(keys, m.keys.Open)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Theme}
	navigation := []key.Binding{m.keys.PrevDay, m.keys.NextDay, m.keys.PrevWeek, m.keys.NextWeek, m.keys.Today, m.keys.Rename}

	var actions []key.Binding
	switch m.state {
	case StateWeek:
		actions = m.taskList.Keys()
	case StateWeeks:
		actions = []key.Binding{m.keys.Open}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}
