package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/weeklit/internal/models"
	"github.com/julianstephens/weeklit/internal/storage"
	"github.com/julianstephens/weeklit/internal/theme"
	"github.com/julianstephens/weeklit/internal/todo"
	"github.com/julianstephens/weeklit/internal/tui/components/tasklist"
)

var testNow = time.Date(2024, time.January, 17, 9, 30, 0, 0, time.UTC)

func newTestModel(t *testing.T) Model {
	t.Helper()
	p := storage.NewMemoryStore()
	clock := func() time.Time { return testNow }
	store := todo.New(p, todo.WithClock(clock), todo.WithLocation(time.UTC), todo.WithUser("tester"))
	if err := store.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	themes := theme.NewStore(p)
	themes.Load("light")
	return NewModel(store, themes, WithClock(clock), WithLocation(time.UTC))
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return out
}

func TestNewModelSelectsToday(t *testing.T) {
	m := newTestModel(t)
	if m.selectedDay != 2 {
		t.Errorf("selectedDay = %d, want 2 (WED)", m.selectedDay)
	}
	day, ok := m.currentDay()
	if !ok || day.FullDate != "2024-01-17" {
		t.Errorf("currentDay() = %+v, %v", day, ok)
	}
}

func TestWeekNavigationKeys(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, runes("n"))
	week, _ := m.todo.CurrentWeek()
	if week.WeekNumber != 2 {
		t.Fatalf("after n: week %d, want 2", week.WeekNumber)
	}
	if m.status != "Created Week 2" {
		t.Errorf("status = %q", m.status)
	}

	m = send(t, m, runes("p"))
	m = send(t, m, runes("p"))
	week, _ = m.todo.CurrentWeek()
	if week.WeekNumber != 1 {
		t.Errorf("after p p: week %d, want 1", week.WeekNumber)
	}
	if m.status != "Already at the first week" {
		t.Errorf("status = %q", m.status)
	}
	if got := len(m.todo.Weeks()); got != 2 {
		t.Errorf("weeks = %d, want 2", got)
	}
}

func TestDaySelectionStaysInRange(t *testing.T) {
	m := newTestModel(t)
	for range 10 {
		m = send(t, m, runes("l"))
	}
	if m.selectedDay != 6 {
		t.Errorf("selectedDay = %d, want 6", m.selectedDay)
	}
	for range 10 {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	if m.selectedDay != 0 {
		t.Errorf("selectedDay = %d, want 0", m.selectedDay)
	}
}

func TestTabCyclesViews(t *testing.T) {
	m := newTestModel(t)
	want := []SessionState{StateChart, StateWeeks, StateWeek}
	for _, w := range want {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.state != w {
			t.Fatalf("state = %d, want %d", m.state, w)
		}
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateWeeks {
		t.Errorf("shift+tab state = %d, want %d", m.state, StateWeeks)
	}
}

func TestAddTaskFromForm(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, tasklist.AddTaskMsg{})
	if m.state != StateTaskForm {
		t.Fatalf("state = %d, want StateTaskForm", m.state)
	}

	m.taskForm.Name = "Write report"
	m.taskForm.Category = "work"
	m.taskForm.Status = models.StatusDoing
	m.saveTaskForm()

	tasks := m.todo.TasksForDay(3)
	if len(tasks) != 1 {
		t.Fatalf("tasks on day 3 = %d, want 1", len(tasks))
	}
	got := tasks[0]
	if got.Name != "Write report" || got.Category != "work" || got.Status != models.StatusDoing {
		t.Errorf("task = %+v", got)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateWeek {
		t.Errorf("esc state = %d, want StateWeek", m.state)
	}
}

func TestCycleStatusAndDelete(t *testing.T) {
	m := newTestModel(t)
	task := m.todo.AddTask(models.NewTask{Name: "Gym", DayID: 3})
	m.refresh()

	m = send(t, m, tasklist.CycleStatusMsg{ID: task.ID})
	if got, _ := m.todo.Task(task.ID); got.Status != models.StatusDoing {
		t.Errorf("status = %s, want doing", got.Status)
	}

	m = send(t, m, tasklist.DeleteTaskMsg{ID: task.ID})
	if m.state != StateConfirmDelete {
		t.Fatalf("state = %d, want StateConfirmDelete", m.state)
	}
	if !strings.Contains(m.View(), "Gym") {
		t.Error("confirmation does not name the task")
	}

	m = send(t, m, runes("n"))
	if _, ok := m.todo.Task(task.ID); !ok {
		t.Fatal("task deleted after answering no")
	}

	m = send(t, m, tasklist.DeleteTaskMsg{ID: task.ID})
	m = send(t, m, runes("y"))
	if _, ok := m.todo.Task(task.ID); ok {
		t.Error("task still present after confirming delete")
	}
	if m.state != StateWeek {
		t.Errorf("state = %d, want StateWeek", m.state)
	}
}

func TestOpenWeekFromList(t *testing.T) {
	m := newTestModel(t)
	m.todo.GoToNextWeek(0)
	m.refresh()

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, runes("k"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	week, _ := m.todo.CurrentWeek()
	if week.ID != 1 {
		t.Errorf("current week = %d, want 1", week.ID)
	}
	if m.state != StateWeek {
		t.Errorf("state = %d, want StateWeek", m.state)
	}
}

func TestThemeToggleKey(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("T"))
	if !m.themes.IsDark() {
		t.Error("theme not toggled to dark")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(runes("q"))
	if !next.(Model).quitting {
		t.Error("quitting not set")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
	if next.(Model).View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestViewShowsWeek(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	v := m.View()
	for _, want := range []string{"Week 1", "MON", "SUN"} {
		if !strings.Contains(v, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
