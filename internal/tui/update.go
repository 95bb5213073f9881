package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/weeklit/internal/logger"
	"github.com/julianstephens/weeklit/internal/models"
	"github.com/julianstephens/weeklit/internal/todo"
	"github.com/julianstephens/weeklit/internal/tui/components/tasklist"
	"github.com/julianstephens/weeklit/internal/utils"
)

// chromeHeight is the rows taken by tabs, the week header, the day strip,
// the status line and help.
const chromeHeight = 9

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		h, v := m.styles.doc.GetFrameSize()
		bodyHeight := max(msg.Height-chromeHeight-v, 1)
		m.taskList.SetSize(msg.Width-h, bodyHeight)
		m.chart.SetSize(msg.Width-h, bodyHeight)
	}

	switch m.state {
	case StateTaskForm:
		return m, m.updateTaskForm(msg)
	case StateRename:
		return m, m.updateRenameForm(msg)
	case StateConfirmDelete:
		m.updateConfirmDelete(msg)
		return m, nil
	}

	switch msg := msg.(type) {
	case tasklist.AddTaskMsg:
		m.editingTaskID = 0
		m.taskForm = &TaskFormModel{Status: models.StatusTodo}
		m.form = newTaskForm(m.taskForm, "New task")
		m.state = StateTaskForm
		return m, m.form.Init()

	case tasklist.EditTaskMsg:
		m.editingTaskID = msg.Task.ID
		m.taskForm = &TaskFormModel{
			Name:     msg.Task.Name,
			Category: msg.Task.Category,
			Status:   msg.Task.Status,
		}
		m.form = newTaskForm(m.taskForm, "Edit task")
		m.state = StateTaskForm
		return m, m.form.Init()

	case tasklist.DeleteTaskMsg:
		m.taskToDeleteID = msg.ID
		m.state = StateConfirmDelete
		return m, nil

	case tasklist.CycleStatusMsg:
		if t, ok := m.todo.Task(msg.ID); ok {
			next := t.Status.Next()
			m.todo.UpdateTask(msg.ID, models.TaskUpdate{Status: &next})
			m.status = fmt.Sprintf("%s → %s", t.Name, next)
			m.refresh()
		}
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
		switch m.state {
		case StateWeek:
			switch {
			case key.Matches(msg, m.keys.PrevDay):
				if m.selectedDay > 0 {
					m.selectedDay--
					m.refresh()
				}
				return m, nil
			case key.Matches(msg, m.keys.NextDay):
				if m.selectedDay < len(m.todo.CurrentWeekDays())-1 {
					m.selectedDay++
					m.refresh()
				}
				return m, nil
			}
			var cmd tea.Cmd
			m.taskList, cmd = m.taskList.Update(msg)
			return m, cmd
		case StateWeeks:
			m.updateWeeks(msg)
			return m, nil
		}
	}

	return m, nil
}

// handleGlobalKey processes bindings that work on every tab.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit, true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state - 1 + tabCount) % tabCount
	case key.Matches(msg, m.keys.NextWeek):
		m.navigated(m.todo.GoToNextWeek(0))
	case key.Matches(msg, m.keys.PrevWeek):
		m.navigated(m.todo.GoToPreviousWeek(0))
	case key.Matches(msg, m.keys.Today):
		m.navigated(m.todo.GoToDate(m.now()))
		m.selectToday()
		m.refresh()
	case key.Matches(msg, m.keys.Rename):
		week, ok := m.todo.CurrentWeek()
		if !ok {
			return nil, true
		}
		m.renameForm = &RenameFormModel{Name: week.CustomName}
		m.form = newRenameForm(m.renameForm, week.DisplayName())
		m.state = StateRename
		return m.form.Init(), true
	case key.Matches(msg, m.keys.Theme):
		t, err := m.themes.Toggle()
		if err != nil {
			m.status = "Theme not saved: " + err.Error()
		} else {
			m.status = "Theme: " + t.Name
		}
		m.styles = newStyles(m.themes)
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) navigated(res todo.NavResult) {
	switch res.Outcome {
	case todo.NavFloor:
		m.status = "Already at the first week"
	case todo.NavCreated:
		m.status = "Created " + res.Week.DisplayName()
	default:
		m.status = ""
	}
	m.refresh()
}

func (m *Model) updateWeeks(msg tea.KeyMsg) {
	weeks := m.todo.Weeks()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.weekCursor > 0 {
			m.weekCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.weekCursor < len(weeks)-1 {
			m.weekCursor++
		}
	case key.Matches(msg, m.keys.Open):
		if m.weekCursor >= len(weeks) {
			return
		}
		start, err := utils.ParseDate(weeks[m.weekCursor].StartDate, m.loc)
		if err != nil {
			logger.Warn("Cannot open week with invalid start date", "week", weeks[m.weekCursor].ID, "error", err)
			return
		}
		m.navigated(m.todo.GoToDate(start))
		m.state = StateWeek
	}
}

// updateForm feeds msg to the active form and reports its state. Esc
// aborts.
func (m *Model) updateForm(msg tea.Msg) (tea.Cmd, huh.FormState) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		return nil, huh.StateAborted
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	return cmd, m.form.State
}

func (m *Model) updateTaskForm(msg tea.Msg) tea.Cmd {
	cmd, state := m.updateForm(msg)
	switch state {
	case huh.StateCompleted:
		m.saveTaskForm()
		m.state = StateWeek
		m.refresh()
	case huh.StateAborted:
		m.state = StateWeek
	}
	return cmd
}

func (m *Model) saveTaskForm() {
	fm := m.taskForm
	if m.editingTaskID == 0 {
		day, ok := m.currentDay()
		if !ok {
			return
		}
		t := m.todo.AddTask(models.NewTask{
			Name:     fm.Name,
			Status:   fm.Status,
			Category: fm.Category,
			DayID:    day.ID,
		})
		m.status = fmt.Sprintf("Added #%d to %s", t.ID, day.Name)
		return
	}

	t, ok := m.todo.UpdateTask(m.editingTaskID, models.TaskUpdate{
		Name:     &fm.Name,
		Status:   &fm.Status,
		Category: &fm.Category,
	})
	if ok {
		m.status = fmt.Sprintf("Updated #%d", t.ID)
	}
}

func (m *Model) updateRenameForm(msg tea.Msg) tea.Cmd {
	cmd, state := m.updateForm(msg)
	switch state {
	case huh.StateCompleted:
		if week, ok := m.todo.CurrentWeek(); ok {
			m.todo.UpdateWeekName(week.ID, m.renameForm.Name)
		}
		m.state = StateWeek
	case huh.StateAborted:
		m.state = StateWeek
	}
	return cmd
}

func (m *Model) updateConfirmDelete(msg tea.Msg) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return
	}
	switch km.String() {
	case "y", "Y":
		if m.todo.DeleteTask(m.taskToDeleteID) {
			m.status = fmt.Sprintf("Deleted #%d", m.taskToDeleteID)
		}
		m.taskToDeleteID = 0
		m.state = StateWeek
		m.refresh()
	case "n", "N", "esc":
		m.taskToDeleteID = 0
		m.state = StateWeek
	}
}
