package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/weeklit/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateWeek:
		content = m.viewWeek()
	case StateChart:
		content = m.styles.doc.Render(m.chart.View())
	case StateWeeks:
		content = m.viewWeeks()
	case StateTaskForm, StateRename:
		content = m.styles.doc.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewHeader(),
		content,
		m.styles.muted.Render(m.status),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	tabs := make([]string, 0, tabCount)
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, m.styles.activeTab.Render(title))
		} else {
			tabs = append(tabs, m.styles.inactiveTab.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewHeader() string {
	week, ok := m.todo.CurrentWeek()
	if !ok {
		return ""
	}
	counts := m.todo.WeekTaskCounts(week.ID)
	return fmt.Sprintf("%s  %s  %s",
		m.styles.title.Render(week.DisplayName()),
		week.DateRange,
		m.styles.muted.Render(fmt.Sprintf("%d/%d done", counts.Done, counts.Total)))
}

func (m Model) viewWeek() string {
	today := utils.ISODate(m.now().In(m.loc))
	days := m.todo.CurrentWeekDays()
	cells := make([]string, len(days))
	for i, d := range days {
		label := fmt.Sprintf("%s %s (%d)", d.Name, d.Date, m.todo.TaskCountsForDay(d.ID).Total)
		if d.FullDate == today {
			label = m.styles.today.Render(label)
		}
		if i == m.selectedDay {
			cells[i] = m.styles.selectedDay.Render(label)
		} else {
			cells[i] = m.styles.day.Render(label)
		}
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Bottom, cells...)
	return m.styles.doc.Render(lipgloss.JoinVertical(lipgloss.Left, strip, m.taskList.View()))
}

func (m Model) viewWeeks() string {
	current, _ := m.todo.CurrentWeek()
	var b strings.Builder
	for i, w := range m.todo.Weeks() {
		cursor := "  "
		if i == m.weekCursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-24s %-26s %3d tasks", cursor, w.DisplayName(), w.DateRange, m.todo.WeekTaskCounts(w.ID).Total)
		if w.ID == current.ID {
			line = m.styles.title.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return m.styles.doc.Render(b.String())
}

func (m Model) viewConfirmDelete() string {
	name := fmt.Sprintf("#%d", m.taskToDeleteID)
	if t, ok := m.todo.Task(m.taskToDeleteID); ok {
		name = fmt.Sprintf("%q", t.Name)
	}
	return lipgloss.Place(m.width, max(m.height-chromeHeight, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			m.styles.danger.Render("Delete task "+name+"?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
