package tasklist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/weeklit/internal/models"
)

type AddTaskMsg struct{}

type EditTaskMsg struct {
	Task models.Task
}

type DeleteTaskMsg struct {
	ID int
}

type CycleStatusMsg struct {
	ID int
}

type Item struct {
	Task models.Task
}

func (i Item) Title() string {
	switch i.Task.Status {
	case models.StatusDone:
		return "✓ " + i.Task.Name
	case models.StatusDoing:
		return "▶ " + i.Task.Name
	}
	return "○ " + i.Task.Name
}

func (i Item) Description() string {
	desc := string(i.Task.Status)
	if i.Task.Category != "" {
		desc += " | " + i.Task.Category
	}
	return fmt.Sprintf("#%d %s", i.Task.ID, desc)
}

func (i Item) FilterValue() string { return i.Task.Name }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Status key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Status: key.NewBinding(
			key.WithKeys("s", " "),
			key.WithHelp("s/space", "cycle status"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(tasks []models.Task, width, height int) Model {
	l := list.New(items(tasks), list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the parent model
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Status}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

func items(tasks []models.Task) []list.Item {
	out := make([]list.Item, len(tasks))
	for i, t := range tasks {
		out[i] = Item{Task: t}
	}
	return out
}

// SetTasks replaces the items, keeping the cursor in range.
func (m *Model) SetTasks(tasks []models.Task) {
	idx := m.list.Index()
	m.list.SetItems(items(tasks))
	if idx >= len(tasks) {
		idx = len(tasks) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
}

func (m Model) Selected() (models.Task, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Task, ok
}

// Keys lists the task bindings for the parent's help view.
func (m Model) Keys() []key.Binding {
	return []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.Status}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddTaskMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if t, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditTaskMsg{Task: t} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if t, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteTaskMsg{ID: t.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Status):
			if t, ok := m.Selected(); ok {
				return m, func() tea.Msg { return CycleStatusMsg{ID: t.ID} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No tasks for this day.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
