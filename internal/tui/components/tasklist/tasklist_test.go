package tasklist

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/weeklit/internal/models"
)

func sampleTasks() []models.Task {
	return []models.Task{
		{ID: 1, Name: "Write report", Status: models.StatusTodo, Category: "work"},
		{ID: 2, Name: "Review", Status: models.StatusDoing},
		{ID: 3, Name: "Ship", Status: models.StatusDone},
	}
}

func keyMsg(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestUpdateEmitsMessages(t *testing.T) {
	tests := []struct {
		name  string
		tasks []models.Task
		key   string
		want  tea.Msg
	}{
		{"add", sampleTasks(), "a", AddTaskMsg{}},
		{"add on empty list", nil, "a", AddTaskMsg{}},
		{"edit", sampleTasks(), "e", EditTaskMsg{Task: sampleTasks()[0]}},
		{"delete", sampleTasks(), "d", DeleteTaskMsg{ID: 1}},
		{"cycle", sampleTasks(), "s", CycleStatusMsg{ID: 1}},
		{"cycle with space", sampleTasks(), " ", CycleStatusMsg{ID: 1}},
		{"edit on empty list", nil, "e", nil},
		{"delete on empty list", nil, "d", nil},
		{"cycle on empty list", nil, "s", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.tasks, 40, 20)
			_, cmd := m.Update(keyMsg(tt.key))
			if tt.want == nil {
				if cmd != nil {
					t.Errorf("Update(%q) returned cmd producing %#v, want none", tt.key, cmd())
				}
				return
			}
			if cmd == nil {
				t.Fatalf("Update(%q) returned no cmd", tt.key)
			}
			if got := cmd(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Update(%q) msg = %#v, want %#v", tt.key, got, tt.want)
			}
		})
	}
}

func TestSetTasksKeepsCursorInRange(t *testing.T) {
	m := New(sampleTasks(), 40, 20)
	m.list.Select(2)
	if got, _ := m.Selected(); got.ID != 3 {
		t.Fatalf("Selected() = #%d, want #3", got.ID)
	}

	m.SetTasks(sampleTasks()[:1])
	got, ok := m.Selected()
	if !ok || got.ID != 1 {
		t.Errorf("Selected() after shrink = #%d, %v; want #1", got.ID, ok)
	}

	m.SetTasks(nil)
	if _, ok := m.Selected(); ok {
		t.Error("Selected() reported a task on an empty list")
	}
}

func TestItemRendering(t *testing.T) {
	tests := []struct {
		task      models.Task
		wantTitle string
		wantDesc  string
	}{
		{sampleTasks()[0], "○ Write report", "#1 todo | work"},
		{sampleTasks()[1], "▶ Review", "#2 doing"},
		{sampleTasks()[2], "✓ Ship", "#3 done"},
	}

	for _, tt := range tests {
		i := Item{Task: tt.task}
		if i.Title() != tt.wantTitle || i.Description() != tt.wantDesc {
			t.Errorf("Item(%d) = %q / %q, want %q / %q", tt.task.ID, i.Title(), i.Description(), tt.wantTitle, tt.wantDesc)
		}
	}
}
