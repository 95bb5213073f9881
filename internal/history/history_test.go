package history

import (
	"testing"
	"time"

	"github.com/julianstephens/weeklit/internal/models"
)

func ptr[T any](v T) *T { return &v }

func baseTask() models.Task {
	return models.Task{
		ID:       1,
		Name:     "Write report",
		Status:   models.StatusTodo,
		Category: "work",
		DayID:    1,
		Date:     "2024-01-15",
	}
}

var now = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

func TestCreated(t *testing.T) {
	e := Created(models.StatusTodo, "alice", now)
	if e.Action != models.ActionCreated || e.Status != models.StatusTodo || e.User != "alice" {
		t.Errorf("Created() = %+v", e)
	}
	if e.Timestamp != "2024-01-15T09:00:00Z" {
		t.Errorf("Timestamp = %s", e.Timestamp)
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name    string
		update  models.TaskUpdate
		actions []models.HistoryAction
	}{
		{
			name:    "empty update",
			update:  models.TaskUpdate{},
			actions: nil,
		},
		{
			name:    "same status is not a change",
			update:  models.TaskUpdate{Status: ptr(models.StatusTodo)},
			actions: nil,
		},
		{
			name:    "status only",
			update:  models.TaskUpdate{Status: ptr(models.StatusDoing)},
			actions: []models.HistoryAction{models.ActionStatusChanged},
		},
		{
			name:    "name only",
			update:  models.TaskUpdate{Name: ptr("Write final report")},
			actions: []models.HistoryAction{models.ActionUpdated},
		},
		{
			name:    "unchanged name",
			update:  models.TaskUpdate{Name: ptr("Write report")},
			actions: nil,
		},
		{
			name: "status and name in order",
			update: models.TaskUpdate{
				Status: ptr(models.StatusDone),
				Name:   ptr("Ship report"),
			},
			actions: []models.HistoryAction{models.ActionStatusChanged, models.ActionUpdated},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := Diff(baseTask(), tt.update, now)
			if len(entries) != len(tt.actions) {
				t.Fatalf("Diff() returned %d entries, want %d: %+v", len(entries), len(tt.actions), entries)
			}
			for i, e := range entries {
				if e.Action != tt.actions[i] {
					t.Errorf("entry %d action = %s, want %s", i, e.Action, tt.actions[i])
				}
				if e.Timestamp != entries[0].Timestamp {
					t.Errorf("entry %d timestamp differs from first entry", i)
				}
			}
		})
	}
}

func TestDiffStatusChanged(t *testing.T) {
	entries := Diff(baseTask(), models.TaskUpdate{Status: ptr(models.StatusDoing)}, now)
	e := entries[0]
	if e.Status != models.StatusDoing || e.PreviousStatus != models.StatusTodo {
		t.Errorf("status_changed entry = %+v", e)
	}
	if e.Changes != nil {
		t.Errorf("status_changed entry carries changes: %v", e.Changes)
	}
}

func TestDiffUpdatedChanges(t *testing.T) {
	entries := Diff(baseTask(), models.TaskUpdate{
		Name:     ptr("Review"),
		Category: ptr("work"),
		DayID:    ptr(3),
		Date:     ptr("2024-01-17"),
	}, now)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	changes := entries[0].Changes
	if len(changes) != 3 {
		t.Fatalf("got %d changes, want 3: %v", len(changes), changes)
	}
	if c := changes["name"]; c.Old != "Write report" || c.New != "Review" {
		t.Errorf("name change = %+v", c)
	}
	if c := changes["dayId"]; c.Old != 1 || c.New != 3 {
		t.Errorf("dayId change = %+v", c)
	}
	if c := changes["date"]; c.Old != "2024-01-15" || c.New != "2024-01-17" {
		t.Errorf("date change = %+v", c)
	}
	if _, ok := changes["category"]; ok {
		t.Error("unchanged category recorded as a change")
	}
}
