package todo

import (
	"slices"

	"github.com/julianstephens/weeklit/internal/history"
	"github.com/julianstephens/weeklit/internal/logger"
	"github.com/julianstephens/weeklit/internal/models"
	"github.com/julianstephens/weeklit/internal/utils"
)

func (s *Store) taskIndex(taskID int) (int, bool) {
	for i, t := range s.tasks {
		if t.ID == taskID {
			return i, true
		}
	}
	return 0, false
}

func (s *Store) day(dayID int) (models.Day, bool) {
	for _, d := range s.days {
		if d.ID == dayID {
			return d, true
		}
	}
	return models.Day{}, false
}

// AddTask creates a task on data.DayID. The task's date is copied from the
// day, or is today when the day is unknown. Status defaults to todo.
func (s *Store) AddTask(data models.NewTask) models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	maxID := 0
	for _, t := range s.tasks {
		maxID = max(maxID, t.ID)
	}

	status := data.Status
	if !status.Valid() {
		status = models.StatusTodo
	}

	now := s.today()
	date := utils.ISODate(now)
	if d, ok := s.day(data.DayID); ok {
		date = d.FullDate
	}

	task := models.Task{
		ID:       maxID + 1,
		Name:     data.Name,
		Status:   status,
		Category: data.Category,
		DayID:    data.DayID,
		Date:     date,
		History:  []models.HistoryEntry{history.Created(status, s.user, now)},
	}
	s.tasks = append(s.tasks, task)
	logger.Debug("Added task", "id", task.ID, "day", task.DayID)
	s.save()

	return cloneTask(task)
}

// UpdateTask merges update over the task and appends the resulting history
// entries. An unknown id is a no-op and reports false.
func (s *Store) UpdateTask(taskID int, update models.TaskUpdate) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.taskIndex(taskID)
	if !ok {
		return models.Task{}, false
	}

	if update.Status != nil && !update.Status.Valid() {
		logger.Warn("Ignoring invalid status", "task", taskID, "status", *update.Status)
		update.Status = nil
	}

	old := s.tasks[idx]
	entries := history.Diff(old, update, s.today())

	task := old
	if update.Name != nil {
		task.Name = *update.Name
	}
	if update.Status != nil {
		task.Status = *update.Status
	}
	if update.Category != nil {
		task.Category = *update.Category
	}
	if update.DayID != nil {
		task.DayID = *update.DayID
	}
	if update.Date != nil {
		task.Date = *update.Date
	}
	task.History = append(slices.Clone(old.History), entries...)

	s.tasks[idx] = task
	s.save()

	return cloneTask(task), true
}

// DeleteTask removes the task. An unknown id is a no-op and reports false.
func (s *Store) DeleteTask(taskID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.taskIndex(taskID)
	if !ok {
		return false
	}
	s.tasks = slices.Delete(s.tasks, idx, idx+1)
	s.save()
	return true
}

// cloneTask copies the history so callers cannot alias the store's slice.
func cloneTask(t models.Task) models.Task {
	t.History = slices.Clone(t.History)
	return t
}
