package todo

import (
	"slices"

	"github.com/julianstephens/weeklit/internal/models"
	"github.com/julianstephens/weeklit/internal/storage"
)

// CurrentWeek returns the week under the pointer.
func (s *Store) CurrentWeek() (models.Week, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.reference(0)
	if !ok {
		return models.Week{}, false
	}
	return s.weeks[idx], true
}

// CurrentWeekIndex returns the pointer as an index into Weeks.
func (s *Store) CurrentWeekIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current
}

// CurrentWeekDays returns the seven days of the current week, Monday first.
func (s *Store) CurrentWeekDays() []models.Day {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.reference(0)
	if !ok {
		return nil
	}
	return s.daysForWeek(s.weeks[idx].ID)
}

// CurrentWeekTaskCount counts tasks whose day belongs to the current week.
func (s *Store) CurrentWeekTaskCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.reference(0)
	if !ok {
		return 0
	}
	return s.weekCounts(s.weeks[idx].ID).Total
}

// TaskCountsForDay breaks down the day's tasks by status.
func (s *Store) TaskCountsForDay(dayID int) models.TaskCounts {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.dayCounts(dayID)
}

func (s *Store) dayCounts(dayID int) models.TaskCounts {
	var c models.TaskCounts
	for _, t := range s.tasks {
		if t.DayID == dayID {
			c.Add(t.Status)
		}
	}
	return c
}

// WeekTaskCounts sums the per-day counts of a week.
func (s *Store) WeekTaskCounts(weekID int) models.TaskCounts {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.weekCounts(weekID)
}

func (s *Store) weekCounts(weekID int) models.TaskCounts {
	var c models.TaskCounts
	for _, t := range s.tasks {
		if d, ok := s.day(t.DayID); ok && d.WeekID == weekID {
			c.Add(t.Status)
		}
	}
	return c
}

// Task returns a copy of the task with taskID.
func (s *Store) Task(taskID int) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.taskIndex(taskID)
	if !ok {
		return models.Task{}, false
	}
	return cloneTask(s.tasks[idx]), true
}

// TaskWithDay joins the task with its day. The day fields are empty when the
// day is unknown.
func (s *Store) TaskWithDay(taskID int) (models.TaskWithDay, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.taskIndex(taskID)
	if !ok {
		return models.TaskWithDay{}, false
	}

	out := models.TaskWithDay{Task: cloneTask(s.tasks[idx])}
	if d, ok := s.day(out.DayID); ok {
		out.DayName = d.Name
		out.DayDate = d.Date
		out.FullDate = d.FullDate
	}
	return out, true
}

// TaskHistory returns the full history of a task, oldest first, or nil when
// the task does not exist.
func (s *Store) TaskHistory(taskID int) []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.taskIndex(taskID)
	if !ok {
		return nil
	}
	return slices.Clone(s.tasks[idx].History)
}

// TasksForDay returns the day's tasks in creation order.
func (s *Store) TasksForDay(dayID int) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Task
	for _, t := range s.tasks {
		if t.DayID == dayID {
			out = append(out, cloneTask(t))
		}
	}
	return out
}

func (s *Store) WeekByID(weekID int) (models.Week, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.weekIndex(weekID)
	if !ok {
		return models.Week{}, false
	}
	return s.weeks[idx], true
}

func (s *Store) Day(dayID int) (models.Day, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.day(dayID)
}

func (s *Store) DaysForWeek(weekID int) []models.Day {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.daysForWeek(weekID)
}

func (s *Store) daysForWeek(weekID int) []models.Day {
	var out []models.Day
	for _, d := range s.days {
		if d.WeekID == weekID {
			out = append(out, d)
		}
	}
	return out
}

func (s *Store) Weeks() []models.Week {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.weeks)
}

func (s *Store) Days() []models.Day {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.days)
}

func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = cloneTask(t)
	}
	return out
}

// Snapshot copies the full state, for export.
func (s *Store) Snapshot() storage.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make([]models.Task, len(s.tasks))
	for i, t := range s.tasks {
		tasks[i] = cloneTask(t)
	}
	return storage.Snapshot{
		Weeks:            slices.Clone(s.weeks),
		Days:             slices.Clone(s.days),
		Tasks:            tasks,
		CurrentWeekIndex: s.current,
	}
}
