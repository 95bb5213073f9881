package models

type TaskStatus string

const (
	StatusTodo  TaskStatus = "todo"
	StatusDoing TaskStatus = "doing"
	StatusDone  TaskStatus = "done"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

// Next cycles todo -> doing -> done -> todo.
func (s TaskStatus) Next() TaskStatus {
	switch s {
	case StatusTodo:
		return StatusDoing
	case StatusDoing:
		return StatusDone
	default:
		return StatusTodo
	}
}

// ParseStatus converts user input into a TaskStatus.
func ParseStatus(s string) (TaskStatus, bool) {
	st := TaskStatus(s)
	return st, st.Valid()
}

// Task is a unit of work assigned to a Day.
//
// Date is copied from the Day's FullDate when the task is created and is not
// kept in sync afterwards.
type Task struct {
	ID       int            `json:"id"`
	Name     string         `json:"name"`
	Status   TaskStatus     `json:"status"`
	Category string         `json:"category"`
	DayID    int            `json:"dayId"`
	Date     string         `json:"date"`
	History  []HistoryEntry `json:"history"`
}

// NewTask is the input to adding a task. Status defaults to todo.
type NewTask struct {
	Name     string
	Status   TaskStatus
	Category string
	DayID    int
}

// TaskUpdate carries the fields to merge over an existing task. Nil fields
// are left untouched.
type TaskUpdate struct {
	Name     *string
	Status   *TaskStatus
	Category *string
	DayID    *int
	Date     *string
}

// IsEmpty reports whether the update carries no fields.
func (u TaskUpdate) IsEmpty() bool {
	return u.Name == nil && u.Status == nil && u.Category == nil && u.DayID == nil && u.Date == nil
}

// TaskCounts is the per-status breakdown for a day or week.
type TaskCounts struct {
	Todo  int `json:"todo"`
	Doing int `json:"doing"`
	Done  int `json:"done"`
	Total int `json:"total"`
}

// Add accumulates one task with the given status.
func (c *TaskCounts) Add(status TaskStatus) {
	switch status {
	case StatusTodo:
		c.Todo++
	case StatusDoing:
		c.Doing++
	case StatusDone:
		c.Done++
	}
	c.Total++
}

// TaskWithDay joins a task with its owning day's display fields. The day
// fields are empty when the day cannot be found.
type TaskWithDay struct {
	Task
	DayName  string `json:"dayName"`
	DayDate  string `json:"dayDate"`
	FullDate string `json:"fullDate"`
}
