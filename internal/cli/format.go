package cli

import (
	"fmt"

	"github.com/julianstephens/weeklit/internal/models"
)

func statusMark(s models.TaskStatus) string {
	switch s {
	case models.StatusDoing:
		return "[~]"
	case models.StatusDone:
		return "[x]"
	default:
		return "[ ]"
	}
}

func formatCounts(c models.TaskCounts) string {
	noun := "tasks"
	if c.Total == 1 {
		noun = "task"
	}
	return fmt.Sprintf("%d %s: %d todo, %d doing, %d done", c.Total, noun, c.Todo, c.Doing, c.Done)
}

func formatTask(t models.Task) string {
	line := fmt.Sprintf("%s #%d %s", statusMark(t.Status), t.ID, t.Name)
	if t.Category != "" {
		line += fmt.Sprintf(" (%s)", t.Category)
	}
	return line
}

func (c *Context) printWeekHeader(w models.Week) {
	c.printf("%s  %s  [week %d, id %d]\n", w.DisplayName(), w.DateRange, w.WeekNumber, w.ID)
}

func (c *Context) printDay(d models.Day) {
	c.printf("%s %s  (%s)  [day %d]\n", d.Name, d.Date, formatCounts(c.Todo.TaskCountsForDay(d.ID)), d.ID)
	for _, t := range c.Todo.TasksForDay(d.ID) {
		c.printf("    %s\n", formatTask(t))
	}
}

func (c *Context) printWeek(w models.Week) {
	c.printWeekHeader(w)
	for _, d := range c.Todo.DaysForWeek(w.ID) {
		c.printf("  ")
		c.printDay(d)
	}
}
