package cli

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/weeklit/internal/constants"
	"github.com/julianstephens/weeklit/internal/errors"
	"github.com/julianstephens/weeklit/internal/models"
	"github.com/julianstephens/weeklit/internal/utils"
)

func parseStatus(s string) (models.TaskStatus, error) {
	st, ok := models.ParseStatus(strings.ToLower(strings.TrimSpace(s)))
	if !ok {
		return "", fmt.Errorf("invalid status %q (want todo, doing or done)", s)
	}
	return st, nil
}

// defaultDay is today's day when it belongs to the current week, otherwise
// the current week's Monday.
func (c *Context) defaultDay() (models.Day, bool) {
	days := c.Todo.CurrentWeekDays()
	if len(days) == 0 {
		return models.Day{}, false
	}
	today := utils.ISODate(c.today())
	for _, d := range days {
		if d.FullDate == today {
			return d, true
		}
	}
	return days[0], true
}

type TaskAddCmd struct {
	Name     string `arg:"" help:"Task name."`
	Day      int    `short:"d" help:"Day id. Defaults to today in the current week."`
	Category string `short:"c" help:"Task category."`
	Status   string `short:"s" help:"Initial status (todo|doing|done)." default:"todo"`
}

func (c *TaskAddCmd) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("task name must not be empty")
	}
	_, err := parseStatus(c.Status)
	return err
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	status, err := parseStatus(c.Status)
	if err != nil {
		return err
	}

	day, ok := ctx.defaultDay()
	if c.Day != 0 {
		if day, ok = ctx.Todo.Day(c.Day); !ok {
			return errors.NotFound("day", c.Day)
		}
	}
	if !ok {
		return fmt.Errorf("no current week; run 'weeklit init'")
	}

	task := ctx.Todo.AddTask(models.NewTask{
		Name:     strings.TrimSpace(c.Name),
		Status:   status,
		Category: c.Category,
		DayID:    day.ID,
	})
	ctx.printf("Added task #%d to %s %s\n", task.ID, day.Name, day.Date)
	return nil
}

type TaskEditCmd struct {
	ID       int     `arg:"" help:"Task id."`
	Name     *string `short:"n" help:"New task name."`
	Category *string `short:"c" help:"New category."`
	Status   *string `short:"s" help:"New status (todo|doing|done)."`
	Day      *int    `short:"d" help:"Move the task to another day id."`
}

func (c *TaskEditCmd) Validate() error {
	if c.Name != nil && strings.TrimSpace(*c.Name) == "" {
		return fmt.Errorf("task name must not be empty")
	}
	if c.Status != nil {
		if _, err := parseStatus(*c.Status); err != nil {
			return err
		}
	}
	return nil
}

func (c *TaskEditCmd) Run(ctx *Context) error {
	if _, ok := ctx.Todo.Task(c.ID); !ok {
		return errors.NotFound("task", c.ID)
	}

	var update models.TaskUpdate
	if c.Name != nil {
		name := strings.TrimSpace(*c.Name)
		update.Name = &name
	}
	if c.Category != nil {
		update.Category = c.Category
	}
	if c.Status != nil {
		st, err := parseStatus(*c.Status)
		if err != nil {
			return err
		}
		update.Status = &st
	}
	if c.Day != nil {
		if _, ok := ctx.Todo.Day(*c.Day); !ok {
			return errors.NotFound("day", *c.Day)
		}
		update.DayID = c.Day
	}
	if update.IsEmpty() {
		return fmt.Errorf("nothing to change; pass --name, --category, --status or --day")
	}

	task, _ := ctx.Todo.UpdateTask(c.ID, update)
	ctx.printf("Updated %s\n", formatTask(task))
	return nil
}

type TaskStatusCmd struct {
	ID     int    `arg:"" help:"Task id."`
	Status string `arg:"" optional:"" help:"New status (todo|doing|done). Defaults to the next status in the cycle."`
}

func (c *TaskStatusCmd) Run(ctx *Context) error {
	task, ok := ctx.Todo.Task(c.ID)
	if !ok {
		return errors.NotFound("task", c.ID)
	}

	next := task.Status.Next()
	if c.Status != "" {
		st, err := parseStatus(c.Status)
		if err != nil {
			return err
		}
		next = st
	}

	task, _ = ctx.Todo.UpdateTask(c.ID, models.TaskUpdate{Status: &next})
	ctx.printf("%s\n", formatTask(task))
	return nil
}

type TaskDeleteCmd struct {
	ID int `arg:"" help:"Task id."`
}

func (c *TaskDeleteCmd) Run(ctx *Context) error {
	if !ctx.Todo.DeleteTask(c.ID) {
		return errors.NotFound("task", c.ID)
	}
	ctx.printf("Deleted task #%d\n", c.ID)
	return nil
}

type TaskListCmd struct {
	Week   int    `short:"w" help:"Week id. Defaults to the current week."`
	All    bool   `short:"a" help:"List tasks from every week."`
	Status string `short:"s" help:"Only show tasks with this status."`
}

func (c *TaskListCmd) Validate() error {
	if c.Status == "" {
		return nil
	}
	_, err := parseStatus(c.Status)
	return err
}

func (c *TaskListCmd) Run(ctx *Context) error {
	var filter models.TaskStatus
	if c.Status != "" {
		st, err := parseStatus(c.Status)
		if err != nil {
			return err
		}
		filter = st
	}

	var days []models.Day
	switch {
	case c.All:
		days = ctx.Todo.Days()
	case c.Week != 0:
		if _, ok := ctx.Todo.WeekByID(c.Week); !ok {
			return errors.NotFound("week", c.Week)
		}
		days = ctx.Todo.DaysForWeek(c.Week)
	default:
		days = ctx.Todo.CurrentWeekDays()
	}

	found := 0
	for _, d := range days {
		for _, t := range ctx.Todo.TasksForDay(d.ID) {
			if filter != "" && t.Status != filter {
				continue
			}
			ctx.printf("%s %-10s %s\n", d.Name, t.Date, formatTask(t))
			found++
		}
	}
	if found == 0 {
		ctx.println("No tasks found.")
	}
	return nil
}

type TaskShowCmd struct {
	ID int `arg:"" help:"Task id."`
}

func (c *TaskShowCmd) Run(ctx *Context) error {
	t, ok := ctx.Todo.TaskWithDay(c.ID)
	if !ok {
		return errors.NotFound("task", c.ID)
	}
	ctx.printf("%s\n", formatTask(t.Task))
	if t.DayName != "" {
		ctx.printf("  Day:      %s %s (%s)\n", t.DayName, t.DayDate, t.FullDate)
	} else {
		ctx.printf("  Day:      unknown (day %d)\n", t.DayID)
	}
	ctx.printf("  Date:     %s\n", t.Date)
	ctx.printf("  Status:   %s\n", t.Status)
	if t.Category != "" {
		ctx.printf("  Category: %s\n", t.Category)
	}
	ctx.printf("  Changes:  %d\n", len(t.History))
	return nil
}

type TaskHistoryCmd struct {
	ID int `arg:"" help:"Task id."`
}

func (c *TaskHistoryCmd) Run(ctx *Context) error {
	entries := ctx.Todo.TaskHistory(c.ID)
	if entries == nil {
		return errors.NotFound("task", c.ID)
	}
	for _, e := range entries {
		ctx.printf("%-22s %s\n", formatWhen(e.Timestamp, ctx.now()), describeEntry(e))
	}
	return nil
}

// formatWhen renders an RFC3339 timestamp relative to now, falling back to
// the raw text when it does not parse.
func formatWhen(ts string, now time.Time) string {
	t, err := time.Parse(constants.TimestampFormat, ts)
	if err != nil {
		return ts
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprint(v)
}

func describeEntry(e models.HistoryEntry) string {
	switch e.Action {
	case models.ActionCreated:
		if e.User != "" {
			return fmt.Sprintf("created as %s by %s", e.Status, e.User)
		}
		return fmt.Sprintf("created as %s", e.Status)
	case models.ActionStatusChanged:
		return fmt.Sprintf("status %s -> %s", e.PreviousStatus, e.Status)
	case models.ActionUpdated:
		fields := make([]string, 0, len(e.Changes))
		for _, k := range slices.Sorted(maps.Keys(e.Changes)) {
			ch := e.Changes[k]
			fields = append(fields, fmt.Sprintf("%s %s -> %s", k, formatValue(ch.Old), formatValue(ch.New)))
		}
		return "updated " + strings.Join(fields, ", ")
	}
	return string(e.Action)
}
