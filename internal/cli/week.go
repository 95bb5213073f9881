package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/weeklit/internal/errors"
	"github.com/julianstephens/weeklit/internal/todo"
	"github.com/julianstephens/weeklit/internal/utils"
)

type WeekShowCmd struct {
	ID int `help:"Week id. Defaults to the current week."`
}

func (c *WeekShowCmd) Run(ctx *Context) error {
	if c.ID == 0 {
		week, ok := ctx.Todo.CurrentWeek()
		if !ok {
			return fmt.Errorf("no current week; run 'weeklit init'")
		}
		ctx.printWeek(week)
		return nil
	}
	week, ok := ctx.Todo.WeekByID(c.ID)
	if !ok {
		return errors.NotFound("week", c.ID)
	}
	ctx.printWeek(week)
	return nil
}

type WeekListCmd struct{}

func (c *WeekListCmd) Run(ctx *Context) error {
	current, _ := ctx.Todo.CurrentWeek()
	for _, w := range ctx.Todo.Weeks() {
		marker := " "
		if w.ID == current.ID {
			marker = "*"
		}
		ctx.printf("%s %-4d %-24s %-26s %s\n", marker, w.ID, w.DisplayName(), w.DateRange, formatCounts(ctx.Todo.WeekTaskCounts(w.ID)))
	}
	return nil
}

// reportNav prints where a navigation ended up. from is the id the user
// passed, 0 for the current week.
func (c *Context) reportNav(res todo.NavResult, from int) error {
	switch res.Outcome {
	case todo.NavNotFound:
		return errors.NotFound("week", from)
	case todo.NavFloor:
		c.println("Already at the first week.")
	case todo.NavCreated:
		c.printf("Created %s\n", res.Week.DisplayName())
	}
	c.printWeekHeader(res.Week)
	return nil
}

type WeekNextCmd struct {
	From int `help:"Reference week id. Defaults to the current week."`
}

func (c *WeekNextCmd) Run(ctx *Context) error {
	return ctx.reportNav(ctx.Todo.GoToNextWeek(c.From), c.From)
}

type WeekPrevCmd struct {
	From int `help:"Reference week id. Defaults to the current week."`
}

func (c *WeekPrevCmd) Run(ctx *Context) error {
	return ctx.reportNav(ctx.Todo.GoToPreviousWeek(c.From), c.From)
}

type WeekTodayCmd struct {
	Date string `arg:"" optional:"" help:"Date to jump to (YYYY-MM-DD). Defaults to today."`
}

func (c *WeekTodayCmd) Run(ctx *Context) error {
	if c.Date == "" {
		return ctx.reportNav(ctx.Todo.GoToToday(), 0)
	}
	date, err := utils.ParseDate(c.Date, ctx.Location)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", c.Date, err)
	}
	return ctx.reportNav(ctx.Todo.GoToDate(date), 0)
}

type WeekRenameCmd struct {
	ID   int    `arg:"" help:"Week id."`
	Name string `arg:"" help:"New week name. Empty restores the generated name."`
}

func (c *WeekRenameCmd) Run(ctx *Context) error {
	name := strings.TrimSpace(c.Name)
	if !ctx.Todo.UpdateWeekName(c.ID, name) {
		return errors.NotFound("week", c.ID)
	}
	week, _ := ctx.Todo.WeekByID(c.ID)
	ctx.printf("Renamed week %d to %q\n", c.ID, week.DisplayName())
	return nil
}

type DayShowCmd struct {
	ID int `arg:"" help:"Day id."`
}

func (c *DayShowCmd) Run(ctx *Context) error {
	day, ok := ctx.Todo.Day(c.ID)
	if !ok {
		return errors.NotFound("day", c.ID)
	}
	if week, ok := ctx.Todo.WeekByID(day.WeekID); ok {
		ctx.printWeekHeader(week)
	}
	ctx.printDay(day)
	return nil
}
