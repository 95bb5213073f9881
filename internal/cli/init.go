package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/weeklit/internal/constants"
	"github.com/julianstephens/weeklit/internal/storage"
)

var todoKeys = []string{
	constants.KeyTasks,
	constants.KeyDays,
	constants.KeyWeeks,
	constants.KeyCurrentWeekIndex,
}

type InitCmd struct {
	Force bool `help:"Discard all weeks and tasks and start again from week 1."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Provider.Init(); err != nil {
		return err
	}

	if c.Force {
		for _, key := range todoKeys {
			if err := ctx.Provider.Delete(key); err != nil && !errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("failed to reset %s: %w", key, err)
			}
		}
		if err := ctx.resetTodo(); err != nil {
			return err
		}
		ctx.println("Discarded existing weeks and tasks")
	}

	ctx.printf("Initialized weeklit storage at: %s\n", maskPassword(ctx.Provider.GetConfigPath()))
	if week, ok := ctx.Todo.CurrentWeek(); ok {
		ctx.printWeekHeader(week)
	}
	return nil
}
