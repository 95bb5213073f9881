package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/weeklit/internal/models"
)

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("name must not be empty")
	}
	return nil
}

func newTaskForm(fm *TaskFormModel, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder("Task name").
				Value(&fm.Name).
				Validate(notBlank),
			huh.NewInput().
				Title("Category").
				Placeholder("optional").
				Value(&fm.Category),
			huh.NewSelect[models.TaskStatus]().
				Title("Status").
				Options(
					huh.NewOption("Todo", models.StatusTodo),
					huh.NewOption("Doing", models.StatusDoing),
					huh.NewOption("Done", models.StatusDone),
				).
				Value(&fm.Status),
		),
	).WithShowHelp(true)
}

func newRenameForm(fm *RenameFormModel, current string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Rename " + current).
				Description("Leave empty to restore the generated name.").
				Value(&fm.Name),
		),
	).WithShowHelp(true)
}
