package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/weeklit/internal/lock"
	"github.com/julianstephens/weeklit/internal/logger"
	"github.com/julianstephens/weeklit/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	l, err := lock.Acquire(ctx.LockDir())
	if err != nil {
		if errors.Is(err, lock.ErrLocked) {
			return fmt.Errorf("%w; close it before starting another", err)
		}
		return err
	}
	defer func() {
		if err := l.Release(); err != nil {
			logger.Warn("Failed to release session lock", "error", err)
		}
	}()

	ctx.PerformAutomaticBackup()

	model := tui.NewModel(ctx.Todo, ctx.Theme, tui.WithClock(ctx.now), tui.WithLocation(ctx.Location))
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// LockDir is where the session lock lives: next to the settings file.
func (c *Context) LockDir() string {
	return filepath.Dir(c.SettingsPath)
}
