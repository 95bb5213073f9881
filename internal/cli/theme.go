package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/weeklit/internal/theme"
)

type ThemeShowCmd struct{}

func (c *ThemeShowCmd) Run(ctx *Context) error {
	t := ctx.Theme.Current()
	ctx.printf("%s (%s) %s\n", t.Name, t.ID, t.Preview)
	colors := ctx.Theme.Colors()
	for _, k := range []string{theme.ColorPrimary, theme.ColorBackground, theme.ColorText} {
		ctx.printf("  %-10s %s\n", k, colors[k])
	}
	return nil
}

type ThemeListCmd struct{}

func (c *ThemeListCmd) Run(ctx *Context) error {
	current := ctx.Theme.Current().ID
	for _, t := range theme.Available {
		marker := " "
		if t.ID == current {
			marker = "*"
		}
		ctx.printf("%s %-7s %-13s %s  %s\n", marker, t.ID, t.Name, t.Preview, t.Description)
	}
	return nil
}

type ThemeSetCmd struct {
	ID string `arg:"" help:"Theme id."`
}

func (c *ThemeSetCmd) Run(ctx *Context) error {
	if err := ctx.Theme.SetTheme(strings.ToLower(c.ID)); err != nil {
		return err
	}
	ctx.printf("Theme set to %s\n", ctx.Theme.Current().Name)
	return nil
}

type ThemeToggleCmd struct{}

func (c *ThemeToggleCmd) Run(ctx *Context) error {
	t, err := ctx.Theme.Toggle()
	if err != nil {
		return err
	}
	ctx.printf("Theme set to %s\n", t.Name)
	return nil
}

type ThemeResetCmd struct{}

func (c *ThemeResetCmd) Run(ctx *Context) error {
	if err := ctx.Theme.ResetToDefault(); err != nil {
		return err
	}
	ctx.println("Theme and colors reset to defaults")
	return nil
}

type ThemeColorCmd struct {
	Kind  string `arg:"" help:"Color to change (primary|background|text)."`
	Value string `arg:"" help:"Hex color, e.g. #3B82F6."`
}

func (c *ThemeColorCmd) Validate() error {
	kinds := []string{theme.ColorPrimary, theme.ColorBackground, theme.ColorText}
	if !slices.Contains(kinds, c.Kind) {
		return fmt.Errorf("unknown color %q (want %s)", c.Kind, strings.Join(kinds, ", "))
	}
	return nil
}

func (c *ThemeColorCmd) Run(ctx *Context) error {
	if err := ctx.Theme.SetCustomColor(c.Kind, c.Value); err != nil {
		return err
	}
	ctx.printf("Set %s color to %s\n", c.Kind, c.Value)
	return nil
}
