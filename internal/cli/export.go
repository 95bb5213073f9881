package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/weeklit/internal/export"
)

type ExportCmd struct {
	Output string `short:"o" help:"Write to this file instead of stdout." type:"path"`
	Format string `short:"f" help:"Output format (json|yaml|csv). Inferred from --output when omitted."`
}

func (c *ExportCmd) format() (export.Format, error) {
	switch {
	case c.Format != "":
		return export.ParseFormat(c.Format)
	case c.Output != "":
		return export.FormatFromPath(c.Output)
	}
	return export.FormatJSON, nil
}

func (c *ExportCmd) Validate() error {
	_, err := c.format()
	return err
}

func (c *ExportCmd) Run(ctx *Context) error {
	format, err := c.format()
	if err != nil {
		return err
	}

	var w io.Writer = ctx.Out
	if c.Output != "" {
		f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := export.Write(w, format, ctx.Todo.Snapshot(), ctx.now()); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if c.Output != "" {
		ctx.printf("Exported %d tasks to %s\n", len(ctx.Todo.Tasks()), c.Output)
	}
	return nil
}
