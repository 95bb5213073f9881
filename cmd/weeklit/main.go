package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/weeklit/internal/cli"
	"github.com/julianstephens/weeklit/internal/config"
	"github.com/julianstephens/weeklit/internal/constants"
	"github.com/julianstephens/weeklit/internal/errors"
	"github.com/julianstephens/weeklit/internal/lock"
	"github.com/julianstephens/weeklit/internal/logger"
	"github.com/julianstephens/weeklit/internal/storage"
)

type CLI struct {
	Version  kong.VersionFlag
	Storage  string `name:"config" help:"Storage path (.db for SQLite, .json for a JSON file, :memory:), 'postgres' to use the keyring, or a PostgreSQL URL without credentials." default:"${default_config}"`
	Settings string `help:"Settings file." type:"path" default:"${default_settings}"`
	Debug    bool   `help:"Enable debug logging to stderr."`

	Init cli.InitCmd `cmd:"" help:"Initialize weeklit storage."`
	Tui  cli.TuiCmd  `cmd:"" help:"Launch the interactive week board." default:"1"`
	Week struct {
		Show   cli.WeekShowCmd   `cmd:"" help:"Show a week with its days and tasks." default:"1"`
		List   cli.WeekListCmd   `cmd:"" help:"List every week."`
		Next   cli.WeekNextCmd   `cmd:"" help:"Move to the next week, creating it if needed."`
		Prev   cli.WeekPrevCmd   `cmd:"" help:"Move to the previous week."`
		Today  cli.WeekTodayCmd  `cmd:"" help:"Move to the week containing today or a given date."`
		Rename cli.WeekRenameCmd `cmd:"" help:"Give a week a custom name."`
	} `cmd:"" help:"Navigate and manage weeks."`
	Day struct {
		Show cli.DayShowCmd `cmd:"" help:"Show a day's tasks."`
	} `cmd:"" help:"Inspect days."`
	Task struct {
		Add     cli.TaskAddCmd     `cmd:"" help:"Add a task to a day."`
		Edit    cli.TaskEditCmd    `cmd:"" help:"Edit a task."`
		Status  cli.TaskStatusCmd  `cmd:"" help:"Set or cycle a task's status."`
		Delete  cli.TaskDeleteCmd  `cmd:"" help:"Delete a task."`
		List    cli.TaskListCmd    `cmd:"" help:"List tasks."`
		Show    cli.TaskShowCmd    `cmd:"" help:"Show a task."`
		History cli.TaskHistoryCmd `cmd:"" help:"Show a task's change history."`
	} `cmd:"" help:"Manage tasks."`
	Theme struct {
		Show   cli.ThemeShowCmd   `cmd:"" help:"Show the current theme." default:"1"`
		List   cli.ThemeListCmd   `cmd:"" help:"List available themes."`
		Set    cli.ThemeSetCmd    `cmd:"" help:"Select a theme."`
		Toggle cli.ThemeToggleCmd `cmd:"" help:"Switch between light and dark."`
		Color  cli.ThemeColorCmd  `cmd:"" help:"Set a custom color."`
		Reset  cli.ThemeResetCmd  `cmd:"" help:"Restore the default theme and colors."`
	} `cmd:"" help:"Manage the theme."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage storage backups."`
	Export cli.ExportCmd `cmd:"" help:"Export weeks and tasks as JSON, YAML or CSV."`
	Config struct {
		Show       cli.ConfigShowCmd `cmd:"" help:"Show effective settings." default:"1"`
		Set        cli.ConfigSetCmd  `cmd:"" help:"Change a setting."`
		Connection struct {
			Set    cli.ConnectionSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
			Get    cli.ConnectionGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
			Delete cli.ConnectionDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		} `cmd:"" help:"Manage the PostgreSQL connection string."`
	} `cmd:"" help:"Manage settings."`
}

func options() []kong.Option {
	return []kong.Option{
		kong.Name(constants.AppName),
		kong.Description("Weekly planner: weeks, days and tasks with change history"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":          constants.Version,
			"default_config":   constants.DefaultConfigPath,
			"default_settings": constants.DefaultSettingsPath,
		},
	}
}

func main() {
	var app CLI
	ctx := kong.Parse(&app, options()...)
	errors.Fatal(run(ctx, &app))
}

func run(ctx *kong.Context, app *CLI) error {
	// A missing .env file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(app.Settings)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{Debug: app.Debug, ConfigDir: filepath.Dir(app.Settings)}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}
	logger.Debug("Starting weeklit", "version", constants.Version, "command", ctx.Command())

	store, err := cli.OpenProvider(app.Storage)
	if err != nil {
		return err
	}
	if err := storage.Open(store); err != nil {
		return fmt.Errorf("failed to open storage %s: %w", app.Storage, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close storage", "error", err)
		}
	}()

	appCtx, err := cli.NewContext(store, cfg, app.Settings)
	if err != nil {
		return err
	}

	if ctx.Command() != "tui" {
		if pid, held := lock.Holder(appCtx.LockDir()); held {
			logger.Warn("Running while a TUI session holds the lock", "pid", pid)
			fmt.Fprintf(os.Stderr, "Warning: a weeklit session (pid %d) is open; it may overwrite these changes.\n", pid)
		}
	}

	return ctx.Run(appCtx)
}
