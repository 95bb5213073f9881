package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/weeklit/internal/backup"
	"github.com/julianstephens/weeklit/internal/config"
	"github.com/julianstephens/weeklit/internal/constants"
	"github.com/julianstephens/weeklit/internal/keyring"
	"github.com/julianstephens/weeklit/internal/logger"
	"github.com/julianstephens/weeklit/internal/storage"
	"github.com/julianstephens/weeklit/internal/storage/postgres"
	"github.com/julianstephens/weeklit/internal/storage/sqlite"
	"github.com/julianstephens/weeklit/internal/theme"
	"github.com/julianstephens/weeklit/internal/todo"
	"github.com/julianstephens/weeklit/internal/utils"
)

// ErrNoBackups is returned by backup commands for stores that have no file
// to copy.
var ErrNoBackups = errors.New("backups are only supported for SQLite and JSON stores")

type Context struct {
	Provider     storage.Provider
	Todo         *todo.Store
	Theme        *theme.Store
	Config       *config.Config
	SettingsPath string
	Location     *time.Location
	In           io.Reader
	Out          io.Writer

	now      func() time.Time
	todoOpts []todo.Option
}

// ContextOption configures NewContext.
type ContextOption func(*Context)

// WithClock replaces time.Now for the context and its todo store.
func WithClock(now func() time.Time) ContextOption {
	return func(c *Context) {
		c.now = now
		c.todoOpts = append(c.todoOpts, todo.WithClock(now))
	}
}

// WithIO redirects prompts and command output, which default to stdin and
// stdout.
func WithIO(in io.Reader, out io.Writer) ContextOption {
	return func(c *Context) {
		c.In = in
		c.Out = out
	}
}

// NewContext builds the todo and theme stores over an opened provider.
func NewContext(p storage.Provider, cfg *config.Config, settingsPath string, opts ...ContextOption) (*Context, error) {
	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	ctx := &Context{
		Provider:     p,
		Config:       cfg,
		SettingsPath: settingsPath,
		Location:     loc,
		In:           os.Stdin,
		Out:          os.Stdout,
		now:          time.Now,
		todoOpts:     []todo.Option{todo.WithUser(cfg.User), todo.WithLocation(loc)},
	}
	for _, opt := range opts {
		opt(ctx)
	}
	if err := ctx.resetTodo(); err != nil {
		return nil, err
	}

	ctx.Theme = theme.NewStore(p)
	ctx.Theme.Load(cfg.UI.Theme)
	return ctx, nil
}

// resetTodo rebuilds the todo store from whatever the provider holds.
func (c *Context) resetTodo() error {
	c.Todo = todo.New(c.Provider, c.todoOpts...)
	return c.Todo.Initialize()
}

func (c *Context) today() time.Time {
	return c.now().In(c.Location)
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// OpenProvider picks a storage backend for the --config value:
//
//	:memory:               process-local map
//	*.json                 JSON file
//	postgres               connection string from env or keyring
//	postgres://...         connection string without credentials
//	anything else          SQLite database file
func OpenProvider(path string) (storage.Provider, error) {
	switch {
	case path == constants.MemoryStorePath:
		return storage.NewMemoryStore(), nil
	case path == "postgres" || path == "postgresql":
		connStr, err := keyring.ResolveConnectionString()
		if err != nil {
			return nil, err
		}
		return postgres.New(connStr), nil
	case postgres.IsConnString(path):
		if _, err := postgres.ValidateConnString(path); err != nil {
			return nil, err
		}
		return postgres.New(path), nil
	}

	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(expanded), ".json") {
		return storage.NewJSONStore(expanded), nil
	}
	return sqlite.NewStore(expanded), nil
}

// BackupManager returns a manager for file-backed providers.
func (c *Context) BackupManager() (*backup.Manager, error) {
	switch c.Provider.(type) {
	case *sqlite.Store, *storage.JSONStore:
		return backup.NewManager(c.Provider.GetConfigPath(), c.Config.Backups.Max), nil
	}
	return nil, ErrNoBackups
}

// PerformAutomaticBackup creates a backup when backups.auto is on and
// only logs failures.
func (c *Context) PerformAutomaticBackup() {
	if !c.Config.Backups.Auto {
		return
	}
	mgr, err := c.BackupManager()
	if err != nil {
		logger.Debug("Skipping automatic backup", "reason", err)
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
