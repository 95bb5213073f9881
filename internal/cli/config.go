package cli

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/julianstephens/weeklit/internal/config"
	"github.com/julianstephens/weeklit/internal/keyring"
	"github.com/julianstephens/weeklit/internal/storage/postgres"
)

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	ctx.printf("settings file: %s\n", ctx.SettingsPath)
	ctx.printf("storage:       %s\n", maskPassword(ctx.Provider.GetConfigPath()))
	ctx.printf("timezone:      %s\n", cfg.Timezone)
	ctx.printf("user:          %s\n", cfg.User)
	ctx.printf("backups.max:   %d\n", cfg.Backups.Max)
	ctx.printf("backups.auto:  %t\n", cfg.Backups.Auto)
	ctx.printf("ui.theme:      %s\n", cfg.UI.Theme)
	return nil
}

type ConfigSetCmd struct {
	Key   string `arg:"" help:"Setting name (timezone, user, backups.max, backups.auto, ui.theme)."`
	Value string `arg:"" help:"New value."`
}

func (c *ConfigSetCmd) Run(ctx *Context) error {
	if err := config.Set(ctx.SettingsPath, c.Key, c.Value); err != nil {
		return err
	}
	ctx.printf("Set %s = %s in %s\n", c.Key, c.Value, ctx.SettingsPath)
	return nil
}

// ConnectionSetCmd stores a PostgreSQL connection string in the OS keyring.
type ConnectionSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in the keyring."`
}

func (c *ConnectionSetCmd) Run(ctx *Context) error {
	if !postgres.IsConnString(c.ConnectionString) {
		return errors.New("connection string must start with postgres:// or postgresql://")
	}
	if _, err := postgres.ValidateConnString(c.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// The keyring is encrypted, so embedded passwords are allowed here.
		ctx.println("Warning: connection string contains embedded credentials; storing it in the OS keyring.")
	}
	if err := keyring.SetConnectionString(c.ConnectionString); err != nil {
		return err
	}
	ctx.println("Connection string stored in OS keyring")
	ctx.println("Use --config postgres to connect with it")
	return nil
}

type ConnectionGetCmd struct{}

func (c *ConnectionGetCmd) Run(ctx *Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring; use 'weeklit config connection set'")
		}
		return err
	}
	ctx.println(maskPassword(connStr))
	return nil
}

type ConnectionDeleteCmd struct{}

func (c *ConnectionDeleteCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	ctx.println("Connection string removed from OS keyring")
	return nil
}

// maskPassword hides the password of a URL-style connection string. Other
// strings are returned unchanged.
func maskPassword(connStr string) string {
	if !postgres.IsConnString(connStr) {
		return connStr
	}
	u, err := url.Parse(connStr)
	if err != nil {
		return connStr
	}
	return u.Redacted()
}
