// Package config reads and writes the YAML settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/julianstephens/weeklit/internal/constants"
	"github.com/julianstephens/weeklit/internal/utils"
)

type BackupsConfig struct {
	Max  int  `mapstructure:"max" yaml:"max"`
	Auto bool `mapstructure:"auto" yaml:"auto"`
}

type UIConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

type Config struct {
	Timezone string        `mapstructure:"timezone" yaml:"timezone"`
	User     string        `mapstructure:"user" yaml:"user"`
	Backups  BackupsConfig `mapstructure:"backups" yaml:"backups"`
	UI       UIConfig      `mapstructure:"ui" yaml:"ui"`
}

// Keys lists every setting accepted by Set.
var Keys = []string{
	constants.SettingTimezone,
	constants.SettingUser,
	constants.SettingBackupsMax,
	constants.SettingBackupsAuto,
	constants.SettingUITheme,
}

func defaultUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return constants.DefaultUser
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault(constants.SettingTimezone, constants.DefaultTimezone)
	v.SetDefault(constants.SettingUser, defaultUser())
	v.SetDefault(constants.SettingBackupsMax, constants.MaxBackups)
	v.SetDefault(constants.SettingBackupsAuto, constants.DefaultBackupsAuto)
	v.SetDefault(constants.SettingUITheme, constants.DefaultTheme)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func read(v *viper.Viper, path string) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	return nil
}

// Load reads path, applying defaults for missing keys and WEEKLIT_*
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	v := newViper(path)
	if err := read(v, path); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("unknown timezone %q", c.Timezone)
	}
	if c.Backups.Max < 1 {
		return fmt.Errorf("backups.max must be at least 1, got %d", c.Backups.Max)
	}
	return nil
}

// Set writes a single key to the file at path, keeping the other keys.
func Set(path, key, value string) error {
	known := false
	for _, k := range Keys {
		if k == key {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys, ", "))
	}

	v := newViper(path)
	if err := read(v, path); err != nil {
		return err
	}
	v.Set(key, value)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	return Save(path, cfg)
}

// Save writes cfg to path, creating parent directories if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set(constants.SettingTimezone, cfg.Timezone)
	v.Set(constants.SettingUser, cfg.User)
	v.Set(constants.SettingBackupsMax, cfg.Backups.Max)
	v.Set(constants.SettingBackupsAuto, cfg.Backups.Auto)
	v.Set(constants.SettingUITheme, cfg.UI.Theme)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
