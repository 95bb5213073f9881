package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/weeklit/internal/constants"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Timezone != constants.DefaultTimezone {
		t.Errorf("Timezone = %q, want %q", cfg.Timezone, constants.DefaultTimezone)
	}
	if cfg.Backups.Max != constants.MaxBackups || cfg.Backups.Auto != constants.DefaultBackupsAuto {
		t.Errorf("Backups = %+v", cfg.Backups)
	}
	if cfg.UI.Theme != constants.DefaultTheme {
		t.Errorf("UI.Theme = %q, want %q", cfg.UI.Theme, constants.DefaultTheme)
	}
	if cfg.User == "" {
		t.Error("User is empty, want OS user or fallback")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "timezone: UTC\nuser: alex\nbackups:\n  max: 3\n  auto: false\nui:\n  theme: dark\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	want := Config{Timezone: "UTC", User: "alex", Backups: BackupsConfig{Max: 3, Auto: false}, UI: UIConfig{Theme: "dark"}}
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("WEEKLIT_TIMEZONE", "Europe/Berlin")
	t.Setenv("WEEKLIT_BACKUPS_MAX", "5")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone = %q, want Europe/Berlin", cfg.Timezone)
	}
	if cfg.Backups.Max != 5 {
		t.Errorf("Backups.Max = %d, want 5", cfg.Backups.Max)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad timezone", "timezone: Mars/Olympus\n"},
		{"zero backups", "backups:\n  max: 0\n"},
		{"bad yaml", "timezone: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() succeeded, want error")
			}
		})
	}
}

func TestSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	if err := Set(path, constants.SettingUITheme, "blue"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := Set(path, constants.SettingBackupsMax, "7"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.Theme != "blue" || cfg.Backups.Max != 7 {
		t.Errorf("after Set: %+v", cfg)
	}

	if err := Set(path, "colour", "red"); err == nil {
		t.Error("Set(unknown key) succeeded, want error")
	}
	if err := Set(path, constants.SettingTimezone, "Nowhere/Land"); err == nil {
		t.Error("Set(invalid timezone) succeeded, want error")
	}
}
