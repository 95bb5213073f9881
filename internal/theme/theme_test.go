package theme

import (
	"errors"
	"reflect"
	"testing"

	"github.com/julianstephens/weeklit/internal/constants"
	"github.com/julianstephens/weeklit/internal/storage"
)

func TestLoadDefaults(t *testing.T) {
	s := NewStore(storage.NewMemoryStore())
	s.Load("")

	if got := s.Current().ID; got != "light" {
		t.Errorf("Current() = %q, want light", got)
	}
	if !reflect.DeepEqual(s.Colors(), DefaultColors()) {
		t.Errorf("Colors() = %v, want defaults", s.Colors())
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		saved    string
		fallback string
		want     string
	}{
		{"saved theme wins", "blue", "dark", "blue"},
		{"unknown saved uses fallback", "neon", "green", "green"},
		{"nothing saved uses fallback", "", "purple", "purple"},
		{"unknown fallback is light", "", "neon", "light"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := storage.NewMemoryStore()
			if tt.saved != "" {
				_ = p.Set(constants.KeyUserTheme, tt.saved)
			}
			s := NewStore(p)
			s.Load(tt.fallback)
			if got := s.Current().ID; got != tt.want {
				t.Errorf("Current() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadMalformedColors(t *testing.T) {
	p := storage.NewMemoryStore()
	_ = p.Set(constants.KeyCustomColors, "{oops")

	s := NewStore(p)
	s.Load("light")
	if !reflect.DeepEqual(s.Colors(), DefaultColors()) {
		t.Errorf("Colors() = %v, want defaults kept", s.Colors())
	}
}

func TestSetTheme(t *testing.T) {
	p := storage.NewMemoryStore()
	s := NewStore(p)

	if err := s.SetTheme("dark"); err != nil {
		t.Fatalf("SetTheme(dark) failed: %v", err)
	}
	if !s.IsDark() {
		t.Error("IsDark() = false after SetTheme(dark)")
	}
	if saved, _ := p.Get(constants.KeyUserTheme); saved != "dark" {
		t.Errorf("saved theme = %q, want dark", saved)
	}

	if err := s.SetTheme("neon"); !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("SetTheme(neon) error = %v, want ErrUnknownTheme", err)
	}
	if got := s.Current().ID; got != "dark" {
		t.Errorf("Current() after failed set = %q, want dark", got)
	}
}

func TestToggle(t *testing.T) {
	tests := []struct {
		from string
		want string
	}{
		{"light", "dark"},
		{"dark", "light"},
		{"blue", "light"},
		{"purple", "light"},
	}

	for _, tt := range tests {
		t.Run(tt.from, func(t *testing.T) {
			s := NewStore(storage.NewMemoryStore())
			if err := s.SetTheme(tt.from); err != nil {
				t.Fatal(err)
			}
			got, err := s.Toggle()
			if err != nil {
				t.Fatalf("Toggle() failed: %v", err)
			}
			if got.ID != tt.want {
				t.Errorf("Toggle() from %s = %s, want %s", tt.from, got.ID, tt.want)
			}
		})
	}
}

func TestCustomColorsPersistAndReset(t *testing.T) {
	p := storage.NewMemoryStore()
	s := NewStore(p)

	if err := s.SetCustomColor(ColorPrimary, "#FF0000"); err != nil {
		t.Fatalf("SetCustomColor() failed: %v", err)
	}
	if err := s.SetCustomColor("accent", "#FF0000"); err == nil {
		t.Error("SetCustomColor(accent) succeeded, want error")
	}
	if err := s.SetCustomColor(ColorText, "red"); err == nil {
		t.Error("SetCustomColor(text, red) succeeded, want error")
	}

	reloaded := NewStore(p)
	reloaded.Load("light")
	if got := reloaded.Colors()[ColorPrimary]; got != "#FF0000" {
		t.Errorf("reloaded primary = %q, want #FF0000", got)
	}

	_ = reloaded.SetTheme("green")
	if err := reloaded.ResetToDefault(); err != nil {
		t.Fatalf("ResetToDefault() failed: %v", err)
	}
	if reloaded.Current().ID != "light" || !reflect.DeepEqual(reloaded.Colors(), DefaultColors()) {
		t.Errorf("after reset: theme %s colors %v", reloaded.Current().ID, reloaded.Colors())
	}
	if _, err := p.Get(constants.KeyCustomColors); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("custom colors still stored: %v", err)
	}
}
