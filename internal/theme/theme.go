// Package theme persists the selected color theme and custom colors.
package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/julianstephens/weeklit/internal/constants"
	"github.com/julianstephens/weeklit/internal/logger"
	"github.com/julianstephens/weeklit/internal/storage"
)

type Theme struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Preview     string `json:"preview" yaml:"preview"`
	Description string `json:"description" yaml:"description"`
}

var Available = []Theme{
	{ID: "light", Name: "Light", Preview: "#FFFFFF", Description: "Clean and bright"},
	{ID: "dark", Name: "Dark", Preview: "#1F2937", Description: "Easy on the eyes"},
	{ID: "blue", Name: "Ocean Blue", Preview: "#EFF6FF", Description: "Calm and focused"},
	{ID: "green", Name: "Forest Green", Preview: "#ECFDF5", Description: "Natural and fresh"},
	{ID: "purple", Name: "Royal Purple", Preview: "#F3E8FF", Description: "Creative and unique"},
}

// Color kinds accepted by SetCustomColor.
const (
	ColorPrimary    = "primary"
	ColorBackground = "background"
	ColorText       = "text"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ErrUnknownTheme is returned by SetTheme for ids not in Available.
var ErrUnknownTheme = errors.New("unknown theme")

// DefaultColors returns a fresh copy of the default custom colors.
func DefaultColors() map[string]string {
	return map[string]string{
		ColorPrimary:    "#3B82F6",
		ColorBackground: "#FFFFFF",
		ColorText:       "#1F2937",
	}
}

// Lookup finds a theme by id.
func Lookup(id string) (Theme, bool) {
	for _, t := range Available {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}

// Store holds the current theme. It shares a Provider with the todo data
// but uses its own keys.
type Store struct {
	mu       sync.Mutex
	provider storage.Provider
	current  string
	colors   map[string]string
}

func NewStore(p storage.Provider) *Store {
	return &Store{
		provider: p,
		current:  constants.DefaultTheme,
		colors:   DefaultColors(),
	}
}

// Load reads the saved theme and colors. fallback is used when no valid
// theme is saved; an unknown fallback means light.
func (s *Store) Load(fallback string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := Lookup(fallback); !ok {
		fallback = constants.DefaultTheme
	}
	s.current = fallback
	s.colors = DefaultColors()

	saved, err := s.provider.Get(constants.KeyUserTheme)
	switch {
	case err == nil:
		if _, ok := Lookup(saved); ok {
			s.current = saved
		} else {
			logger.Warn("Ignoring unknown saved theme", "theme", saved)
		}
	case !errors.Is(err, storage.ErrNotFound):
		logger.Warn("Failed to read saved theme", "key", constants.KeyUserTheme, "error", err)
	}

	raw, err := s.provider.Get(constants.KeyCustomColors)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to read custom colors", "key", constants.KeyCustomColors, "error", err)
		}
		return
	}
	var colors map[string]string
	if err := json.Unmarshal([]byte(raw), &colors); err != nil {
		logger.Error("Failed to load custom colors", "key", constants.KeyCustomColors, "error", err)
		return
	}
	for k, v := range colors {
		s.colors[k] = v
	}
}

func (s *Store) Current() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, _ := Lookup(s.current)
	return t
}

func (s *Store) IsDark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current == "dark"
}

// Colors returns a copy of the custom colors.
func (s *Store) Colors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.colors))
	for k, v := range s.colors {
		out[k] = v
	}
	return out
}

func (s *Store) SetTheme(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setTheme(id)
}

func (s *Store) setTheme(id string) error {
	if _, ok := Lookup(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTheme, id)
	}
	s.current = id
	logger.Debug("Theme changed", "theme", id)

	if err := s.provider.Set(constants.KeyUserTheme, id); err != nil {
		logger.Error("Failed to save theme", "key", constants.KeyUserTheme, "error", err)
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// Toggle switches light to dark, and anything else to light.
func (s *Store) Toggle() (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := "light"
	if s.current == "light" {
		next = "dark"
	}
	if err := s.setTheme(next); err != nil {
		return Theme{}, err
	}
	t, _ := Lookup(next)
	return t, nil
}

// SetCustomColor sets one of the primary, background or text colors to a
// #RRGGBB value.
func (s *Store) SetCustomColor(kind, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := DefaultColors()[kind]; !ok {
		return fmt.Errorf("unknown color %q (want primary, background or text)", kind)
	}
	if !hexColor.MatchString(value) {
		return fmt.Errorf("invalid color %q: want #RRGGBB", value)
	}
	s.colors[kind] = value

	data, err := json.Marshal(s.colors)
	if err != nil {
		return fmt.Errorf("failed to encode colors: %w", err)
	}
	if err := s.provider.Set(constants.KeyCustomColors, string(data)); err != nil {
		logger.Error("Failed to save custom colors", "key", constants.KeyCustomColors, "error", err)
		return fmt.Errorf("failed to save custom colors: %w", err)
	}
	return nil
}

// ResetToDefault selects light and discards custom colors.
func (s *Store) ResetToDefault() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.setTheme(constants.DefaultTheme); err != nil {
		return err
	}
	s.colors = DefaultColors()

	if err := s.provider.Delete(constants.KeyCustomColors); err != nil {
		return fmt.Errorf("failed to remove custom colors: %w", err)
	}
	return nil
}
