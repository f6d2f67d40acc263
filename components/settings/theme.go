package settings

import (
	"context"
	"strings"
	"sync"

	"github.com/goliatone/go-travelboard/components/storage"
)

// Theme is the colour scheme.
type Theme string

// Themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(value string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(value))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	}
	return "", false
}

// ThemeService owns the theme flag.
type ThemeService struct {
	store     storage.Store
	telemetry Telemetry

	mu    sync.RWMutex
	theme Theme
}

// NewThemeService starts in light mode until Load runs.
func NewThemeService(store storage.Store, telemetry Telemetry) *ThemeService {
	if store == nil {
		store = storage.NewMemoryStore()
	}
	return &ThemeService{store: store, telemetry: normalizeTelemetry(telemetry), theme: ThemeLight}
}

// Load reads the persisted flag. Missing or invalid values keep light.
func (s *ThemeService) Load(ctx context.Context) Theme {
	theme := ThemeLight
	if raw, ok, err := s.store.Get(ctx, storage.KeyTheme); err == nil && ok {
		if parsed, valid := ParseTheme(raw); valid {
			theme = parsed
		}
	}
	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()
	return theme
}

// Current returns the active theme.
func (s *ThemeService) Current() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Set switches the theme and persists it. Unknown values are ignored.
func (s *ThemeService) Set(ctx context.Context, value string) Theme {
	theme, ok := ParseTheme(value)
	if !ok {
		return s.Current()
	}
	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()
	persist(ctx, s.store, s.telemetry, storage.KeyTheme, string(theme))
	return theme
}

// Toggle flips between light and dark.
func (s *ThemeService) Toggle(ctx context.Context) Theme {
	next := ThemeDark
	if s.Current() == ThemeDark {
		next = ThemeLight
	}
	return s.Set(ctx, string(next))
}

func persist(ctx context.Context, store storage.Store, telemetry Telemetry, key, value string) {
	if err := store.Set(ctx, key, value); err != nil {
		telemetry.Record(ctx, "settings.persist_error", map[string]any{"key": key, "error": err.Error()})
	}
}
