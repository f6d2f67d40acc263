package settings

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-travelboard/components/locale"
	"github.com/goliatone/go-travelboard/components/storage"
)

// LanguageService owns the active locale tag.
type LanguageService struct {
	store     storage.Store
	catalog   *locale.Catalog
	telemetry Telemetry

	mu       sync.RWMutex
	fallback string
	language string
}

// NewLanguageService starts with locale.DefaultLocale until Load runs. A nil
// catalog uses the embedded dictionaries.
func NewLanguageService(store storage.Store, catalog *locale.Catalog, telemetry Telemetry) *LanguageService {
	if store == nil {
		store = storage.NewMemoryStore()
	}
	if catalog == nil {
		catalog, _ = locale.Embedded()
	}
	return &LanguageService{
		store:     store,
		catalog:   catalog,
		telemetry: normalizeTelemetry(telemetry),
		fallback:  locale.DefaultLocale,
		language:  locale.DefaultLocale,
	}
}

// WithFallback replaces the tag used when nothing valid is persisted.
// Unsupported tags leave the fallback unchanged.
func (s *LanguageService) WithFallback(tag string) *LanguageService {
	if tag, ok := exactTag(tag); ok {
		s.mu.Lock()
		s.fallback = tag
		s.language = tag
		s.mu.Unlock()
	}
	return s
}

// Load reads the persisted tag; anything but a shipped tag yields the fallback.
func (s *LanguageService) Load(ctx context.Context) string {
	s.mu.RLock()
	language := s.fallback
	s.mu.RUnlock()
	if raw, ok, err := s.store.Get(ctx, storage.KeyLanguage); err == nil && ok {
		if tag, valid := exactTag(raw); valid {
			language = tag
		}
	}
	s.mu.Lock()
	s.language = language
	s.mu.Unlock()
	return language
}

// Current returns the active tag.
func (s *LanguageService) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

// Set switches the language and persists it. Region tags are reduced to a
// shipped tag; unsupported values are ignored.
func (s *LanguageService) Set(ctx context.Context, tag string) string {
	if !locale.Supported(tag) {
		return s.Current()
	}
	tag = locale.Normalize(tag)
	s.mu.Lock()
	s.language = tag
	s.mu.Unlock()
	persist(ctx, s.store, s.telemetry, storage.KeyLanguage, tag)
	return tag
}

// T translates key in the active language.
func (s *LanguageService) T(key string) string {
	return s.catalog.Translate(s.Current(), key)
}

func exactTag(raw string) (string, bool) {
	tag := strings.ToLower(strings.TrimSpace(raw))
	return tag, slices.Contains(locale.Locales(), tag)
}
