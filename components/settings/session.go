package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-travelboard/components/auth"
	"github.com/goliatone/go-travelboard/components/storage"
)

// ErrInvalidProfile is returned when signing in a profile without an id.
var ErrInvalidProfile = errors.New("settings: profile id is required")

// SessionService keeps the signed-in profile.
type SessionService struct {
	store     storage.Store
	telemetry Telemetry

	mu      sync.RWMutex
	profile *auth.Profile
}

var _ auth.Session = (*SessionService)(nil)

// NewSessionService starts signed out until Load runs.
func NewSessionService(store storage.Store, telemetry Telemetry) *SessionService {
	if store == nil {
		store = storage.NewMemoryStore()
	}
	return &SessionService{store: store, telemetry: normalizeTelemetry(telemetry)}
}

// Load restores the stored profile. Corrupted values sign the viewer out.
func (s *SessionService) Load(ctx context.Context) (auth.Profile, bool) {
	var profile auth.Profile
	ok, err := storage.GetJSON(ctx, s.store, storage.KeyUser, &profile)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil || !ok || profile.ID == "" {
		s.profile = nil
		return auth.Profile{}, false
	}
	s.profile = &profile
	return profile, true
}

// Current returns the signed-in profile.
func (s *SessionService) Current() (auth.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return auth.Profile{}, false
	}
	return *s.profile, true
}

// SignIn stores profile as the active session.
func (s *SessionService) SignIn(ctx context.Context, profile auth.Profile) error {
	if profile.ID == "" {
		return ErrInvalidProfile
	}
	s.mu.Lock()
	s.profile = &profile
	s.mu.Unlock()
	if err := storage.SetJSON(ctx, s.store, storage.KeyUser, profile); err != nil {
		s.telemetry.Record(ctx, "settings.persist_error", map[string]any{"key": storage.KeyUser, "error": err.Error()})
	}
	return nil
}

// SignOut clears the session.
func (s *SessionService) SignOut(ctx context.Context) error {
	s.mu.Lock()
	s.profile = nil
	s.mu.Unlock()
	if err := s.store.Delete(ctx, storage.KeyUser); err != nil {
		return fmt.Errorf("settings: sign out: %w", err)
	}
	return nil
}
