package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-travelboard/components/auth"
	dashboard "github.com/goliatone/go-travelboard/components/dashboard"
	"github.com/goliatone/go-travelboard/components/locale"
	"github.com/goliatone/go-travelboard/components/settings"
	"github.com/goliatone/go-travelboard/components/storage"
)

func newService(t *testing.T) *dashboard.Service {
	t.Helper()
	service := dashboard.NewService(dashboard.Options{
		OrderStore: dashboard.NewStorageOrderStore(storage.NewMemoryStore(), nil),
	})
	service.Mount(context.Background())
	return service
}

func TestReorderSectionsCommand(t *testing.T) {
	service := newService(t)
	telemetry := &stubTelemetry{}
	cmd := NewReorderSectionsCommand(service, telemetry)
	if err := cmd.Execute(context.Background(), ReorderSectionsInput{Source: "bookings", Target: "messages"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	got := service.Order().Strings()
	want := []string{"reviews", "messages", "bookings", "news"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
	if telemetry.calls != 1 {
		t.Fatalf("expected telemetry to record the command")
	}
}

func TestReorderSectionsCommandRejectsUnknownSection(t *testing.T) {
	cmd := NewReorderSectionsCommand(newService(t), nil)
	err := cmd.Execute(context.Background(), ReorderSectionsInput{Source: "bookings", Target: "weather"})
	if !errors.Is(err, dashboard.ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection, got %v", err)
	}
}

func TestReorderSectionsCommandRequiresService(t *testing.T) {
	cmd := NewReorderSectionsCommand(nil, nil)
	if err := cmd.Execute(context.Background(), ReorderSectionsInput{}); err == nil {
		t.Fatalf("expected error without service")
	}
}

func TestDragSectionCommandDropsOnTarget(t *testing.T) {
	service := newService(t)
	cmd := NewDragSectionCommand(service, nil)
	steps := []DragSectionInput{
		{Action: DragStart, Section: "news"},
		{Action: DragEnter, Section: "reviews"},
		{Action: DragLeave, Section: "reviews"},
		{Action: DragEnter, Section: "bookings"},
		{Action: DragDrop, Section: "bookings"},
	}
	for _, step := range steps {
		if err := cmd.Execute(context.Background(), step); err != nil {
			t.Fatalf("Execute(%+v) returned error: %v", step, err)
		}
	}
	if first := service.Order()[0]; first != dashboard.SectionNews {
		t.Fatalf("expected news first, got %s", first)
	}
	if _, idle := service.DragState().(dashboard.Idle); !idle {
		t.Fatalf("expected idle drag state after drop, got %T", service.DragState())
	}
}

func TestDragSectionCommandEndCancels(t *testing.T) {
	service := newService(t)
	cmd := NewDragSectionCommand(service, nil)
	ctx := context.Background()
	if err := cmd.Execute(ctx, DragSectionInput{Action: DragStart, Section: "news"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := cmd.Execute(ctx, DragSectionInput{Action: DragEnd}); err != nil {
		t.Fatalf("end: %v", err)
	}
	if err := cmd.Execute(ctx, DragSectionInput{Action: DragDrop, Section: "bookings"}); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if first := service.Order()[0]; first != dashboard.SectionBookings {
		t.Fatalf("expected unchanged order, got %v", service.Order())
	}
}

func TestDragSectionCommandUnknownAction(t *testing.T) {
	cmd := NewDragSectionCommand(newService(t), nil)
	err := cmd.Execute(context.Background(), DragSectionInput{Action: "hover"})
	if !errors.Is(err, ErrUnknownDragAction) {
		t.Fatalf("expected ErrUnknownDragAction, got %v", err)
	}
}

func TestDragSectionCommandUnknownSource(t *testing.T) {
	cmd := NewDragSectionCommand(newService(t), nil)
	err := cmd.Execute(context.Background(), DragSectionInput{Action: DragStart, Section: "weather"})
	if !errors.Is(err, dashboard.ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection, got %v", err)
	}
}

func TestRefreshSectionsCommand(t *testing.T) {
	hook := dashboard.NewBroadcastHook()
	service := dashboard.NewService(dashboard.Options{RefreshHook: hook})
	events, cancel := hook.Subscribe()
	defer cancel()

	cmd := NewRefreshSectionsCommand(service, nil)
	if err := cmd.Execute(context.Background(), RefreshSectionsInput{}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	event := <-events
	if event.Reason != "refresh" || len(event.Order) != 4 {
		t.Fatalf("unexpected refresh event %+v", event)
	}
}

func TestSavePreferencesCommand(t *testing.T) {
	store := storage.NewMemoryStore()
	catalog, err := locale.Embedded()
	if err != nil {
		t.Fatalf("Embedded: %v", err)
	}
	theme := settings.NewThemeService(store, nil)
	language := settings.NewLanguageService(store, catalog, nil)
	cmd := NewSavePreferencesCommand(theme, language, nil)
	if err := cmd.Execute(context.Background(), SavePreferencesInput{Theme: "dark", Language: "fr"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if theme.Current() != settings.ThemeDark {
		t.Fatalf("expected dark theme, got %s", theme.Current())
	}
	if language.Current() != "fr" {
		t.Fatalf("expected fr, got %s", language.Current())
	}
	if value, ok, _ := store.Get(context.Background(), storage.KeyTheme); !ok || value != "dark" {
		t.Fatalf("expected stored theme, got %q", value)
	}
}

func TestLoginCommand(t *testing.T) {
	service := &stubLogin{}
	cmd := NewLoginCommand(service, nil)
	if err := cmd.Execute(context.Background(), auth.Credentials{Email: "ada@example.com", Password: "secret"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.calls != 1 {
		t.Fatalf("expected login call")
	}
	service.err = auth.ErrMissingCredentials
	if err := cmd.Execute(context.Background(), auth.Credentials{}); !errors.Is(err, auth.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestLoginCommandRecordsFailure(t *testing.T) {
	telemetry := &stubTelemetry{}
	cmd := NewLoginCommand(&stubLogin{err: auth.ErrInvalidEmail}, telemetry)
	if err := cmd.Execute(context.Background(), auth.Credentials{Email: "nope", Password: "x"}); err == nil {
		t.Fatalf("expected login error")
	}
	if len(telemetry.events) != 1 || telemetry.events[0] != "dashboard.session.login.failed" {
		t.Fatalf("unexpected telemetry events %v", telemetry.events)
	}
}

func TestSignOutCommand(t *testing.T) {
	store := storage.NewMemoryStore()
	session := settings.NewSessionService(store, nil)
	ctx := context.Background()
	if err := session.SignIn(ctx, auth.Profile{ID: "u-1", Email: "ada@example.com"}); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if err := NewSignOutCommand(session, nil).Execute(ctx, SignOutInput{}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if _, ok := session.Current(); ok {
		t.Fatalf("expected signed out session")
	}
}

type stubLogin struct {
	calls int
	err   error
}

func (s *stubLogin) Login(_ context.Context, creds auth.Credentials) (auth.Profile, error) {
	s.calls++
	if s.err != nil {
		return auth.Profile{}, s.err
	}
	return auth.Profile{ID: "u-1", Email: creds.Email}, nil
}

type stubTelemetry struct {
	calls  int
	events []string
}

func (s *stubTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	s.calls++
	s.events = append(s.events, event)
}
