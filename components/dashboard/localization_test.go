package dashboard

import (
	"context"
	"errors"
	"testing"
)

type stubTranslationService struct {
	value string
	err   error
}

func (s stubTranslationService) Translate(ctx context.Context, key, locale string, args map[string]any) (string, error) {
	return s.value, s.err
}

func TestSectionTitle(t *testing.T) {
	ctx := context.Background()
	if got := SectionTitle(ctx, stubTranslationService{value: "Mis reseñas"}, SectionReviews, "es"); got != "Mis reseñas" {
		t.Fatalf("expected translated title, got %q", got)
	}
	if got := SectionTitle(ctx, nil, SectionNews, "es"); got != "News" {
		t.Fatalf("expected title-cased fallback, got %q", got)
	}
}

func TestTranslateOrFallback(t *testing.T) {
	svc := stubTranslationService{value: "Mi panel"}
	out := translateOrFallback(context.Background(), svc, "dashboard.title", "es", "Dashboard", nil)
	if out != "Mi panel" {
		t.Fatalf("expected translator value, got %q", out)
	}
	svc = stubTranslationService{err: errors.New("boom")}
	out = translateOrFallback(context.Background(), svc, "dashboard.title", "es", "Dashboard", nil)
	if out != "Dashboard" {
		t.Fatalf("expected fallback on error, got %q", out)
	}
	if out := translateOrFallback(context.Background(), nil, "dashboard.title", "es", "", nil); out != "dashboard.title" {
		t.Fatalf("expected key as last resort, got %q", out)
	}
}
