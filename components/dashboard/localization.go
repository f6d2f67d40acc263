package dashboard

import (
	"context"

	"github.com/ettle/strcase"
)

// TranslationService resolves UI strings. locale.Translator satisfies it.
type TranslationService interface {
	Translate(ctx context.Context, key, locale string, args map[string]any) (string, error)
}

// SectionTitle returns the localized card heading for section, falling back to
// a title-cased identifier.
func SectionTitle(ctx context.Context, svc TranslationService, section Section, locale string) string {
	fallback := strcase.ToCase(string(section), strcase.TitleCase, ' ')
	return translateOrFallback(ctx, svc, "dashboard.sections."+string(section), locale, fallback, nil)
}

func translateOrFallback(ctx context.Context, svc TranslationService, key, locale, fallback string, params map[string]any) string {
	if svc != nil {
		if translated, err := svc.Translate(ctx, key, locale, params); err == nil && translated != "" {
			return translated
		}
	}
	if fallback != "" {
		return fallback
	}
	return key
}
