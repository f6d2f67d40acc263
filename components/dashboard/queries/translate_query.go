package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-travelboard/components/dashboard"
)

// TranslateInput asks for one UI string.
type TranslateInput struct {
	Locale string         `json:"locale"`
	Key    string         `json:"key"`
	Args   map[string]any `json:"args,omitempty"`
}

// TranslateResult is the resolved string.
type TranslateResult struct {
	Locale string `json:"locale"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// TranslateQuery resolves UI strings through a translation service.
type TranslateQuery struct {
	service dashboard.TranslationService
}

// NewTranslateQuery builds the query.
func NewTranslateQuery(service dashboard.TranslationService) *TranslateQuery {
	return &TranslateQuery{service: service}
}

var _ gocommand.Querier[TranslateInput, TranslateResult] = (*TranslateQuery)(nil)

// Query translates the key. A missing translation returns the key itself
// alongside the lookup error.
func (q *TranslateQuery) Query(ctx context.Context, input TranslateInput) (TranslateResult, error) {
	result := TranslateResult{Locale: input.Locale, Key: input.Key, Value: input.Key}
	if q.service == nil {
		return result, nil
	}
	value, err := q.service.Translate(ctx, input.Key, input.Locale, input.Args)
	if err != nil {
		return result, err
	}
	result.Value = value
	return result, nil
}
