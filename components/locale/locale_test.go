package locale

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateFallbackChain(t *testing.T) {
	assert.Equal(t, "Mis reseñas", Translate("es", "dashboard.sections.reviews"))
	assert.Equal(t, "Mis reseñas", Translate("es-MX", "dashboard.sections.reviews"))
	assert.Equal(t, "Mis reseñas", Translate("es_mx", "dashboard.sections.reviews"))
	assert.Equal(t, "Drag cards to reorder your dashboard", Translate("de", "dashboard.dragHint"))
	assert.Equal(t, "My reviews", Translate("pt-BR", "dashboard.sections.reviews"))
	assert.Equal(t, "My reviews", Translate("", "dashboard.sections.reviews"))
	assert.Equal(t, "dashboard.unknown", Translate("fr", "dashboard.unknown"))
	assert.Equal(t, "dashboard.sections", Translate("en", "dashboard.sections"))
}

func TestSupportedAndNormalize(t *testing.T) {
	assert.True(t, Supported("fr"))
	assert.True(t, Supported("DE-at"))
	assert.False(t, Supported("pt"))
	assert.Equal(t, "de", Normalize("de-AT"))
	assert.Equal(t, DefaultLocale, Normalize("pt"))
	assert.Equal(t, []string{"en", "es", "fr", "de"}, Locales())
}

func TestDictionariesShareKeys(t *testing.T) {
	c, err := Embedded()
	require.NoError(t, err)
	en := c.Keys("en")
	require.NotEmpty(t, en)
	for _, tag := range []string{"es", "fr"} {
		assert.Equal(t, en, c.Keys(tag), tag)
	}
}

func TestTranslatorInterpolates(t *testing.T) {
	c, err := Embedded()
	require.NoError(t, err)
	tr := Translator{Catalog: c}

	got, err := tr.Translate(context.Background(), "pagination.page", "fr", map[string]any{"page": 2, "pages": 3})
	require.NoError(t, err)
	assert.Equal(t, "Page 2 sur 3", got)

	got, err = tr.Translate(context.Background(), "missing.key", "fr", nil)
	assert.True(t, errors.Is(err, ErrMissingKey))
	assert.Equal(t, "missing.key", got)
}

func TestLoadRequiresDefaultDictionary(t *testing.T) {
	_, err := Load(fstest.MapFS{"l/es.json": {Data: []byte(`{"a":"b"}`)}}, "l")
	assert.Error(t, err)

	c, err := Load(fstest.MapFS{"l/en.json": {Data: []byte(`{"a":{"b":"c"}}`)}}, "l")
	require.NoError(t, err)
	assert.Equal(t, "c", c.Translate("es", "a.b"))
}
