// Package locale resolves dot-path translation keys across the four shipped
// dictionaries with a fixed fallback chain: exact locale, base language,
// DefaultLocale, then the raw key.
package locale

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"
)

// DefaultLocale is the last dictionary consulted before giving up.
const DefaultLocale = "en"

var supportedLocales = []string{"en", "es", "fr", "de"}

// ErrMissingKey is returned by Translator when no dictionary has the key.
var ErrMissingKey = errors.New("locale: missing translation")

//go:embed locales/*.json
var embeddedLocales embed.FS

// Locales lists the shipped locale tags.
func Locales() []string {
	return slices.Clone(supportedLocales)
}

// Supported reports whether locale (or its base language) has a dictionary.
func Supported(locale string) bool {
	for _, candidate := range candidates(locale) {
		if slices.Contains(supportedLocales, candidate) {
			return true
		}
	}
	return false
}

// Normalize maps locale to a shipped tag, falling back to DefaultLocale.
func Normalize(locale string) string {
	for _, candidate := range candidates(locale) {
		if slices.Contains(supportedLocales, candidate) {
			return candidate
		}
	}
	return DefaultLocale
}

// Catalog holds flattened dictionaries keyed by locale then dot-path.
type Catalog struct {
	dicts map[string]map[string]string
}

var (
	embeddedOnce sync.Once
	embedded     *Catalog
	embeddedErr  error
)

// Embedded returns the dictionaries compiled into the binary.
func Embedded() (*Catalog, error) {
	embeddedOnce.Do(func() {
		embedded, embeddedErr = Load(embeddedLocales, "locales")
	})
	return embedded, embeddedErr
}

// Translate resolves key with the embedded dictionaries.
func Translate(locale, key string) string {
	c, err := Embedded()
	if err != nil {
		return key
	}
	return c.Translate(locale, key)
}

// Load reads <dir>/<locale>.json for every shipped locale. The default
// dictionary is required; the others are optional.
func Load(fsys fs.FS, dir string) (*Catalog, error) {
	c := &Catalog{dicts: make(map[string]map[string]string, len(supportedLocales))}
	for _, tag := range supportedLocales {
		raw, err := fs.ReadFile(fsys, path.Join(dir, tag+".json"))
		if err != nil {
			if tag == DefaultLocale {
				return nil, fmt.Errorf("locale: read %s: %w", tag, err)
			}
			continue
		}
		var tree map[string]any
		if err := json.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("locale: decode %s: %w", tag, err)
		}
		flat := make(map[string]string)
		flatten("", tree, flat)
		c.dicts[tag] = flat
	}
	return c, nil
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for key, value := range tree {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[full] = v
		case map[string]any:
			flatten(full, v, out)
		}
	}
}

// Lookup resolves key through the fallback chain and reports whether any
// dictionary had it.
func (c *Catalog) Lookup(locale, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	for _, candidate := range append(candidates(locale), DefaultLocale) {
		if value, ok := c.dicts[candidate][key]; ok && value != "" {
			return value, true
		}
	}
	return "", false
}

// Translate resolves key, returning the key itself when nothing matches.
func (c *Catalog) Translate(locale, key string) string {
	if value, ok := c.Lookup(locale, key); ok {
		return value
	}
	return key
}

// Keys returns the dot-paths known for locale, sorted.
func (c *Catalog) Keys(locale string) []string {
	dict := c.dicts[Normalize(locale)]
	keys := make([]string, 0, len(dict))
	for key := range dict {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Translator adapts a Catalog to context-aware callers and fills {name}
// placeholders from args.
type Translator struct {
	Catalog *Catalog
}

// Translate resolves key for locale. Missing keys return ErrMissingKey
// together with the raw key.
func (t Translator) Translate(_ context.Context, key, locale string, args map[string]any) (string, error) {
	value, ok := t.Catalog.Lookup(locale, key)
	if !ok {
		return key, fmt.Errorf("%w: %s", ErrMissingKey, key)
	}
	return Interpolate(value, args), nil
}

// Interpolate replaces {name} placeholders with values from args.
func Interpolate(value string, args map[string]any) string {
	if len(args) == 0 || !strings.Contains(value, "{") {
		return value
	}
	pairs := make([]string, 0, len(args)*2)
	for name, arg := range args {
		pairs = append(pairs, "{"+name+"}", fmt.Sprint(arg))
	}
	return strings.NewReplacer(pairs...).Replace(value)
}

func candidates(locale string) []string {
	locale = strings.ReplaceAll(strings.TrimSpace(strings.ToLower(locale)), "_", "-")
	if locale == "" {
		return nil
	}
	out := []string{locale}
	if idx := strings.Index(locale, "-"); idx > 0 {
		out = append(out, locale[:idx])
	}
	return out
}
