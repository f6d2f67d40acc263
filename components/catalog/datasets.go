package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed data/*.json
var embeddedData embed.FS

//go:embed schemas/*.json
var embeddedSchemas embed.FS

var (
	// ErrInvalidDataset is returned when a dataset fails schema validation.
	ErrInvalidDataset = errors.New("catalog: invalid dataset")
	// ErrDuplicateID is returned when a dataset repeats an identifier.
	ErrDuplicateID = errors.New("catalog: duplicate id")
)

// Dataset names double as file names under data/ and schemas/.
const (
	DatasetBookings     = "bookings"
	DatasetTransactions = "transactions"
	DatasetCities       = "cities"
	DatasetMessages     = "messages"
	DatasetPosts        = "posts"
)

// Catalog is the read-only set of records the dashboard is built from.
type Catalog struct {
	Bookings     []Booking
	Transactions []Transaction
	Cities       []City
	Messages     []Message
	Posts        []Post
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog, decoding it once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load(embeddedData)
	})
	return defaultCatalog, defaultErr
}

// Load decodes and validates every dataset from fsys. Files are expected at
// data/<dataset>.json.
func Load(fsys fs.FS) (*Catalog, error) {
	loader, err := newSchemaLoader()
	if err != nil {
		return nil, err
	}
	c := &Catalog{}
	if err := loader.decode(fsys, DatasetBookings, &c.Bookings); err != nil {
		return nil, err
	}
	if err := loader.decode(fsys, DatasetTransactions, &c.Transactions); err != nil {
		return nil, err
	}
	if err := loader.decode(fsys, DatasetCities, &c.Cities); err != nil {
		return nil, err
	}
	if err := loader.decode(fsys, DatasetMessages, &c.Messages); err != nil {
		return nil, err
	}
	if err := loader.decode(fsys, DatasetPosts, &c.Posts); err != nil {
		return nil, err
	}

	checks := []error{
		uniqueIDs(DatasetBookings, c.Bookings, func(b Booking) string { return b.ID }),
		uniqueIDs(DatasetTransactions, c.Transactions, func(t Transaction) string { return t.ID }),
		uniqueIDs(DatasetCities, c.Cities, func(city City) string { return city.ID }),
		uniqueIDs(DatasetMessages, c.Messages, func(m Message) string { return m.ID }),
		uniqueIDs(DatasetPosts, c.Posts, func(p Post) string { return p.ID }),
	}
	if err := errors.Join(checks...); err != nil {
		return nil, err
	}
	return c, nil
}

type schemaLoader struct {
	schemas map[string]*jsonschema.Schema
}

func newSchemaLoader() (*schemaLoader, error) {
	compiler := jsonschema.NewCompiler()
	names := []string{DatasetBookings, DatasetTransactions, DatasetCities, DatasetMessages, DatasetPosts}
	for _, name := range names {
		raw, err := embeddedSchemas.ReadFile(path.Join("schemas", name+".json"))
		if err != nil {
			return nil, fmt.Errorf("catalog: read %s schema: %w", name, err)
		}
		if err := compiler.AddResource(name+".json", bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("catalog: load %s schema: %w", name, err)
		}
	}
	loader := &schemaLoader{schemas: make(map[string]*jsonschema.Schema, len(names))}
	for _, name := range names {
		schema, err := compiler.Compile(name + ".json")
		if err != nil {
			return nil, fmt.Errorf("catalog: compile %s schema: %w", name, err)
		}
		loader.schemas[name] = schema
	}
	return loader, nil
}

func (l *schemaLoader) decode(fsys fs.FS, name string, target any) error {
	raw, err := fs.ReadFile(fsys, path.Join("data", name+".json"))
	if err != nil {
		return fmt.Errorf("catalog: read %s: %w", name, err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDataset, name, err)
	}
	if err := l.schemas[name].Validate(doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDataset, name, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDataset, name, err)
	}
	return nil
}

func uniqueIDs[T any](dataset string, records []T, id func(T) string) error {
	seen := make(map[string]struct{}, len(records))
	for _, record := range records {
		key := id(record)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s %q", ErrDuplicateID, dataset, key)
		}
		seen[key] = struct{}{}
	}
	return nil
}
