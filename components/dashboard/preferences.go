package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-travelboard/components/storage"
)

// ErrNoStoredOrder is returned by LoadOrder when nothing has been persisted.
var ErrNoStoredOrder = errors.New("dashboard: no stored section order")

// StorageOrderStore keeps the section order as a JSON array in a storage.Store.
type StorageOrderStore struct {
	store     storage.Store
	key       string
	validator OrderValidator
}

// NewStorageOrderStore wires a blob store. A nil store falls back to memory.
func NewStorageOrderStore(store storage.Store, validator OrderValidator) *StorageOrderStore {
	if store == nil {
		store = storage.NewMemoryStore()
	}
	if validator == nil {
		validator = NewJSONSchemaValidator()
	}
	return &StorageOrderStore{store: store, key: storage.KeySectionOrder, validator: validator}
}

// LoadOrder returns the stored order when it passes validation.
func (s *StorageOrderStore) LoadOrder(ctx context.Context) (SectionOrder, error) {
	raw, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("dashboard: read section order: %w", err)
	}
	if !ok {
		return nil, ErrNoStoredOrder
	}
	return s.validator.Validate([]byte(raw))
}

// SaveOrder persists the whole permutation.
func (s *StorageOrderStore) SaveOrder(ctx context.Context, order SectionOrder) error {
	if !order.IsPermutation() {
		return fmt.Errorf("dashboard: refusing to persist invalid order %v", order)
	}
	data, err := json.Marshal(order.Strings())
	if err != nil {
		return fmt.Errorf("dashboard: encode section order: %w", err)
	}
	return s.store.Set(ctx, s.key, string(data))
}
