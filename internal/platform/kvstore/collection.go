package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCorruptCollection indicates a stored value exists but cannot be decoded.
// This is deliberately distinct from an absent key: an empty clinic and a
// damaged data file must not look the same to callers.
var ErrCorruptCollection = errors.New("kvstore: corrupt collection")

// getter is satisfied by both Tx and the per-key view of a Store.
type getter interface {
	Get(key string) ([]byte, error)
}

type putter interface {
	Put(key string, value []byte) error
}

// StoreView binds a context to a Store so it satisfies the same single-key
// shape as Tx. Use it for plain reads; mutations belong inside Update.
type StoreView struct {
	ctx   context.Context
	store Store
}

func View(ctx context.Context, s Store) StoreView {
	return StoreView{ctx: ctx, store: s}
}

func (v StoreView) Get(key string) ([]byte, error) {
	return v.store.Get(v.ctx, key)
}

func (v StoreView) Put(key string, value []byte) error {
	return v.store.Put(v.ctx, key, value)
}

// DecodeCollection unmarshals a stored collection value. A missing key decodes
// to an empty slice; an unparsable value reports ErrCorruptCollection.
func DecodeCollection[T any](g getter, key string) ([]T, error) {
	data, err := g.Get(key)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptCollection, key, err)
	}
	return items, nil
}

// EncodeCollection marshals items and stages or writes them under key. A nil
// slice is stored as an empty JSON array, never as null.
func EncodeCollection[T any](p putter, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return p.Put(key, data)
}
