package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/catalog/internal/db"
)

// KV reads the catalog document stored under a single key.
type KV struct {
	store db.KVStore
	key   string
}

// NewKV creates a key/value source.
func NewKV(store db.KVStore, key string) *KV {
	return &KV{store: store, key: key}
}

// Fetch returns the value at the key.
func (k *KV) Fetch(ctx context.Context) ([]byte, error) {
	data, err := k.store.Get(ctx, k.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, notFound("key "+k.key, err)
		}
		return nil, fmt.Errorf("get %s: %w", k.key, err)
	}
	return data, nil
}

// Push stores a catalog document under the key, replacing the previous one.
func (k *KV) Push(ctx context.Context, data []byte) error {
	if err := k.store.Set(ctx, k.key, data); err != nil {
		return fmt.Errorf("set %s: %w", k.key, err)
	}
	return nil
}

func (k *KV) String() string { return "kv:" + k.key }
