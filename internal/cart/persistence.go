package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pkgerrors "github.com/nmoreira/storefront-core/pkg/errors"
	"github.com/nmoreira/storefront-core/pkg/logger"
	"github.com/nmoreira/storefront-core/pkg/redis"
)

// Persistence mirrors the cart to a durable key-value slot. Each save is
// total: the whole line-item list is serialized and replaces the previous
// blob.
type Persistence interface {
	Load(ctx context.Context) ([]LineItem, error)
	Save(ctx context.Context, items []LineItem) error
	Clear(ctx context.Context) error
}

type kvStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type redisPersistence struct {
	kv   kvStore
	key  string
	logg *logger.Logger
}

// NewRedisPersistence stores the cart blob at the client's cart key for the
// given owner.
func NewRedisPersistence(client *redis.Client, ownerID string, logg *logger.Logger) (Persistence, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &redisPersistence{
		kv:   client,
		key:  client.CartKey(ownerID),
		logg: logg,
	}, nil
}

// Load reads and deserializes the persisted blob. An absent or malformed blob
// is treated as an empty cart: a warning is logged and no error is returned.
// Only transport-level read failures come back as errors.
func (p *redisPersistence) Load(ctx context.Context) ([]LineItem, error) {
	raw, err := p.kv.Get(ctx, p.key)
	if err != nil {
		if redis.IsNotFound(err) {
			return []LineItem{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistenceRead, err, "read cart blob")
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		p.logg.Warn(ctx, "persisted cart blob is malformed, starting empty")
		return []LineItem{}, nil
	}
	if items == nil {
		items = []LineItem{}
	}
	return items, nil
}

// Save serializes the full list and overwrites the previous blob.
func (p *redisPersistence) Save(ctx context.Context, items []LineItem) error {
	if items == nil {
		items = []LineItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistenceWrite, err, "serialize cart")
	}
	if err := p.kv.Set(ctx, p.key, string(payload), 0); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistenceWrite, err, "write cart blob")
	}
	return nil
}

// Clear deletes the persisted slot entirely.
func (p *redisPersistence) Clear(ctx context.Context) error {
	if err := p.kv.Del(ctx, p.key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistenceWrite, err, "clear cart blob")
	}
	return nil
}
