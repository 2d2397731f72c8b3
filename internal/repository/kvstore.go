package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Namespace identifiers. Each owns its own latest-record index.
const (
	NamespaceRedirect  = "REDIRECT_LOGS"
	NamespaceAllAccess = "ALL_ACCESS"
)

// ErrNotFound is returned by Get for keys that are absent or expired.
var ErrNotFound = errors.New("key not found")

// Store is the contract the rest of the service needs from the key-value
// backend: eventually consistent put/get with per-key expiry. No
// transactions, no atomic read-modify-write.
type Store interface {
	Name() string
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

// Namespace is one logical partition of the store. Partitions share a
// Redis database and are kept apart by a key prefix.
type Namespace struct {
	rdb  *redis.Client
	name string
}

func NewNamespace(rdb *redis.Client, name string) *Namespace {
	return &Namespace{rdb: rdb, name: name}
}

// Name returns the partition identifier, used to derive well-known keys.
func (n *Namespace) Name() string {
	return n.name
}

func (n *Namespace) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	return n.rdb.Set(ctx, n.name+":"+key, value, ttl).Err()
}

func (n *Namespace) Get(ctx context.Context, key string) (string, error) {
	val, err := n.rdb.Get(ctx, n.name+":"+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return val, err
}
