package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func setupTestRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestNamespace(t *testing.T) {
	rdb := setupTestRedis(t)
	ctx := context.Background()

	t.Run("Put And Get", func(t *testing.T) {
		ns := NewNamespace(rdb, NamespaceAllAccess)

		err := ns.Put(ctx, "k1", "v1", time.Hour)
		assert.NoError(t, err)

		val, err := ns.Get(ctx, "k1")
		assert.NoError(t, err)
		assert.Equal(t, "v1", val)
	})

	t.Run("Missing Key", func(t *testing.T) {
		ns := NewNamespace(rdb, NamespaceAllAccess)

		_, err := ns.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Namespace Isolation", func(t *testing.T) {
		redirects := NewNamespace(rdb, NamespaceRedirect)
		all := NewNamespace(rdb, NamespaceAllAccess)

		assert.NoError(t, redirects.Put(ctx, "shared", "redirect-side", time.Hour))
		assert.NoError(t, all.Put(ctx, "shared", "all-side", time.Hour))

		val, err := redirects.Get(ctx, "shared")
		assert.NoError(t, err)
		assert.Equal(t, "redirect-side", val)

		val, err = all.Get(ctx, "shared")
		assert.NoError(t, err)
		assert.Equal(t, "all-side", val)
	})

	t.Run("TTL Applied", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		ns := NewNamespace(rdb, NamespaceAllAccess)

		assert.NoError(t, ns.Put(ctx, "expiring", "v", time.Minute))
		assert.Equal(t, time.Minute, mr.TTL(NamespaceAllAccess+":expiring"))

		mr.FastForward(2 * time.Minute)
		_, err := ns.Get(ctx, "expiring")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
