package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// InitRedis builds the shared Redis client. A failed ping is reported but
// the client is still returned: go-redis reconnects lazily, and the
// logging subsystem is allowed to come up before its store does.
func InitRedis(addr string, password string, db int) (*redis.Client, error) {
	var rdb *redis.Client
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opts, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		rdb = redis.NewClient(opts)
	} else {
		rdb = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		})
	}

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return rdb, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}
