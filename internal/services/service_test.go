package services

import (
	"log/slog"
	"os"
	"testing"

	"github.com/PetalsOnaWet/fiverr-pro-landing/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func setupTestNamespace(t *testing.T, name string) (*repository.Namespace, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return repository.NewNamespace(rdb, name), mr
}
