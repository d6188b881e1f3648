// Package redistest runs an in-process Redis server for tests and connects the production
// repository to it.
package redistest

import (
	"mrchemist-admin-service/internal/app/contracts"
	"mrchemist-admin-service/internal/app/services/shared/redis"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func NewRepository(t testing.TB) contracts.RedisRepository {
	repo, _ := NewRepositoryWithServer(t)
	return repo
}

// NewRepositoryWithServer also returns the server so tests can move its clock or inspect keys.
func NewRepositoryWithServer(t testing.TB) (contracts.RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redis.NewRedisRepository(client), server
}
