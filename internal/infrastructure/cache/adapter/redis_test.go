package adapter

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go-tawk/internal/infrastructure/cache/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newRedisCache(t *testing.T) *RedisCache {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mapped, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	cache, err := NewRedisAdapter(ctx, fmt.Sprintf("redis://%s:%s/0", host, mapped.Port()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestRedisCache(t *testing.T) {
	cache := newRedisCache(t)
	ctx := context.Background()

	t.Run("happy path - set get del", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "k", "v", 0))
		v, err := cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", v)

		raw, err := cache.client.Get(ctx, KeyPrefix+"k").Result()
		require.NoError(t, err)
		assert.Equal(t, "v", raw)

		n, err := cache.Del(ctx, "k", "missing")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		_, err = cache.Get(ctx, "k")
		assert.ErrorIs(t, err, port.ErrMiss)
	})

	t.Run("set if newer orders writes by version", func(t *testing.T) {
		wrote, err := cache.SetIfNewer(ctx, "presence:u1", "Online", 200, time.Minute)
		require.NoError(t, err)
		assert.True(t, wrote)

		wrote, err = cache.SetIfNewer(ctx, "presence:u1", "Offline", 100, time.Minute)
		require.NoError(t, err)
		assert.False(t, wrote)

		v, err := cache.Get(ctx, "presence:u1")
		require.NoError(t, err)
		assert.Equal(t, "Online", v)

		wrote, err = cache.SetIfNewer(ctx, "presence:u1", "Offline", 1000, time.Minute)
		require.NoError(t, err)
		assert.True(t, wrote)
		v, err = cache.Get(ctx, "presence:u1")
		require.NoError(t, err)
		assert.Equal(t, "Offline", v)

		ttl, err := cache.client.PTTL(ctx, KeyPrefix+"presence:u1").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})
}
