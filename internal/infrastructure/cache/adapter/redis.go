package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"

	"go-tawk/internal/infrastructure/cache/port"
)

// KeyPrefix namespaces every key written by RedisCache. asynq shares the
// same Redis and keeps its own "asynq:" keys.
const KeyPrefix = "tawk:"

// RedisCache is the presence cache backed by go-redis v9.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisAdapter connects to redisURL and fails fast when the server does
// not answer a ping.
func NewRedisAdapter(ctx context.Context, redisURL string) (*RedisCache, error) {
	redisURL = strings.TrimSpace(redisURL)
	if redisURL == "" {
		return nil, errors.New("redis: no url configured")
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", opt.Addr, err)
	}
	return &RedisCache{client: client, prefix: KeyPrefix}, nil
}

var _ port.Cache = (*RedisCache)(nil)

func (r *RedisCache) key(k string) string { return r.prefix + k }

func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", port.ErrMiss
	case err != nil:
		return "", fmt.Errorf("redis: get %s: %w", key, err)
	}
	return v, nil
}

// Set writes value; a non-positive ttl keeps the key until it is deleted.
func (r *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}

// setIfNewer keeps the version beside the value under KEYS[2]. Versions are
// zero-padded so Lua can compare them as strings.
var setIfNewer = redis.NewScript(`
local cur = redis.call('GET', KEYS[2])
if cur and cur >= ARGV[2] then
	return 0
end
local ttl = tonumber(ARGV[3])
if ttl > 0 then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ttl)
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ttl)
else
	redis.call('SET', KEYS[1], ARGV[1])
	redis.call('SET', KEYS[2], ARGV[2])
end
return 1
`)

func (r *RedisCache) SetIfNewer(ctx context.Context, key string, value string, version int64, ttl time.Duration) (bool, error) {
	if version < 0 {
		return false, fmt.Errorf("redis: set %s: negative version %d", key, version)
	}
	k := r.key(key)
	wrote, err := setIfNewer.Run(ctx, r.client, []string{k, k + ":version"},
		value, fmt.Sprintf("%020d", version), ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("redis: set %s: %w", key, err)
	}
	return wrote == 1, nil
}

func (r *RedisCache) Del(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	values := make([]string, len(keys))
	versions := make([]string, len(keys))
	for i, k := range keys {
		values[i] = r.key(k)
		versions[i] = r.key(k) + ":version"
	}
	pipe := r.client.TxPipeline()
	n := pipe.Del(ctx, values...)
	pipe.Del(ctx, versions...)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis: del: %w", err)
	}
	return n.Val(), nil
}

func (r *RedisCache) Ping(ctx context.Context) error { return r.client.Ping(ctx).Err() }

func (r *RedisCache) Close() error { return r.client.Close() }
