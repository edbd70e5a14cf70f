package realtime

import (
	"context"
	"errors"
	"time"

	cacheport "go-tawk/internal/infrastructure/cache/port"
)

// DefaultPresenceTTL bounds how long a cached presence outlives its last
// heartbeat. It spans three pings, so a process that dies without
// unbinding stops reporting its users online soon after.
const DefaultPresenceTTL = 90 * time.Second

// StatusStoreFunc adapts a function to StatusStore.
type StatusStoreFunc func(ctx context.Context, userID string, status Status, at time.Time) error

func (f StatusStoreFunc) SetStatus(ctx context.Context, userID string, status Status, at time.Time) error {
	return f(ctx, userID, status, at)
}

// Heartbeater is implemented by stores whose presence expires unless it is
// refreshed while the connection is alive.
type Heartbeater interface {
	Heartbeat(ctx context.Context, userID string, at time.Time) error
}

// PresenceKey is the cache key holding a user's presence.
func PresenceKey(userID string) string {
	return "presence:" + userID
}

// CachedStatusStore mirrors presence into the cache for fast reads, then
// forwards to the durable store. Each write is versioned by its timestamp,
// so a transition that reaches the cache late never overwrites a newer one.
type CachedStatusStore struct {
	cache cacheport.Cache
	next  StatusStore
	ttl   time.Duration
}

func NewCachedStatusStore(cache cacheport.Cache, next StatusStore) *CachedStatusStore {
	return &CachedStatusStore{cache: cache, next: next, ttl: DefaultPresenceTTL}
}

// WithTTL overrides DefaultPresenceTTL. A non-positive ttl keeps entries
// until they are replaced.
func (s *CachedStatusStore) WithTTL(ttl time.Duration) *CachedStatusStore {
	s.ttl = ttl
	return s
}

var _ Heartbeater = (*CachedStatusStore)(nil)

func (s *CachedStatusStore) SetStatus(ctx context.Context, userID string, status Status, at time.Time) error {
	_, cacheErr := s.cache.SetIfNewer(ctx, PresenceKey(userID), string(status), at.UnixNano(), s.ttl)
	var nextErr error
	if s.next != nil {
		nextErr = s.next.SetStatus(ctx, userID, status, at)
	}
	return errors.Join(cacheErr, nextErr)
}

// Heartbeat extends the cached online entry. The durable store is not
// touched since the status did not change.
func (s *CachedStatusStore) Heartbeat(ctx context.Context, userID string, at time.Time) error {
	_, err := s.cache.SetIfNewer(ctx, PresenceKey(userID), string(StatusOnline), at.UnixNano(), s.ttl)
	return err
}

// CachedStatus reads presence from the cache. It returns cacheport.ErrMiss
// when nothing is cached for userID, which callers treat as offline once
// they know the user exists.
func CachedStatus(ctx context.Context, cache cacheport.Cache, userID string) (Status, error) {
	v, err := cache.Get(ctx, PresenceKey(userID))
	if err != nil {
		return "", err
	}
	return Status(v), nil
}
