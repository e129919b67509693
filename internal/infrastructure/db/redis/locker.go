package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	defaultLockTTL = 10 * time.Second
	retryInterval  = 25 * time.Millisecond
)

// releaseScript deletes the lock only when it still holds our token, so an
// expired lock taken over by another process is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker serialises collection writers across processes that share one
// Redis instance.
// Key format: lock:chirper:<collection>
type Locker struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewLocker creates a Locker. A non-positive ttl falls back to the default.
func NewLocker(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *Locker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &Locker{client: client, ttl: ttl, logger: logger}
}

// Lock retries SET NX until it wins the key or ctx is done.
func (l *Locker) Lock(ctx context.Context, collection string) (func(), error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("lock token: %w", err)
	}
	key := l.key(collection)

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire %s: %w", key, err)
		}
		if ok {
			return l.releaser(key, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire %s: %w", key, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *Locker) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func (l *Locker) releaser(key, token string) func() {
	var once sync.Once
	return func() { once.Do(func() { l.release(key, token) }) }
}

func (l *Locker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	err := releaseScript.Run(ctx, l.client, []string{key}, token).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		l.logger.Warn().Err(err).Str("key", key).Msg("failed to release lock")
	}
}

func (l *Locker) key(collection string) string {
	return fmt.Sprintf("lock:chirper:%s", collection)
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
