package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	defaultTimeout = 5 * time.Second
	clientName     = "chirper"
)

// Config selects the Redis instance shared by every process that writes the
// same collections.
type Config struct {
	Addr    string
	DB      int
	LockTTL time.Duration
	// Timeout bounds the initial ping.
	Timeout time.Duration
}

// OpenLocker connects to Redis, checks it with a ping and returns a Locker
// that owns the client.
func OpenLocker(ctx context.Context, cfg Config, logger zerolog.Logger) (*Locker, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:       cfg.Addr,
		DB:         cfg.DB,
		ClientName: clientName,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewLocker(client, cfg.LockTTL, logger), nil
}

// Close releases the Redis client.
func (l *Locker) Close() error {
	return l.client.Close()
}
