package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/chirper/chirper-api/internal/core/ports"
	mongodb "github.com/chirper/chirper-api/internal/infrastructure/db/mongo"
	redisdb "github.com/chirper/chirper-api/internal/infrastructure/db/redis"
	"github.com/chirper/chirper-api/internal/infrastructure/store"
	"github.com/chirper/chirper-api/internal/pkg/config"
)

// lockBackend is a write lock whose reachability can be probed.
type lockBackend interface {
	store.Locker
	ports.Pinger
}

// backends are the storage components selected by the configuration.
type backends struct {
	store   store.Backend
	locker  lockBackend
	closers []func(context.Context) error
}

func openBackends(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backends, error) {
	b := &backends{}

	switch cfg.StoreDriver {
	case config.StoreMongo:
		cs, err := mongodb.Open(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, cs.Close)
		b.store = cs
	default:
		b.store = store.NewFileStore(cfg.DataDir)
	}

	switch cfg.LockDriver {
	case config.LockRedis:
		locker, err := redisdb.OpenLocker(ctx, redisdb.Config{
			Addr:    cfg.Redis.Addr,
			DB:      cfg.Redis.DB,
			LockTTL: cfg.Redis.LockTTL,
		}, log)
		if err != nil {
			_ = b.Close(ctx)
			return nil, err
		}
		b.closers = append(b.closers, func(context.Context) error { return locker.Close() })
		b.locker = locker
	default:
		b.locker = store.NewLocalLocker()
	}

	log.Info().
		Str("store", cfg.StoreDriver).
		Str("lock", cfg.LockDriver).
		Msg("storage backends ready")

	return b, nil
}

func (b *backends) readiness() map[string]ports.Pinger {
	return map[string]ports.Pinger{
		"store": b.store,
		"lock":  b.locker,
	}
}

// Close releases connections in reverse order of opening.
func (b *backends) Close(ctx context.Context) error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close backends: %w", errors.Join(errs...))
	}
	return nil
}
