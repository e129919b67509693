package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/chirper/chirper-api/internal/core/domain"
	"github.com/chirper/chirper-api/internal/pkg/metrics"
)

// Collection is a typed view over one named collection of a Backend. It
// implements ports.RecordStore[T].
type Collection[T any] struct {
	name    string
	backend Backend
	locker  Locker
	logger  zerolog.Logger
}

func NewCollection[T any](name string, backend Backend, locker Locker, logger zerolog.Logger) *Collection[T] {
	return &Collection[T]{
		name:    name,
		backend: backend,
		locker:  locker,
		logger:  logger.With().Str("collection", name).Logger(),
	}
}

// Load decodes every record. A record that does not decode into T makes the
// whole collection corrupt.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	start := time.Now()
	records, err := c.load(ctx)
	c.observe("load", start, err)
	return records, err
}

// Scan decodes records one at a time and hands them to fn. Records that fail
// to decode are logged and skipped.
func (c *Collection[T]) Scan(ctx context.Context, fn func(T) bool) error {
	start := time.Now()
	err := c.scan(ctx, fn)
	c.observe("scan", start, err)
	return err
}

// Mutate loads the collection, applies fn and writes the result back while
// holding the collection's write lock. An error from fn aborts the write.
func (c *Collection[T]) Mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	start := time.Now()
	err := c.mutate(ctx, fn)
	c.observe("mutate", start, err)
	return err
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	raws, err := c.backend.Load(ctx, c.name)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("%w: %s: record %d: %w", domain.ErrCorruptCollection, c.name, i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *Collection[T]) scan(ctx context.Context, fn func(T) bool) error {
	raws, err := c.backend.Load(ctx, c.name)
	if err != nil {
		return err
	}

	for i, raw := range raws {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			c.logger.Warn().Err(err).Int("index", i).Msg("skipping undecodable record")
			continue
		}
		if !fn(rec) {
			return nil
		}
	}
	return nil
}

func (c *Collection[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	unlock, err := c.locker.Lock(ctx, c.name)
	if err != nil {
		return fmt.Errorf("%w: lock %s: %w", domain.ErrStorageUnavailable, c.name, err)
	}
	defer unlock()

	records, err := c.load(ctx)
	if err != nil {
		return err
	}

	next, err := fn(records)
	if err != nil {
		return err
	}

	raws := make([]json.RawMessage, 0, len(next))
	for i, rec := range next {
		raw, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode %s record %d: %w", c.name, i, err)
		}
		raws = append(raws, raw)
	}

	return c.backend.Replace(ctx, c.name, raws)
}

func (c *Collection[T]) observe(op string, start time.Time, err error) {
	metrics.StoreOperationDuration.WithLabelValues(c.name, op).Observe(time.Since(start).Seconds())
	metrics.StoreOperationsTotal.WithLabelValues(c.name, op, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrStorageUnavailable):
		return "unavailable"
	case errors.Is(err, domain.ErrCorruptCollection):
		return "corrupt"
	default:
		return "rejected"
	}
}
