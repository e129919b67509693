package service

import (
	"context"
	"slices"
)

// memStore is an in-memory ports.RecordStore. Mutations work on a copy so a
// failing fn leaves the records untouched, like the real store. writeErr
// fails the write after fn has run.
type memStore[T any] struct {
	records  []T
	err      error
	writeErr error
	writes   int
}

func (m *memStore[T]) Load(ctx context.Context) ([]T, error) {
	if m.err != nil {
		return nil, m.err
	}
	return slices.Clone(m.records), nil
}

func (m *memStore[T]) Scan(ctx context.Context, fn func(T) bool) error {
	if m.err != nil {
		return m.err
	}
	for _, r := range m.records {
		if !fn(r) {
			break
		}
	}
	return nil
}

func (m *memStore[T]) Mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	if m.err != nil {
		return m.err
	}
	next, err := fn(slices.Clone(m.records))
	if err != nil {
		return err
	}
	if m.writeErr != nil {
		return m.writeErr
	}
	m.records = next
	m.writes++
	return nil
}
