package store

import (
	"context"
	"sync"
)

// LocalLocker serialises writers inside a single process.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[string]chan struct{})}
}

// Lock blocks until the collection is free or ctx is done.
func (l *LocalLocker) Lock(ctx context.Context, collection string) (func(), error) {
	slot := l.slot(collection)
	select {
	case slot <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-slot }) }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *LocalLocker) Ping(context.Context) error {
	return nil
}

func (l *LocalLocker) slot(collection string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[collection]
	if !ok {
		s = make(chan struct{}, 1)
		l.slots[collection] = s
	}
	return s
}
