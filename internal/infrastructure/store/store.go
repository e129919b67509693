// Package store persists named collections of records as JSON arrays.
//
// A Backend only knows how to read and replace a whole collection. Collection
// layers typed decoding, tolerant scanning and the per-collection write lock
// on top of it, so a load-mutate-replace sequence never interleaves with
// another writer of the same collection.
package store

import (
	"context"
	"encoding/json"
)

// Collection names used by the API.
const (
	UsersCollection  = "users"
	TweetsCollection = "tweets"
)

// Backend stores each collection as one JSON array.
//
// Load fails with domain.ErrStorageUnavailable when the collection cannot be
// read and with domain.ErrCorruptCollection when its content is not a JSON
// array. Replace must be atomic from a reader's point of view and must leave
// the previous content in place when it fails.
type Backend interface {
	Load(ctx context.Context, collection string) ([]json.RawMessage, error)
	Replace(ctx context.Context, collection string, records []json.RawMessage) error
	// Ensure creates the collection as an empty array when it does not exist.
	Ensure(ctx context.Context, collection string) error
	Ping(ctx context.Context) error
}

// Locker serialises writers of one collection. The returned function
// releases the lock and is safe to call more than once.
type Locker interface {
	Lock(ctx context.Context, collection string) (unlock func(), err error)
}

// EnsureAll creates every named collection that does not exist yet.
func EnsureAll(ctx context.Context, b Backend, collections ...string) error {
	for _, name := range collections {
		if err := b.Ensure(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
