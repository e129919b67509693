package ports

import "context"

// RecordStore persists one named collection of records as a whole.
//
// Load and Mutate fail with domain.ErrStorageUnavailable when the backing
// storage cannot be read or written and with domain.ErrCorruptCollection when
// its content is not a JSON array of T.
type RecordStore[T any] interface {
	// Load returns every record in stored order.
	Load(ctx context.Context) ([]T, error)

	// Scan calls fn for each record that decodes into T, skipping (and
	// logging) the ones that do not. Scanning stops when fn returns false.
	Scan(ctx context.Context, fn func(T) bool) error

	// Mutate runs load, fn and replace under the collection's write lock.
	// When fn returns an error nothing is written and the error is returned
	// unchanged.
	Mutate(ctx context.Context, fn func([]T) ([]T, error)) error
}
