package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/chirper/chirper-api/internal/core/domain"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FileStore keeps each collection in <dir>/<name>.json.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) Path(collection string) string {
	return filepath.Join(f.dir, collection+".json")
}

func (f *FileStore) Load(_ context.Context, collection string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(f.Path(collection))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrStorageUnavailable, collection, err)
	}
	return decodeArray(collection, data)
}

// Replace writes the collection to a temporary file in the same directory and
// renames it over the old one, so readers see either the old or the new
// array and a failed write leaves the old one intact.
func (f *FileStore) Replace(_ context.Context, collection string, records []json.RawMessage) error {
	if records == nil {
		records = []json.RawMessage{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}

	if err := f.writeAtomic(collection, data); err != nil {
		return fmt.Errorf("%w: write %s: %w", domain.ErrStorageUnavailable, collection, err)
	}
	return nil
}

func (f *FileStore) Ensure(ctx context.Context, collection string) error {
	if err := os.MkdirAll(f.dir, dirPerm); err != nil {
		return fmt.Errorf("%w: mkdir %s: %w", domain.ErrStorageUnavailable, f.dir, err)
	}

	_, err := os.Stat(f.Path(collection))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return f.Replace(ctx, collection, nil)
	default:
		return fmt.Errorf("%w: stat %s: %w", domain.ErrStorageUnavailable, collection, err)
	}
}

// Ping checks that the data directory exists.
func (f *FileStore) Ping(context.Context) error {
	info, err := os.Stat(f.dir)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrStorageUnavailable, f.dir)
	}
	return nil
}

func (f *FileStore) writeAtomic(collection string, data []byte) (err error) {
	tmp, err := os.CreateTemp(f.dir, "."+collection+"-*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(filePerm); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.Path(collection))
}

// decodeArray splits a JSON array into its raw elements. Anything other than
// a top-level array, including null, is corrupt.
func decodeArray(collection string, data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: %s: not a JSON array", domain.ErrCorruptCollection, collection)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrCorruptCollection, collection, err)
	}
	return records, nil
}
