// Package mmapkv is the declared-but-stub memory-mapped B-tree backend,
// using go.etcd.io/bbolt. Every read/write method beyond Open/Close
// returns ErrUnimplemented until a future revision indexes quads into
// bbolt buckets directly.
package mmapkv

import (
	"context"
	"fmt"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"github.com/rdfgraph/engine/store"
)

// DB is an opened, otherwise-inert bbolt file.
type DB struct {
	db *bolt.DB
}

var _ store.Backend = (*DB)(nil)

// Open creates or opens the bbolt file under path.
func Open(path string) (*DB, error) {
	db, err := bolt.Open(filepath.Join(path, "mmapkv.bolt"), 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("mmapkv: open: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Get(ctx context.Context, key []byte) ([]byte, error) {
	return nil, store.ErrUnimplemented
}

func (d *DB) Put(ctx context.Context, key, value []byte) error {
	return store.ErrUnimplemented
}

func (d *DB) Delete(ctx context.Context, key []byte) error {
	return store.ErrUnimplemented
}

func (d *DB) Contains(ctx context.Context, key []byte) (bool, error) {
	return false, store.ErrUnimplemented
}

func (d *DB) RangeScan(ctx context.Context, lo, hi []byte) (store.Cursor, error) {
	return nil, store.ErrUnimplemented
}

func (d *DB) PrefixScan(ctx context.Context, prefix []byte) (store.Cursor, error) {
	return nil, store.ErrUnimplemented
}

func (d *DB) BatchPut(ctx context.Context, pairs []store.KV) error {
	return store.ErrUnimplemented
}

func (d *DB) Flush(ctx context.Context) error { return nil }

func (d *DB) Compact(ctx context.Context) error { return store.ErrUnimplemented }

func (d *DB) Close() error {
	if err := d.db.Close(); err != nil {
		return fmt.Errorf("mmapkv: close: %w", store.ErrIo)
	}
	return nil
}
