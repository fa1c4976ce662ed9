// Package leveldbkv is the second durable store.Backend variant,
// opening and driving github.com/syndtr/goleveldb/leveldb directly.
package leveldbkv

import (
	"context"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/rdfgraph/engine/store"
)

// DB is a goleveldb-backed store.Backend.
type DB struct {
	db        *leveldb.DB
	writeopts *opt.WriteOptions
	readopts  *opt.ReadOptions
}

var _ store.Backend = (*DB)(nil)

// Open opens (creating if necessary) a LevelDB database at path.
func Open(path string) (*DB, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		return nil, fmt.Errorf("leveldbkv: open: %w", err)
	}
	return &DB{
		db:        db,
		writeopts: &opt.WriteOptions{Sync: true},
		readopts:  &opt.ReadOptions{},
	}, nil
}

func (d *DB) Get(ctx context.Context, key []byte) ([]byte, error) {
	v, err := d.db.Get(key, d.readopts)
	if err == leveldb.ErrNotFound {
		return nil, store.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("leveldbkv: get: %w", store.ErrIo)
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (d *DB) Put(ctx context.Context, key, value []byte) error {
	if err := d.db.Put(key, value, d.writeopts); err != nil {
		return fmt.Errorf("leveldbkv: put: %w", store.ErrIo)
	}
	return nil
}

func (d *DB) Delete(ctx context.Context, key []byte) error {
	if err := d.db.Delete(key, d.writeopts); err != nil {
		return fmt.Errorf("leveldbkv: delete: %w", store.ErrIo)
	}
	return nil
}

func (d *DB) Contains(ctx context.Context, key []byte) (bool, error) {
	ok, err := d.db.Has(key, d.readopts)
	if err != nil {
		return false, fmt.Errorf("leveldbkv: contains: %w", store.ErrIo)
	}
	return ok, nil
}

func (d *DB) RangeScan(ctx context.Context, lo, hi []byte) (store.Cursor, error) {
	rang := &util.Range{Start: lo, Limit: hi}
	it := d.db.NewIterator(rang, d.readopts)
	defer it.Release()

	var pairs []store.KV
	for it.Next() {
		k := append([]byte{}, it.Key()...)
		v := append([]byte{}, it.Value()...)
		pairs = append(pairs, store.KV{Key: k, Value: v})
	}
	if err := it.Error(); err != nil && err != errors.ErrNotFound {
		return nil, fmt.Errorf("leveldbkv: range scan: %w", store.ErrIo)
	}
	return store.NewSliceCursor(pairs), nil
}

func (d *DB) PrefixScan(ctx context.Context, prefix []byte) (store.Cursor, error) {
	it := d.db.NewIterator(util.BytesPrefix(prefix), d.readopts)
	defer it.Release()

	var pairs []store.KV
	for it.Next() {
		k := append([]byte{}, it.Key()...)
		v := append([]byte{}, it.Value()...)
		pairs = append(pairs, store.KV{Key: k, Value: v})
	}
	if err := it.Error(); err != nil && err != errors.ErrNotFound {
		return nil, fmt.Errorf("leveldbkv: prefix scan: %w", store.ErrIo)
	}
	return store.NewSliceCursor(pairs), nil
}

func (d *DB) BatchPut(ctx context.Context, pairs []store.KV) error {
	batch := new(leveldb.Batch)
	for _, kv := range pairs {
		batch.Put(kv.Key, kv.Value)
	}
	if err := d.db.Write(batch, d.writeopts); err != nil {
		return fmt.Errorf("leveldbkv: batch put: %w", store.ErrTransaction)
	}
	return nil
}

func (d *DB) Flush(ctx context.Context) error {
	return nil
}

func (d *DB) Compact(ctx context.Context) error {
	if err := d.db.CompactRange(util.Range{}); err != nil {
		return fmt.Errorf("leveldbkv: compact: %w", store.ErrIo)
	}
	return nil
}

func (d *DB) Close() error {
	if err := d.db.Close(); err != nil {
		return fmt.Errorf("leveldbkv: close: %w", store.ErrIo)
	}
	return nil
}
