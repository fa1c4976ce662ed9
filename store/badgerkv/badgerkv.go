// Package badgerkv is the default durable store.Backend, grounded on
// aleksaelezovic-trigo's internal/storage/badger.go: a thin translation
// layer from store.Backend's flat byte-slice contract onto
// github.com/dgraph-io/badger/v4's transactional API.
package badgerkv

import (
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/rdfgraph/engine/store"
)

// DB is a Badger-backed store.Backend.
type DB struct {
	db *badger.DB
}

var _ store.Backend = (*DB)(nil)

// Open opens (creating if necessary) a Badger database at path.
func Open(path string) (*DB, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badgerkv: open: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Get(ctx context.Context, key []byte) ([]byte, error) {
	var out []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			out = append([]byte{}, val...)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, store.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("badgerkv: get: %w", store.ErrIo)
	}
	return out, nil
}

func (d *DB) Put(ctx context.Context, key, value []byte) error {
	err := d.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
		return fmt.Errorf("badgerkv: put: %w", store.ErrIo)
	}
	return nil
}

func (d *DB) Delete(ctx context.Context, key []byte) error {
	err := d.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	if err != nil {
		return fmt.Errorf("badgerkv: delete: %w", store.ErrIo)
	}
	return nil
}

func (d *DB) Contains(ctx context.Context, key []byte) (bool, error) {
	found := false
	err := d.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		} else if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("badgerkv: contains: %w", store.ErrIo)
	}
	return found, nil
}

func (d *DB) RangeScan(ctx context.Context, lo, hi []byte) (store.Cursor, error) {
	var pairs []store.KV
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(lo); it.Valid(); it.Next() {
			item := it.Item()
			key := item.KeyCopy(nil)
			if hi != nil && compare(key, hi) >= 0 {
				break
			}
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			pairs = append(pairs, store.KV{Key: key, Value: val})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badgerkv: range scan: %w", store.ErrIo)
	}
	return store.NewSliceCursor(pairs), nil
}

func (d *DB) PrefixScan(ctx context.Context, prefix []byte) (store.Cursor, error) {
	var pairs []store.KV
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key := item.KeyCopy(nil)
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			pairs = append(pairs, store.KV{Key: key, Value: val})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badgerkv: prefix scan: %w", store.ErrIo)
	}
	return store.NewSliceCursor(pairs), nil
}

func (d *DB) BatchPut(ctx context.Context, pairs []store.KV) error {
	wb := d.db.NewWriteBatch()
	defer wb.Cancel()
	for _, kv := range pairs {
		if err := wb.Set(kv.Key, kv.Value); err != nil {
			return fmt.Errorf("badgerkv: batch put: %w", store.ErrTransaction)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("badgerkv: batch put: %w", store.ErrTransaction)
	}
	return nil
}

func (d *DB) Flush(ctx context.Context) error {
	if err := d.db.Sync(); err != nil {
		return fmt.Errorf("badgerkv: flush: %w", store.ErrIo)
	}
	return nil
}

func (d *DB) Compact(ctx context.Context) error {
	if err := d.db.Flatten(2); err != nil {
		return fmt.Errorf("badgerkv: compact: %w", store.ErrIo)
	}
	return nil
}

func (d *DB) Close() error {
	if err := d.db.Close(); err != nil {
		return fmt.Errorf("badgerkv: close: %w", store.ErrIo)
	}
	return nil
}

func compare(a, b []byte) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return int(a[i]) - int(b[i])
		}
	}
	return len(a) - len(b)
}
