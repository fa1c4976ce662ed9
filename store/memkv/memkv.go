// Package memkv is the default, non-durable store.Backend: a sorted
// in-memory map behind a flat Tx/Cursor shape, simplified to the single
// flat keyspace store.Backend already assumes.
package memkv

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/rdfgraph/engine/store"
)

// DB is a sorted in-memory store.Backend. Zero value is not usable; use
// New.
type DB struct {
	mu   sync.RWMutex
	data map[string][]byte
	keys []string // kept sorted; rebuilt lazily after a batch of writes
	dirty bool
}

var _ store.Backend = (*DB)(nil)

// New creates an empty in-memory backend.
func New() *DB {
	return &DB{data: make(map[string][]byte)}
}

func (db *DB) ensureSorted() {
	if !db.dirty {
		return
	}
	db.keys = db.keys[:0]
	for k := range db.data {
		db.keys = append(db.keys, k)
	}
	sort.Strings(db.keys)
	db.dirty = false
}

func (db *DB) Get(ctx context.Context, key []byte) ([]byte, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	v, ok := db.data[string(key)]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (db *DB) Put(ctx context.Context, key, value []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.putLocked(key, value)
	return nil
}

func (db *DB) putLocked(key, value []byte) {
	k := string(key)
	if _, exists := db.data[k]; !exists {
		db.dirty = true
	}
	v := make([]byte, len(value))
	copy(v, value)
	db.data[k] = v
}

func (db *DB) Delete(ctx context.Context, key []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.data[string(key)]; ok {
		delete(db.data, string(key))
		db.dirty = true
	}
	return nil
}

func (db *DB) Contains(ctx context.Context, key []byte) (bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	_, ok := db.data[string(key)]
	return ok, nil
}

func (db *DB) RangeScan(ctx context.Context, lo, hi []byte) (store.Cursor, error) {
	db.mu.Lock()
	db.ensureSorted()
	start := sort.SearchStrings(db.keys, string(lo))
	var pairs []store.KV
	for _, k := range db.keys[start:] {
		if hi != nil && bytes.Compare([]byte(k), hi) >= 0 {
			break
		}
		v := db.data[k]
		vc := make([]byte, len(v))
		copy(vc, v)
		pairs = append(pairs, store.KV{Key: []byte(k), Value: vc})
	}
	db.mu.Unlock()
	return store.NewSliceCursor(pairs), nil
}

func (db *DB) PrefixScan(ctx context.Context, prefix []byte) (store.Cursor, error) {
	db.mu.Lock()
	db.ensureSorted()
	start := sort.SearchStrings(db.keys, string(prefix))
	var pairs []store.KV
	for _, k := range db.keys[start:] {
		if !bytes.HasPrefix([]byte(k), prefix) {
			break
		}
		v := db.data[k]
		vc := make([]byte, len(v))
		copy(vc, v)
		pairs = append(pairs, store.KV{Key: []byte(k), Value: vc})
	}
	db.mu.Unlock()
	return store.NewSliceCursor(pairs), nil
}

func (db *DB) BatchPut(ctx context.Context, pairs []store.KV) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, kv := range pairs {
		db.putLocked(kv.Key, kv.Value)
	}
	return nil
}

func (db *DB) Flush(ctx context.Context) error   { return nil }
func (db *DB) Compact(ctx context.Context) error { return nil }
func (db *DB) Close() error                      { return nil }
