// Package term implements the zero-copy RDF term model: a string
// dictionary and the Term/Triple/Quad types built on top of it.
package term

import (
	"sync"

	"github.com/zeebo/xxh3"
)

// Ref is a stable, interned reference to a lexical string. Two Refs
// returned from the same Dictionary for equal input strings are the same
// pointer; comparing interned strings therefore reduces to pointer
// equality.
//
// A Ref is never mutated or evicted once handed out: its lifetime is tied
// to the Dictionary, which is append-only.
type Ref struct {
	s    string
	hash uint64
	id   uint64
}

// String returns the interned lexical value.
func (r *Ref) String() string {
	if r == nil {
		return ""
	}
	return r.s
}

// Hash returns the cached xxh3 hash of the lexical value.
func (r *Ref) Hash() uint64 {
	if r == nil {
		return 0
	}
	return r.hash
}

// ID returns the dictionary-assigned monotonically increasing handle for
// this string. Indexes (package store) use this fixed-width id instead of
// the raw lexical form to keep keys compact and to preserve ordering
// across interning.
func (r *Ref) ID() uint64 {
	if r == nil {
		return 0
	}
	return r.id
}

// Dictionary interns lexical strings and hands out stable references.
// It is the only long-lived shared mutable structure in the engine:
// stores own one and inject it everywhere rather than exposing it as a
// process global.
//
// Concurrency: Intern follows a read-dominant lock with a double-check
// pattern on the write path — a shared read lock services the common case
// (string already interned); the write lock is taken, and rechecked, only
// on a miss.
type Dictionary struct {
	mu      sync.RWMutex
	byValue map[string]*Ref
	byID    []*Ref // index 0 unused; ids start at 1
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		byValue: make(map[string]*Ref),
		byID:    make([]*Ref, 1, 1024),
	}
}

// Intern returns the stable Ref for s, allocating and storing a new one the
// first time s is seen. The returned Ref remains valid for the lifetime of
// the Dictionary (the dictionary is append-only: it never evicts or
// reorders entries).
func (d *Dictionary) Intern(s string) *Ref {
	d.mu.RLock()
	if r, ok := d.byValue[s]; ok {
		d.mu.RUnlock()
		return r
	}
	d.mu.RUnlock()

	d.mu.Lock()
	defer d.mu.Unlock()
	// Double-check: another writer may have interned s while we waited for
	// the write lock.
	if r, ok := d.byValue[s]; ok {
		return r
	}
	r := &Ref{
		s:    s,
		hash: xxh3.HashString(s),
		id:   uint64(len(d.byID)),
	}
	d.byValue[s] = r
	d.byID = append(d.byID, r)
	return r
}

// Lookup returns the Ref previously assigned id, or nil if id is out of
// range. Used by the index layer to turn a stored term id back into a
// lexical form.
func (d *Dictionary) Lookup(id uint64) *Ref {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if id == 0 || int(id) >= len(d.byID) {
		return nil
	}
	return d.byID[id]
}

// Len returns the number of distinct interned strings.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byValue)
}

// MemoryUsage returns an approximate byte count of interned lexical data,
// for observability.
func (d *Dictionary) MemoryUsage() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	n := 0
	for s := range d.byValue {
		n += len(s)
	}
	return n
}
