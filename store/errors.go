// Package store implements the pluggable key-value storage abstraction
// and the six-ordering quad index layer built on top of it.
package store

import "errors"

// Error taxonomy for the storage layer. Backends translate their native
// failures into one of these sentinels so the index and executor layers
// never couple to a specific backend's error model.
var (
	ErrNotFound      = errors.New("store: key not found")
	ErrIo            = errors.New("store: i/o failure")
	ErrSerialization = errors.New("store: serialization failure")
	ErrTransaction   = errors.New("store: transaction failure")
	ErrCorruption    = errors.New("store: corruption detected")
	ErrBackend       = errors.New("store: backend failure")
	ErrUnimplemented = errors.New("store: backend does not implement this operation")
	ErrCancelled     = errors.New("store: operation cancelled")
)
