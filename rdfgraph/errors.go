package rdfgraph

import (
	"github.com/rdfgraph/engine/exec"
	"github.com/rdfgraph/engine/reason"
	"github.com/rdfgraph/engine/store"
	"github.com/rdfgraph/engine/term"
)

// The error taxonomy re-exported under package rdfgraph so a caller of
// the embedded API never needs to import term/store/exec/reason directly
// just to compare against errors.Is.
var (
	ErrInvalidStructure = term.ErrInvalidStructure

	ErrNotFound      = store.ErrNotFound
	ErrIo            = store.ErrIo
	ErrSerialization = store.ErrSerialization
	ErrTransaction   = store.ErrTransaction
	ErrCorruption    = store.ErrCorruption
	ErrBackend       = store.ErrBackend
	ErrUnimplemented = store.ErrUnimplemented

	ErrUnbound     = exec.ErrUnbound
	ErrType        = exec.ErrType
	ErrUnsupported = exec.ErrUnsupported

	ErrInconsistency = reason.ErrInconsistency
	ErrCycle         = reason.ErrCycle
	ErrResourceLimit = reason.ErrResourceLimit

	// ErrCancelled is the sentinel a caller of the embedded API checks
	// when an operation stops because its ctx was done. It is exec's
	// sentinel: exec's iterators (behind PreparedQuery.Execute and
	// Store.Scan) return it, exec maps wcoj's cancellation error onto it,
	// and Store.Materialize maps reason's. store, wcoj and reason each
	// define a distinct sentinel of their own.
	ErrCancelled = exec.ErrCancelled
)
