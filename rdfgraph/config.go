package rdfgraph

import (
	"github.com/rdfgraph/engine/reason"
	"github.com/rdfgraph/engine/store"
)

// Backend selects the storage implementation Open constructs, as a
// closed Go enum instead of a free-form string.
type Backend int

const (
	// Memory is the default non-durable backend (store/memkv): no Path
	// required.
	Memory Backend = iota
	Badger
	LevelDB
	Mmap
)

// ReasonerProfile selects the entailment rule table Materialize runs.
// It is exactly reason.Profile, re-exported here so callers configuring a
// Store never need to import package reason directly.
type ReasonerProfile = reason.Profile

const (
	ReasonerOff   = reason.ProfileOff
	ReasonerRDFS  = reason.ProfileRDFS
	ReasonerOWLRL = reason.ProfileOWLRL
)

// Limits is reason.Limits, re-exported for the same reason as
// ReasonerProfile.
type Limits = reason.Limits

// Config configures Open. The zero Config is a valid, usable
// configuration: an in-memory store, every index enabled, reasoning off.
type Config struct {
	Backend Backend

	// Path is the on-disk directory Badger/LevelDB/Mmap open. Unused for
	// Memory.
	Path string

	// EnabledIndexes restricts which of the six key orderings
	// (store.Ordering) the QuadStore maintains. Nil means every
	// ordering (store.DefaultEnabledOrderings).
	EnabledIndexes []store.Ordering

	Reasoner ReasonerProfile
	Limits   Limits

	// Concurrency bounds reason.Engine's per-stratum rule concurrency
	// (golang.org/x/sync/errgroup) and Ingest's per-ordering fan-out in
	// store.QuadStore.InsertBatch. Zero means sequential (both treat <1
	// as 1).
	Concurrency int
}
