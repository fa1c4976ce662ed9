// Package exec compiles a sparql.Algebra tree into a pull-based Iterator
// of variable bindings, built from an Algebra node and driven by
// Next/Err/Close. Compile never inspects an Algebra node's provenance
// (parsed, optimized, or hand-built by a test) — it only needs the
// shapes algebra.go defines.
package exec

import "errors"

var (
	// ErrUnbound is returned when an expression references a variable
	// with no binding in the current row and no default per SPARQL's
	// error-propagation rules.
	ErrUnbound = errors.New("exec: unbound variable")

	// ErrType is returned when an expression is applied to operands of
	// an incompatible kind (e.g. arithmetic on an IRI).
	ErrType = errors.New("exec: type error")

	// ErrUnsupported is returned for an Algebra or Expr shape exec does
	// not (yet) compile.
	ErrUnsupported = errors.New("exec: unsupported")

	// ErrCancelled is returned when ctx is done mid-evaluation.
	ErrCancelled = errors.New("exec: cancelled")
)
