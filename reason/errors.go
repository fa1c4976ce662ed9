// Package reason implements the forward-chaining RDFS/OWL-2 RL reasoner:
// a semi-naive fixpoint evaluator over a rule set, a stratification pass
// for rules with negated premises, and a sparse boolean matrix fast path
// for pure binary-predicate graph recursion.
//
// The rule engine is a general pattern-matching Datalog-shaped evaluator
// rather than a special-purpose subClassOf/subPropertyOf tracker, so the
// OWL-2 RL subset (equivalentClass, sameAs, property chains, ...) fits
// the same evaluator instead of needing bespoke Go per rule.
package reason

import "errors"

// Error taxonomy for the reasoner.
var (
	// ErrInconsistency is raised when materialization derives a quad
	// that a constraint (e.g. owl:disjointWith) forbids.
	ErrInconsistency = errors.New("reason: inconsistent derivation")

	// ErrCycle is raised at rule-set load time when a rule's negated
	// premise depends, even transitively, on its own stratum.
	ErrCycle = errors.New("reason: cyclic rule dependency across strata")

	// ErrResourceLimit names the condition of hitting max_depth or
	// max_inferred. Materialize does not return it: it marks the
	// caller's Result Incomplete instead, so the computation is never
	// silently truncated.
	ErrResourceLimit = errors.New("reason: resource limit reached, result set may be incomplete")

	// ErrCancelled is returned when ctx is done between reasoner
	// iterations.
	ErrCancelled = errors.New("reason: cancelled")
)
