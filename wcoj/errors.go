// Package wcoj implements the worst-case-optimal join used to evaluate
// basic graph patterns meeting the delegation threshold (three or more
// triple patterns sharing two or more variables). It realizes the Ngo et
// al. generic-join formulation: a global variable order is fixed once,
// and at each variable every relation that mentions it contributes a
// sorted candidate list which Leapfrog intersects before recursing into
// the next variable — the same attribute-at-a-time shape a literal
// trie/leapfrog-triejoin structure would provide, except the "trie" is
// realized by re-seeking store.QuadStore index scans rather than holding
// materialized nodes.
package wcoj

import "errors"

var ErrCancelled = errors.New("wcoj: cancelled")
