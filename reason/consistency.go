package reason

import (
	"context"

	"github.com/rdfgraph/engine/term"
	"github.com/rdfgraph/engine/voc/owl"
	"github.com/rdfgraph/engine/voc/rdf"
)

// checkConsistency scans for owl:disjointWith violations after
// materialization reaches its fixpoint: two classes declared
// disjointWith each other must never share a common instance. Only
// disjointWith is checked — the OWL-2 RL subset this engine implements
// names no other hard constraint.
func (e *Engine) checkConsistency(ctx context.Context) error {
	disjointWith := i(e.dict, owl.DisjointWith)
	rdfType := i(e.dict, rdf.Type)

	axioms, err := e.store.Scan(ctx, term.Term{}, disjointWith, term.Term{}, term.Term{})
	if err != nil {
		return err
	}
	for _, ax := range axioms {
		c1, c2 := ax.Subject, ax.Object
		instC1, err := e.store.Scan(ctx, term.Term{}, rdfType, c1, term.Term{})
		if err != nil {
			return err
		}
		if len(instC1) == 0 {
			continue
		}
		members := make(map[term.Term]bool, len(instC1))
		for _, q := range instC1 {
			members[q.Subject] = true
		}
		instC2, err := e.store.Scan(ctx, term.Term{}, rdfType, c2, term.Term{})
		if err != nil {
			return err
		}
		for _, q := range instC2 {
			if members[q.Subject] {
				return ErrInconsistency
			}
		}
	}
	return nil
}
