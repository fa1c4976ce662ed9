package reason

import (
	"context"

	"github.com/rdfgraph/engine/store"
	"github.com/rdfgraph/engine/term"
)

// matrixEligible reports whether rule is a pure binary graph-recursion
// rule the matrix fast path can handle: exactly two premises sharing one
// predicate and one chained variable, a positive (non-negated) rule, and
// a head that restates the same predicate over the chain's endpoints —
// gated on arity=2, positive, single-predicate recursion.
func matrixEligible(r *Rule) (pred term.Term, ok bool) {
	if len(r.Negated) != 0 || len(r.Premises) != 2 {
		return term.Term{}, false
	}
	a, b := r.Premises[0], r.Premises[1]
	pa, aok := a.Predicate.IRIValue()
	pb, bok := b.Predicate.IRIValue()
	if !aok || !bok || pa.String() != pb.String() {
		return term.Term{}, false
	}
	hp, hok := r.Head.Predicate.IRIValue()
	if !hok || hp.String() != pa.String() {
		return term.Term{}, false
	}
	// a: (x p y), b: (y p z), head: (x p z) — the middle variable of a
	// must be the leading variable of b, and the head must restate a's
	// leading variable and b's trailing one.
	ax, aok1 := a.Subject.VariableName()
	ay, aok2 := a.Object.VariableName()
	by, bok1 := b.Subject.VariableName()
	bz, bok2 := b.Object.VariableName()
	hx, hok1 := r.Head.Subject.VariableName()
	hz, hok2 := r.Head.Object.VariableName()
	if !(aok1 && aok2 && bok1 && bok2 && hok1 && hok2) {
		return term.Term{}, false
	}
	if ay.String() != by.String() || ax.String() != hx.String() || bz.String() != hz.String() {
		return term.Term{}, false
	}
	return term.IRI(pa), true
}

// sparseMatrix is a compressed sparse row boolean adjacency over
// dictionary-assigned term ids: rows[i] holds the set (an unordered map)
// of ids j such that an edge i->j (asserted or derived) exists. Using the
// dictionary's own dense ids keeps row indices directly addressable
// without a second id-compaction pass.
type sparseMatrix struct {
	rows map[uint64]map[uint64]bool
}

func newSparseMatrix() *sparseMatrix {
	return &sparseMatrix{rows: map[uint64]map[uint64]bool{}}
}

func (m *sparseMatrix) add(i, j uint64) bool {
	row, ok := m.rows[i]
	if !ok {
		row = map[uint64]bool{}
		m.rows[i] = row
	}
	if row[j] {
		return false
	}
	row[j] = true
	return true
}

// square computes one round of R := R ∪ R·R (boolean matrix product):
// for every i->k and k->j, add i->j. Returns the newly added (i,j)
// pairs so the caller can drive a delta-style fixpoint loop instead of
// rescanning the whole matrix every round.
func (m *sparseMatrix) square() [][2]uint64 {
	var added [][2]uint64
	for i, row := range m.rows {
		for k := range row {
			for j := range m.rows[k] {
				if m.add(i, j) {
					added = append(added, [2]uint64{i, j})
				}
			}
		}
	}
	return added
}

// runMatrixPath evaluates rule via the compressed sparse row fast path
// instead of the general semi-naive join, computing the transitive
// closure of pred as R := R ∪ R·R to a fixpoint, O(nnz·iter) instead of
// nested-loop O(N²). Returns every newly entailed quad, already
// deduplicated against the matrix's own starting state — the caller
// still filters against what the store already holds before inserting,
// same as any other rule's output.
func runMatrixPath(ctx context.Context, qs *store.QuadStore, dict *term.Dictionary, pred term.Term) ([]term.Quad, error) {
	quads, err := qs.Scan(ctx, term.Term{}, pred, term.Term{}, term.Term{})
	if err != nil {
		return nil, err
	}
	m := newSparseMatrix()
	idToTerm := map[uint64]term.Term{}
	for _, q := range quads {
		si := termID(dict, q.Subject)
		oi := termID(dict, q.Object)
		idToTerm[si] = q.Subject
		idToTerm[oi] = q.Object
		m.add(si, oi)
	}

	var derived []term.Quad
	for {
		if err := ctx.Err(); err != nil {
			return nil, ErrCancelled
		}
		added := m.square()
		if len(added) == 0 {
			break
		}
		for _, pair := range added {
			derived = append(derived, term.Quad{
				Subject:   idToTerm[pair[0]],
				Predicate: pred,
				Object:    idToTerm[pair[1]],
			})
		}
	}
	return derived, nil
}

func termID(dict *term.Dictionary, t term.Term) uint64 {
	switch {
	case t.IsIRI():
		r, _ := t.IRIValue()
		return dict.Intern(r.String()).ID()
	case t.IsBlank():
		id, _ := t.BlankID()
		return id | (1 << 63) // keep blank ids out of the IRI id space
	default:
		r, _ := t.LiteralLexical()
		return dict.Intern(r.String()).ID()
	}
}
