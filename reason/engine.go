package reason

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rdfgraph/engine/store"
	"github.com/rdfgraph/engine/term"
)

// Profile selects which rule table Materialize evaluates, matching
// rdfgraph.Config's ReasonerProfile exactly.
type Profile int

const (
	ProfileOff Profile = iota
	ProfileRDFS
	ProfileOWLRL
)

// Limits bounds a Materialize run. Zero means unbounded. Hitting either
// bound marks the Result Incomplete and stops cleanly rather than
// silently truncating.
type Limits struct {
	MaxDepth    int
	MaxInferred int
}

// Config configures an Engine.
type Config struct {
	Profile     Profile
	Limits      Limits
	Concurrency int
}

// Result summarizes one Materialize call.
type Result struct {
	Inferred   int
	Incomplete bool
}

// Engine runs forward-chaining entailment over a store.QuadStore. It is
// built once per store (the rule set and its stratification are fixed
// for the engine's lifetime) and Materialize may be called repeatedly —
// idempotently — as new quads are asserted.
type Engine struct {
	store       *store.QuadStore
	dict        *term.Dictionary
	strata      [][]*Rule
	profile     Profile
	limits      Limits
	concurrency int
	lastDelta   []term.Quad
}

// NewEngine builds an Engine for profile against qs/dict, stratifying
// the profile's rule table up front so a cyclic negation dependency is
// reported at construction time rather than mid-Materialize.
func NewEngine(qs *store.QuadStore, dict *term.Dictionary, cfg Config) (*Engine, error) {
	var rules []*Rule
	switch cfg.Profile {
	case ProfileOff:
	case ProfileRDFS:
		rules = DefaultRDFSRules(dict)
	case ProfileOWLRL:
		rules = Combine(DefaultRDFSRules(dict), DefaultOWLRLRules(dict))
	default:
		return nil, fmt.Errorf("reason: unknown profile %d", cfg.Profile)
	}
	strata, err := stratify(rules)
	if err != nil {
		return nil, err
	}
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Engine{
		store:       qs,
		dict:        dict,
		strata:      strata,
		profile:     cfg.Profile,
		limits:      cfg.Limits,
		concurrency: concurrency,
	}, nil
}

// Materialize runs every stratum's rules to a semi-naive fixpoint in
// order, lowest stratum first, then checks the fixed consistency
// constraints (owl:disjointWith). Re-running Materialize after it has
// already reached a fixpoint derives nothing new (idempotence);
// asserting more quads before a second call only ever grows the result
// (monotonicity).
func (e *Engine) Materialize(ctx context.Context) (Result, error) {
	if e.profile == ProfileOff {
		return Result{}, nil
	}
	res := Result{}
	depth := 0

	for _, rules := range e.strata {
		matrixRules, normalRules := partitionMatrixRules(rules)
		e.lastDelta = nil
		stratumRound := 0

		for {
			if err := ctx.Err(); err != nil {
				return res, ErrCancelled
			}
			depth++
			stratumRound++
			if e.limits.MaxDepth > 0 && depth > e.limits.MaxDepth {
				res.Incomplete = true
				return res, nil
			}

			added, err := e.roundMatrix(ctx, matrixRules)
			if err != nil {
				return res, err
			}
			addedNormal, err := e.roundNormal(ctx, normalRules, stratumRound == 1)
			if err != nil {
				return res, err
			}
			added = append(added, addedNormal...)

			if e.profile == ProfileOWLRL {
				listQuads, err := e.roundOwlLists(ctx)
				if err != nil {
					return res, err
				}
				added = append(added, listQuads...)
			}

			inserted, hitLimit, err := e.commit(ctx, added, &res)
			if err != nil {
				return res, err
			}
			if hitLimit {
				res.Incomplete = true
				return res, nil
			}
			if inserted == 0 {
				break
			}
		}
	}

	if err := e.checkConsistency(ctx); err != nil {
		return res, err
	}
	return res, nil
}

// partitionMatrixRules splits rules into the ones eligible for the
// compressed sparse row fast path and the rest, per matrixEligible's
// gate.
func partitionMatrixRules(rules []*Rule) (matrixPreds []term.Term, normal []*Rule) {
	seen := map[string]bool{}
	for _, r := range rules {
		if pred, ok := matrixEligible(r); ok {
			key, _ := pred.IRIValue()
			if !seen[key.String()] {
				seen[key.String()] = true
				matrixPreds = append(matrixPreds, pred)
			}
			continue
		}
		normal = append(normal, r)
	}
	return matrixPreds, normal
}

func (e *Engine) roundMatrix(ctx context.Context, preds []term.Term) ([]term.Quad, error) {
	var out []term.Quad
	for _, pred := range preds {
		quads, err := runMatrixPath(ctx, e.store, e.dict, pred)
		if err != nil {
			return nil, err
		}
		out = append(out, quads...)
	}
	return out, nil
}

// roundNormal evaluates every non-matrix rule in rules for one
// semi-naive round. On the first round (full=true) every premise is
// matched against the live store in full; on later rounds each rule is
// evaluated once per premise index, restricting that premise to the
// delta and every other premise to the live store — the standard
// "at least one delta atom" semi-naive discipline — so a rule only
// fires again when one of its premises was satisfied by something newly
// derived. The delta is read from e.lastDelta, which commit sets at the
// end of the previous round.
func (e *Engine) roundNormal(ctx context.Context, rules []*Rule, full bool) ([]term.Quad, error) {
	if len(rules) == 0 {
		return nil, nil
	}
	delta := e.lastDelta
	if full {
		delta = nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	results := make([][]term.Quad, len(rules))
	for idx, rule := range rules {
		idx, rule := idx, rule
		g.Go(func() error {
			quads, err := e.evalRule(gctx, rule, full, delta)
			if err != nil {
				return err
			}
			results[idx] = quads
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var out []term.Quad
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

// evalRule evaluates one rule's premises, either fully against the
// store (full=true) or once per premise index restricted to delta.
func (e *Engine) evalRule(ctx context.Context, rule *Rule, full bool, delta []term.Quad) ([]term.Quad, error) {
	var out []term.Quad
	evalWithDeltaAt := func(deltaIdx int) error {
		rows := []binding{{}}
		var err error
		for i, prem := range rule.Premises {
			if i == deltaIdx {
				rows = matchAtomInSlice(prem, delta, rows)
			} else {
				rows, err = matchAtom(ctx, e.store, prem, rows)
				if err != nil {
					return err
				}
			}
			if len(rows) == 0 {
				return nil
			}
		}
		for _, neg := range rule.Negated {
			var err error
			rows, err = filterNegated(ctx, e.store, neg, rows)
			if err != nil {
				return err
			}
		}
		for _, row := range rows {
			if q, ok := instantiate(rule.Head, row); ok {
				out = append(out, q)
			}
		}
		return nil
	}

	if full {
		if err := evalWithDeltaAt(-1); err != nil {
			return nil, err
		}
		return out, nil
	}
	for i := range rule.Premises {
		if err := evalWithDeltaAt(i); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (e *Engine) roundOwlLists(ctx context.Context) ([]term.Quad, error) {
	var out []term.Quad
	intersect, err := evaluateClassIntersection(ctx, e.store, e.dict)
	if err != nil {
		return nil, err
	}
	out = append(out, intersect...)
	chains, err := evaluatePropertyChains(ctx, e.store, e.dict)
	if err != nil {
		return nil, err
	}
	out = append(out, chains...)
	return out, nil
}

// commit filters candidate against what the store already holds,
// inserts the genuinely new quads (marking each inferred), and updates
// e.lastDelta to exactly those insertions for the next round. It
// enforces Limits.MaxInferred, stopping short of inserting the quad that
// would exceed it.
func (e *Engine) commit(ctx context.Context, candidates []term.Quad, res *Result) (inserted int, hitLimit bool, err error) {
	seen := map[uint64]bool{}
	var added []term.Quad
	for _, q := range candidates {
		h := term.QuadHash(q)
		if seen[h] {
			continue
		}
		seen[h] = true
		exists, err := e.store.Contains(ctx, q)
		if err != nil {
			return 0, false, err
		}
		if exists {
			continue
		}
		if e.limits.MaxInferred > 0 && res.Inferred >= e.limits.MaxInferred {
			e.lastDelta = added
			return len(added), true, nil
		}
		if err := e.store.Insert(ctx, q); err != nil {
			return 0, false, err
		}
		e.store.MarkInferred(q)
		res.Inferred++
		added = append(added, q)
	}
	e.lastDelta = added
	return len(added), false, nil
}

// matchAtomInSlice is matchAtom's counterpart for semi-naive evaluation:
// it restricts a's matches to quads, the delta slice, rather than
// issuing a store.Scan, the discipline that keeps a later round's work
// proportional to what changed instead of the whole store.
func matchAtomInSlice(a Atom, quads []term.Quad, in []binding) []binding {
	var out []binding
	for _, row := range in {
		s := substitute(row, a.Subject)
		p := substitute(row, a.Predicate)
		o := substitute(row, a.Object)
		for _, q := range quads {
			if !q.Matches(zeroIfVar(s, a.Subject), zeroIfVar(p, a.Predicate), zeroIfVar(o, a.Object), term.Term{}) {
				continue
			}
			next := row.clone()
			sName, sIsVar := a.Subject.VariableName()
			pName, pIsVar := a.Predicate.VariableName()
			oName, oIsVar := a.Object.VariableName()
			ok := true
			if sIsVar {
				ok = ok && bindOK(next, sName.String(), q.Subject)
			}
			if ok && pIsVar {
				ok = ok && bindOK(next, pName.String(), q.Predicate)
			}
			if ok && oIsVar {
				ok = ok && bindOK(next, oName.String(), q.Object)
			}
			if ok {
				out = append(out, next)
			}
		}
	}
	return out
}

// zeroIfVar returns the zero (wildcard) Term when pattern is a variable
// unresolved by substitute (resolved.Zero()), otherwise resolved —
// matching Quad.Matches's own wildcard convention.
func zeroIfVar(resolved, pattern term.Term) term.Term {
	if _, ok := pattern.VariableName(); ok && resolved.Zero() {
		return term.Term{}
	}
	return resolved
}

// filterNegated drops rows for which neg, once substituted, matches
// anything in the live store — "not(exists)" negation-as-failure.
// Because stratify guarantees neg's defining rules sit in a strictly
// lower (already-settled) stratum, checking the live store here is
// safe: no further derivation of neg's predicate can happen later.
func filterNegated(ctx context.Context, qs *store.QuadStore, neg Atom, rows []binding) ([]binding, error) {
	var out []binding
	for _, row := range rows {
		s, _ := wildcard(substitute(row, neg.Subject), neg.Subject)
		p, _ := wildcard(substitute(row, neg.Predicate), neg.Predicate)
		o, _ := wildcard(substitute(row, neg.Object), neg.Object)
		quads, err := qs.Scan(ctx, s, p, o, term.Term{})
		if err != nil {
			return nil, err
		}
		if len(quads) == 0 {
			out = append(out, row)
		}
	}
	return out, nil
}
