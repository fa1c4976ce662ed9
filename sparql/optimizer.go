package sparql

import "github.com/rdfgraph/engine/term"

// Optimize rewrites an algebra tree to a fixed point, applying filter
// pushdown, constant folding, BGP pattern reordering by selectivity, and
// projection pushdown, in that order. Each pass is idempotent; the whole
// sequence is re-run until no pass changes the tree or a bounded
// iteration count is hit, guaranteeing termination on pathological
// inputs.
func Optimize(a Algebra) Algebra {
	const maxIterations = 32
	for i := 0; i < maxIterations; i++ {
		next := pushdownFilters(a)
		next = foldConstants(next)
		next = reorderBgps(next)
		next = pushdownProjection(next)
		if sameShape(next, a) {
			return next
		}
		a = next
	}
	return a
}

// sameShape is a cheap structural-equality check used only to detect
// optimizer fixed point; it does not need to be a full deep Equal since
// false negatives only cost one extra (harmless, idempotent) pass.
func sameShape(a, b Algebra) bool {
	return fmtNode(a) == fmtNode(b)
}

func fmtNode(a Algebra) string {
	if a == nil {
		return "nil"
	}
	switch n := a.(type) {
	case *TriplePattern:
		return "tp"
	case *Bgp:
		s := "bgp("
		for _, p := range n.Patterns {
			s += fmtTriplePattern(p) + ","
		}
		return s + ")"
	case *Join:
		return "join(" + fmtNode(n.Left) + "," + fmtNode(n.Right) + ")"
	case *LeftJoin:
		return "lj(" + fmtNode(n.Left) + "," + fmtNode(n.Right) + ")"
	case *Union:
		return "union(" + fmtNode(n.Left) + "," + fmtNode(n.Right) + ")"
	case *Filter:
		return "filter(" + fmtNode(n.Input) + ")"
	case *Extend:
		return "extend(" + n.Var + "," + fmtNode(n.Input) + ")"
	case *Project:
		return "project(" + fmtNode(n.Input) + ")"
	case *Distinct:
		return "distinct(" + fmtNode(n.Input) + ")"
	case *Reduced:
		return "reduced(" + fmtNode(n.Input) + ")"
	case *OrderBy:
		return "order(" + fmtNode(n.Input) + ")"
	case *Slice:
		return "slice(" + fmtNode(n.Input) + ")"
	case *Group:
		return "group(" + fmtNode(n.Input) + ")"
	case *Path:
		return "path"
	default:
		return "?"
	}
}

func fmtTriplePattern(p *TriplePattern) string {
	return termKey(p.Subject) + termKey(p.Predicate) + termKey(p.Object) + termKey(p.Graph)
}

func termKey(t term.Term) string {
	if t.Zero() {
		return "_"
	}
	switch t.Kind() {
	case term.KindVariable:
		r, _ := t.VariableName()
		return "?" + r.String()
	case term.KindIRI:
		r, _ := t.IRIValue()
		return "<" + r.String() + ">"
	default:
		return "v"
	}
}

// pushdownFilters moves a Filter below an adjacent Join when the filter
// expression only references variables bound on one side, so
// restriction happens as early as possible. A Filter over any other node
// (an Extend included) stays where it is.
func pushdownFilters(a Algebra) Algebra {
	switch n := a.(type) {
	case *Filter:
		inner := pushdownFilters(n.Input)
		if j, ok := inner.(*Join); ok {
			vars := exprVars(n.Expr)
			if subsetOf(vars, boundVars(j.Left)) {
				return &Join{Left: pushdownFilters(&Filter{Input: j.Left, Expr: n.Expr}), Right: j.Right}
			}
			if subsetOf(vars, boundVars(j.Right)) {
				return &Join{Left: j.Left, Right: pushdownFilters(&Filter{Input: j.Right, Expr: n.Expr})}
			}
		}
		return &Filter{Input: inner, Expr: n.Expr}
	case *Join:
		return &Join{Left: pushdownFilters(n.Left), Right: pushdownFilters(n.Right)}
	case *LeftJoin:
		return &LeftJoin{Left: pushdownFilters(n.Left), Right: pushdownFilters(n.Right), Expr: n.Expr}
	case *Union:
		return &Union{Left: pushdownFilters(n.Left), Right: pushdownFilters(n.Right)}
	case *Extend:
		return &Extend{Input: pushdownFilters(n.Input), Var: n.Var, Expr: n.Expr}
	case *Project:
		return &Project{Input: pushdownFilters(n.Input), Vars: n.Vars}
	case *Distinct:
		return &Distinct{Input: pushdownFilters(n.Input)}
	case *Reduced:
		return &Reduced{Input: pushdownFilters(n.Input)}
	case *OrderBy:
		return &OrderBy{Input: pushdownFilters(n.Input), Conditions: n.Conditions}
	case *Slice:
		s := *n
		s.Input = pushdownFilters(n.Input)
		return &s
	case *Group:
		g := *n
		g.Input = pushdownFilters(n.Input)
		return &g
	default:
		return a
	}
}

func exprVars(e *Expr) map[string]bool {
	out := map[string]bool{}
	var walk func(*Expr)
	walk = func(x *Expr) {
		if x == nil {
			return
		}
		if x.Kind == ExprVar {
			out[x.Var] = true
		}
		for _, o := range x.Operands {
			walk(o)
		}
		for _, o := range x.Args {
			walk(o)
		}
	}
	walk(e)
	return out
}

func subsetOf(a, b map[string]bool) bool {
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// boundVars collects the variables a sub-plan binds, conservatively
// (over-approximating is safe for the pushdown decision above: it can
// only prevent a pushdown that would have been valid, never cause an
// invalid one).
func boundVars(a Algebra) map[string]bool {
	out := map[string]bool{}
	var walk func(Algebra)
	walk = func(a Algebra) {
		switch n := a.(type) {
		case *TriplePattern:
			addVar(out, n.Subject)
			addVar(out, n.Predicate)
			addVar(out, n.Object)
			addVar(out, n.Graph)
		case *Bgp:
			for _, p := range n.Patterns {
				addVar(out, p.Subject)
				addVar(out, p.Predicate)
				addVar(out, p.Object)
				addVar(out, p.Graph)
			}
		case *Join:
			walk(n.Left)
			walk(n.Right)
		case *LeftJoin:
			walk(n.Left)
			walk(n.Right)
		case *Union:
			walk(n.Left)
			walk(n.Right)
		case *Filter:
			walk(n.Input)
		case *Extend:
			walk(n.Input)
			out[n.Var] = true
		case *Project:
			walk(n.Input)
		case *Distinct:
			walk(n.Input)
		case *Reduced:
			walk(n.Input)
		case *OrderBy:
			walk(n.Input)
		case *Slice:
			walk(n.Input)
		case *Group:
			walk(n.Input)
		case *Path:
			addVar(out, n.Subject)
			addVar(out, n.Object)
		}
	}
	walk(a)
	return out
}

func addVar(out map[string]bool, t term.Term) {
	if t.IsVariable() {
		r, _ := t.VariableName()
		out[r.String()] = true
	}
}

// foldConstants folds FILTER expressions made entirely of literal
// operands (e.g. FILTER(1 < 2)) to their boolean value so the executor
// need not re-evaluate them per row; a trivially-true filter collapses
// away, a trivially-false filter collapses its subtree to an empty Bgp.
func foldConstants(a Algebra) Algebra {
	switch n := a.(type) {
	case *Filter:
		input := foldConstants(n.Input)
		if v, ok := constBool(n.Expr); ok {
			if v {
				return input
			}
			return &Bgp{} // empty pattern never matches: whole branch is dead
		}
		return &Filter{Input: input, Expr: n.Expr}
	case *Join:
		return &Join{Left: foldConstants(n.Left), Right: foldConstants(n.Right)}
	case *LeftJoin:
		return &LeftJoin{Left: foldConstants(n.Left), Right: foldConstants(n.Right), Expr: n.Expr}
	case *Union:
		return &Union{Left: foldConstants(n.Left), Right: foldConstants(n.Right)}
	case *Extend:
		return &Extend{Input: foldConstants(n.Input), Var: n.Var, Expr: n.Expr}
	case *Project:
		return &Project{Input: foldConstants(n.Input), Vars: n.Vars}
	case *Distinct:
		return &Distinct{Input: foldConstants(n.Input)}
	case *Reduced:
		return &Reduced{Input: foldConstants(n.Input)}
	case *OrderBy:
		return &OrderBy{Input: foldConstants(n.Input), Conditions: n.Conditions}
	case *Slice:
		s := *n
		s.Input = foldConstants(n.Input)
		return &s
	case *Group:
		g := *n
		g.Input = foldConstants(n.Input)
		return &g
	default:
		return a
	}
}

// constBool reports whether e is a literal boolean expression, and its
// value, without needing the full executor's evaluator.
func constBool(e *Expr) (bool, bool) {
	if e.Kind != ExprLiteral {
		return false, false
	}
	lex, ok := e.Value.LiteralLexical()
	if !ok {
		return false, false
	}
	switch lex.String() {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// reorderBgps sorts each Bgp's patterns by descending bound-term count,
// running the most selective, i.e. most-bound, patterns first — a cheap
// static proxy for the data-driven selectivity tie-break wcoj's
// VariableOrder applies at execution time when given an estimator.
func reorderBgps(a Algebra) Algebra {
	switch n := a.(type) {
	case *Bgp:
		sorted := make([]*TriplePattern, len(n.Patterns))
		copy(sorted, n.Patterns)
		for i := 1; i < len(sorted); i++ {
			for j := i; j > 0 && boundCount(sorted[j]) > boundCount(sorted[j-1]); j-- {
				sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
			}
		}
		return &Bgp{Patterns: sorted}
	case *Join:
		return &Join{Left: reorderBgps(n.Left), Right: reorderBgps(n.Right)}
	case *LeftJoin:
		return &LeftJoin{Left: reorderBgps(n.Left), Right: reorderBgps(n.Right), Expr: n.Expr}
	case *Union:
		return &Union{Left: reorderBgps(n.Left), Right: reorderBgps(n.Right)}
	case *Filter:
		return &Filter{Input: reorderBgps(n.Input), Expr: n.Expr}
	case *Extend:
		return &Extend{Input: reorderBgps(n.Input), Var: n.Var, Expr: n.Expr}
	case *Project:
		return &Project{Input: reorderBgps(n.Input), Vars: n.Vars}
	case *Distinct:
		return &Distinct{Input: reorderBgps(n.Input)}
	case *Reduced:
		return &Reduced{Input: reorderBgps(n.Input)}
	case *OrderBy:
		return &OrderBy{Input: reorderBgps(n.Input), Conditions: n.Conditions}
	case *Slice:
		s := *n
		s.Input = reorderBgps(n.Input)
		return &s
	case *Group:
		g := *n
		g.Input = reorderBgps(n.Input)
		return &g
	default:
		return a
	}
}

func boundCount(p *TriplePattern) int {
	n := 0
	if !p.Subject.IsVariable() {
		n++
	}
	if !p.Predicate.IsVariable() {
		n++
	}
	if !p.Object.IsVariable() {
		n++
	}
	return n
}

// pushdownProjection drops Extend/BIND computations that only feed a
// variable the enclosing Project never selects, avoiding wasted
// per-row expression evaluation.
func pushdownProjection(a Algebra) Algebra {
	proj, ok := a.(*Project)
	if !ok {
		return a
	}
	keep := map[string]bool{}
	for _, v := range proj.Vars {
		keep[v] = true
	}
	return &Project{Input: pruneUnusedExtends(proj.Input, keep), Vars: proj.Vars}
}

func pruneUnusedExtends(a Algebra, keep map[string]bool) Algebra {
	switch n := a.(type) {
	case *Extend:
		if !keep[n.Var] {
			return pruneUnusedExtends(n.Input, keep)
		}
		for v := range exprVars(n.Expr) {
			keep[v] = true
		}
		return &Extend{Input: pruneUnusedExtends(n.Input, keep), Var: n.Var, Expr: n.Expr}
	case *Filter:
		for v := range exprVars(n.Expr) {
			keep[v] = true
		}
		return &Filter{Input: pruneUnusedExtends(n.Input, keep), Expr: n.Expr}
	default:
		return a
	}
}
